package qjson

import (
	"strconv"
	"unicode/utf8"
)

const hexdigits = "0123456789abcdef"

// Serialize renders v as compact strict JSON. It is total over well-formed
// Value trees: strings are already decoded and numbers carry a decoded
// magnitude, so every node has a valid JSON rendering.
func Serialize(v Value) string {
	return string(AppendJSON(nil, v))
}

// AppendJSON appends the strict JSON encoding of v to dst and returns the
// extended buffer.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return appendNumber(dst, v)
	case KindString:
		return appendQuoted(dst, v.Str)
	case KindArray:
		dst = append(dst, '[')
		for i := range v.Items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, v.Items[i])
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i := range v.Members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, v.Members[i].Key)
			dst = append(dst, ':')
			dst = AppendJSON(dst, v.Members[i].Value)
		}
		return append(dst, '}')
	}
	return append(dst, "null"...)
}

// appendNumber emits canonical JSON number text, never the raw literal.
// Integral literals (including hex, binary and octal forms) come out in
// base 10; everything else as the shortest decimal form that round-trips
// the float64 magnitude.
func appendNumber(dst []byte, v Value) []byte {
	if v.IsInt {
		return strconv.AppendInt(dst, v.Int, 10)
	}
	return strconv.AppendFloat(dst, v.Num, 'g', -1, 64)
}

// appendQuoted emits a double-quoted JSON string. Quote, backslash and
// control characters get the standard escapes; everything else, non-ASCII
// included, is emitted as literal UTF-8.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			_, size := utf8.DecodeRuneInString(s[i:])
			dst = append(dst, s[i:i+size]...)
			i += size
			continue
		}
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexdigits[c>>4], hexdigits[c&0xF])
		}
		i++
	}
	return append(dst, '"')
}
