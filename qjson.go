// Package qjson converts text written in the relaxed qjson dialect into
// strict JSON. The dialect tolerates authoring conveniences plain JSON
// forbids: unquoted and single-quoted object keys, trailing commas, "//",
// "#" and "/* */" comments, backtick multiline strings, relaxed number
// literals (leading '+', octal/hex/binary, '_' separators, ".5") and
// case-relaxed literal words (true/false/null, yes/no/on/off).
//
// Conversion is a pure pipeline: Scanner -> Parser -> Value tree ->
// Serializer. Nothing is cached across calls, so every function here is
// safe for concurrent use on independent inputs.
package qjson

// Version is the converter release; SyntaxVersion is the revision of the
// qjson dialect it implements.
const (
	Version       = "0.1.0"
	SyntaxVersion = "0.0.0"
)

// Convert converts qjson input into compact strict JSON. On failure it
// returns a *ConversionError carrying the error kind and its 0-based
// line, column and byte offset.
func Convert(input string) (string, error) {
	v, err := Parse(input)
	if err != nil {
		return "", err
	}
	return Serialize(v), nil
}

// ConvertBytes is Convert for byte slices.
func ConvertBytes(input []byte) ([]byte, error) {
	v, err := Parse(string(input))
	if err != nil {
		return nil, err
	}
	return AppendJSON(nil, v), nil
}

// Parse parses one top-level qjson value with the default nesting limit.
// Use a Parser directly to change the limit.
func Parse(input string) (Value, error) {
	return NewParser(input).Parse()
}
