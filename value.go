package qjson

// ValueKind is the tag of a Value node.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one node of a parsed document tree. The tree is built once per
// conversion, consumed by the serializer, then discarded; nothing is shared
// or cached across calls.
//
// For KindNumber both the raw literal text and the decoded magnitude are
// kept: the serializer always re-derives canonical JSON text from the
// decoded value, since the dialect accepts literals (leading '+', octal,
// digit separators) that are not valid JSON numbers.
type Value struct {
	Kind ValueKind

	Bool  bool    // KindBool
	Str   string  // KindString, fully decoded
	Raw   string  // KindNumber, original literal text
	Num   float64 // KindNumber, decoded magnitude
	Int   int64   // KindNumber, exact value when IsInt
	IsInt bool    // KindNumber, literal was integral

	Items   []Value  // KindArray
	Members []Member // KindObject, insertion order preserved
}

// Member is one key/value entry of an object. When a key repeats, the last
// occurrence's value is kept at the first occurrence's position.
type Member struct {
	Key   string
	Value Value
}

// Get returns the value for key and whether it is present.
func (v Value) Get(key string) (Value, bool) {
	for i := range v.Members {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return Value{}, false
}
