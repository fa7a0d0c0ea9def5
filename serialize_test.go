package qjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeStringEscaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\tnewline\n", `"tab\tnewline\n"`},
		{"\r\b\f", `"\r\b\f"`},
		{"\x01\x1f", `"\u0001\u001f"`},
		{"héllo wörld", `"héllo wörld"`}, // non-ASCII stays literal UTF-8
		{"😀", `"😀"`},
	}
	for _, tt := range tests {
		got := Serialize(Value{Kind: KindString, Str: tt.in})
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestSerializeNumbers(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{Kind: KindNumber, IsInt: true, Int: 0}, "0"},
		{Value{Kind: KindNumber, IsInt: true, Int: -42}, "-42"},
		{Value{Kind: KindNumber, Num: 0.5}, "0.5"},
		{Value{Kind: KindNumber, Num: 1000}, "1000"},
		{Value{Kind: KindNumber, Num: -0.025}, "-0.025"},
		{Value{Kind: KindNumber, Num: 1e21}, "1e+21"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Serialize(tt.v), "value %+v", tt.v)
	}
}

func TestSerializeScalars(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("null", Serialize(Value{Kind: KindNull}))
	assert.Equal("true", Serialize(Value{Kind: KindBool, Bool: true}))
	assert.Equal("false", Serialize(Value{Kind: KindBool}))
}

func TestSerializeCompound(t *testing.T) {
	assert := assert.New(t)

	v := Value{Kind: KindObject, Members: []Member{
		{Key: "b", Value: Value{Kind: KindNumber, IsInt: true, Int: 1}},
		{Key: "a", Value: Value{Kind: KindArray, Items: []Value{
			{Kind: KindBool, Bool: true},
			{Kind: KindNull},
			{Kind: KindString, Str: "x"},
		}}},
	}}

	// compact, no trailing commas, member order preserved
	assert.Equal(`{"b":1,"a":[true,null,"x"]}`, Serialize(v))

	assert.Equal("[]", Serialize(Value{Kind: KindArray}))
	assert.Equal("{}", Serialize(Value{Kind: KindObject}))
}

func TestAppendJSONReusesBuffer(t *testing.T) {
	assert := assert.New(t)

	buf := make([]byte, 0, 64)
	buf = AppendJSON(buf, Value{Kind: KindNull})
	buf = append(buf, '\n')
	buf = AppendJSON(buf, Value{Kind: KindBool, Bool: true})
	assert.Equal("null\ntrue", string(buf))
}
