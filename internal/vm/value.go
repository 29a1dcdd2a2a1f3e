package vm

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType identifies the type of value stored in the Value struct.
type ValueType uint8

const (
	ValInt ValueType = iota
	ValFloat
	ValBool
	ValChar
)

// Value is a stack-allocated tagged union. Data stores int64 bits, float64
// bits, a bool as 0/1, or a char's code point.
type Value struct {
	Type ValueType
	Data uint64
}

// Constructors

func IntVal(v int64) Value {
	return Value{Type: ValInt, Data: uint64(v)}
}

func FloatVal(v float64) Value {
	return Value{Type: ValFloat, Data: math.Float64bits(v)}
}

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func CharVal(v rune) Value {
	return Value{Type: ValChar, Data: uint64(v)}
}

// Accessors

func (v Value) AsInt() int64 {
	return int64(v.Data)
}

func (v Value) AsFloat() float64 {
	return math.Float64frombits(v.Data)
}

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsChar() rune {
	return rune(v.Data)
}

func (v Value) String() string {
	switch v.Type {
	case ValFloat:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64)
	case ValBool:
		return strconv.FormatBool(v.AsBool())
	case ValChar:
		return fmt.Sprintf("%c", v.AsChar())
	default:
		return strconv.FormatInt(v.AsInt(), 10)
	}
}
