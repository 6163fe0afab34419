// Copyright © 2024 The Brook authors

package brook

import (
	"bytes"
	"math"
	"strconv"
)

// VType is the type tag of a Value.
type VType uint

// Possible VType values
const (
	// VInvalid (0) is not a valid brook value type.
	VInvalid VType = iota
	// VNum values store a float64 in the Value.Num field.
	VNum
	// VStr values store a string in the Value.Str field.
	VStr
	// VBool values store a bool in the Value.Bool field.
	VBool
	// VArray values store their ordered members in the Value.Cells field.
	VArray
	// VFun values store a *Function in the Value.Fun field.
	VFun
	// VTypeMax is not a real type but is numerically greater than all valid
	// VType values.
	VTypeMax
)

var vtypeStrings = []string{
	VInvalid: "INVALID",
	VNum:     "num",
	VStr:     "str",
	VBool:    "bool",
	VArray:   "array",
	VFun:     "func",
}

func (t VType) String() string {
	if t >= VType(len(vtypeStrings)) {
		return vtypeStrings[VInvalid]
	}
	return vtypeStrings[t]
}

// Value is a brook runtime value.  Values are never mutated once
// constructed.
type Value struct {
	// Cells holds the members of an array.
	Cells []*Value

	// Fun is the function of a VFun value.
	Fun *Function

	// Str used by VStr values
	Str string

	// Num used by VNum values
	Num float64

	// Type is the tag which determines the meaningful fields of the value.
	Type VType

	// Bool used by VBool values
	Bool bool
}

// Num returns a number value.
func Num(x float64) *Value {
	return &Value{Type: VNum, Num: x}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{Type: VStr, Str: s}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{Type: VBool, Bool: b}
}

// Array returns an array value containing cells.  The cells slice is owned by
// the returned value.
func Array(cells []*Value) *Value {
	if cells == nil {
		cells = []*Value{}
	}
	return &Value{Type: VArray, Cells: cells}
}

// Fun returns a function value.
func Fun(fn *Function) *Value {
	return &Value{Type: VFun, Fun: fn}
}

// TypeDesc derives the structural type of v.  The element type of an array is
// derived from its first element; an empty array has Unknown elements.
func (v *Value) TypeDesc() *TypeDesc {
	switch v.Type {
	case VNum:
		return NumType
	case VStr:
		return StrType
	case VBool:
		return BoolType
	case VArray:
		if len(v.Cells) == 0 {
			return ArrayOf(UnknownType)
		}
		return ArrayOf(v.Cells[0].TypeDesc())
	case VFun:
		return v.Fun.Type()
	default:
		return UnknownType
	}
}

// Equal reports whether v and other are deeply equal.  Functions are equal
// only to themselves.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.Type != other.Type {
		return false
	}
	switch v.Type {
	case VNum:
		return v.Num == other.Num
	case VStr:
		return v.Str == other.Str
	case VBool:
		return v.Bool == other.Bool
	case VArray:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case VFun:
		return v.Fun == other.Fun
	default:
		return false
	}
}

// Truthy interprets v as a boolean.
func (v *Value) Truthy() bool {
	switch v.Type {
	case VBool:
		return v.Bool
	case VNum:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case VStr:
		return v.Str != ""
	case VArray:
		return len(v.Cells) > 0
	case VFun:
		return true
	default:
		return false
	}
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Type {
	case VNum:
		return formatNum(v.Num)
	case VStr:
		return strconv.Quote(v.Str)
	case VBool:
		return strconv.FormatBool(v.Bool)
	case VArray:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, cell := range v.Cells {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(cell.String())
		}
		buf.WriteString("]")
		return buf.String()
	case VFun:
		return v.Fun.String()
	default:
		return "<invalid>"
	}
}

// Display returns the text printed for v as a program result.  Strings are
// not quoted.
func (v *Value) Display() string {
	if v != nil && v.Type == VStr {
		return v.Str
	}
	return v.String()
}

// formatNum renders x in the shortest decimal form that the lexer reads back
// as the same number.
func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
