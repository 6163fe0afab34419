// Copyright © 2024 The Brook authors

package brook

import (
	"bytes"
)

// Kind is the tag of a structural type descriptor.
type Kind uint

// Possible Kind values
const (
	KInvalid Kind = iota
	// KAny matches any value.
	KAny
	// KUnknown matches, and is matched by, anything.  It describes the
	// results of higher-order operations and the elements of empty arrays.
	KUnknown
	KNum
	KStr
	KBool
	// KArray descriptors store their element type in TypeDesc.Of.
	KArray
	// KFunc descriptors store their parameter types in TypeDesc.Params and
	// their result type in TypeDesc.Returns.
	KFunc
)

var kindStrings = []string{
	KInvalid: "invalid",
	KAny:     "any",
	KUnknown: "unknown",
	KNum:     "num",
	KStr:     "str",
	KBool:    "bool",
	KArray:   "array",
	KFunc:    "func",
}

func (k Kind) String() string {
	if k >= Kind(len(kindStrings)) {
		return kindStrings[KInvalid]
	}
	return kindStrings[k]
}

// TypeDesc is a structural type descriptor.  Descriptors are compared by
// structure and are never mutated once constructed.
type TypeDesc struct {
	Kind    Kind
	Of      *TypeDesc
	Params  []*TypeDesc
	Returns *TypeDesc
}

// Shared descriptors for the scalar kinds.
var (
	AnyType     = &TypeDesc{Kind: KAny}
	UnknownType = &TypeDesc{Kind: KUnknown}
	NumType     = &TypeDesc{Kind: KNum}
	StrType     = &TypeDesc{Kind: KStr}
	BoolType    = &TypeDesc{Kind: KBool}
)

// ArrayOf returns an array descriptor with elements of type of.
func ArrayOf(of *TypeDesc) *TypeDesc {
	return &TypeDesc{Kind: KArray, Of: of}
}

// FuncOf returns a function descriptor.
func FuncOf(returns *TypeDesc, params ...*TypeDesc) *TypeDesc {
	return &TypeDesc{Kind: KFunc, Params: params, Returns: returns}
}

func (t *TypeDesc) String() string {
	if t == nil {
		return kindStrings[KInvalid]
	}
	switch t.Kind {
	case KArray:
		return "array<" + t.Of.String() + ">"
	case KFunc:
		var buf bytes.Buffer
		buf.WriteString("func(")
		for i, p := range t.Params {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(p.String())
		}
		buf.WriteString("): ")
		buf.WriteString(t.Returns.String())
		return buf.String()
	default:
		return t.Kind.String()
	}
}

// Equal reports whether t and other have identical structure.
func (t *TypeDesc) Equal(other *TypeDesc) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KArray:
		return t.Of.Equal(other.Of)
	case KFunc:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return t.Returns.Equal(other.Returns)
	default:
		return true
	}
}

// CheckType reports whether a value of type actual may be supplied where
// expected is required.
func CheckType(expected, actual *TypeDesc) bool {
	return checkType(expected, actual, false)
}

// checkType implements CheckType.  When loose is true a function type may
// declare fewer parameters than expected provided its result, a further
// currying layer, accepts the parameters beyond its arity.
func checkType(expected, actual *TypeDesc, loose bool) bool {
	switch {
	case expected.Kind == KAny:
		return true
	case expected.Kind == KUnknown, actual.Kind == KUnknown:
		return true
	}
	switch expected.Kind {
	case KArray:
		return actual.Kind == KArray && checkType(expected.Of, actual.Of, false)
	case KFunc:
		return actual.Kind == KFunc && checkFunc(expected, actual, loose)
	default:
		return expected.Kind == actual.Kind
	}
}

func checkFunc(expected, actual *TypeDesc, loose bool) bool {
	n := len(actual.Params)
	if n != len(expected.Params) {
		if !loose || n > len(expected.Params) {
			return false
		}
	}
	for i := 0; i < n; i++ {
		if !checkType(expected.Params[i], actual.Params[i], false) {
			return false
		}
	}
	if n < len(expected.Params) {
		if actual.Returns.Kind != KFunc {
			return false
		}
		rest := FuncOf(expected.Returns, expected.Params[n:]...)
		return checkFunc(rest, actual.Returns, loose)
	}
	return eventuallyReturns(expected.Returns, actual.Returns)
}

// eventuallyReturns reports whether returns, or the result of any further
// currying layer it describes, is compatible with expected.
func eventuallyReturns(expected, returns *TypeDesc) bool {
	for {
		if checkType(expected, returns, false) {
			return true
		}
		if returns.Kind != KFunc {
			return false
		}
		returns = returns.Returns
	}
}
