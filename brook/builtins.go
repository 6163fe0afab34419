// Copyright © 2024 The Brook authors

package brook

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"
)

type langBuiltin struct {
	name    string
	params  []*TypeDesc
	returns *TypeDesc
	fun     Builtin
	doc     string
}

func params(t ...*TypeDesc) []*TypeDesc {
	return t
}

var (
	anyArray = ArrayOf(AnyType)
	numArray = ArrayOf(NumType)
	strArray = ArrayOf(StrType)
	unaryFn  = FuncOf(AnyType, AnyType)
	binaryFn = FuncOf(AnyType, AnyType, AnyType)
)

var langBuiltins = []*langBuiltin{
	// Arithmetic
	{"plus", params(NumType, NumType), NumType, builtinPlus,
		"Returns the sum of two numbers."},
	{"minus", params(NumType, NumType), NumType, builtinMinus,
		"Returns the left operand minus the right operand."},
	{"times", params(NumType, NumType), NumType, builtinTimes,
		"Returns the product of two numbers."},
	{"over", params(NumType, NumType), NumType, builtinOver,
		"Returns the left operand divided by the right operand."},
	{"mod", params(NumType, NumType), NumType, builtinMod,
		"Returns the remainder of dividing the left operand by the right operand. The result has the sign of the left operand."},

	// Comparison
	{"lt", params(NumType, NumType), BoolType, builtinLT,
		"Returns true if the left operand is less than the right operand."},
	{"ltEq", params(NumType, NumType), BoolType, builtinLTEq,
		"Returns true if the left operand is less than or equal to the right operand."},
	{"gt", params(NumType, NumType), BoolType, builtinGT,
		"Returns true if the left operand is greater than the right operand."},
	{"gtEq", params(NumType, NumType), BoolType, builtinGTEq,
		"Returns true if the left operand is greater than or equal to the right operand."},
	{"eq", params(AnyType, AnyType), BoolType, builtinEq,
		"Returns true if the operands are deeply equal. Functions are equal only to themselves."},
	{"nEq", params(AnyType, AnyType), BoolType, builtinNEq,
		"Returns true if the operands are not deeply equal."},

	// String operations
	{"toString", params(AnyType), StrType, builtinToString,
		"Returns the printed representation of a value. Strings are returned unchanged."},
	{"lines", params(StrType), strArray, builtinLines,
		"Splits a string on runs of line terminators."},
	{"chars", params(StrType), strArray, builtinChars,
		"Splits a string into an array of its characters."},
	{"length", params(AnyType), NumType, builtinLength,
		"Returns the number of characters in a string or the number of members in an array."},
	{"slice", params(AnyType, numArray), AnyType, builtinSlice,
		"Returns the portion of a string or array between a start index and an optional end index, given as an array [start end]. Negative indices count from the end."},
	{"match", params(StrType, StrType), strArray, builtinMatch,
		"Returns every non-overlapping match of the right operand, a regular expression, in the left operand."},
	{"matchStart", params(StrType, StrType), NumType, builtinMatchStart,
		"Returns the character index of the first match of the right operand, a regular expression, in the left operand, or -1."},

	// Parsing
	{"isDigit", params(StrType), BoolType, builtinIsDigit,
		"Returns true if the string is a single decimal digit."},
	{"toInt", params(StrType), NumType, builtinToInt,
		"Parses the leading base 10 integer of a string."},

	// Array operations
	{"range", params(NumType, NumType), numArray, builtinRange,
		"Returns the numbers from the left operand up to, but not including, the right operand."},
	{"map", params(anyArray, unaryFn), ArrayOf(UnknownType), builtinMap,
		"Applies a function to each member of an array and returns the results."},
	{"reduce", params(anyArray, binaryFn), UnknownType, builtinReduce,
		"Combines the members of a nonempty array from left to right using a binary function."},
	{"filter", params(anyArray, unaryFn), ArrayOf(UnknownType), builtinFilter,
		"Returns the members of an array for which a function returns a truthy value."},
	{"sum", params(numArray), NumType, builtinSum,
		"Returns the sum of an array of numbers."},
	{"take", params(anyArray, NumType), ArrayOf(UnknownType), builtinTake,
		"Returns the first n members of an array. A negative n drops members from the end."},
	{"pick", params(anyArray, numArray), ArrayOf(UnknownType), builtinPick,
		"Returns the members of an array at the given indices. Negative indices count from the end."},
	{"join", params(strArray, StrType), StrType, builtinJoin,
		"Concatenates an array of strings placing a separator between members."},
	{"indexIn", params(AnyType, AnyType), NumType, builtinIndexIn,
		"Returns the index of the left operand in the right operand, a string or array, or -1."},

	// File IO
	{"readFile", params(StrType), StrType, builtinReadFile,
		"Returns the contents of the file at a path."},

	// Combinators
	{"_", params(AnyType), UnknownType, builtinIdentity,
		"Returns its operand."},
	{"S", params(binaryFn, unaryFn), FuncOf(UnknownType, AnyType), builtinS,
		"Given a binary function a and a unary function b returns the function that maps c to a(c, b(c))."},
}

var langConstants = map[string]*Value{
	"true":  Bool(true),
	"false": Bool(false),
}

var (
	builtinsOnce sync.Once
	builtins     map[string]*Value
)

// builtinTable returns the process-wide builtin bindings.  The returned map
// must not be modified.
func builtinTable() map[string]*Value {
	builtinsOnce.Do(func() {
		builtins = make(map[string]*Value, len(langBuiltins)+len(langConstants))
		for _, b := range langBuiltins {
			fn := NewFunction(b.name, b.params, b.returns, b.fun)
			fn.Doc = b.doc
			builtins[b.name] = Fun(fn)
		}
		for name, v := range langConstants {
			builtins[name] = v
		}
	})
	return builtins
}

// LookupBuiltin returns the builtin value bound to name.
func LookupBuiltin(name string) (*Value, bool) {
	v, ok := builtinTable()[name]
	return v, ok
}

// BuiltinNames returns the sorted names of all builtin values.
func BuiltinNames() []string {
	table := builtinTable()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinPlus(env *Env, args []*Value) (*Value, error) {
	return Num(args[0].Num + args[1].Num), nil
}

func builtinMinus(env *Env, args []*Value) (*Value, error) {
	return Num(args[0].Num - args[1].Num), nil
}

func builtinTimes(env *Env, args []*Value) (*Value, error) {
	return Num(args[0].Num * args[1].Num), nil
}

func builtinOver(env *Env, args []*Value) (*Value, error) {
	return Num(args[0].Num / args[1].Num), nil
}

func builtinMod(env *Env, args []*Value) (*Value, error) {
	return Num(math.Mod(args[0].Num, args[1].Num)), nil
}

func builtinLT(env *Env, args []*Value) (*Value, error) {
	return Bool(args[0].Num < args[1].Num), nil
}

func builtinLTEq(env *Env, args []*Value) (*Value, error) {
	return Bool(args[0].Num <= args[1].Num), nil
}

func builtinGT(env *Env, args []*Value) (*Value, error) {
	return Bool(args[0].Num > args[1].Num), nil
}

func builtinGTEq(env *Env, args []*Value) (*Value, error) {
	return Bool(args[0].Num >= args[1].Num), nil
}

func builtinEq(env *Env, args []*Value) (*Value, error) {
	return Bool(args[0].Equal(args[1])), nil
}

func builtinNEq(env *Env, args []*Value) (*Value, error) {
	return Bool(!args[0].Equal(args[1])), nil
}

func builtinToString(env *Env, args []*Value) (*Value, error) {
	return String(args[0].Display()), nil
}

var lineTerminators = regexp.MustCompile(`[\n\r]+`)

func builtinLines(env *Env, args []*Value) (*Value, error) {
	return stringArray(lineTerminators.Split(args[0].Str, -1)), nil
}

func builtinChars(env *Env, args []*Value) (*Value, error) {
	s := args[0].Str
	cells := make([]*Value, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		cells = append(cells, String(string(r)))
	}
	return Array(cells), nil
}

func builtinLength(env *Env, args []*Value) (*Value, error) {
	switch v := args[0]; v.Type {
	case VStr:
		return Num(float64(utf8.RuneCountInString(v.Str))), nil
	case VArray:
		return Num(float64(len(v.Cells))), nil
	default:
		return nil, builtinErrorf("length", "argument is not a string or array: %v", v.TypeDesc())
	}
}

func builtinSlice(env *Env, args []*Value) (*Value, error) {
	bounds := args[1].Cells
	if len(bounds) < 1 || len(bounds) > 2 {
		return nil, builtinErrorf("slice", "expected [start] or [start end], received %v", args[1])
	}
	for _, b := range bounds {
		if b.Type != VNum {
			return nil, builtinErrorf("slice", "index is not a number: %v", b)
		}
	}
	switch v := args[0]; v.Type {
	case VStr:
		runes := []rune(v.Str)
		i, j := sliceBounds(len(runes), bounds)
		return String(string(runes[i:j])), nil
	case VArray:
		i, j := sliceBounds(len(v.Cells), bounds)
		return Array(copyCells(v.Cells[i:j])), nil
	default:
		return nil, builtinErrorf("slice", "argument is not a string or array: %v", v.TypeDesc())
	}
}

// sliceBounds resolves a start and optional end index against a sequence of
// length n.  Negative indices count from the end and out of range indices are
// clamped.
func sliceBounds(n int, bounds []*Value) (int, int) {
	i := clampIndex(n, bounds[0].Num)
	j := n
	if len(bounds) > 1 {
		j = clampIndex(n, bounds[1].Num)
	}
	if j < i {
		j = i
	}
	return i, j
}

func clampIndex(n int, x float64) int {
	i := int(x)
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func builtinMatch(env *Env, args []*Value) (*Value, error) {
	re, err := regexp.Compile(args[1].Str)
	if err != nil {
		return nil, &BuiltinError{Fun: "match", Err: err}
	}
	return stringArray(re.FindAllString(args[0].Str, -1)), nil
}

func builtinMatchStart(env *Env, args []*Value) (*Value, error) {
	re, err := regexp.Compile(args[1].Str)
	if err != nil {
		return nil, &BuiltinError{Fun: "matchStart", Err: err}
	}
	s := args[0].Str
	loc := re.FindStringIndex(s)
	if loc == nil {
		return Num(-1), nil
	}
	return Num(float64(utf8.RuneCountInString(s[:loc[0]]))), nil
}

func builtinIsDigit(env *Env, args []*Value) (*Value, error) {
	s := args[0].Str
	return Bool(len(s) == 1 && s[0] >= '0' && s[0] <= '9'), nil
}

func builtinToInt(env *Env, args []*Value) (*Value, error) {
	s := strings.TrimLeftFunc(args[0].Str, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return nil, builtinErrorf("toInt", "no integer at start of %q", args[0].Str)
	}
	var x float64
	for _, c := range s[:n] {
		x = x*10 + float64(c-'0')
	}
	if neg {
		x = -x
	}
	return Num(x), nil
}

func builtinRange(env *Env, args []*Value) (*Value, error) {
	lo, hi := args[0].Num, args[1].Num
	var cells []*Value
	for x := lo; x < hi; x++ {
		cells = append(cells, Num(x))
	}
	return Array(cells), nil
}

func builtinMap(env *Env, args []*Value) (*Value, error) {
	xs, fn := args[0].Cells, args[1].Fun
	cells := make([]*Value, len(xs))
	for i, x := range xs {
		v, err := env.Apply(fn, []*Value{x})
		if err != nil {
			return nil, err
		}
		cells[i] = v
	}
	return Array(cells), nil
}

func builtinReduce(env *Env, args []*Value) (*Value, error) {
	xs, fn := args[0].Cells, args[1].Fun
	if len(xs) == 0 {
		return nil, builtinErrorf("reduce", "empty array with no initial value")
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		v, err := env.Apply(fn, []*Value{acc, x})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func builtinFilter(env *Env, args []*Value) (*Value, error) {
	xs, fn := args[0].Cells, args[1].Fun
	var cells []*Value
	for _, x := range xs {
		v, err := env.Apply(fn, []*Value{x})
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			cells = append(cells, x)
		}
	}
	return Array(cells), nil
}

func builtinSum(env *Env, args []*Value) (*Value, error) {
	var total float64
	for _, x := range args[0].Cells {
		if x.Type != VNum {
			return nil, builtinErrorf("sum", "array member is not a number: %v", x)
		}
		total += x.Num
	}
	return Num(total), nil
}

func builtinTake(env *Env, args []*Value) (*Value, error) {
	xs := args[0].Cells
	_, j := sliceBounds(len(xs), []*Value{Num(0), args[1]})
	return Array(copyCells(xs[:j])), nil
}

func builtinPick(env *Env, args []*Value) (*Value, error) {
	xs := args[0].Cells
	cells := make([]*Value, 0, len(args[1].Cells))
	for _, y := range args[1].Cells {
		if y.Type != VNum {
			return nil, builtinErrorf("pick", "index is not a number: %v", y)
		}
		i := int(y.Num)
		if i < 0 {
			i += len(xs)
		}
		if i < 0 || i >= len(xs) {
			return nil, builtinErrorf("pick", "index out of range: %v", y)
		}
		cells = append(cells, xs[i])
	}
	return Array(cells), nil
}

func builtinJoin(env *Env, args []*Value) (*Value, error) {
	parts := make([]string, len(args[0].Cells))
	for i, x := range args[0].Cells {
		if x.Type != VStr {
			return nil, builtinErrorf("join", "array member is not a string: %v", x)
		}
		parts[i] = x.Str
	}
	return String(strings.Join(parts, args[1].Str)), nil
}

func builtinIndexIn(env *Env, args []*Value) (*Value, error) {
	needle, haystack := args[0], args[1]
	switch haystack.Type {
	case VStr:
		if needle.Type != VStr {
			return Num(-1), nil
		}
		i := strings.Index(haystack.Str, needle.Str)
		if i < 0 {
			return Num(-1), nil
		}
		return Num(float64(utf8.RuneCountInString(haystack.Str[:i]))), nil
	case VArray:
		for i, x := range haystack.Cells {
			if x.Equal(needle) {
				return Num(float64(i)), nil
			}
		}
		return Num(-1), nil
	default:
		return nil, builtinErrorf("indexIn", "right operand is not a string or array: %v", haystack.TypeDesc())
	}
}

func builtinReadFile(env *Env, args []*Value) (*Value, error) {
	if env.Runtime.FS == nil {
		return nil, &BuiltinError{Fun: "readFile", Err: errors.New("no filesystem available")}
	}
	b, err := afero.ReadFile(env.Runtime.FS, args[0].Str)
	if err != nil {
		return nil, &BuiltinError{Fun: "readFile", Err: err}
	}
	return String(string(b)), nil
}

func builtinIdentity(env *Env, args []*Value) (*Value, error) {
	return args[0], nil
}

func builtinS(env *Env, args []*Value) (*Value, error) {
	a, b := args[0].Fun, args[1].Fun
	param := AnyType
	if b.Arity() == 1 {
		param = b.Params[0]
	}
	name := "S(" + a.Name + " " + b.Name + ")"
	fn := NewFunction(name, params(param), a.Returns, func(env *Env, args []*Value) (*Value, error) {
		c := args[0]
		bc, err := env.Apply(b, []*Value{c})
		if err != nil {
			return nil, err
		}
		return env.Apply(a, []*Value{c, bc})
	})
	return Fun(fn), nil
}

func stringArray(ss []string) *Value {
	cells := make([]*Value, len(ss))
	for i, s := range ss {
		cells[i] = String(s)
	}
	return Array(cells)
}

func copyCells(cells []*Value) []*Value {
	cp := make([]*Value, len(cells))
	copy(cp, cells)
	return cp
}
