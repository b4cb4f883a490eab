package evaluator

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"easycode/internal/object"
)

// aliases maps the upper-case global names onto the built-ins they share.
var aliases = map[string]string{
	"PRINT":     "print",
	"PRINT_RET": "print_ret",
	"INPUT":     "input",
	"INPUT_INT": "input_int",
	"CLEAR":     "clear",
	"CLS":       "clear",
	"IS_NUM":    "is_number",
	"IS_STR":    "is_string",
	"IS_LIST":   "is_list",
	"IS_FUN":    "is_function",
	"APPEND":    "append",
	"POP":       "pop",
	"EXTEND":    "extend",
}

func builtins(host IO) map[string]*object.Builtin {
	return map[string]*object.Builtin{
		"print":     funcPrint(host),
		"print_ret": funcPrintRet(),
		"input":     funcInput(host),
		"input_int": funcInputInt(host),
		"clear":     funcClear(host),

		// predicates
		"is_number":   funcIsType("is_number", object.NUMBER_OBJ),
		"is_string":   funcIsType("is_string", object.STRING_OBJ),
		"is_list":     funcIsType("is_list", object.LIST_OBJ),
		"is_function": funcIsType("is_function", object.FUNCTION_OBJ, object.BUILTIN_OBJ),

		// list functions
		"append": funcAppend(),
		"pop":    funcPop(),
		"extend": funcExtend(),
	}
}

// NewGlobals returns the environment programs run in. It encloses a frame
// holding the constants and built-ins, so user bindings shadow them
// without replacing them.
func NewGlobals(host IO) *object.Environment {
	root := object.NewEnvironment()
	root.Set("NULL", object.NewInt(0))
	root.Set("FALSE", object.NewInt(0))
	root.Set("TRUE", object.NewInt(1))
	root.Set("MATH_PI", object.NewFloat(math.Pi))

	table := builtins(host)
	for name, fn := range table {
		root.Set(name, fn)
	}
	for alias, name := range aliases {
		root.Set(alias, table[name])
	}
	return object.NewEnclosedEnvironment(root)
}

func funcPrint(host IO) *object.Builtin {
	return &object.Builtin{
		Name:   "print",
		Params: []string{"value"},
		Fn: func(call *object.Call) (object.Object, error) {
			if err := host.WriteLine(call.Arg("value").Display()); err != nil {
				return nil, call.Error(err.Error())
			}
			return nil, nil
		},
	}
}

func funcPrintRet() *object.Builtin {
	return &object.Builtin{
		Name:   "print_ret",
		Params: []string{"value"},
		Fn: func(call *object.Call) (object.Object, error) {
			return object.NewString(call.Arg("value").Display()), nil
		},
	}
}

func readLine(host IO, call *object.Call) (string, error) {
	text, err := host.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", call.Error("End of input")
	}
	if err != nil {
		return "", call.Error(err.Error())
	}
	return text, nil
}

func funcInput(host IO) *object.Builtin {
	return &object.Builtin{
		Name: "input",
		Fn: func(call *object.Call) (object.Object, error) {
			text, err := readLine(host, call)
			if err != nil {
				return nil, err
			}
			return object.NewString(text), nil
		},
	}
}

// funcInputInt keeps asking until a line parses as an integer.
func funcInputInt(host IO) *object.Builtin {
	return &object.Builtin{
		Name: "input_int",
		Fn: func(call *object.Call) (object.Object, error) {
			for {
				text, err := readLine(host, call)
				if err != nil {
					return nil, err
				}
				n, perr := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
				if perr == nil {
					return object.NewInt(n), nil
				}
				if err := host.WriteLine(fmt.Sprintf("'%s' must be an integer. Try again!", text)); err != nil {
					return nil, call.Error(err.Error())
				}
			}
		},
	}
}

func funcClear(host IO) *object.Builtin {
	return &object.Builtin{
		Name: "clear",
		Fn: func(call *object.Call) (object.Object, error) {
			if err := host.Clear(); err != nil {
				return nil, call.Error(err.Error())
			}
			return nil, nil
		},
	}
}

func funcIsType(name string, types ...object.ObjectType) *object.Builtin {
	return &object.Builtin{
		Name:   name,
		Params: []string{"value"},
		Fn: func(call *object.Call) (object.Object, error) {
			t := call.Arg("value").Type()
			for _, want := range types {
				if t == want {
					return object.Bool(true), nil
				}
			}
			return object.Bool(false), nil
		},
	}
}

// funcAppend adds value to the end of list in place.
func funcAppend() *object.Builtin {
	return &object.Builtin{
		Name:   "append",
		Params: []string{"list", "value"},
		Fn: func(call *object.Call) (object.Object, error) {
			list, ok := call.Arg("list").(*object.List)
			if !ok {
				return nil, call.Error("First argument must be list")
			}
			list.Append(call.Arg("value"))
			return nil, nil
		},
	}
}

// funcPop removes and returns the element at index.
func funcPop() *object.Builtin {
	return &object.Builtin{
		Name:   "pop",
		Params: []string{"list", "index"},
		Fn: func(call *object.Call) (object.Object, error) {
			list, ok := call.Arg("list").(*object.List)
			if !ok {
				return nil, call.Error("First argument must be list")
			}
			index, ok := call.Arg("index").(*object.Number)
			if !ok {
				return nil, call.Error("Second argument must be number")
			}
			removed, ok := list.Remove(index)
			if !ok {
				return nil, call.Error("Element at this index could not be removed from list because index is out of bounds")
			}
			return removed, nil
		},
	}
}

func funcExtend() *object.Builtin {
	return &object.Builtin{
		Name:   "extend",
		Params: []string{"listA", "listB"},
		Fn: func(call *object.Call) (object.Object, error) {
			a, ok := call.Arg("listA").(*object.List)
			if !ok {
				return nil, call.Error("First argument must be list")
			}
			b, ok := call.Arg("listB").(*object.List)
			if !ok {
				return nil, call.Error("Second argument must be list")
			}
			a.Extend(b)
			return nil, nil
		},
	}
}
