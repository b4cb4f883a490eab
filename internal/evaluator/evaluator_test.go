package evaluator

import (
	"errors"
	"io"
	"strings"
	"testing"

	"easycode/internal/diag"
	"easycode/internal/lexer"
	"easycode/internal/object"
	"easycode/internal/parser"
	"easycode/internal/token"
)

type fakeIO struct {
	lines   []string
	out     []string
	cleared int
}

func (f *fakeIO) ReadLine() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeIO) WriteLine(s string) error {
	f.out = append(f.out, s)
	return nil
}

func (f *fakeIO) Clear() error {
	f.cleared++
	return nil
}

func run(t *testing.T, e *Evaluator, input string) (*object.List, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(&token.Source{Name: "<test>", Text: input})
	if err != nil {
		t.Fatalf("lexing %q failed: %v", input, err)
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parsing %q failed: %v", input, err)
	}
	val, err := e.Run(program, diag.NewContext("<program>", nil, token.Position{}))
	if err != nil {
		return nil, err
	}
	list, ok := val.(*object.List)
	if !ok {
		t.Fatalf("expected program value to be a list, got %T", val)
	}
	return list, nil
}

// testEval runs input and returns the value of its last statement.
func testEval(t *testing.T, input string) object.Object {
	t.Helper()
	return testEvalWith(t, New(&fakeIO{}), input)
}

func testEvalWith(t *testing.T, e *Evaluator, input string) object.Object {
	t.Helper()
	list, err := run(t, e, input)
	if err != nil {
		t.Fatalf("evaluating %q failed: %v", input, err)
	}
	if list.Len() == 0 {
		t.Fatalf("evaluating %q produced no statements", input)
	}
	return list.Get(list.Len() - 1)
}

func testError(t *testing.T, e *Evaluator, input string) *diag.Error {
	t.Helper()
	_, err := run(t, e, input)
	var derr *diag.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected a runtime error from %q, got %v", input, err)
	}
	if derr.Kind != diag.Runtime {
		t.Errorf("expected kind %q, got %q", diag.Runtime, derr.Kind)
	}
	return derr
}

func TestEvalValues(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"2 ^ 3 ^ 2", "512"},
		{"5 / 2", "2.5"},
		{"-3", "-3"},
		{"+3", "3"},
		{"NOT 0", "1"},
		{"1 = 1", "1"},
		{"1 == 2", "0"},
		{"1 < 2 AND 2 < 1", "0"},
		{`"ab" * 3`, `"ababab"`},
		{`"a" + "b"`, `"ab"`},
		{"VAR x = 5; x * 2", "10"},
		{"VAR x = 5", "5"},
		{"VAR x = 5\nx + 1", "6"},
		{"IF 1 > 0 THEN 10 ELSE 20", "10"},
		{"IF 0 THEN 10 ELIF 1 THEN 15 ELSE 20", "15"},
		{"IF 0 THEN 10 ELSE 20", "20"},
		{"IF 0 THEN 10", "0"},
		{"FOR i = 0 TO 3 THEN i", "[0, 1, 2]"},
		{"FOR i = 3 TO 0 STEP -1 THEN i", "[3, 2, 1]"},
		{"FOR i = 0 TO 0 THEN i", "[]"},
		{"FOR i = 0 TO 1 STEP 0.5 THEN i", "[0, 0.5]"},
		{"VAR i = 0; WHILE i < 3 THEN VAR i = i + 1", "[1, 2, 3]"},
		{"VAR i = 0; WHILE i < 5 THEN IF i == 3 THEN BREAK ELSE VAR i = i + 1", "[1, 2, 3]"},
		{"VAR i = 0; WHILE i < 4 THEN IF (VAR i = i + 1) == 2 THEN CONTINUE ELSE i", "[1, 3, 4]"},
		{"FUN add(a, b) -> a + b; add(2, 3)", "5"},
		{"VAR f = FUN (a) -> a * a; f(4)", "16"},
		{"VAR mk = FUN (n) -> FUN (x) -> x + n; VAR add5 = mk(5); add5(1)", "6"},
		{"FUN fib(n) -> IF n < 2 THEN n ELSE fib(n - 1) + fib(n - 2); fib(10)", "55"},
		{"FUN f()\n\tRETURN 7\n\t99\nEND\nf()", "7"},
		{"FUN f()\n\t99\nEND\nf()", "0"},
		{"FUN f()\n\tRETURN\nEND\nf()", "0"},
		{"[1, 2, 3] / -1", "3"},
		{"[1, 2] + 3", "[1, 2, 3]"},
		{"[1, 2] * [3]", "[1, 2, 3]"},
		{"[1, 2, 3] - 0", "[2, 3]"},
		{"MATH_PI", "3.141592653589793"},
		{"TRUE + FALSE + NULL", "1"},
		{"VAR TRUE = 5; TRUE", "5"},
		{"print", "<built-in function print>"},
		{"FUN () -> 1", "<function <anonymous>>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := testEval(t, tt.input)
			if got.Inspect() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.Inspect())
			}
		})
	}
}

func TestProgramValueIsStatementList(t *testing.T) {
	list, err := run(t, New(&fakeIO{}), "1\n2\n\"three\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := list.Inspect(); got != `[1, 2, "three"]` {
		t.Errorf("expected [1, 2, \"three\"], got %s", got)
	}
}

func TestLoopSignals(t *testing.T) {
	input := `VAR r = []
FOR i = 0 TO 6 THEN
	IF i == 1 THEN CONTINUE
	IF i == 4 THEN BREAK
	append(r, i)
END
r`
	if got := testEval(t, input).Inspect(); got != "[0, 2, 3]" {
		t.Errorf("expected [0, 2, 3], got %s", got)
	}

	input = `VAR n = 0
WHILE 1 THEN
	VAR n = n + 1
	IF n >= 5 THEN BREAK
END
n`
	if got := testEval(t, input).Inspect(); got != "5" {
		t.Errorf("expected 5, got %s", got)
	}

	input = `FUN first(xs)
	FOR i = 0 TO 10 THEN
		IF xs / i > 2 THEN RETURN xs / i
	END
	RETURN -1
END
first([1, 5, 3])`
	if got := testEval(t, input).Inspect(); got != "5" {
		t.Errorf("expected RETURN to leave the loop and function, got %s", got)
	}
}

func TestListAliasing(t *testing.T) {
	e := New(&fakeIO{})
	testEvalWith(t, e, "VAR a = [1]; VAR b = a; append(b, 2); VAR c = a + 3")

	tests := []struct {
		input    string
		expected string
	}{
		{"a", "[1, 2]"},
		{"b", "[1, 2]"},
		{"c", "[1, 2, 3]"},
		{"pop(a, 0)", "1"},
		{"b", "[2]"},
		{"extend(b, [7, 8])", "0"},
		{"a", "[2, 7, 8]"},
		{"pop(a, -1)", "8"},
		{"c", "[1, 2, 3]"},
		{"append(c, c); c", "[1, 2, 3, [...]]"},
	}
	for _, tt := range tests {
		if got := testEvalWith(t, e, tt.input).Inspect(); got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input   string
		details string
	}{
		{"y", "'y' is not defined"},
		{"1 / 0", "Division by zero"},
		{"[1, 2] / 5", "Element at this index could not be retrieved from list because index is out of bounds"},
		{"[1, 2] - 2", "Element at this index could not be removed from list because index is out of bounds"},
		{`"a" - 1`, "Illegal operation"},
		{`"ab" * 9223372036854775807`, "String repetition result is too long"},
		{"NOT [1]", "Illegal operation"},
		{"5()", "Illegal operation"},
		{`FOR i = "a" TO 3 THEN i`, "Illegal operation"},
		{"FUN add(a, b) -> a + b; add(1)", "1 too few args passed into <function add>"},
		{"FUN add(a, b) -> a + b; add(1, 2, 3, 4)", "2 too many args passed into <function add>"},
		{"print()", "1 too few args passed into <built-in function print>"},
		{"append(1, 2)", "First argument must be list"},
		{"pop(1, 0)", "First argument must be list"},
		{`pop([1], "x")`, "Second argument must be number"},
		{"pop([1], 3)", "Element at this index could not be removed from list because index is out of bounds"},
		{"extend(1, [])", "First argument must be list"},
		{"extend([], 1)", "Second argument must be list"},
		{"input()", "End of input"},
		{"RETURN 1", "'RETURN' outside of a function"},
		{"BREAK", "'BREAK' outside of a loop"},
		{"CONTINUE", "'CONTINUE' outside of a loop"},
		{"FUN f()\n\tBREAK\nEND\nFOR i = 0 TO 2 THEN f()", "'BREAK' outside of a loop"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			derr := testError(t, New(&fakeIO{}), tt.input)
			if derr.Details != tt.details {
				t.Errorf("expected %q, got %q", tt.details, derr.Details)
			}
		})
	}
}

func TestErrorPositions(t *testing.T) {
	derr := testError(t, New(&fakeIO{}), "VAR x = 1\nx + y")
	if derr.Start.Line != 1 || derr.Start.Column != 4 || derr.End.Column != 5 {
		t.Errorf("unexpected span %v..%v", derr.Start, derr.End)
	}

	derr = testError(t, New(&fakeIO{}), "FUN add(a, b) -> a + b\nadd(1)")
	if derr.Start.Line != 1 || derr.Start.Column != 0 || derr.End.Column != 6 {
		t.Errorf("expected the call span, got %v..%v", derr.Start, derr.End)
	}
}

func TestErrorContextChain(t *testing.T) {
	derr := testError(t, New(&fakeIO{}), "FUN inner(x) -> x / 0\nFUN outer(x) -> inner(x)\nouter(1)")
	ctx := derr.Context
	if ctx == nil || ctx.Name != "inner" {
		t.Fatalf("expected error raised in inner, got %+v", ctx)
	}
	if ctx.Parent == nil || ctx.Parent.Name != "outer" {
		t.Fatalf("expected inner to be called from outer, got %+v", ctx.Parent)
	}
	if ctx.Parent.Parent == nil || ctx.Parent.Parent.Name != "<program>" {
		t.Fatalf("expected outer to be called from <program>, got %+v", ctx.Parent.Parent)
	}
	if ctx.EntryPos.Line != 1 {
		t.Errorf("expected inner to be entered from line 1, got %d", ctx.EntryPos.Line)
	}
}

func TestRecursionLimit(t *testing.T) {
	e := New(&fakeIO{})
	e.MaxDepth = 50
	derr := testError(t, e, "FUN f(n) -> f(n + 1)\nf(0)")
	if derr.Details != "Maximum recursion depth exceeded" {
		t.Errorf("unexpected error %q", derr.Details)
	}

	// the evaluator is usable again after the failure
	if got := testEvalWith(t, e, "FUN g(n) -> IF n == 0 THEN 0 ELSE g(n - 1); g(40)").Inspect(); got != "0" {
		t.Errorf("expected 0, got %s", got)
	}
}

func TestBuiltinIO(t *testing.T) {
	host := &fakeIO{lines: []string{"hello", "abc", " 42 "}}
	e := New(host)

	tests := []struct {
		input    string
		expected string
	}{
		{`print("hi")`, "0"},
		{`PRINT([1, "a"])`, "0"},
		{`print_ret([1, "a"])`, `"1, a"`},
		{"input()", `"hello"`},
		{"INPUT_INT()", "42"},
		{"CLS()", "0"},
		{"clear()", "0"},
	}
	for _, tt := range tests {
		if got := testEvalWith(t, e, tt.input).Inspect(); got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.input, tt.expected, got)
		}
	}

	wantOut := []string{"hi", "1, a", "'abc' must be an integer. Try again!"}
	if len(host.out) != len(wantOut) {
		t.Fatalf("expected output %q, got %q", wantOut, host.out)
	}
	for i := range wantOut {
		if host.out[i] != wantOut[i] {
			t.Errorf("output line %d: expected %q, got %q", i, wantOut[i], host.out[i])
		}
	}
	if host.cleared != 2 {
		t.Errorf("expected 2 clears, got %d", host.cleared)
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"is_number(1.5)", "1"},
		{`is_number("1")`, "0"},
		{`IS_STR("x")`, "1"},
		{"is_list([])", "1"},
		{"IS_LIST(0)", "0"},
		{"is_function(print)", "1"},
		{"FUN f() -> 1; IS_FUN(f)", "1"},
		{"is_function([])", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := testEval(t, tt.input).Inspect(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestStdIO(t *testing.T) {
	var out strings.Builder
	s := NewStdIO(strings.NewReader("one\r\ntwo"), &out)

	for _, want := range []string{"one", "two"} {
		got, err := s.ReadLine()
		if err != nil || got != want {
			t.Fatalf("expected %q, got %q (%v)", want, got, err)
		}
	}
	if _, err := s.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}

	if err := s.WriteLine("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "x\n"+clearScreen {
		t.Errorf("unexpected output %q", out.String())
	}
}
