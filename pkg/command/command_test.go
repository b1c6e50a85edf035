package command_test

import (
	"errors"
	"hackvm/pkg/command"
	"testing"
)

func TestIsSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"LOOP", true},
		{"_R0$:56.", true},
		{"Main.fibonacci", true},
		{"Sys.init$ret.3", true},
		{"a", true},
		{"", false},
		{"5A", false},
		{"A97^", false},
		{"has space", false},
		{"minus-sign", false},
	}

	for _, test := range tests {
		if got := command.IsSymbol(test.input); got != test.want {
			t.Errorf("IsSymbol(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestNewArithmeticLogical(t *testing.T) {
	for _, op := range []command.Operation{"add", "sub", "neg", "eq", "gt", "lt", "and", "or", "not"} {
		c, err := command.NewArithmeticLogical(op)
		if err != nil {
			t.Errorf("operation %s: unexpected error %v", op, err)
			continue
		}
		if c.Operation() != op {
			t.Errorf("operation %s: got %s", op, c.Operation())
		}
	}

	for _, op := range []command.Operation{"mul", "push", "", "ADD"} {
		if _, err := command.NewArithmeticLogical(op); !errors.Is(err, command.ErrInvalidOperation) {
			t.Errorf("operation %q: expected ErrInvalidOperation, got %v", op, err)
		}
	}
}

func TestArithmeticLogicalClassification(t *testing.T) {
	tests := []struct {
		op         command.Operation
		unary      bool
		comparison bool
	}{
		{command.OpAdd, false, false},
		{command.OpNeg, true, false},
		{command.OpNot, true, false},
		{command.OpEq, false, true},
		{command.OpLt, false, true},
		{command.OpOr, false, false},
	}

	for _, test := range tests {
		c, _ := command.NewArithmeticLogical(test.op)
		if c.IsUnary() != test.unary {
			t.Errorf("%s: IsUnary = %v", test.op, c.IsUnary())
		}
		if c.IsComparison() != test.comparison {
			t.Errorf("%s: IsComparison = %v", test.op, c.IsComparison())
		}
	}
}

func TestNewMemoryTransfer(t *testing.T) {
	tests := []struct {
		op      command.Operation
		segment command.Segment
		index   int
		err     error
	}{
		{command.OpPush, command.SegConstant, 17, nil},
		{command.OpPop, command.SegLocal, 0, nil},
		{command.OpPush, command.SegStatic, 240, nil},
		{command.OpPop, command.SegConstant, 1, nil},
		{command.OpPush, command.SegTemp, 100000, nil},
		{"move", command.SegLocal, 0, command.ErrInvalidOperation},
		{command.OpPush, "heap", 0, command.ErrInvalidSegment},
		{command.OpPush, "reg", 0, command.ErrInvalidSegment},
		{command.OpPop, command.SegArgument, -1, command.ErrNegativeIndex},
	}

	for _, test := range tests {
		c, err := command.NewMemoryTransfer(test.op, test.segment, test.index)
		if test.err == nil {
			if err != nil {
				t.Errorf("%s %s %d: unexpected error %v", test.op, test.segment, test.index, err)
				continue
			}
			if c.Operation() != test.op || c.Segment() != test.segment || c.Index() != test.index {
				t.Errorf("%s %s %d: got %s", test.op, test.segment, test.index, c)
			}
			continue
		}
		if !errors.Is(err, test.err) {
			t.Errorf("%s %s %d: expected %v, got %v", test.op, test.segment, test.index, test.err, err)
		}
	}
}

func TestNewBranching(t *testing.T) {
	if _, err := command.NewBranching(command.OpIfGoto, "LOOP_START"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := command.NewBranching(command.OpGoto, "1LOOP"); !errors.Is(err, command.ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}
	if _, err := command.NewBranching(command.OpCall, "LOOP"); !errors.Is(err, command.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestNewFunctionCommands(t *testing.T) {
	if c, err := command.NewFunctionCall("Math.multiply", 2); err != nil || c.NArgs() != 2 || c.FunctionName() != "Math.multiply" {
		t.Errorf("unexpected call command %v, %v", c, err)
	}
	if _, err := command.NewFunctionCall("Math.multiply", -1); !errors.Is(err, command.ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
	if _, err := command.NewFunctionCall("", 0); !errors.Is(err, command.ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}

	if c, err := command.NewFunctionDefinition("Sys.init", 0); err != nil || c.NVars() != 0 {
		t.Errorf("unexpected function command %v, %v", c, err)
	}
	if _, err := command.NewFunctionDefinition("Sys.init", -3); !errors.Is(err, command.ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
	if _, err := command.NewFunctionDefinition("9lives", 1); !errors.Is(err, command.ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}
}

func TestString(t *testing.T) {
	push, _ := command.NewMemoryTransfer(command.OpPush, command.SegConstant, 7)
	label, _ := command.NewBranching(command.OpIfGoto, "END")
	call, _ := command.NewFunctionCall("Main.f", 1)
	fn, _ := command.NewFunctionDefinition("Main.f", 2)

	tests := []struct {
		cmd  command.Command
		want string
	}{
		{push, "push constant 7"},
		{label, "if-goto END"},
		{call, "call Main.f 1"},
		{fn, "function Main.f 2"},
		{command.Return{}, "return"},
	}

	for _, test := range tests {
		if got := test.cmd.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}
