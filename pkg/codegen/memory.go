package codegen

import (
	"fmt"
	"hackvm/pkg/command"
	"strconv"
)

const (
	TempBase = 5 // R5..R12
	TempSize = 8
)

var segmentTable = map[command.Segment]string{
	command.SegLocal:    "LCL",
	command.SegArgument: "ARG",
	command.SegThis:     "THIS",
	command.SegThat:     "THAT",
}

var pointerTable = []string{"THIS", "THAT"}

// StaticSymbol returns the assembler symbol backing static cell index of unit
func StaticSymbol(unit string, index int) string {
	return unit + "." + strconv.Itoa(index)
}

// TranslateMemoryTransfer translates push and pop. unit scopes static cells.
func TranslateMemoryTransfer(c command.MemoryTransfer, unit string) ([]string, error) {
	if c.Operation() == command.OpPush {
		load, err := pushSource(c, unit)
		if err != nil {
			return nil, err
		}
		return concat(load, pushD()), nil
	}

	addr, err := popDestination(c, unit)
	if err != nil {
		return nil, err
	}
	return concat(addr, popToAddressInD()), nil
}

// pushSource loads the value pushed by c into D
func pushSource(c command.MemoryTransfer, unit string) ([]string, error) {
	idx := c.Index()

	switch seg := c.Segment(); seg {
	case command.SegConstant:
		return []string{at(strconv.Itoa(idx)), "D=A"}, nil
	case command.SegLocal, command.SegArgument, command.SegThis, command.SegThat:
		return []string{at(segmentTable[seg]), "D=M", at(strconv.Itoa(idx)), "A=D+A", "D=M"}, nil
	default:
		symbol, err := directSymbol(c, unit)
		if err != nil {
			return nil, err
		}
		return []string{at(symbol), "D=M"}, nil
	}
}

// popDestination loads the address written by c into D
func popDestination(c command.MemoryTransfer, unit string) ([]string, error) {
	idx := c.Index()

	switch seg := c.Segment(); seg {
	case command.SegConstant:
		return nil, fmt.Errorf("%w %q for pop", ErrUnsupportedSegment, seg)
	case command.SegLocal, command.SegArgument, command.SegThis, command.SegThat:
		return []string{at(segmentTable[seg]), "D=M", at(strconv.Itoa(idx)), "D=D+A"}, nil
	default:
		symbol, err := directSymbol(c, unit)
		if err != nil {
			return nil, err
		}
		return []string{at(symbol), "D=A"}, nil
	}
}

// directSymbol resolves the segments whose cells have a fixed address or
// symbol: temp, pointer and static
func directSymbol(c command.MemoryTransfer, unit string) (string, error) {
	idx := c.Index()

	switch seg := c.Segment(); seg {
	case command.SegTemp:
		if idx >= TempSize {
			return "", fmt.Errorf("%w: temp %d", ErrIndexOutOfRange, idx)
		}
		return strconv.Itoa(TempBase + idx), nil
	case command.SegPointer:
		if idx >= len(pointerTable) {
			return "", fmt.Errorf("%w: pointer %d", ErrIndexOutOfRange, idx)
		}
		return pointerTable[idx], nil
	case command.SegStatic:
		return StaticSymbol(unit, idx), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedSegment, seg)
	}
}
