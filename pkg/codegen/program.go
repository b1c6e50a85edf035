package codegen

import (
	"context"
	"hackvm/pkg/command"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	StackBase     = 256
	EntryFunction = "Sys.init"
)

// Source is one parsed source file
type Source struct {
	Name     string
	Commands []command.Command
}

// Program translates a whole compilation unit made of several sources
type Program struct {
	units     []*Unit
	bootstrap bool // emit SP initialisation and a call to Sys.init
	limit     int  // max units translated concurrently (<= 0 = unlimited)
	lines     []string
}

type Option func(*Program)

// WithBootstrap enables the bootstrap prologue
func WithBootstrap(enabled bool) Option {
	return func(p *Program) { p.bootstrap = enabled }
}

// WithParallelism bounds the number of units translated at the same time
func WithParallelism(n int) Option {
	return func(p *Program) { p.limit = n }
}

// NewProgram creates a program from sources in the order given. Every unit's
// first command index follows the last index of the unit before it.
func NewProgram(sources []Source, opts ...Option) *Program {
	p := &Program{}
	for _, o := range opts {
		o(p)
	}

	base := 0
	if p.bootstrap {
		base = 1 // index 0 is the bootstrap call
	}

	for _, src := range sources {
		p.units = append(p.units, NewUnit(src.Name, src.Commands, base))
		base += len(src.Commands)
	}

	return p
}

// Bootstrap returns the prologue that sets up the stack and calls Sys.init
func Bootstrap() []string {
	entry, _ := command.NewFunctionCall(EntryFunction, 0)
	return concat(
		[]string{at(strconv.Itoa(StackBase)), "D=A", "@SP", "M=D"},
		TranslateCall(entry, 0),
	)
}

// Generate translates all units, concurrently when allowed, and concatenates
// their output in source order
func (p *Program) Generate(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}

	for _, u := range p.units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return u.Generate()
		})
	}

	if err := g.Wait(); err != nil {
		p.lines = nil
		return err
	}

	p.lines = nil
	if p.bootstrap {
		p.lines = append(p.lines, Bootstrap()...)
	}
	for _, u := range p.units {
		p.lines = append(p.lines, u.Lines()...)
	}

	return nil
}

// Units returns the translation units in source order
func (p *Program) Units() []*Unit {
	return p.units
}

// Lines returns the generated instructions
func (p *Program) Lines() []string {
	return p.lines
}

// GetCode returns the generated instructions as text
func (p *Program) GetCode() string {
	if len(p.lines) == 0 {
		return ""
	}
	return strings.Join(p.lines, "\n") + "\n"
}
