package prettyprinter

import (
	"bytes"
	"os"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/config"
	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// --- Code Printer (output reads as an s-expression) ---

// Print renders e without colour.
func Print(e ast.Expression) string {
	return NewCodePrinter().Print(e)
}

type CodePrinter struct {
	buf bytes.Buffer

	keyword *color.Color
	symbol  *color.Color
	literal *color.Color
	typ     *color.Color
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// NewColorPrinter highlights keywords, symbols, literals and types with
// ANSI colours regardless of where the output ends up.
func NewColorPrinter() *CodePrinter {
	p := &CodePrinter{
		keyword: color.New(color.FgMagenta, color.Bold),
		symbol:  color.New(color.FgCyan),
		literal: color.New(color.FgGreen),
		typ:     color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.keyword, p.symbol, p.literal, p.typ} {
		c.EnableColor()
	}
	return p
}

// NewPrinterFor picks a printer for the colour mode, testing f for a
// terminal when the mode is auto.
func NewPrinterFor(mode string, f *os.File) *CodePrinter {
	if UseColor(mode, f.Fd()) {
		return NewColorPrinter()
	}
	return NewCodePrinter()
}

// UseColor resolves a colour mode against the file descriptor output goes to.
func UseColor(mode string, fd uintptr) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Print renders e, discarding anything printed before.
func (p *CodePrinter) Print(e ast.Expression) string {
	p.buf.Reset()
	p.printExpr(e)
	return p.buf.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) paint(c *color.Color, s string) {
	if c == nil {
		p.write(s)
		return
	}
	p.write(c.Sprint(s))
}

func (p *CodePrinter) printExpr(e ast.Expression) {
	if e == nil {
		p.write("<???>")
		return
	}
	e.Accept(p)
}

// form prints (head child...).
func (p *CodePrinter) form(head string, children ...func()) {
	p.write("(")
	p.paint(p.keyword, head)
	for _, child := range children {
		p.write(" ")
		child()
	}
	p.write(")")
}

func (p *CodePrinter) expr(e ast.Expression) func() {
	return func() { p.printExpr(e) }
}

func (p *CodePrinter) VisitConstant(n *ast.Constant) {
	if n.Value == nil {
		p.write("<???>")
		return
	}
	p.paint(p.literal, n.Value.Inspect())
}

func (p *CodePrinter) VisitReference(n *ast.Reference) {
	p.paint(p.symbol, string(n.Symbol))
}

func (p *CodePrinter) VisitApplication(n *ast.Application) {
	p.write("(")
	p.printExpr(n.Func)
	for _, arg := range n.Args {
		p.write(" ")
		p.printExpr(arg)
	}
	p.write(")")
}

func (p *CodePrinter) VisitConditional(n *ast.Conditional) {
	p.form("if", p.expr(n.Cond), p.expr(n.Then), p.expr(n.Else))
}

func (p *CodePrinter) VisitBinding(n *ast.Binding) {
	p.form("let", func() {
		p.write("[")
		p.paint(p.symbol, string(n.Symbol))
		p.write(" ")
		p.printExpr(n.Value)
		p.write("]")
	}, p.expr(n.Body))
}

func (p *CodePrinter) VisitReturn(n *ast.Return) {
	p.form("return", p.expr(n.Value))
}

func (p *CodePrinter) VisitCast(n *ast.Cast) {
	p.form("cast", p.targetOf(n.Target), p.expr(n.Expr))
}

func (p *CodePrinter) VisitSpecialised(n *ast.Specialised) {
	p.form("the", p.targetOf(n.Target), p.expr(n.Expr))
}

// targetOf prints a type, parenthesising unions so they read as one operand.
func (p *CodePrinter) targetOf(t typesystem.Type) func() {
	return func() {
		switch t.(type) {
		case nil:
			p.write("<???>")
		case typesystem.TUnion:
			p.paint(p.typ, "("+t.String()+")")
		default:
			p.paint(p.typ, t.String())
		}
	}
}
