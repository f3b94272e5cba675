package prettyprinter

import (
	"io"
	"testing"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/config"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	builtins := evaluator.NewBuiltins(io.Discard)
	one := ast.NewConstant(&evaluator.Integer{Value: 1})
	x := ast.NewReference("x")
	tests := []struct {
		name     string
		expr     ast.Expression
		expected string
	}{
		{"integer", one, "1"},
		{"string", ast.NewConstant(&evaluator.String{Value: "a\"b"}), `"a\"b"`},
		{"nil", ast.NewConstant(nil), "nil"},
		{"reference", x, "x"},
		{"application", ast.NewApplication(ast.NewConstant(builtins["+"]), x, one), "(<builtin +> x 1)"},
		{"call of reference", ast.NewApplication(ast.NewReference("f")), "(f)"},
		{"conditional", ast.NewConditional(x, one, ast.NewConstant(evaluator.FALSE)), "(if x 1 false)"},
		{"binding", ast.NewBinding("y", one, ast.NewReference("y")), "(let [y 1] y)"},
		{"return", ast.NewReturn(x), "(return x)"},
		{"cast", ast.NewCast(typesystem.Int, x), "(cast Int x)"},
		{"cast to union", ast.NewCast(typesystem.NormalizeUnion([]typesystem.Type{typesystem.Nil, typesystem.Int}), x), "(cast (Int | Nil) x)"},
		{"specialised", ast.NewSpecialised(typesystem.Int, x), "(the Int x)"},
		{"missing child", ast.NewReturn(nil), "(return <???>)"},
		{"nil expression", nil, "<???>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Print(tt.expr))
		})
	}
}

func TestPrinterReuse(t *testing.T) {
	p := NewCodePrinter()
	p.Print(ast.NewReference("a"))
	assert.Equal(t, "b", p.Print(ast.NewReference("b")))
	assert.Equal(t, "b", p.String())
}

func TestColorPrinter(t *testing.T) {
	out := NewColorPrinter().Print(ast.NewReturn(ast.NewReference("x")))
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "return")
	assert.Contains(t, out, "x")
}

func TestUseColor(t *testing.T) {
	assert.True(t, UseColor(config.ColorAlways, 0))
	assert.False(t, UseColor(config.ColorNever, 0))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(config.ColorAuto, 0))
}
