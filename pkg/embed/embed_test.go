package kiss_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/backend"
	"github.com/arrdem/kiss/internal/config"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/typesystem"
	kiss "github.com/arrdem/kiss/pkg/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() kiss.Option {
	return kiss.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intc(n int64) ast.Expression { return ast.NewConstant(&evaluator.Integer{Value: n}) }
func ref(s string) ast.Expression  { return ast.NewReference(evaluator.Symbol(s)) }

func call(fn string, args ...ast.Expression) ast.Expression {
	return ast.NewApplication(ref(fn), args...)
}

func TestEmbedAPI(t *testing.T) {
	var out bytes.Buffer
	in := kiss.New(nil, quiet(), kiss.WithOutput(&out))

	require.NoError(t, in.Bind("double", func(x int) int { return x * 2 }))
	require.NoError(t, in.Bind("limit", 40))

	// (let [d (double 21)] (if (< limit d) (return d) (print "small")))
	expr := ast.NewBinding("d", call("double", intc(21)),
		ast.NewConditional(call("<", ref("limit"), ref("d")),
			ast.NewReturn(ref("d")),
			call("print", ast.NewConstant(&evaluator.String{Value: "small"}))))

	res, err := in.Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.Empty(t, out.String())

	limit, err := in.Get("limit")
	require.NoError(t, err)
	assert.Equal(t, 40, limit)
}

func TestRunWithExtraBindings(t *testing.T) {
	in := kiss.New(nil, quiet())
	expr := call("+", ref("x"), intc(1))

	res, err := in.Run(expr, evaluator.EmptyBindings().Assoc("x", &evaluator.Integer{Value: 2}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.(*evaluator.Integer).Value)

	_, err = in.Run(expr, evaluator.Bindings{})
	assert.ErrorIs(t, err, evaluator.ErrUnbound)
}

func TestHostErrors(t *testing.T) {
	boom := errors.New("boom")
	in := kiss.New(nil, quiet())
	require.NoError(t, in.Bind("fail", func() (int, error) { return 0, boom }))

	_, err := in.Eval(call("fail"))
	assert.ErrorIs(t, err, evaluator.ErrEvaluation)
	assert.ErrorIs(t, err, boom)

	_, err = in.Eval(ast.NewApplication(intc(1)))
	assert.ErrorIs(t, err, evaluator.ErrNotCallable)
}

func TestPureHostFunctionsFold(t *testing.T) {
	calls := 0
	in := kiss.New(nil, quiet())
	require.NoError(t, in.BindPure("square", func(x int64) int64 { calls++; return x * x }))
	require.Error(t, in.BindPure("notfn", 3))

	fn, err := in.Get("square")
	require.NoError(t, err)

	prepared, err := in.Prepare(ast.NewApplication(ast.NewConstant(fn.(evaluator.Object)), intc(7)))
	require.NoError(t, err)
	assert.True(t, ast.Equal(intc(49), prepared))
	assert.Equal(t, 1, calls)
}

func TestOptimiserCanBeDisabled(t *testing.T) {
	disabled := false
	cfg := config.Default()
	cfg.Optimise.Enabled = &disabled
	in := kiss.New(cfg, quiet())

	expr := ast.NewApplication(ast.NewConstant(evaluator.NewBuiltins(io.Discard)["+"]), intc(1), intc(2))
	prepared, err := in.Prepare(expr)
	require.NoError(t, err)
	assert.Same(t, expr, prepared)

	res, err := in.Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, 3, res)
}

func TestSpecialisationTarget(t *testing.T) {
	cfg, err := config.ParseConfig([]byte("specialise: {target: Int}\n"), "kiss.yaml")
	require.NoError(t, err)
	in := kiss.New(cfg, quiet())

	prepared, err := in.Prepare(ref("x"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(ast.NewCast(typesystem.Int, ref("x")), prepared))

	_, err = in.Run(ref("x"), evaluator.EmptyBindings().Assoc("x", &evaluator.String{Value: "s"}))
	assert.ErrorIs(t, err, evaluator.ErrCastFailed)

	// A tree that cannot be narrowed runs unchanged.
	res, err := in.Eval(ast.NewConstant(&evaluator.String{Value: "s"}))
	require.NoError(t, err)
	assert.Equal(t, "s", res)

	cfg.Color = config.ColorNever
	explained, err := kiss.New(cfg, quiet(), kiss.WithTarget(typesystem.Anything)).Explain(ref("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", explained)
}

func TestConstantBackend(t *testing.T) {
	in := kiss.New(nil, quiet(), kiss.WithBackend(backend.NewConstant()))
	res, err := in.Eval(call("*", intc(6), intc(7)))
	require.Error(t, err, "callee is a reference, so nothing folds")
	assert.Nil(t, res)

	builtins := evaluator.NewBuiltins(io.Discard)
	res, err = in.Eval(ast.NewApplication(ast.NewConstant(builtins["*"]), intc(6), intc(7)))
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestValidationErrors(t *testing.T) {
	in := kiss.New(nil, quiet())
	_, err := in.Prepare(nil)
	assert.ErrorIs(t, err, evaluator.ErrMalformed)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := kiss.New(nil, quiet()).RunContext(ctx, intc(1), evaluator.Bindings{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCall(t *testing.T) {
	in := kiss.New(nil, quiet())
	require.NoError(t, in.Bind("greet", func(name string, times int) string {
		out := ""
		for i := 0; i < times; i++ {
			out += "hi " + name + " "
		}
		return out
	}))

	res, err := in.Call("greet", "bob", 2)
	require.NoError(t, err)
	assert.Equal(t, "hi bob hi bob ", res)

	res, err = in.Call("+", 1, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, res)

	_, err = in.Call("missing")
	assert.Error(t, err)
}
