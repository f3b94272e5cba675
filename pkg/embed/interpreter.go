package kiss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/arrdem/kiss/internal/ast"
	"github.com/arrdem/kiss/internal/backend"
	"github.com/arrdem/kiss/internal/config"
	"github.com/arrdem/kiss/internal/evaluator"
	"github.com/arrdem/kiss/internal/pipeline"
	"github.com/arrdem/kiss/internal/prettyprinter"
	"github.com/arrdem/kiss/internal/typesystem"
)

// Interpreter prepares and runs expression trees with a fixed set of host
// bindings. It is safe for concurrent use once configured: Bind and
// BindPure must not race with runs.
type Interpreter struct {
	cfg        *config.Config
	logger     *slog.Logger
	out        io.Writer
	marshaller *Marshaller
	bindings   evaluator.Bindings
	backend    backend.Backend
	target     typesystem.Type
}

type Option func(*Interpreter)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithOutput sets where the print primitive writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithBackend selects the execution backend. Defaults to tree-walk.
func WithBackend(b backend.Backend) Option {
	return func(in *Interpreter) { in.backend = b }
}

// WithTarget overrides the configured specialisation target.
func WithTarget(t typesystem.Type) Option {
	return func(in *Interpreter) { in.target = t }
}

// New creates an Interpreter with the host primitive library bound. A nil
// cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Interpreter {
	if cfg == nil {
		cfg = config.Default()
	}
	in := &Interpreter{
		cfg:        cfg,
		out:        os.Stdout,
		marshaller: NewMarshaller(),
		backend:    backend.NewTreeWalk(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		in.logger = config.NewLogger(cfg.Log, os.Stderr)
	}
	if in.target == nil {
		t, ok, err := cfg.TargetType()
		switch {
		case err != nil:
			in.logger.Warn("ignoring specialisation target", "target", cfg.Specialise.Target, "error", err)
		case ok:
			in.target = t
		}
	}
	in.bindings = evaluator.BuiltinBindings(in.out)
	return in
}

// Bind registers a Go function or value under name. Functions become
// impure builtins, so calls to them are never folded.
func (in *Interpreter) Bind(name string, val interface{}) error {
	return in.bind(name, val, false)
}

// BindPure registers a Go function the optimiser may call on constant
// arguments. fn must have no side effects and be deterministic.
func (in *Interpreter) BindPure(name string, fn interface{}) error {
	if reflect.ValueOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("%s: BindPure needs a function, got %T", name, fn)
	}
	return in.bind(name, fn, true)
}

func (in *Interpreter) bind(name string, val interface{}, pure bool) error {
	var obj evaluator.Object
	if fn := reflect.ValueOf(val); fn.Kind() == reflect.Func {
		obj = in.hostFunction(name, fn, pure)
	} else {
		var err error
		if obj, err = in.marshaller.ToValue(val); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	in.bindings = in.bindings.Assoc(evaluator.Symbol(name), obj)
	return nil
}

// Get retrieves a bound value as a Go value.
func (in *Interpreter) Get(name string) (interface{}, error) {
	obj, ok := in.bindings.Lookup(evaluator.Symbol(name))
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return in.marshaller.FromValue(obj, nil)
}

// Call calls a bound function by name with Go arguments.
func (in *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	obj, ok := in.bindings.Lookup(evaluator.Symbol(funcName))
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}
	fn, ok := obj.(evaluator.Callable)
	if !ok {
		return nil, evaluator.NewError(evaluator.ErrNotCallable, "%s", funcName)
	}
	kissArgs := make([]evaluator.Object, len(args))
	for i, arg := range args {
		value, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, err
		}
		kissArgs[i] = value
	}
	result, err := fn.Apply(kissArgs)
	if err != nil {
		return nil, evaluator.WrapHostError(funcName, err)
	}
	return in.marshaller.FromValue(result, nil)
}

func (in *Interpreter) newContext(ctx context.Context, e ast.Expression, extra evaluator.Bindings) *pipeline.PipelineContext {
	pctx := pipeline.NewPipelineContext(e, in.bindings.Merge(extra))
	pctx.Context = ctx
	pctx.Logger = in.logger
	pctx.Target = in.target
	return pctx
}

func (in *Interpreter) stages() []pipeline.Processor {
	stages := []pipeline.Processor{&pipeline.ValidateProcessor{}}
	if in.cfg.OptimiseEnabled() {
		stages = append(stages, &pipeline.OptimiseProcessor{MaxPasses: in.cfg.Optimise.MaxPasses})
	}
	return append(stages, &pipeline.SpecialiseProcessor{})
}

// Prepare validates, optimises and specialises e without evaluating it.
func (in *Interpreter) Prepare(e ast.Expression) (ast.Expression, error) {
	ctx := pipeline.New(in.stages()...).Run(in.newContext(context.Background(), e, evaluator.Bindings{}))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.Expr, nil
}

// Explain renders the prepared form of e, coloured per the configuration
// when standard output is a terminal.
func (in *Interpreter) Explain(e ast.Expression) (string, error) {
	prepared, err := in.Prepare(e)
	if err != nil {
		return "", err
	}
	return prettyprinter.NewPrinterFor(in.cfg.Color, os.Stdout).Print(prepared), nil
}

// Run prepares and evaluates e. extra is layered over the interpreter's
// own bindings for this run only.
func (in *Interpreter) Run(e ast.Expression, extra evaluator.Bindings) (evaluator.Object, error) {
	return in.RunContext(context.Background(), e, extra)
}

// RunContext is Run with a context checked between pipeline stages.
// Evaluation itself is not interruptible.
func (in *Interpreter) RunContext(ctx context.Context, e ast.Expression, extra evaluator.Bindings) (evaluator.Object, error) {
	stages := append(in.stages(), backend.NewExecutionProcessor(in.backend))
	pctx := pipeline.New(stages...).Run(in.newContext(ctx, e, extra))
	if err := pctx.Err(); err != nil {
		return nil, err
	}
	return pctx.Result, nil
}

// Eval runs e with no extra bindings and converts the result to a Go value.
func (in *Interpreter) Eval(e ast.Expression) (interface{}, error) {
	result, err := in.Run(e, evaluator.Bindings{})
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(result, nil)
}
