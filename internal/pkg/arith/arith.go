// Package arith evaluates fully substituted arithmetic expressions.
//
// Only numeric literals, the binary operators + - * /, unary + - and
// parentheses are accepted. Every other construct is rejected before the
// expression is compiled, so nothing but arithmetic is ever executed.
package arith

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/ast"
	"github.com/antonmedv/expr/parser"
	"github.com/antonmedv/expr/vm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"exusiai.dev/chartengine/internal/model"
	"exusiai.dev/chartengine/internal/pkg/cache"
)

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrDisallowedNode  = errors.New("expression contains non-arithmetic syntax")
	ErrNonNumeric      = errors.New("expression did not produce a number")
	ErrNonFinite       = errors.New("expression result is not finite")
)

var allowedBinary = map[string]struct{}{
	"+": {},
	"-": {},
	"*": {},
	"/": {},
}

// Evaluator compiles and runs arithmetic expressions. Compiled programs are
// cached by expression text; the cache is the only state and it is safe for
// concurrent use.
type Evaluator struct {
	programs *cache.Set[*vm.Program]
}

func NewEvaluator(programTTL time.Duration) *Evaluator {
	return &Evaluator{
		programs: cache.NewSet[*vm.Program]("arith_program", programTTL),
	}
}

// Eval evaluates expression. Malformed input, division by zero and any
// non-finite result yield model.NA.
func (e *Evaluator) Eval(expression string) model.Value {
	program, err := e.compile(expression)
	if err != nil {
		if l := log.Trace(); l.Enabled() {
			l.Err(err).Str("expression", expression).Msg("expression rejected")
		}
		return model.NA
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		log.Debug().
			Str("evt.name", "arith.run_error").
			Err(err).
			Str("expression", expression).
			Msg("failed to run expression")
		return model.NA
	}

	f, err := toFloat(out)
	if err != nil {
		if l := log.Trace(); l.Enabled() {
			l.Err(err).Str("expression", expression).Msg("expression result discarded")
		}
		return model.NA
	}

	return model.Number(f)
}

// Check reports whether expression is acceptable arithmetic, without running it.
func (e *Evaluator) Check(expression string) error {
	_, err := e.compile(expression)
	return err
}

// CachedPrograms returns the number of compiled programs currently held.
func (e *Evaluator) CachedPrograms() int {
	return e.programs.Count()
}

func (e *Evaluator) compile(expression string) (*vm.Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, ErrEmptyExpression
	}

	key := strconv.FormatUint(xxh3.HashString(expression), 16)
	program, _, err := e.programs.MutexGetSet(key, func() (*vm.Program, error) {
		tree, err := parser.Parse(expression)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse expression")
		}
		if err := whitelist(tree.Node); err != nil {
			return nil, err
		}
		program, err := expr.Compile(expression, expr.Patch(floatLiterals{}))
		if err != nil {
			return nil, errors.Wrap(err, "failed to compile expression")
		}
		return program, nil
	})

	return program, err
}

func whitelist(node ast.Node) error {
	switch n := node.(type) {
	case *ast.IntegerNode, *ast.FloatNode:
		return nil
	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			return errors.Wrapf(ErrDisallowedNode, "unary operator %q", n.Operator)
		}
		return whitelist(n.Node)
	case *ast.BinaryNode:
		if _, ok := allowedBinary[n.Operator]; !ok {
			return errors.Wrapf(ErrDisallowedNode, "binary operator %q", n.Operator)
		}
		if err := whitelist(n.Left); err != nil {
			return err
		}
		return whitelist(n.Right)
	default:
		return errors.Wrapf(ErrDisallowedNode, "node %T", node)
	}
}

// floatLiterals turns integer literals into floats so that all arithmetic
// happens in float64 and large values overflow to Inf instead of wrapping.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

func toFloat(out any) (float64, error) {
	f, ok := out.(float64)
	if !ok {
		return 0, errors.Wrapf(ErrNonNumeric, "got %T", out)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNonFinite
	}
	return f, nil
}
