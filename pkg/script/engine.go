// Package script provides the geometry definition DSL. It wraps zygomys
// in a sandboxed environment and evaluates Lisp source describing parts,
// solids and cross-sections into a geometry.Geo3D plus a solid library.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/tomlaeven/qmt/pkg/geometry"
	sdfxsolid "github.com/tomlaeven/qmt/pkg/solid/sdfx"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result bundles the output of a successful evaluation.
type Result struct {
	Geo    *geometry.Geo3D
	Solids sdfxsolid.Library
}

// Engine evaluates geometry scripts. Each call to Evaluate creates a
// fresh sandboxed environment, so an Engine is safe for concurrent use.
type Engine struct{}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate parses and runs a geometry script.
//
// Return semantics:
//   - On success: result + nil errors + nil error
//   - On parse/eval failure: nil + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	type outcome struct {
		res      *Result
		evalErrs []EvalError
		err      error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		res, evalErrs, err := evaluate(source)
		ch <- outcome{res: res, evalErrs: evalErrs, err: err}
	}()

	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()
	select {
	case out := <-ch:
		return out.res, out.evalErrs, out.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string) (*Result, []EvalError, error) {
	res := &Result{
		Geo:    geometry.NewGeo3D(),
		Solids: make(sdfxsolid.Library),
	}
	// Empty source is a valid program that produces an empty geometry.
	if strings.TrimSpace(source) == "" {
		return res, nil, nil
	}

	// Sandbox mode prevents user code from touching the filesystem.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, res)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}
	return res, nil, nil
}

// linePattern matches zygomys error messages that include line information.
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// parseZygoError converts a zygomys error into EvalError values,
// extracting line numbers where the message carries them.
func parseZygoError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
