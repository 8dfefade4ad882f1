package stackvm

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/reusee/gtscript/values"
)

// Limits bounds one execution. Zero means unlimited.
type Limits struct {
	// MaxOps is the soft limit on operator invocations; crossing it is only reported.
	MaxOps int64
	// MaxOpsHard aborts the execution when crossed.
	MaxOpsHard int64
	// MaxDepth bounds nested macro executions.
	MaxDepth int
}

type frame struct {
	macro *values.Macro
	pc    int
}

// Machine evaluates macros against its own value stack. A Machine must not be shared between goroutines.
type Machine struct {
	ID string

	stack []values.Value
	marks []int

	registry *Registry
	limits   Limits
	logger   *slog.Logger
	vars     map[string]values.Value

	ctx         context.Context
	ops         int64
	softReached bool
	trace       string
	frames      []frame
}

func NewMachine(registry *Registry, limits Limits, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.NewString()
	return &Machine{
		ID:       id,
		stack:    make([]values.Value, 0, 64),
		registry: registry,
		limits:   limits,
		logger:   logger.With("execution", id),
		vars:     make(map[string]values.Value),
		ctx:      context.Background(),
	}
}

// Context returns the context of the running Execute call. It carries logging values only.
func (m *Machine) Context() context.Context {
	return m.ctx
}

func (m *Machine) Logger() *slog.Logger {
	return m.logger
}

func (m *Machine) Limits() Limits {
	return m.limits
}

// Ops returns the number of operator invocations so far.
func (m *Machine) Ops() int64 {
	return m.ops
}

func (m *Machine) Budget() (left int64, limited bool) {
	if m.limits.MaxOpsHard <= 0 {
		return 0, false
	}
	return max(m.limits.MaxOpsHard-m.ops, 0), true
}

func (m *Machine) SoftLimitReached() bool {
	return m.softReached
}

// Depth of nested macro executions.
func (m *Machine) CallDepth() int {
	return len(m.frames)
}

func (m *Machine) Store(name string, v values.Value) {
	m.vars[name] = v
}

func (m *Machine) Load(name string) (values.Value, bool) {
	v, ok := m.vars[name]
	return v, ok
}

func (m *Machine) tick(op string, pos values.Pos) error {
	if m.limits.MaxOpsHard > 0 && m.ops >= m.limits.MaxOpsHard {
		return &OpError{
			Op:  op,
			Pos: pos,
			Err: fmt.Errorf("%w: %d", ErrOperationLimit, m.limits.MaxOpsHard),
		}
	}
	m.ops++
	if !m.softReached && m.limits.MaxOps > 0 && m.ops > m.limits.MaxOps {
		m.softReached = true
		m.logger.Warn("soft operation limit reached",
			"limit", m.limits.MaxOps,
			"op", op,
		)
	}
	return nil
}

// Invoke runs a named operator.
func (m *Machine) Invoke(name string, pos values.Pos) error {
	op, ok := m.registry.Get(name)
	if !ok {
		return &OpError{
			Op:  name,
			Pos: pos,
			Err: ErrUnknownOperator,
		}
	}
	if err := m.tick(name, pos); err != nil {
		return err
	}
	return withOp(name, pos, op.Apply(m))
}

// Exec runs a macro on this machine. It is the only way for operators to evaluate nested code.
func (m *Machine) Exec(macro *values.Macro) error {
	for _, err := range m.Run(macro) {
		if err != nil {
			return err
		}
	}
	return nil
}

// Run steps through the statements of macro, yielding each one after it is evaluated.
// It stops at the first error.
func (m *Machine) Run(macro *values.Macro) iter.Seq2[values.Statement, error] {
	return func(yield func(values.Statement, error) bool) {
		if m.limits.MaxDepth > 0 && len(m.frames) >= m.limits.MaxDepth {
			m.recordTrace()
			yield(values.Statement{}, fmt.Errorf("%w: %d", ErrRecursionLimit, m.limits.MaxDepth))
			return
		}
		m.frames = append(m.frames, frame{
			macro: macro,
		})
		defer func() {
			m.frames = m.frames[:len(m.frames)-1]
		}()

		for i, stmt := range macro.Statements {
			m.frames[len(m.frames)-1].pc = i
			var err error
			if stmt.Op == "" {
				m.Push(stmt.Literal)
			} else {
				err = m.Invoke(stmt.Op, stmt.Pos)
			}
			if err != nil {
				m.recordTrace()
			}
			if !yield(stmt, err) || err != nil {
				return
			}
		}
	}
}

// Execute compiles and runs a script.
func (m *Machine) Execute(ctx context.Context, name string, src string) error {
	macro, err := CompileString(name, src)
	if err != nil {
		return err
	}
	return m.ExecuteMacro(ctx, name, macro)
}

// ExecuteMacro runs a compiled script. Values left by earlier executions stay on the stack.
func (m *Machine) ExecuteMacro(ctx context.Context, name string, macro *values.Macro) error {
	m.ctx = ctx
	m.trace = ""
	defer func() {
		m.ctx = context.Background()
	}()
	m.logger.DebugContext(ctx, "execution start",
		"source", name,
		"statements", len(macro.Statements),
	)
	err := m.Exec(macro)
	m.logger.DebugContext(ctx, "execution end",
		"ops", m.ops,
		"depth", len(m.stack),
		"soft_limit_reached", m.softReached,
		"error", err,
	)
	return err
}

// Trace describes the macro frames active when the last execution failed, outermost first.
// It is empty after a successful execution.
func (m *Machine) Trace() string {
	return m.trace
}

// recordTrace keeps the innermost view, which is the first one recorded.
func (m *Machine) recordTrace() {
	if m.trace != "" {
		return
	}
	var sb strings.Builder
	for i, f := range m.frames {
		stmt := f.macro.Statements[f.pc]
		fmt.Fprintf(&sb, "#%d %s at %s:%d:%d\n", i, stmt, stmt.Pos.Source, stmt.Pos.Line, stmt.Pos.Column)
	}
	m.trace = sb.String()
}
