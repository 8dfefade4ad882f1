package engines

import (
	"context"

	"github.com/reusee/gtscript/logs"
	"github.com/reusee/gtscript/ops"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/storages"
)

// Store is shared by every machine of a scope, so series stored by one execution can be fetched by the next.
func (Module) Store() storages.Store {
	return storages.NewMemStore()
}

func (Module) Registry(
	store storages.Store,
) *stackvm.Registry {
	return ops.Registry(store)
}

type NewMachine func() *stackvm.Machine

func (Module) NewMachine(
	registry *stackvm.Registry,
	limits stackvm.Limits,
	logger logs.Logger,
) NewMachine {
	return func() *stackvm.Machine {
		return stackvm.NewMachine(registry, limits, logger)
	}
}

// Execute runs src on a fresh machine under a new span. The machine is returned even on error so that
// the stack left behind can be inspected.
type Execute func(ctx context.Context, name string, src string) (*stackvm.Machine, error)

func (Module) Execute(
	newMachine NewMachine,
	newSpan logs.NewSpan,
) Execute {
	return func(ctx context.Context, name string, src string) (*stackvm.Machine, error) {
		ctx, _ = newSpan(ctx, name)
		m := newMachine()
		if err := m.Execute(ctx, name, src); err != nil {
			return m, logs.WrapSpan(ctx, err)
		}
		return m, nil
	}
}
