package ops

import (
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/storages"
)

// Registry returns a registry holding every operator. STOREGTS and FETCH operate on store.
func Registry(store storages.Store) *stackvm.Registry {
	r := stackvm.NewRegistry()
	defineStack(r)
	defineArith(r)
	defineContainers(r)
	defineControl(r)
	defineLinalg(r)
	defineSeries(r)
	defineMappers(r)
	defineStorage(r, store)
	return r
}
