package ops

import (
	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/storages"
	"github.com/reusee/gtscript/values"
)

func defineStorage(r *stackvm.Registry, store storages.Store) {

	// series STOREGTS, or a list of series
	r.DefineFunc("STOREGTS", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		var list []*gts.Series
		switch v := o.vs[0].(type) {
		case *gts.Series:
			list = append(list, v)
		case *values.List:
			for _, item := range v.Items {
				s, ok := item.(*gts.Series)
				if !ok {
					o.fail("list of GTS", item)
					return o.check()
				}
				list = append(list, s)
			}
		default:
			o.fail("GTS or list of GTS", o.vs[0])
			return o.check()
		}
		if err := store.Update(m.Context(), func(tx storages.Tx) error {
			for _, s := range list {
				if err := tx.Put(s); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return o.restore(err)
		}
		return nil
	})

	// 'name' FETCH, or a list of names
	r.DefineFunc("FETCH", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		var names []string
		single := false
		switch v := o.vs[0].(type) {
		case values.Text:
			single = true
			names = append(names, string(v))
		case *values.List:
			for _, item := range v.Items {
				name, ok := item.(values.Text)
				if !ok {
					o.fail("list of strings", item)
					return o.check()
				}
				names = append(names, string(name))
			}
		default:
			o.fail("string or list of strings", o.vs[0])
			return o.check()
		}

		var fetched []values.Value
		if err := store.View(m.Context(), func(tx storages.Tx) error {
			for _, name := range names {
				s, err := tx.Get(name)
				if err != nil {
					return err
				}
				fetched = append(fetched, s)
			}
			return nil
		}); err != nil {
			return o.restore(err)
		}

		if single {
			m.Push(fetched[0])
		} else {
			m.Push(values.NewList(fetched...))
		}
		return nil
	})

}
