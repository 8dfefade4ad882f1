package ops

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/gtscript/dispatch"
	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/storages"
	"github.com/reusee/gtscript/values"
)

func newMachine(limits stackvm.Limits) *stackvm.Machine {
	return stackvm.NewMachine(Registry(storages.NewMemStore()), limits, nil)
}

func run(t *testing.T, src string) *stackvm.Machine {
	t.Helper()
	m := newMachine(stackvm.Limits{})
	if err := m.Execute(context.Background(), "test", src); err != nil {
		t.Fatalf("%s: %v", src, err)
	}
	return m
}

func stackString(m *stackvm.Machine) string {
	var parts []string
	for _, v := range m.Stack() {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}

func TestOperators(t *testing.T) {
	for _, c := range []struct {
		src      string
		expected string
	}{
		// stack
		{`1 DUP DROP`, `1`},
		{`1 2 SWAP`, `2 1`},
		{`1 2 OVER`, `1 2 1`},
		{`1 2 3 ROT`, `2 3 1`},
		{`1 2 3 3 ROLL`, `2 3 1`},
		{`1 2 3 1 ROLL`, `1 2 3`},
		{`1 2 3 1 PICK`, `1 2 3 2`},
		{`1 2 DEPTH`, `1 2 2`},
		{`1 2 CLEAR`, ``},

		// arithmetic
		{`2 3 *`, `6`},
		{`2 1.5 *`, `3.0`},
		{`7.0 2 /`, `3.5`},
		{`7 2 %`, `1`},
		{`2 10 **`, `1024`},
		{`'a' 'b' +`, `'ab'`},
		{`1 2 <`, `true`},
		{`'b' 'a' <=`, `false`},
		{`1 1.0 ==`, `true`},
		{`[ 1 2 ] [ 1 2 ] !=`, `false`},
		{`true false ||`, `true`},
		{`true false && NOT`, `true`},
		{`NaN`, `NaN`},

		// containers
		{`[ 1 2 ] [ 3 ] APPEND`, `[ 1 2 3 ]`},
		{`[ 1 [ 2 ] ]`, `[ 1 [ 2 ] ]`},
		{`[ 1 2 3 ] REVERSE`, `[ 3 2 1 ]`},
		{`'abc' REVERSE`, `'cba'`},
		{`[ 1 2 3 ] LIST->`, `1 2 3 3`},
		{`1 2 2 ->LIST`, `[ 1 2 ]`},
		{`[ 1 2 3 ] -1 GET`, `3`},
		{`{ 'a' 1 } 'a' GET`, `1`},
		{`{ 'a' 1 } 2 'b' PUT`, `{ 'a' 1 'b' 2 }`},
		{`{ 'b' 1 'a' 2 } KEYS`, `[ 'b' 'a' ]`},
		{`{ 'a' 1 } { 'a' 2 'c' 3 } APPEND`, `{ 'a' 2 'c' 3 }`},
		{`'héllo' SIZE [ 1 ] SIZE`, `5 1`},
		{`{ 'b' 1 'a' [ 1.5 true 'x' ] } ->JSON`, `'{"b":1,"a":[1.5,true,"x"]}'`},
		{`'{"b":1,"a":[1.5,true,"x"]}' JSON->`, `{ 'b' 1 'a' [ 1.5 true 'x' ] }`},

		// control
		{`0 1 5 <% + %> FOR`, `15`},
		{`3 1 <% %> FOR`, `3 2 1`},
		{`0 [ 1 2 3 ] <% + %> FOREACH`, `6`},
		{`{ 'a' 1 } <% %> FOREACH`, `'a' 1`},
		{`1 <% DUP 100 < %> <% 2 * %> WHILE`, `128`},
		{`true <% 1 %> IFT`, `1`},
		{`false <% 1 %> IFT`, ``},
		{`false <% 1 %> <% 2 %> IFTE`, `2`},
		{`<% 1 2 < %> <% 'yes' %> IFT`, `'yes'`},
		{`'1 2 +' EVAL`, `3`},
		{`<% 40 2 + %> EVAL`, `42`},
		{`1 1 == ASSERT`, ``},
		{`42 'x' STORE $x $x +`, `84`},
		{`<% DUP 1 <= <% DROP 1 %> <% DUP 1 - $fact EVAL * %> IFTE %> 'fact' STORE 10 $fact EVAL`, `3628800`},

		// linear algebra
		{`[ 1 2 ] ->V 2 *`, `[ 2.0 4.0 ] ->V`},
		{`[ [ 1 2 ] [ 3 4 ] ] ->MAT [ [ 1 0 ] [ 0 1 ] ] ->MAT *`, `[ [ 1.0 2.0 ] [ 3.0 4.0 ] ] ->MAT`},
		{`[ [ 1 2 ] [ 3 4 ] ] ->MAT [ 1 1 ] ->V * V->`, `[ 3.0 7.0 ]`},
		{`[ 1 1 ] ->V [ [ 1 2 ] [ 3 4 ] ] ->MAT * V->`, `[ 4.0 6.0 ]`},
		{`[ [ 1 2 ] ] ->MAT 2 * MAT->`, `[ [ 2.0 4.0 ] ]`},

		// series
		{`NEWGTS 'foo' RENAME NAME`, `'foo'`},
		{`NEWGTS { 'a' 'b' } RELABEL LABELS`, `{ 'a' 'b' }`},
		{`NEWGTS 3 NaN NaN NaN 30 ADDVALUE 1 NaN NaN NaN 10 ADDVALUE 2 NaN NaN NaN 20 ADDVALUE DUP TICKLIST SWAP VALUES`, `[ 1 2 3 ] [ 10 20 30 ]`},
		{`NEWGTS 1 NaN NaN NaN 10 ADDVALUE 2 NaN NaN NaN 20 ADDVALUE RSORT VALUES`, `[ 20 10 ]`},
		{`NEWGTS 1 NaN NaN NaN 10 ADDVALUE 1 NaN NaN NaN 11 ADDVALUE SIZE`, `1`},
		{`NEWGTS 1 NaN NaN NaN 10 ADDVALUE 5 NaN NaN NaN 50 ADDVALUE DUP FIRSTTICK SWAP LASTTICK`, `1 5`},
		{`NEWGTS 1 NaN NaN NaN 10 ADDVALUE 5 NaN NaN NaN 50 ADDVALUE 2 9 TIMECLIP VALUES`, `[ 50 ]`},
		{`NEWGTS 'a' RENAME 1 NaN NaN 100 'x' ADDVALUE ->JSON`, `'{"c":"a","l":{},"v":[[1,100,"x"]]}'`},
	} {
		m := run(t, c.src)
		if got := stackString(m); got != c.expected {
			t.Fatalf("%s: got %s, expected %s", c.src, got, c.expected)
		}
	}
}

func TestOperatorErrors(t *testing.T) {
	for _, c := range []struct {
		src   string
		err   error
		depth int
	}{
		{`1 +`, stackvm.ErrStackUnderflow, 1},
		{`'a' 1 *`, dispatch.ErrUnsupportedOperandTypes, 2},
		{`1 0 /`, dispatch.ErrDivisionByZero, 2},
		{`1 'a' ==`, values.ErrTypeMismatch, 2},
		{`1 NOT`, values.ErrTypeMismatch, 1},
		{`[ 1 ] 5 GET`, stackvm.ErrArgumentShape, 2},
		{`'x' <% %> FOR`, stackvm.ErrStackUnderflow, 2},
		{`1 2 <% %> 'x' FOR`, values.ErrTypeMismatch, 4},
		{`false ASSERT`, stackvm.ErrAssertion, 0},
		{`1 <% 2 %> IFT`, values.ErrTypeMismatch, 2},
		{`'x' <% 2 %> <% 3 %> IFTE`, values.ErrTypeMismatch, 3},
		{`true 2 IFT`, values.ErrTypeMismatch, 2},
		{`<% 1 %> <% 2 %> IFT`, values.ErrTypeMismatch, 0},
		{`$nope`, ErrUndefinedVariable, 1},
		{`]`, stackvm.ErrUnbalancedMarker, 0},
		{`{ 1 2 }`, values.ErrTypeMismatch, 2},
		{`1 2 5 ROLL`, stackvm.ErrStackUnderflow, 3},
		{`<% 1 + %> ->JSON`, values.ErrTypeMismatch, 1},
		{`NEWGTS 1 91.0 0.0 NaN 1 ADDVALUE`, gts.ErrInvalidLocation, 6},
		{`NEWGTS 1 NaN NaN NaN [ ] ADDVALUE`, gts.ErrInvalidValue, 6},
		{`'nope' FETCH`, storages.ErrNotFound, 1},
		{`FOO`, stackvm.ErrUnknownOperator, 0},
	} {
		m := newMachine(stackvm.Limits{})
		err := m.Execute(context.Background(), "test", c.src)
		if !errors.Is(err, c.err) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		if m.Depth() != c.depth {
			t.Fatalf("%s: got depth %d, expected %d", c.src, m.Depth(), c.depth)
		}
	}
}

func TestStorage(t *testing.T) {
	store := storages.NewMemStore()
	registry := Registry(store)

	m := stackvm.NewMachine(registry, stackvm.Limits{}, nil)
	if err := m.Execute(context.Background(), "store", `
		NEWGTS 'a' RENAME 1 NaN NaN NaN 42 ADDVALUE STOREGTS
		[ NEWGTS 'b' RENAME NEWGTS 'c' RENAME ] STOREGTS
	`); err != nil {
		t.Fatal(err)
	}
	if m.Depth() != 0 {
		t.Fatalf("got %d", m.Depth())
	}

	// another execution sees the stored series
	m = stackvm.NewMachine(registry, stackvm.Limits{}, nil)
	if err := m.Execute(context.Background(), "fetch", `'a' FETCH VALUES [ 'b' 'c' ] FETCH SIZE`); err != nil {
		t.Fatal(err)
	}
	if got := stackString(m); got != `[ 42 ] 2` {
		t.Fatalf("got %s", got)
	}

	m = stackvm.NewMachine(registry, stackvm.Limits{}, nil)
	if err := m.Execute(context.Background(), "unnamed", `NEWGTS STOREGTS`); !errors.Is(err, storages.ErrNoName) {
		t.Fatalf("got %v", err)
	}
}

func TestOperationLimit(t *testing.T) {
	m := newMachine(stackvm.Limits{
		MaxOpsHard: 100,
	})
	err := m.Execute(context.Background(), "test", `0 1 1000 <% + %> FOR`)
	if !errors.Is(err, stackvm.ErrOperationLimit) {
		t.Fatalf("got %v", err)
	}
	var opErr *stackvm.OpError
	if !errors.As(err, &opErr) || opErr.Op != "+" {
		t.Fatalf("got %v", err)
	}
	if m.Ops() != 100 {
		t.Fatalf("got %d", m.Ops())
	}
}
