package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var maxOps int64
	var path string
	executor.Define("-unlimited", Func(func() {
		maxOps = -1
	}))
	executor.Define("-max-ops", Func(func(n int64) {
		maxOps = n
	}))
	executor.Define("run", Func(func(p string) error {
		if p == "" {
			return errors.New("empty path")
		}
		path = p
		return nil
	}))

	if err := executor.Execute([]string{
		"-unlimited",
	}); err != nil {
		t.Fatal(err)
	}
	if maxOps != -1 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"-max-ops", "1000", "run", "foo.gts",
	}); err != nil {
		t.Fatal(err)
	}
	if maxOps != 1000 {
		t.Fatal()
	}
	if path != "foo.gts" {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-max-ops"})
	if !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "-max-ops: ") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-max-ops", "many"})
	if err == nil || !strings.Contains(err.Error(), "convert many to int") {
		t.Fatalf("got %v", err)
	}

	// a nil error return is success
	if err := executor.Execute([]string{"run", "bar.gts", "-unlimited"}); err != nil {
		t.Fatal(err)
	}
	if path != "bar.gts" || maxOps != -1 {
		t.Fatal()
	}

	err = executor.Execute([]string{"run", ""})
	if err == nil || err.Error() != "empty path" {
		t.Fatalf("got %v", err)
	}

}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if bar != 1 {
		t.Fatal()
	}
	if baz != 42 {
		t.Fatal()
	}

}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if !errors.Is(err, ErrDuplicatedCommand) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicated command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedDefine(t *testing.T) {
	executor := NewExecutor()
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrDuplicatedCommand) {
			t.Fatalf("got %v", err)
		}
	}()
	executor.Define("run", Func(func() {}).Alias("help"))
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	err := executor.Execute([]string{"foo", "42", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatal()
	}
	if s != "foo" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

}
