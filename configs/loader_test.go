package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
max_ops?: int & >=0
max_ops_hard?: int & >=0
max_depth?: int & >=0
starlark_paths?: [...string]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var n int64
	err := loader.AssignFirst("max_ops", &n)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1000 {
		t.Fatalf("got %d", n)
	}

	var paths []string
	err = loader.AssignFirst("starlark_paths", &paths)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", paths); str != "[a.star b.star]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("max_ops_hard", &n)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"test.cue",
		"test2.cue",
	}, testSchema)

	var ns []int
	for value, err := range loader.IterCueValues("max_ops") {
		if err != nil {
			t.Fatal(err)
		}
		var n int
		if err := value.Decode(&n); err != nil {
			t.Fatal(err)
		}
		ns = append(ns, n)
	}
	if str := fmt.Sprintf("%v", ns); str != "[1000 5000]" {
		t.Fatalf("got %v", str)
	}

	ns = ns[:0]
	for n, err := range All[int](loader, "max_ops") {
		if err != nil {
			t.Fatal(err)
		}
		ns = append(ns, n)
	}
	if str := fmt.Sprintf("%v", ns); str != "[1000 5000]" {
		t.Fatalf("got %v", str)
	}

	// later files fill what earlier ones leave unset
	if n := First[int](loader, "max_ops_hard"); n != 100000 {
		t.Fatalf("got %d", n)
	}

}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var n int
	err := loader.AssignFirst("max_ops", &n)
	if err == nil {
		t.Fatal("should error")
	}
}

func TestAllDecodeError(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)
	for _, err := range All[int](loader, "starlark_paths") {
		if err == nil {
			t.Fatal("should error")
		}
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{
		"missing.cue",
	}, testSchema)
	var n int
	if err := loader.AssignFirst("max_ops", &n); err == nil {
		t.Fatal("should error")
	}
}
