package phases

import (
	"context"
	"errors"
	"testing"
)

func TestChain(t *testing.T) {
	appendPhase := func(s string) PhaseBuilder[string] {
		return func(cont Phase[string]) Phase[string] {
			return func(ctx context.Context, state string) (Phase[string], string, error) {
				return cont, state + s, nil
			}
		}
	}
	state, err := Run(context.Background(), Chain(
		appendPhase("a"),
		appendPhase("b"),
		appendPhase("c"),
	), "")
	if err != nil {
		t.Fatal(err)
	}
	if state != "abc" {
		t.Fatalf("got %s", state)
	}
}

func TestFailFast(t *testing.T) {
	bad := errors.New("bad")
	called := false
	state, err := Run(context.Background(), Chain(
		func(cont Phase[int]) Phase[int] {
			return func(ctx context.Context, state int) (Phase[int], int, error) {
				return nil, state + 1, bad
			}
		},
		func(cont Phase[int]) Phase[int] {
			return func(ctx context.Context, state int) (Phase[int], int, error) {
				called = true
				return cont, state, nil
			}
		},
	), 0)
	if !errors.Is(err, bad) {
		t.Fatalf("got %v", err)
	}
	if called || state != 1 {
		t.Fatalf("got %v %d", called, state)
	}
}
