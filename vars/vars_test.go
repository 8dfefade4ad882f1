package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if n := FirstNonZero[int64](0, 0, 3, 4); n != 3 {
		t.Fatalf("got %d", n)
	}
	if n := FirstNonZero[int64](); n != 0 {
		t.Fatalf("got %d", n)
	}
	if s := FirstNonZero("", "a"); s != "a" {
		t.Fatalf("got %s", s)
	}
}

func TestStrToBool(t *testing.T) {
	for str, want := range map[string]bool{
		"true":  true,
		"Y":     true,
		"yes":   true,
		" on ":  true,
		"1":     true,
		"0":     false,
		"false": false,
		"n":     false,
		"":      false,
		"maybe": false,
	} {
		if got := StrToBool(str); got != want {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}
