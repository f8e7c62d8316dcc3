package querycache

import "testing"

func TestViewGetAndPeek(t *testing.T) {
	h := NewHandle()
	v := NewView[string, uint32, string](h, "k")

	if _, ok := v.Peek(); ok {
		t.Fatalf("expected no value before first Get")
	}

	out := v.Get(1, func(uint32) string { return "one" })
	if out != "one" {
		t.Fatalf("expected \"one\", got %q", out)
	}

	peeked, ok := v.Peek()
	if !ok || peeked != "one" {
		t.Fatalf("expected peek to see stored value, got %q ok=%v", peeked, ok)
	}

	if v.Scope() != "k" {
		t.Fatalf("unexpected scope: %q", v.Scope())
	}
}
