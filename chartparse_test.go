package chartparse

import "testing"

func TestSpan(t *testing.T) {
	s := Span{2, 5}
	if s.From() != 2 || s.To() != 5 || s.Len() != 3 {
		t.Errorf("unexpected span accessors for %v", s)
	}
	if s.String() != "(2…5)" {
		t.Errorf("expected (2…5), have %s", s)
	}
	if s.IsNull() || !(Span{}).IsNull() {
		t.Errorf("only (0…0) should be null")
	}
	if x := s.Extend(Span{4, 9}); x != (Span{2, 9}) {
		t.Errorf("expected (2…9), have %v", x)
	}
	if x := s.Extend(Span{0, 1}); x != (Span{0, 5}) {
		t.Errorf("expected (0…5), have %v", x)
	}
}
