package rectpack

import "testing"

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	tests := []struct {
		b    Rect
		want bool
	}{
		{NewRect(2, 2, 4, 4), true},
		{NewRect(4, 0, 4, 4), false}, // shared edge
		{NewRect(0, 4, 4, 4), false},
		{NewRect(1, 1, 1, 1), true},
		{NewRect(-3, -3, 2, 2), false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s.Intersects(%s) = %v, want %v", a.String(), tt.b.String(), got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	if got := a.Intersect(NewRect(2, 1, 10, 2)); !got.Eq(NewRect(2, 1, 2, 2)) {
		t.Errorf("Intersect = %s, want [2, 1, 2, 2]", got.String())
	}
	if got := a.Intersect(NewRect(4, 0, 1, 1)); !got.IsEmpty() {
		t.Errorf("Intersect of touching rects = %s, want empty", got.String())
	}
}

func TestRectInflateUnion(t *testing.T) {
	r := NewRect(2, 3, 4, 5).Inflate(1, 2)
	if !r.Eq(NewRectLTRB(1, 1, 7, 10)) {
		t.Errorf("Inflate = %s, want [1, 1, 6, 9]", r.String())
	}
	u := NewRect(0, 0, 1, 1).Union(NewRect(5, 6, 1, 1))
	if !u.Eq(NewRect(0, 0, 6, 7)) {
		t.Errorf("Union = %s, want [0, 0, 6, 7]", u.String())
	}
	if !u.Contains(5, 6) || u.Contains(6, 6) {
		t.Error("Contains is not half-open")
	}
}

func TestPointSub(t *testing.T) {
	p := NewPoint(5, 7).Sub(NewPoint(2, 10))
	if !p.Eq(NewPoint(3, -3)) {
		t.Errorf("Sub = %s, want [3, -3]", p.String())
	}
	p.Offset(1, 1)
	if !p.Eq(NewPoint(4, -2)) {
		t.Errorf("Offset = %s, want [4, -2]", p.String())
	}
}
