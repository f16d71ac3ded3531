package geom

import "testing"

func TestPtArithmetic(t *testing.T) {
	a := P(3, -4)
	b := P(1, 2)
	if got := a.Add(b); got != (Pt{4, -2}) {
		t.Fatalf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Pt{2, -6}) {
		t.Fatalf("Sub = %+v", got)
	}
}

func TestSizeHalf(t *testing.T) {
	if got := (Size{W: 100, H: 40}).Half(); got != (Pt{50, 20}) {
		t.Fatalf("Half = %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	cases := []struct {
		p    Pt
		want bool
	}{
		{P(10, 10), true},
		{P(30, 30), true},
		{P(15, 25), true},
		{P(9.9, 15), false},
		{P(15, 30.1), false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Fatalf("Contains(%+v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestInCircle(t *testing.T) {
	// circle bbox at (0,0), radius 50 -> center (50,50)
	if !InCircle(P(50, 50), P(0, 0), 50) {
		t.Fatalf("center should be inside")
	}
	if !InCircle(P(50, 0), P(0, 0), 50) {
		t.Fatalf("top of circle should be inside")
	}
	if InCircle(P(0, 0), P(0, 0), 50) {
		t.Fatalf("bbox corner is outside the circle")
	}
	if InCircle(P(10, 10), P(0, 0), 0) {
		t.Fatalf("zero radius should never contain")
	}
}
