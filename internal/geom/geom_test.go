package geom

import "testing"

func TestContainsInclusiveEdges(t *testing.T) {
	r := R(10, 20, 30, 40)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{20, 30}, true},
		{"top-left corner", Point{10, 20}, true},
		{"bottom-right corner", Point{40, 60}, true},
		{"left of box", Point{9.9, 30}, false},
		{"below box", Point{20, 60.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := R(0, 0, 100, 100)
	b := R(50, 60, 100, 100)

	got := a.Intersect(b)
	want := R(50, 60, 50, 40)
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	if !a.Intersect(R(200, 200, 10, 10)).Empty() {
		t.Error("disjoint rects should intersect to an empty rect")
	}
}
