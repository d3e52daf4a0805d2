package core

import (
	"math"
	"math/rand"
	"testing"
)

func randomBox(random *rand.Rand) AABB {
	p := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	q := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(p, q)
}

func boxContainsBox(outer, inner AABB) bool {
	for axis := 0; axis < 3; axis++ {
		o, i := outer.Axis(axis), inner.Axis(axis)
		if i.Min < o.Min || i.Max > o.Max {
			return false
		}
	}
	return true
}

func TestAABB_UnionProperties(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a, b, c := randomBox(random), randomBox(random), randomBox(random)

		ab := a.Union(b)
		if !boxContainsBox(ab, a) || !boxContainsBox(ab, b) {
			t.Fatalf("Union %v does not cover %v and %v", ab, a, b)
		}
		if ab != b.Union(a) {
			t.Fatalf("Union is not commutative for %v and %v", a, b)
		}
		if a.Union(b).Union(c) != a.Union(b.Union(c)) {
			t.Fatalf("Union is not associative for %v, %v, %v", a, b, c)
		}
		if EmptyAABB.Union(a) != a {
			t.Fatalf("Empty box should be the union identity, got %v", EmptyAABB.Union(a))
		}
	}
}

func TestAABB_FromPointsOrderIndependent(t *testing.T) {
	a := NewVec3(1, -2, 3)
	b := NewVec3(-4, 5, -6)
	if NewAABBFromPoints(a, b) != NewAABBFromPoints(b, a) {
		t.Error("Corner order should not matter")
	}

	box := NewAABBFromPoints(a, b)
	if box.X.Min != -4 || box.Y.Max != 5 || box.Z.Min != -6 {
		t.Errorf("Unexpected box %v", box)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	all := NewInterval(0, math.Inf(1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"through center", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), all, true},
		{"diagonal", NewRay(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)), all, true},
		{"negative direction", NewRay(NewVec3(2, 0.5, 0.5), NewVec3(-1, 0, 0)), all, true},
		{"pointing away", NewRay(NewVec3(2, 0.5, 0.5), NewVec3(1, 0, 0)), all, false},
		{"parallel outside slab", NewRay(NewVec3(-1, 2, 0.5), NewVec3(1, 0, 0)), all, false},
		{"parallel inside slab", NewRay(NewVec3(-1, 0.25, 0.75), NewVec3(1, 0, 0)), all, true},
		{"interval ends before box", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), NewInterval(0, 0.5), false},
		{"interval starts after box", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), NewInterval(3, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Hit = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAABB_Helpers(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(4, 2, 1))

	if c := box.Center(); c != NewVec3(2, 1, 0.5) {
		t.Errorf("Expected center (2,1,0.5), got %v", c)
	}
	if axis := box.LongestAxis(); axis != 0 {
		t.Errorf("Expected longest axis 0, got %d", axis)
	}
	if !box.Contains(NewVec3(4, 2, 1)) || box.Contains(NewVec3(4.1, 0, 0)) {
		t.Error("Contains should include the boundary only")
	}
	if !box.IsValid() || EmptyAABB.IsValid() {
		t.Error("IsValid mismatch")
	}
}
