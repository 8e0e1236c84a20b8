package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply scalar", a.Multiply(2), NewVec3(2, 4, 6)},
		{"scalar on the left", Scale(2, a), NewVec3(2, 4, 6)},
		{"divide scalar", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"divide vec", b.DivideVec(NewVec3(2, 5, 3)), NewVec3(2, -1, 2)},
		{"sqrt", NewVec3(4, 9, 0.25).Sqrt(), NewVec3(2, 3, 0.5)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"lerp", NewVec3(1, 1, 1).Lerp(NewVec3(0.5, 0.7, 1.0), 0.5), NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_ColorAliases(t *testing.T) {
	v := NewVec3(1, 2, 3)
	if v.R() != v.X || v.G() != v.Y || v.B() != v.Z {
		t.Errorf("Color aliases do not match components: %v", v)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Errorf("Expected x × y = z, got %v", got)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("Expected y × z = x, got %v", got)
	}
	if got := z.Cross(x); got != y {
		t.Errorf("Expected z × x = y, got %v", got)
	}

	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	// y component follows -(a.x*b.z - a.z*b.x)
	if got := a.Cross(b); got != NewVec3(-3, 6, -3) {
		t.Errorf("Expected (-3, 6, -3), got %v", got)
	}
}

func TestVec3_AlgebraicProperties(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randomVec := func() Vec3 {
		return NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	}

	for i := 0; i < 1000; i++ {
		a := randomVec()
		b := randomVec()

		if a.Add(b) != b.Add(a) {
			t.Fatalf("Addition not commutative for %v, %v", a, b)
		}

		if a.Cross(b) != b.Cross(a).Negate() {
			t.Fatalf("Cross product not anti-symmetric for %v, %v", a, b)
		}

		length := a.Length()
		if math.Abs(a.Dot(a)-length*length) > 1e-9*a.Dot(a) {
			t.Fatalf("a·a = %f, |a|² = %f", a.Dot(a), length*length)
		}

		if a.LengthSquared() != a.Dot(a) {
			t.Fatalf("LengthSquared %f != Dot %f", a.LengthSquared(), a.Dot(a))
		}

		if a.Multiply(3) != Scale(3, a) {
			t.Fatalf("Scalar multiplication not commutative for %v", a)
		}

		if math.Abs(a.Unit().Length()-1) > 1e-12 {
			t.Fatalf("Unit vector length %f for %v", a.Unit().Length(), a)
		}
	}
}

func TestVec3_UnitOfZeroPropagatesNaN(t *testing.T) {
	u := Vec3{}.Unit()
	if !u.IsNaN() {
		t.Errorf("Expected NaN components for unit of zero vector, got %v", u)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	if got := ray.At(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Expected (2, 4, 6), got %v", got)
	}

	offset := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	if got := offset.At(0.5); got != NewVec3(1, 1, 0) {
		t.Errorf("Expected (1, 1, 0), got %v", got)
	}
}
