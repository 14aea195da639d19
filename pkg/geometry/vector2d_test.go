package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("NewVector(1, 2) = %v; want (1, 2)", v)
	}
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	tests := []struct {
		name string
		got  Vector2D
		want Vector2D
	}{
		{"Add", v1.Add(v2), Vector2D{4, 6}},
		{"Sub", v1.Sub(v2), Vector2D{-2, -2}},
		{"Mul", v1.Mul(2), Vector2D{2, 4}},
		{"Div", v1.Div(2), Vector2D{0.5, 1}},
		{"DivByZero", v1.Div(0), Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Eq(tt.want) {
				t.Errorf("%s = %v; want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if v1 != (Vector2D{1, 2}) {
		t.Errorf("receiver was mutated: %v", v1)
	}
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4}

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		want := Vector2D{0.6, 0.8}
		if !got.Eq(want) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		got := Zero.Normalize()
		if got != Zero {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
		}
	})

	t.Run("WithLen", func(t *testing.T) {
		got := v.WithLen(10)
		want := Vector2D{6, 8}
		if !got.Eq(want) {
			t.Errorf("WithLen(10) = %v; want %v", got, want)
		}
		if z := Zero.WithLen(10); z != Zero {
			t.Errorf("Zero.WithLen(10) = %v; want (0,0)", z)
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector2D{1, 1}
	v2 := Vector2D{4, 5}

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
}

func TestVector_Angles(t *testing.T) {
	t.Run("Angle", func(t *testing.T) {
		tests := []struct {
			v    Vector2D
			want float64
		}{
			{Vector2D{1, 0}, 0},
			{Vector2D{0, 1}, math.Pi / 2},
			{Vector2D{-1, 0}, math.Pi},
			{Vector2D{0, -1}, -math.Pi / 2},
		}
		for _, tt := range tests {
			if got := tt.v.Angle(); !floatEquals(got, tt.want) {
				t.Errorf("%v.Angle() = %v; want %v", tt.v, got, tt.want)
			}
		}
	})

	t.Run("AngleTo", func(t *testing.T) {
		x := Vector2D{1, 0}
		tests := []struct {
			other Vector2D
			want  float64
		}{
			{Vector2D{2, 0}, 0},
			{Vector2D{0, 3}, math.Pi / 2},
			{Vector2D{0, -1}, -math.Pi / 2},
			{Vector2D{-1, 0}, math.Pi},
			{Vector2D{1, 1}, math.Pi / 4},
		}
		for _, tt := range tests {
			if got := x.AngleTo(tt.other); !floatEquals(got, tt.want) {
				t.Errorf("%v.AngleTo(%v) = %v; want %v", x, tt.other, got, tt.want)
			}
		}
	})
}

func TestVector_IsFinite(t *testing.T) {
	if !(Vector2D{1, 2}).IsFinite() {
		t.Error("(1,2) should be finite")
	}
	if (Vector2D{math.NaN(), 0}).IsFinite() {
		t.Error("NaN vector should not be finite")
	}
	if (Vector2D{0, math.Inf(-1)}).IsFinite() {
		t.Error("Inf vector should not be finite")
	}
}

func TestVector_Eq(t *testing.T) {
	v := Vector2D{1, 2}

	if !v.Eq(Vector2D{1 + Epsilon/2, 2 - Epsilon/2}) {
		t.Error("Eq epsilon match failed")
	}
	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
}
