package math

import (
	"math"
	"testing"
)

func approxVec(a, b Vec3) bool {
	return abs(a.X-b.X) < 1e-4 && abs(a.Y-b.Y) < 1e-4 && abs(a.Z-b.Z) < 1e-4
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got, want := a.Min(b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, 0}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I = %v, want %v", result, m)
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 3, 4), Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		{"rotate y 90", QuatFromAxisAngle(Up, math.Pi/2).ToMat4(), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); !approxVec(got, tt.want) {
				t.Errorf("TransformVec3() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	got := Translate(5, 5, 5).TransformDirection(Vec3{0, 1, 0})
	if got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection() = %v, want (0,1,0)", got)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale, then rotate 90 degrees about Y, then translate.
	rot := QuatFromAxisAngle(Up, math.Pi/2)
	m := Compose(Vec3{0, 1, 0}, rot, Vec3{2, 2, 2})
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{0, 1, -2}
	if !approxVec(got, want) {
		t.Errorf("Compose().TransformVec3() = %v, want %v", got, want)
	}

	// Must agree with explicit T * R * S.
	explicit := Translate(0, 1, 0).Mul(rot.ToMat4()).Mul(Scale(2, 2, 2))
	for i := range m {
		if abs(m[i]-explicit[i]) > 1e-5 {
			t.Fatalf("Compose()[%d] = %v, want %v", i, m[i], explicit[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	got := q.ToMat4().TransformVec3(Vec3{1, 0, 0})
	if !approxVec(got, Vec3{0, 0, -1}) {
		t.Errorf("90deg Y rotation of +X = %v, want (0,0,-1)", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quat Normalize() = %v, want identity", got)
	}
	q := Quat{X: 2, W: 2}.Normalize()
	l := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if abs(l-1) > 1e-4 {
		t.Errorf("Normalize() squared length = %v, want 1", l)
	}
}

func TestQuatFromEulerYawOnly(t *testing.T) {
	a := QuatFromEuler(0, 0.7, 0)
	b := QuatFromAxisAngle(Up, 0.7)
	if abs(a.X-b.X) > 1e-5 || abs(a.Y-b.Y) > 1e-5 || abs(a.Z-b.Z) > 1e-5 || abs(a.W-b.W) > 1e-5 {
		t.Errorf("QuatFromEuler(0, 0.7, 0) = %v, want %v", a, b)
	}
}
