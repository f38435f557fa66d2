package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Lift(t *testing.T) {
	got := Vec2{1.5, 2.5}.Lift(0.05)
	want := Vec3{1.5, 0.05, 2.5}
	if got != want {
		t.Errorf("Vec2.Lift() = %v, want %v", got, want)
	}
}

func TestVec3Mid(t *testing.T) {
	got := Vec3{0, 0, 0}.Mid(Vec3{2, 3, 4})
	want := Vec3{1, 1.5, 2}
	if got != want {
		t.Errorf("Vec3.Mid() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3ApproxEqual(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{1.0000001, 2, 2.9999999}
	if !a.ApproxEqual(b, 1e-6) {
		t.Errorf("expected %v ~ %v", a, b)
	}
	if a.ApproxEqual(Vec3{1, 2, 3.1}, 1e-6) {
		t.Error("expected vectors 0.1 apart to differ")
	}
}

func TestVec3XZ(t *testing.T) {
	got := Vec3{1, 9, 3}.XZ()
	if got != (Vec2{1, 3}) {
		t.Errorf("Vec3.XZ() = %v, want {1 3}", got)
	}
}
