package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d)=%d want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestBetweenAbs(t *testing.T) {
	if !Between(3, 1, 5) || !Between(5, 1, 5) || Between(6, 1, 5) || Between(3, 5, 1) {
		t.Fatal("Between mismatch")
	}
	if Abs(int32(-2048)) != 2048 || Abs(int8(4)) != 4 {
		t.Fatal("Abs mismatch")
	}
}

func TestScaleTruncatesTowardZero(t *testing.T) {
	cases := []struct{ v, num, den, want int32 }{
		{2047, 114, 4095, 56},
		{-2048, 114, 4095, -57},
		{2047, 50, 4095, 24},
		{-2048, 50, 4095, -25},
		{10, 3, 0, 0},
	}
	for _, c := range cases {
		if got := Scale(c.v, c.num, c.den); got != c.want {
			t.Fatalf("Scale(%d,%d,%d)=%d want %d", c.v, c.num, c.den, got, c.want)
		}
	}
}

func TestOffsetAndScaleU16(t *testing.T) {
	if Offset(0, 2048) != -2048 || Offset(4095, 2048) != 2047 {
		t.Fatal("Offset mismatch")
	}
	if ScaleU16(65535, 1000) != 1000 || ScaleU16(0, 1000) != 0 {
		t.Fatal("ScaleU16 endpoints")
	}
	if got := ScaleU16(32768, 65535); got != 32768 {
		t.Fatalf("ScaleU16 identity top: %d", got)
	}
}
