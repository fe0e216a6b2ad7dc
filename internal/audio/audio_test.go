package audio

import "testing"

func TestToInt16Scaling(t *testing.T) {
	cases := []struct {
		in   float32
		want int16
	}{
		{0.0, 0},
		{1.0, 32767},
		{-1.0, -32767},
		{0.5, 16383},
	}

	for _, c := range cases {
		got := ToInt16([]float32{c.in})
		if got[0] != c.want {
			t.Errorf("ToInt16(%f): expected %d, got %d", c.in, c.want, got[0])
		}
	}
}

func TestToInt16ClampsOutOfRange(t *testing.T) {
	got := ToInt16([]float32{2.0, -3.5})

	if got[0] != 32767 {
		t.Fatalf("expected 2.0 to clamp to 32767, got %d", got[0])
	}
	if got[1] != -32767 {
		t.Fatalf("expected -3.5 to clamp to -32767, got %d", got[1])
	}
}

func TestToInt16PreservesBlockLength(t *testing.T) {
	in := make([]float32, 480)
	got := ToInt16(in)

	if len(got) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(got))
	}
}
