package conv

import "testing"

func TestItoa(t *testing.T) {
	var buf [12]byte
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-1, "-1"},
		{1234, "1234"},
		{-2147483648, "-2147483648"},
	}
	for _, c := range cases {
		if got := string(Itoa(buf[:], c.n)); got != c.want {
			t.Errorf("Itoa(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestItoaSigned(t *testing.T) {
	var buf [12]byte
	if got := string(ItoaSigned(buf[:], 1)); got != "+1" {
		t.Fatalf("ItoaSigned(1) = %q", got)
	}
	if got := string(ItoaSigned(buf[:], -1)); got != "-1" {
		t.Fatalf("ItoaSigned(-1) = %q", got)
	}
	if got := string(ItoaSigned(buf[:], 0)); got != "0" {
		t.Fatalf("ItoaSigned(0) = %q", got)
	}
}

func TestHex8(t *testing.T) {
	if got := Hex8String(0x36); got != "0x36" {
		t.Fatalf("Hex8String(0x36) = %q", got)
	}
	if got := Hex8String(0x0A); got != "0x0a" {
		t.Fatalf("Hex8String(0x0a) = %q", got)
	}
}
