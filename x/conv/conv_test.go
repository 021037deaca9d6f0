package conv

import "testing"

func TestUtoaItoa(t *testing.T) {
	var b [20]byte
	if s := string(Utoa(b[:], 0)); s != "0" {
		t.Fatalf("Utoa(0) = %q", s)
	}
	if s := string(Utoa(b[:], 86450)); s != "86450" {
		t.Fatalf("Utoa(86450) = %q", s)
	}
	if s := string(Itoa(b[:], -42)); s != "-42" {
		t.Fatalf("Itoa(-42) = %q", s)
	}
}

func TestPad2(t *testing.T) {
	var b [3]byte
	cases := map[uint8]string{0: "00", 7: "07", 10: "10", 59: "59", 123: "123"}
	for in, want := range cases {
		if got := string(Pad2(b[:], in)); got != want {
			t.Fatalf("Pad2(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestAppendClock(t *testing.T) {
	if got := string(AppendClock(nil, 0, 0, 50, true)); got != "00:00:50" {
		t.Fatalf("padded = %q", got)
	}
	if got := string(AppendClock(nil, 7, 5, 9, false)); got != "7:05:09" {
		t.Fatalf("unpadded = %q", got)
	}
	if got := string(AppendClock([]byte("T"), 12, 30, 0, true)); got != "T12:30:00" {
		t.Fatalf("prefixed = %q", got)
	}
}

func TestDec(t *testing.T) {
	for in, want := range map[int]string{0: "0", 7: "7", 256: "256", -12: "-12"} {
		if got := Dec(in); got != want {
			t.Fatalf("Dec(%d) = %q, want %q", in, got, want)
		}
	}
}
