package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatalf("Of(nil) != OK")
	}
	if Of(ClockRead) != ClockRead {
		t.Fatalf("Of(Code) should return the code")
	}
	if Of(Wrap(StoreWrite, "save", errors.New("io"))) != StoreWrite {
		t.Fatalf("Of(*E) should return the wrapped code")
	}
	if Of(fmt.Errorf("boot: %w", Wrap(StoreRead, "load", nil))) != StoreRead {
		t.Fatalf("Of should see through fmt wrapping")
	}
	if Of(fmt.Errorf("parse: %w", NoRecord)) != NoRecord {
		t.Fatalf("Of should find a wrapped bare code")
	}
	if Of(errors.New("plain")) != Error {
		t.Fatalf("Of(plain) should fall back to Error")
	}
}

func TestE_IsAndUnwrap(t *testing.T) {
	cause := errors.New("i2c nack")
	err := Wrap(ClockRead, "rtc.now", cause)

	if !errors.Is(err, ClockRead) {
		t.Fatalf("errors.Is should match by code")
	}
	if errors.Is(err, StoreRead) {
		t.Fatalf("errors.Is matched the wrong code")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should reach the cause")
	}
	if got := err.Error(); got != "rtc.now: clock_read: i2c nack" {
		t.Fatalf("Error() = %q", got)
	}
}
