// Package button samples a momentary push button on a GPIO pin.
package button

// Pin is satisfied by machine.Pin.
type Pin interface {
	Get() bool
}

type Button struct {
	pin    Pin
	invert bool // true if pressed == low
}

func New(pin Pin, invert bool) *Button { return &Button{pin: pin, invert: invert} }

// Pressed reports the logical level right now. There is no debounce here;
// the reminder loop sleeps after any press it acts on.
func (b *Button) Pressed() bool { return b.pin.Get() != b.invert }
