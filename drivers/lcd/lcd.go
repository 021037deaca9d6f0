// Package lcd renders reminder frames on a 16x2 character panel.
//
// Layout:
//
//	row 0: task label, truncated to Cols
//	row 1: step index at column 0, "T" (countdown) or " " at column 7,
//	       then HH:MM:SS
package lcd

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"azaymonitor/types"
	"azaymonitor/x/conv"
)

const (
	Cols = 16
	Rows = 2

	// DefaultAddress is the usual PCF8574 backpack address.
	DefaultAddress = 0x27

	timeCol = 7
)

// Panel is the subset of a character LCD driver the renderer needs.
// *hd44780i2c.Device satisfies it.
type Panel interface {
	SetCursor(col, row uint8)
	Print(data []byte)
	ClearDisplay()
}

type Display struct {
	p   Panel
	buf [Cols]byte
}

func New(p Panel) *Display { return &Display{p: p} }

// NewHD44780 configures a PCF8574-backed HD44780 on bus and turns the
// backlight on. addr 0 selects DefaultAddress.
func NewHD44780(bus drivers.I2C, addr uint8) (*Display, error) {
	if addr == 0 {
		addr = DefaultAddress
	}
	dev := hd44780i2c.New(bus, addr)
	if err := dev.Configure(hd44780i2c.Config{Width: Cols, Height: Rows}); err != nil {
		return nil, err
	}
	dev.BacklightOn(true)
	return New(&dev), nil
}

// ShowTask writes the label on row 0 and the step index on row 1.
func (d *Display) ShowTask(label string, step uint8) {
	if len(label) > Cols {
		label = label[:Cols]
	}
	d.p.SetCursor(0, 0)
	d.p.Print(append(d.buf[:0], label...))
	var n [3]byte
	d.p.SetCursor(0, 1)
	d.p.Print(conv.Utoa(n[:], uint64(step)))
}

// ShowTime writes the countdown marker and the time at column 7 of row 1.
func (d *Display) ShowTime(countdown bool, t types.TimeOfDay) {
	b := d.buf[:0]
	if countdown {
		b = append(b, 'T')
	} else {
		b = append(b, ' ')
	}
	b = conv.AppendClock(b, t.Hours, t.Minutes, t.Seconds, true)
	d.p.SetCursor(timeCol, 1)
	d.p.Print(b)
}

func (d *Display) Clear() { d.p.ClearDisplay() }
