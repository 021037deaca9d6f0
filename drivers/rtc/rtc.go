// Package rtc reads the wall-clock time of day from a real-time clock.
package rtc

import (
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"

	"azaymonitor/errcode"
	"azaymonitor/types"
)

// TimeReader is satisfied by *ds3231.Device.
type TimeReader interface {
	ReadTime() (time.Time, error)
}

// TimeSetter is optional; clocks that support it can be set at boot.
type TimeSetter interface {
	SetTime(t time.Time) error
}

type Clock struct {
	r TimeReader
}

func New(r TimeReader) *Clock { return &Clock{r: r} }

// NewDS3231 wraps a DS3231 on bus. The oscillator is started if it was
// stopped.
func NewDS3231(bus drivers.I2C) *Clock {
	dev := ds3231.New(bus)
	dev.Configure()
	return New(&dev)
}

// Now reports the RTC's hours, minutes and seconds.
func (c *Clock) Now() (types.TimeOfDay, error) {
	t, err := c.r.ReadTime()
	if err != nil {
		return types.TimeOfDay{}, errcode.Wrap(errcode.ClockRead, "rtc.now", err)
	}
	tod := types.TimeOfDay{Hours: uint8(t.Hour()), Minutes: uint8(t.Minute()), Seconds: uint8(t.Second())}
	if !tod.Valid() {
		return types.TimeOfDay{}, &errcode.E{C: errcode.ClockRead, Op: "rtc.now", Msg: "time out of range"}
	}
	return tod, nil
}

// Set writes t to the RTC when the reader supports it.
func (c *Clock) Set(t time.Time) error {
	s, ok := c.r.(TimeSetter)
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "rtc.set", Msg: "clock is read-only"}
	}
	if err := s.SetTime(t); err != nil {
		return errcode.Wrap(errcode.Error, "rtc.set", err)
	}
	return nil
}
