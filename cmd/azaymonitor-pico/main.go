//go:build rp2040 || rp2350

package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"azaymonitor/bus"
	"azaymonitor/drivers/button"
	"azaymonitor/drivers/buzzer"
	"azaymonitor/drivers/flashstore"
	"azaymonitor/drivers/lcd"
	"azaymonitor/drivers/rtc"
	"azaymonitor/services/config"
	"azaymonitor/services/heartbeat"
	"azaymonitor/services/reminder"
	"azaymonitor/services/sounder"
)

// Board wiring.
const (
	pinSDA    = machine.GP4
	pinSCL    = machine.GP5
	pinButton = machine.GP14
	pinBuzzer = machine.GP15
	pinTX     = machine.GP0
	pinRX     = machine.GP1

	diagBaud = 9600
)

// setTime, when set at link time (-ldflags "-X main.setTime=2024-05-01T07:30:00Z"),
// is written to the RTC at boot.
var setTime string

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	device := "pico"
	if config.DebugBuild {
		device = "pico-debug"
	}
	settings, err := config.ForDevice(device)
	if err != nil {
		fail("config", err)
	}

	println("[main] configuring i2c0 …")
	i2c := machine.I2C0
	pinSDA.Configure(machine.PinConfig{Mode: machine.PinI2C})
	pinSCL.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := i2c.Configure(machine.I2CConfig{SDA: pinSDA, SCL: pinSCL, Frequency: 100_000}); err != nil {
		fail("i2c", err)
	}

	display, err := lcd.NewHD44780(i2c, lcd.DefaultAddress)
	if err != nil {
		fail("lcd", err)
	}
	clock := rtc.NewDS3231(i2c)
	if setTime != "" {
		if t, err := time.Parse(time.RFC3339, setTime); err != nil {
			println("[main] bad setTime:", err.Error())
		} else if err := clock.Set(t); err != nil {
			println("[main] rtc set failed:", err.Error())
		}
	}

	pinButton.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	btn := button.New(pinButton, false)

	bz, err := buzzer.New(machine.PWM7, pinBuzzer)
	if err != nil {
		fail("buzzer", err)
	}
	player := sounder.New(bz, settings.NoteDuration)

	store, err := flashstore.New(machine.Flash, flashstore.Config{
		Offset:    machine.Flash.Size() - machine.Flash.EraseBlockSize(),
		RecordLen: reminder.RecordSize,
	})
	if err != nil {
		fail("flash", err)
	}

	diag := uartx.UART0
	_ = diag.Configure(uartx.UARTConfig{BaudRate: diagBaud, TX: pinTX, RX: pinRX})

	ctx := context.Background()
	b := bus.NewBus(4)

	println("[main] starting heartbeat …")
	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	svc := reminder.NewService(reminder.Config{
		Schedule: settings.Schedule,
		Cycle:    settings.Cycle,
		Debounce: settings.Debounce,
	}, reminder.Devices{
		Clock:   clock,
		Store:   store,
		Display: display,
		Sounder: player,
		Button:  btn,
		Conn:    b.NewConnection("reminder"),
		Diag:    diag,
	})

	println("[main] running reminder with", len(settings.Schedule), "tasks")
	if err := svc.Run(ctx); err != nil {
		fail("reminder", err)
	}
}

func fail(what string, err error) {
	println("[main]", what, "failed:", err.Error())
	panic(err)
}
