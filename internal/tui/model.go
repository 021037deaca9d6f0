// Package tui is an interactive front panel for the simulated reminder: the
// LCD, the buzzer and one button.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"azaymonitor/services/reminder"
	"azaymonitor/services/sounder"
	"azaymonitor/types"
	"azaymonitor/x/timex"
)

const (
	refreshInterval = 100 * time.Millisecond
	shiftStep       = time.Minute
)

// Panel is the rendered LCD.
type Panel interface {
	Lines() [2]string
}

// Presser latches a button press for the next cycle.
type Presser interface {
	Press()
}

// Shifter moves the simulated clock.
type Shifter interface {
	Shift(d time.Duration)
}

// Sounding reports the note the buzzer is playing.
type Sounding interface {
	Sounding() (sounder.Note, bool)
}

// StateSource is satisfied by *reminder.Service.
type StateSource interface {
	State() reminder.State
}

type Deps struct {
	Panel  Panel
	Button Presser
	Clock  Shifter
	Tone   Sounding
	State  StateSource
	Total  int // schedule length
}

type refreshMsg time.Time

// StoppedMsg tells the model the reminder loop has exited.
type StoppedMsg struct{ Err error }

type Model struct {
	deps Deps

	lines   [2]string
	state   reminder.State
	note    sounder.Note
	playing bool
	presses int
	err     error
	quit    bool
}

func New(d Deps) Model {
	m := Model{deps: d}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space", "enter":
			m.deps.Button.Press()
			m.presses++
		case "+", "=":
			m.deps.Clock.Shift(shiftStep)
		case "-", "_":
			m.deps.Clock.Shift(-shiftStep)
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
		m.refresh()
		return m, nil
	case refreshMsg:
		m.refresh()
		return m, tick()
	case StoppedMsg:
		m.err = msg.Err
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) refresh() {
	m.lines = m.deps.Panel.Lines()
	m.state = m.deps.State.State()
	m.note, m.playing = m.deps.Tone.Sounding()
}

// Err is the error the reminder loop stopped with, if any.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	if m.quit && m.err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("AzayMonitor"))
	b.WriteString("\n")

	frame := lcdStyle
	if m.state.Mode == types.ModeAlarmRinging {
		frame = ringingStyle
	}
	b.WriteString(frame.Render(m.lines[0] + "\n" + m.lines[1]))
	b.WriteString("\n")

	status := "mode " + m.state.Mode.String() +
		"  step " + strconv.Itoa(int(m.state.Rec.Step)) + "/" + strconv.Itoa(m.deps.Total)
	if m.state.Rec.Armed() {
		status += "  alarm " + types.TimeFromSeconds(timex.Normalize(m.state.Rec.Deadline)).String()
	}
	b.WriteString(statusStyle.Render(status))
	if m.playing {
		b.WriteString("  " + noteStyle.Render("♪ "+m.note.Name))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("stopped: "+m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("space/enter press • +/- shift clock 1m • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the panel while loop drives the reminder. It returns when the
// user quits (cancelling loop's context) or loop fails.
func Run(ctx context.Context, d Deps, loop func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(d), tea.WithContext(ctx))
	go func() {
		err := loop(ctx)
		if ctx.Err() == nil {
			p.Send(StoppedMsg{Err: err})
		}
	}()

	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
