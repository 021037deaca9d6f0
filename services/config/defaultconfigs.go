//go:build !(rp2040 || rp2350)

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"azaymonitor/errcode"
	"azaymonitor/types"
	"azaymonitor/x/timex"
)

// File is the on-disk YAML form of Settings.
//
//	debug_timers: false
//	note_duration: 250ms
//	tasks:
//	  - label: Walk
//	  - block: Trigrim 1/4     # expands to MedicationBlock
//	  - separator: true
//	  - label: Feed
//	    timer: relative
//	    offset: 30m
type File struct {
	DebugTimers  bool       `yaml:"debug_timers"`
	NoteDuration string     `yaml:"note_duration"`
	Cycle        string     `yaml:"cycle"`
	Debounce     string     `yaml:"debounce"`
	Tasks        []FileTask `yaml:"tasks"`
}

type FileTask struct {
	Label     string `yaml:"label,omitempty"`
	Timer     string `yaml:"timer,omitempty"`
	Offset    string `yaml:"offset,omitempty"`
	Block     string `yaml:"block,omitempty"`
	Separator bool   `yaml:"separator,omitempty"`
	Spacer    bool   `yaml:"spacer,omitempty"`
}

// Load reads settings from a YAML file. A missing file yields Default().
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default().Finalise()
		}
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML settings. An empty task list selects the stock schedule.
func Parse(b []byte) (Settings, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Settings{}, errcode.Wrap(errcode.InvalidSchedule, "config.parse", err)
	}

	s := Settings{DebugTimers: f.DebugTimers}
	var err error
	if s.NoteDuration, err = parseDuration("note_duration", f.NoteDuration); err != nil {
		return Settings{}, err
	}
	if s.Cycle, err = parseDuration("cycle", f.Cycle); err != nil {
		return Settings{}, err
	}
	if s.Debounce, err = parseDuration("debounce", f.Debounce); err != nil {
		return Settings{}, err
	}

	if len(f.Tasks) == 0 {
		s.Schedule = DefaultSchedule()
	}
	for i, ft := range f.Tasks {
		tasks, err := ft.expand()
		if err != nil {
			return Settings{}, &errcode.E{C: errcode.InvalidSchedule, Op: "config.parse", Msg: fmt.Sprintf("task %d", i), Err: err}
		}
		s.Schedule = append(s.Schedule, tasks...)
	}
	return s.Finalise()
}

// Marshal renders a schedule back to YAML, one entry per task.
func Marshal(s Settings) ([]byte, error) {
	f := File{
		DebugTimers:  s.DebugTimers,
		NoteDuration: s.NoteDuration.String(),
		Cycle:        s.Cycle.String(),
		Debounce:     s.Debounce.String(),
	}
	for _, t := range s.Schedule {
		ft := FileTask{Label: t.Label}
		if t.Timer != types.TimerNone {
			ft.Timer = t.Timer.String()
			ft.Offset = (time.Duration(t.OffsetSeconds) * time.Second).String()
		}
		f.Tasks = append(f.Tasks, ft)
	}
	return yaml.Marshal(f)
}

func (ft FileTask) expand() ([]types.Task, error) {
	switch {
	case ft.Block != "":
		return MedicationBlock(ft.Block), nil
	case ft.Separator:
		return []types.Task{Separator()}, nil
	case ft.Spacer:
		return []types.Task{Spacer()}, nil
	}

	kind, ok := types.ParseTimerKind(ft.Timer)
	if !ok {
		return nil, fmt.Errorf("unknown timer %q", ft.Timer)
	}
	t := types.Task{Label: ft.Label, Timer: kind}
	if ft.Offset != "" {
		d, err := time.ParseDuration(ft.Offset)
		if err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("offset %s is negative", ft.Offset)
		}
		if d >= timex.DaySeconds*time.Second {
			return nil, fmt.Errorf("offset %s is a day or longer", ft.Offset)
		}
		t.OffsetSeconds = uint32(d / time.Second)
	}
	return []types.Task{t}, nil
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "config.parse", Msg: field, Err: err}
	}
	return d, nil
}
