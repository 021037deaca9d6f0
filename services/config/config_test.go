// config/config_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"azaymonitor/errcode"
	"azaymonitor/types"
)

func TestDefaultSchedule_Shape(t *testing.T) {
	s := DefaultSchedule()
	if len(s) != 28 {
		t.Fatalf("len=%d want 28", len(s))
	}
	if err := Validate(s); err != nil {
		t.Fatal(err)
	}

	checks := map[int]types.Task{
		0:  Simple(MedWalk),
		4:  Relative(MedFeed, HalfHour),
		5:  Simple(MedTrigrim),
		9:  Relative(SpacerLabel, TenMinutes),
		10: Simple(SeparatorLabel),
		16: Simple(MedVeroshpiron),
		21: Simple(SeparatorLabel),
		24: Relative(MedFeed, HalfHour),
		26: Relative(MedUrsosan, TenMinutes),
		27: Simple(MedSleep),
	}
	for i, want := range checks {
		if s[i] != want {
			t.Fatalf("task %d = %+v, want %+v", i, s[i], want)
		}
	}
	for i, task := range s {
		if len(task.Label) > 16 {
			t.Fatalf("task %d label %q wider than the display", i, task.Label)
		}
	}
}

func TestWithDebugTimers_OnlyTouchesRelative(t *testing.T) {
	base := DefaultSchedule()
	dbg := WithDebugTimers(base)
	for i := range base {
		if base[i].HasRelativeTimer() {
			if dbg[i].OffsetSeconds != DebugOffset {
				t.Fatalf("task %d offset=%d", i, dbg[i].OffsetSeconds)
			}
			if base[i].OffsetSeconds == DebugOffset {
				t.Fatalf("base schedule mutated at %d", i)
			}
		} else if dbg[i] != base[i] {
			t.Fatalf("task %d changed: %+v", i, dbg[i])
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, errcode.InvalidSchedule) {
		t.Fatalf("empty: %v", err)
	}
	if err := Validate(types.Schedule{{Label: ""}}); !errors.Is(err, errcode.InvalidSchedule) {
		t.Fatalf("blank label: %v", err)
	}
	if err := Validate(types.Schedule{{Label: "x", Timer: 9}}); !errors.Is(err, errcode.InvalidSchedule) {
		t.Fatalf("bad timer: %v", err)
	}
	if err := Validate(types.Schedule{Relative("x", 86400)}); !errors.Is(err, errcode.InvalidSchedule) {
		t.Fatalf("day offset: %v", err)
	}
	if err := Validate(types.Schedule{Relative("x", 86399)}); err != nil {
		t.Fatalf("offset under a day: %v", err)
	}
	big := make(types.Schedule, types.MaxTasks+1)
	for i := range big {
		big[i] = Simple("t")
	}
	if err := Validate(big); !errors.Is(err, errcode.InvalidSchedule) {
		t.Fatalf("oversized: %v", err)
	}
	if err := Validate(big[:types.MaxTasks]); err != nil {
		t.Fatalf("256 tasks should be accepted: %v", err)
	}
}

func TestForDevice(t *testing.T) {
	s, err := ForDevice("pico")
	if err != nil {
		t.Fatal(err)
	}
	if s.Cycle != DefaultCycle || s.Debounce != DefaultDebounce || s.NoteDuration != DefaultNoteDuration {
		t.Fatalf("timings=%+v", s)
	}
	if s.Schedule[4].OffsetSeconds != HalfHour {
		t.Fatalf("feed offset=%d", s.Schedule[4].OffsetSeconds)
	}

	s, err = ForDevice("pico-debug")
	if err != nil {
		t.Fatal(err)
	}
	if s.Schedule[4].OffsetSeconds != DebugOffset {
		t.Fatalf("debug feed offset=%d", s.Schedule[4].OffsetSeconds)
	}

	if _, err := ForDevice("nope"); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("unknown device err=%v", err)
	}
}

func TestForDevice_LookupOverride(t *testing.T) {
	orig := EmbeddedConfigLookup
	t.Cleanup(func() { EmbeddedConfigLookup = orig })

	EmbeddedConfigLookup = func(string) (Settings, bool) {
		return Settings{Schedule: types.Schedule{Simple("only")}}, true
	}
	s, err := ForDevice("anything")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Schedule) != 1 || s.Cycle != DefaultCycle {
		t.Fatalf("settings=%+v", s)
	}
}

const sampleYAML = `
debug_timers: false
note_duration: 100ms
cycle: 50ms
tasks:
  - label: Walk
  - block: Trigrim 1/4
  - separator: true
  - label: Nap
    timer: relative
    offset: 45m
  - spacer: true
`

func TestParse_ExpandsShorthands(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Schedule) != 1+9+1+1+1 {
		t.Fatalf("len=%d", len(s.Schedule))
	}
	if s.NoteDuration != 100*time.Millisecond || s.Cycle != 50*time.Millisecond || s.Debounce != DefaultDebounce {
		t.Fatalf("timings=%+v", s)
	}
	if got := s.Schedule[11]; got != Relative("Nap", 45*60) {
		t.Fatalf("nap=%+v", got)
	}
	if got := s.Schedule[12]; got != Spacer() {
		t.Fatalf("spacer=%+v", got)
	}
}

func TestParse_EmptyTasksUsesDefault(t *testing.T) {
	s, err := Parse([]byte("debug_timers: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Schedule) != 28 || s.Schedule[4].OffsetSeconds != DebugOffset {
		t.Fatalf("schedule=%d feed=%d", len(s.Schedule), s.Schedule[4].OffsetSeconds)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad timer":    "tasks:\n  - label: x\n    timer: weekly\n",
		"bad offset":   "tasks:\n  - label: x\n    timer: relative\n    offset: soon\n",
		"neg offset":   "tasks:\n  - label: x\n    timer: relative\n    offset: -5s\n",
		"day offset":   "tasks:\n  - label: x\n    timer: relative\n    offset: 24h\n",
		"wrap offset":  "tasks:\n  - label: x\n    timer: relative\n    offset: 1193046h28m16s\n",
		"blank label":  "tasks:\n  - timer: none\n",
		"not yaml":     "tasks: [",
		"bad duration": "cycle: fast\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParse_OffsetOfADayIsRejected(t *testing.T) {
	for _, off := range []string{"24h", "1193046h27m16s", "1193046h28m16s"} {
		doc := "tasks:\n  - label: x\n    timer: relative\n    offset: " + off + "\n"
		if _, err := Parse([]byte(doc)); !errors.Is(err, errcode.InvalidSchedule) {
			t.Fatalf("offset %s: err=%v", off, err)
		}
	}
	s, err := Parse([]byte("tasks:\n  - label: x\n    timer: relative\n    offset: 23h59m59s\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Schedule[0].OffsetSeconds != 86399 {
		t.Fatalf("offset=%d", s.Schedule[0].OffsetSeconds)
	}
}

func TestLoad_MissingFileIsDefault(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Schedule) != 28 {
		t.Fatalf("len=%d", len(s.Schedule))
	}
}

func TestMarshal_ParseRoundTrip(t *testing.T) {
	want := Default()
	b, err := Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "offset: 30m0s") {
		t.Fatalf("yaml:\n%s", b)
	}
	path := filepath.Join(t.TempDir(), "azay.yaml")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Schedule) != len(want.Schedule) {
		t.Fatalf("len=%d", len(got.Schedule))
	}
	for i := range want.Schedule {
		if got.Schedule[i] != want.Schedule[i] {
			t.Fatalf("task %d: %+v != %+v", i, got.Schedule[i], want.Schedule[i])
		}
	}
}
