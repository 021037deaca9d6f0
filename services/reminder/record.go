package reminder

import (
	"encoding/binary"

	"azaymonitor/errcode"
	"azaymonitor/types"
)

// Persisted layout of slot 0:
//
//	[0]    step
//	[1]    alarm flags (reserved)
//	[2..5] deadline, little-endian seconds since midnight
//
// There is no version or checksum; a torn write is tolerated on load.
const (
	RecordSize = 6
	StateSlot  = 0
)

// EncodeRecord returns the 6-byte slot image for r.
func EncodeRecord(r types.ReminderState) []byte {
	b := make([]byte, RecordSize)
	b[0] = r.Step
	b[1] = r.AlarmFlags
	binary.LittleEndian.PutUint32(b[2:], r.Deadline)
	return b
}

// DecodeRecord parses a slot image. Short input yields errcode.NoRecord. The
// step is wrapped into [0, n); any deadline value is accepted.
func DecodeRecord(b []byte, n int) (types.ReminderState, error) {
	if len(b) < RecordSize {
		return types.ReminderState{}, errcode.NoRecord
	}
	return types.ReminderState{
		Step:       WrapStep(b[0], n),
		AlarmFlags: b[1],
		Deadline:   binary.LittleEndian.Uint32(b[2:6]),
	}, nil
}
