// Package flashstore keeps small fixed-size records in NOR flash, one erase
// block per slot.
package flashstore

import (
	"bytes"
	"context"

	"azaymonitor/errcode"
	"azaymonitor/x/conv"
)

// BlockDevice is satisfied by machine.Flash.
type BlockDevice interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	WriteBlockSize() int64
	EraseBlockSize() int64
	EraseBlocks(start, length int64) error
}

const erased = 0xFF

type Config struct {
	// Offset of slot 0 within the device. Must be erase-block aligned.
	Offset int64
	// RecordLen is the byte length of every slot's record.
	RecordLen int
	// Slots bounds the slot index. Default 1.
	Slots int
}

type Store struct {
	dev BlockDevice
	cfg Config
	buf []byte
}

func New(dev BlockDevice, cfg Config) (*Store, error) {
	if cfg.RecordLen <= 0 || int64(cfg.RecordLen) > dev.EraseBlockSize() {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "flashstore.new", Msg: "record length " + conv.Dec(cfg.RecordLen)}
	}
	if cfg.Offset < 0 || cfg.Offset%dev.EraseBlockSize() != 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "flashstore.new", Msg: "offset not erase-block aligned"}
	}
	if cfg.Slots <= 0 {
		cfg.Slots = 1
	}
	return &Store{dev: dev, cfg: cfg, buf: make([]byte, cfg.RecordLen)}, nil
}

func (s *Store) addr(slot uint8) (int64, error) {
	if int(slot) >= s.cfg.Slots {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "flashstore", Msg: "slot " + conv.Dec(int(slot))}
	}
	return s.cfg.Offset + int64(slot)*s.dev.EraseBlockSize(), nil
}

// Load returns the slot's record. A fully erased slot is errcode.NoRecord.
func (s *Store) Load(_ context.Context, slot uint8) ([]byte, error) {
	off, err := s.addr(slot)
	if err != nil {
		return nil, err
	}
	if _, err := s.dev.ReadAt(s.buf, off); err != nil {
		return nil, errcode.Wrap(errcode.StoreRead, "flashstore.load", err)
	}
	if isErased(s.buf) {
		return nil, errcode.NoRecord
	}
	return append([]byte(nil), s.buf...), nil
}

// Save erases the slot's block and programs rec, padded with 0xFF to the
// write block size. Writing the bytes already stored is a no-op.
func (s *Store) Save(_ context.Context, slot uint8, rec []byte) error {
	off, err := s.addr(slot)
	if err != nil {
		return err
	}
	if len(rec) != s.cfg.RecordLen {
		return &errcode.E{C: errcode.InvalidParams, Op: "flashstore.save", Msg: "record length " + conv.Dec(len(rec))}
	}
	if _, err := s.dev.ReadAt(s.buf, off); err == nil && bytes.Equal(s.buf, rec) {
		return nil
	}

	ebs := s.dev.EraseBlockSize()
	if err := s.dev.EraseBlocks(off/ebs, 1); err != nil {
		return errcode.Wrap(errcode.StoreWrite, "flashstore.erase", err)
	}
	wbs := s.dev.WriteBlockSize()
	if wbs <= 0 {
		wbs = 1
	}
	n := (int64(len(rec)) + wbs - 1) / wbs * wbs
	page := bytes.Repeat([]byte{erased}, int(n))
	copy(page, rec)
	if _, err := s.dev.WriteAt(page, off); err != nil {
		return errcode.Wrap(errcode.StoreWrite, "flashstore.write", err)
	}
	return nil
}

func isErased(b []byte) bool {
	for _, c := range b {
		if c != erased {
			return false
		}
	}
	return true
}
