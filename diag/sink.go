// Package diag formats the protocol-level error values from sdspi and
// fat32 into human-readable text and emits them a byte at a time over
// whatever UART shim the caller provides. It optionally mirrors the same
// events to a structured logger for host-side debugging.
package diag

import (
	"context"
	"log/slog"

	"github.com/jsfain/sdcard/fat32"
	"github.com/jsfain/sdcard/sdspi"
)

// ByteWriter is the minimal contract a UART shim must satisfy.
type ByteWriter interface {
	WriteByte(b byte) error
}

// Sink writes diagnostic text to a ByteWriter and, if log is non-nil,
// mirrors a structured record of the same event. log is nil-checked on
// every call the way soypat-fat's FS.log is, and is never required by
// sdspi or fat32 themselves.
type Sink struct {
	w   ByteWriter
	log *slog.Logger
}

// NewSink builds a Sink over w. log may be nil.
func NewSink(w ByteWriter, log *slog.Logger) *Sink {
	return &Sink{w: w, log: log}
}

func (s *Sink) writeString(str string) error {
	for i := 0; i < len(str); i++ {
		if err := s.w.WriteByte(str[i]); err != nil {
			return err
		}
	}
	return s.w.WriteByte('\n')
}

func (s *Sink) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if s.log != nil {
		s.log.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

// PrintR1 reports a raw R1 response byte.
func (s *Sink) PrintR1(r1 sdspi.R1) error {
	s.logattrs(slog.LevelDebug, "r1", slog.String("value", r1.Error()))
	return s.writeString(r1.Error())
}

// PrintInitError reports a bring-up failure.
func (s *Sink) PrintInitError(err sdspi.InitError) error {
	s.logattrs(slog.LevelError, "init", slog.String("value", err.Error()))
	return s.writeString(err.Error())
}

// PrintReadError, PrintWriteError, and PrintEraseError report block I/O
// failures. They share one formatter since BlockError already distinguishes
// the failing operation through its kind.
func (s *Sink) PrintReadError(err sdspi.BlockError) error  { return s.printBlockError("read", err) }
func (s *Sink) PrintWriteError(err sdspi.BlockError) error { return s.printBlockError("write", err) }
func (s *Sink) PrintEraseError(err sdspi.BlockError) error { return s.printBlockError("erase", err) }

func (s *Sink) printBlockError(op string, err sdspi.BlockError) error {
	s.logattrs(slog.LevelError, op, slog.String("value", err.Error()))
	return s.writeString(err.Error())
}

// PrintFatError reports a FAT32 resolution failure.
func (s *Sink) PrintFatError(r fat32.Result) error {
	s.logattrs(slog.LevelWarn, "fat", slog.String("value", r.Error()))
	return s.writeString(r.Error())
}
