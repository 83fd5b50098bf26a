//go:build linux

// Package hostuart implements diag.ByteWriter over a host serial port, for
// boards that surface their diagnostic trace on a UART rather than stdout.
package hostuart

import (
	"syscall"
	"time"

	"go.bug.st/serial"
)

// Port writes bytes to a serial device, retrying on the EINTR that shows up
// constantly under Go's goroutine-level scheduling.
type Port struct {
	port serial.Port
}

// Open opens deviceName (e.g. "/dev/ttyUSB0") at baudRate, 8N1.
func Open(deviceName string, baudRate int) (*Port, error) {
	mode := &serial.Mode{BaudRate: baudRate, DataBits: 8,
		Parity: serial.NoParity, StopBits: serial.OneStopBit}
	p, err := serial.Open(deviceName, mode)
	if err != nil {
		return nil, err
	}
	return &Port{port: p}, nil
}

// Close releases the underlying serial port.
func (p *Port) Close() error { return p.port.Close() }

// WriteByte implements diag.ByteWriter.
func (p *Port) WriteByte(b byte) error {
	buf := [1]byte{b}
	for {
		n, err := p.port.Write(buf[:])
		if !isRetryableSyscallError(err) {
			if err != nil {
				return err
			}
			if n != 1 {
				return ErrShortWrite{}
			}
			return nil
		}
	}
}

// ReadByte blocks up to timeout for a single byte from the port.
func (p *Port) ReadByte(timeout time.Duration) (byte, error) {
	buf := [1]byte{}
	p.port.SetReadTimeout(timeout)
	for {
		n, err := p.port.Read(buf[:])
		if !isRetryableSyscallError(err) {
			if err != nil {
				return 0, err
			}
			if n == 0 {
				return 0, ErrNoResponse(timeout)
			}
			return buf[0], nil
		}
	}
}

// ErrNoResponse is returned by ReadByte when nothing arrives within timeout.
type ErrNoResponse time.Duration

func (e ErrNoResponse) Error() string {
	return "hostuart: no response after " + time.Duration(e).String()
}

// ErrShortWrite is returned when the port accepts fewer bytes than given.
type ErrShortWrite struct{}

func (ErrShortWrite) Error() string { return "hostuart: short write" }

func isRetryableSyscallError(err error) bool {
	const eIntr = 4
	if errno, ok := err.(syscall.Errno); ok {
		return errno == eIntr
	}
	return false
}
