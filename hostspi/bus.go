//go:build linux

// Package hostspi adapts a Linux SPI device node and a GPIO chip-select
// line, via periph.io, into an sdspi.Bus. It exists so the sdshell command
// can talk to a real card from a host instead of a microcontroller.
package hostspi

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Bus drives a card over a periph.io SPI connection. The cs line is driven
// only by CSAssert and CSDeassert; Tx and WaitClocks leave it as it is.
type Bus struct {
	conn spi.Conn
	cs   gpio.PinIO
	port spi.PortCloser
}

// Open initializes the periph.io host and opens portName (e.g. "/dev/spidev0.0")
// at the given clock speed, driving csName (e.g. "GPIO25") as chip select.
func Open(portName string, csName string, maxHz physic.Frequency) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, err
	}
	conn, err := port.Connect(maxHz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, err
	}

	cs := gpioreg.ByName(csName)
	if cs == nil {
		port.Close()
		return nil, ErrNoSuchPin(csName)
	}
	if err := cs.Out(gpio.High); err != nil {
		port.Close()
		return nil, err
	}

	return &Bus{conn: conn, cs: cs, port: port}, nil
}

// Close releases the underlying SPI port.
func (b *Bus) Close() error { return b.port.Close() }

func (b *Bus) Tx(v byte) (byte, error) {
	w := []byte{v}
	r := []byte{0}
	if err := b.conn.Tx(w, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

// WaitClocks transmits floor(n/8) dummy 0xFF bytes to idle the bus without
// asserting CS, per the Bus contract.
func (b *Bus) WaitClocks(n int) error {
	count := n / 8
	w := make([]byte, count)
	for i := range w {
		w[i] = 0xFF
	}
	return b.conn.Tx(w, nil)
}

func (b *Bus) CSAssert()   { b.cs.Out(gpio.Low) }
func (b *Bus) CSDeassert() { b.cs.Out(gpio.High) }

// ErrNoSuchPin is returned by Open when the requested GPIO name isn't
// registered by periph.io/x/host.
type ErrNoSuchPin string

func (e ErrNoSuchPin) Error() string { return "hostspi: no such gpio pin: " + string(e) }
