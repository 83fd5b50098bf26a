package sdspi

import "tinygo.org/x/drivers"

// DriversBus adapts a tinygo.org/x/drivers.SPI plus a chip-select setter
// into a Bus, the way nmaggioni-tinygo-drivers/sd wires drivers.SPI and a
// digitalPinout directly into its SPICard.
type DriversBus struct {
	spi drivers.SPI
	cs  func(selected bool)
}

// NewDriversBus builds a Bus over spi, calling cs(true) to assert chip
// select and cs(false) to deassert it.
func NewDriversBus(spi drivers.SPI, cs func(selected bool)) *DriversBus {
	return &DriversBus{spi: spi, cs: cs}
}

func (b *DriversBus) Tx(v byte) (byte, error) {
	return b.spi.Transfer(v)
}

func (b *DriversBus) WaitClocks(n int) error {
	dummy := make([]byte, n/8)
	for i := range dummy {
		dummy[i] = 0xFF
	}
	return b.spi.Tx(dummy, nil)
}

func (b *DriversBus) CSAssert()   { b.cs(true) }
func (b *DriversBus) CSDeassert() { b.cs(false) }
