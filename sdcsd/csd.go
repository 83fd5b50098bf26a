// Package sdcsd decodes the 128-bit Card-Specific Data register (v1
// Standard Capacity and v2 High Capacity layouts) and computes byte
// capacity from its byte-packed, bit-overlapping fields.
package sdcsd

import "github.com/jsfain/sdcard/sdspi"

// ErrFailedCapacityCalc is returned, deliberately non-descriptive to match
// the bare-metal source this is distilled from, whenever a CSD field fails
// its sanity check.
type ErrFailedCapacityCalc struct{}

func (ErrFailedCapacityCalc) Error() string { return "sdcsd: failed capacity calculation" }

// CSD holds the 16 raw bytes of a decoded CSD register.
type CSD struct {
	data  [16]byte
	class sdspi.CapacityClass
}

// Decode validates the 16-byte CSD stream per §4.5 and returns the decoded
// register. class must already be known from bring-up (§4.3) since the v1
// and v2 layouts diverge after byte 5.
func Decode(data [16]byte, class sdspi.CapacityClass) (CSD, error) {
	csd := CSD{data: data, class: class}
	if class == sdspi.HighCapacity {
		if err := csd.validateV2(); err != nil {
			return CSD{}, err
		}
	} else {
		if err := csd.validateV1(); err != nil {
			return CSD{}, err
		}
	}
	return csd, nil
}

func (c CSD) validateV1() error {
	readBlLen := c.data[5] & 0x0F
	if readBlLen < 9 || readBlLen > 11 {
		return ErrFailedCapacityCalc{}
	}
	return nil
}

func (c CSD) validateV2() error {
	const (
		taac        = 0x0E
		nsac        = 0x00
		transSpeed  = 0x32
		cccHighMask = 0xFB // CCC high byte OR 0xA0 must equal this
		cccLowAndRd = 0x59 // CCC low nibble + READ_BL_LEN combined byte
	)
	if c.data[1] != taac || c.data[2] != nsac || c.data[3] != transSpeed {
		return ErrFailedCapacityCalc{}
	}
	if c.data[4]|0xA0 != cccHighMask {
		return ErrFailedCapacityCalc{}
	}
	if c.data[5] != cccLowAndRd {
		return ErrFailedCapacityCalc{}
	}
	return nil
}

// Capacity returns the card's byte capacity per §4.5.
func (c CSD) Capacity() (uint64, error) {
	if c.class == sdspi.HighCapacity {
		return c.capacityV2(), nil
	}
	return c.capacityV1()
}

// v1 (Standard Capacity): READ_BL_LEN from low nibble of byte 5, C_SIZE is
// 12 bits straddling bytes 6..8, C_SIZE_MULT is 3 bits straddling bytes
// 9..10. Capacity = (C_SIZE+1) * 2^(C_SIZE_MULT+2) * 2^READ_BL_LEN.
func (c CSD) capacityV1() (uint64, error) {
	readBlLen := c.data[5] & 0x0F
	if readBlLen < 9 || readBlLen > 11 {
		return 0, ErrFailedCapacityCalc{}
	}
	cSize := uint32(c.data[6]&0x03)<<10 | uint32(c.data[7])<<2 | uint32(c.data[8]>>6)
	cSizeMult := (c.data[9]&0x03)<<1 | c.data[10]>>7

	capacity := uint64(cSize+1) << (uint(cSizeMult) + 2) << readBlLen
	return capacity, nil
}

// v2 (High Capacity): C_SIZE is 22 bits straddling bytes 8..10 (low 6 bits
// of byte 8, all of byte 9, all of byte 10). Capacity = (C_SIZE+1) * 512000.
func (c CSD) capacityV2() uint64 {
	cSize := uint32(c.data[8]&0x3F)<<16 | uint32(c.data[9])<<8 | uint32(c.data[10])
	return uint64(cSize+1) * 512_000
}

// RawCopy returns the undecoded CSD bytes.
func (c CSD) RawCopy() [16]byte { return c.data }
