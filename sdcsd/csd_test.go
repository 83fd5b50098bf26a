package sdcsd

import (
	"testing"

	"github.com/jsfain/sdcard/sdspi"
)

// TestCapacityStandardCapacity is spec scenario: C_SIZE=0x0F00,
// C_SIZE_MULT=7, READ_BL_LEN=9 on a v1 (Standard Capacity) card.
func TestCapacityStandardCapacity(t *testing.T) {
	var data [16]byte
	data[5] = 0x09          // READ_BL_LEN low nibble
	data[6] = 0x03          // C_SIZE bits 11:10
	data[7] = 0xC0          // C_SIZE bits 9:2
	data[8] = 0x00          // C_SIZE bits 1:0 in top 2 bits
	data[9] = 0x03          // C_SIZE_MULT bits 2:1
	data[10] = 0x80         // C_SIZE_MULT bit 0

	csd, err := Decode(data, sdspi.StandardCapacity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := csd.Capacity()
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	want := uint64(0xF00+1) << (7 + 2) << 9
	if got != want {
		t.Errorf("capacity = %d, want %d", got, want)
	}
}

// TestCapacityHighCapacity is spec scenario: C_SIZE=0x3B37F on a v2
// (High Capacity) card.
func TestCapacityHighCapacity(t *testing.T) {
	var data [16]byte
	data[1] = 0x0E
	data[2] = 0x00
	data[3] = 0x32
	data[4] = 0x5B
	data[5] = 0x59
	data[8] = 0x03
	data[9] = 0xB3
	data[10] = 0x7F

	csd, err := Decode(data, sdspi.HighCapacity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := csd.Capacity()
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	want := uint64(0x3B37F+1) * 512_000
	if got != want {
		t.Errorf("capacity = %d, want %d", got, want)
	}
}

func TestDecodeRejectsBadReadBlockLength(t *testing.T) {
	var data [16]byte
	data[5] = 0x0C // READ_BL_LEN = 12, out of range
	if _, err := Decode(data, sdspi.StandardCapacity); err == nil {
		t.Fatal("expected an error for an out-of-range READ_BL_LEN")
	}
}

func TestDecodeRejectsBadV2Fields(t *testing.T) {
	var data [16]byte
	data[1] = 0x0E
	data[2] = 0x00
	data[3] = 0x32
	data[4] = 0x5B
	data[5] = 0x58 // wrong, should be 0x59
	if _, err := Decode(data, sdspi.HighCapacity); err == nil {
		t.Fatal("expected an error for a corrupted CCC/READ_BL_LEN byte")
	}
}

func TestRawCopyRoundTrips(t *testing.T) {
	var data [16]byte
	data[5] = 0x09
	csd, err := Decode(data, sdspi.StandardCapacity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if csd.RawCopy() != data {
		t.Error("RawCopy did not round-trip the decoded bytes")
	}
}
