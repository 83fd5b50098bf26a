package sdcsd

import (
	"testing"

	"github.com/jsfain/sdcard/sdspi"
	"github.com/jsfain/sdcard/sdspitest"
)

func TestReadCSDHighCapacity(t *testing.T) {
	var data [16]byte
	data[1] = 0x0E
	data[2] = 0x00
	data[3] = 0x32
	data[4] = 0x5B
	data[5] = 0x59
	data[8] = 0x03
	data[9] = 0xB3
	data[10] = 0x7F

	// CMD9's own 6-byte command frame is full-duplex too: it advances
	// sdspitest.Scripted's RxQueue by 6 before the R1 byte is read back.
	rx := append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0x00, sdspi.StartBlockToken)
	rx = append(rx, data[:]...)
	rx = append(rx, 0x00, 0x00)

	bus := &sdspitest.Scripted{RxQueue: rx}
	csd, err := ReadCSD(bus, sdspi.HighCapacity, sdspi.DefaultPollLimits())
	if err != nil {
		t.Fatalf("ReadCSD: %v", err)
	}
	if csd.RawCopy() != data {
		t.Errorf("decoded CSD bytes = %v, want %v", csd.RawCopy(), data)
	}
	if len(bus.CSLog) != 2 || bus.CSLog[0] != true || bus.CSLog[1] != false {
		t.Fatalf("CS log = %v, want [assert, deassert]", bus.CSLog)
	}
}

func TestReadCSDR1Error(t *testing.T) {
	rx := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x04} // illegal command
	bus := &sdspitest.Scripted{RxQueue: rx}
	_, err := ReadCSD(bus, sdspi.HighCapacity, sdspi.DefaultPollLimits())
	if err == nil {
		t.Fatal("expected an error on illegal-command R1")
	}
}
