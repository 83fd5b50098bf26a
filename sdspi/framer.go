package sdspi

import "encoding/binary"

// Framer assembles and sends 48-bit SD command frames and collects R1
// responses. It holds no card state of its own — bring-up and block I/O
// each construct one over the Bus they were given.
type Framer struct {
	ops    busOps
	limits PollLimits
	buf    [6]byte
}

// NewFramer wraps bus with the command-framing primitives of §4.2.
func NewFramer(bus Bus, limits PollLimits) *Framer {
	return &Framer{ops: busOps{bus: bus}, limits: limits}
}

// putCommand packs cmd/arg into dst[0:5] per §4.2/§6: 0x40|cmd, arg
// big-endian. The CRC byte at dst[5] is filled in separately, once dst[0:5]
// holds the frame being sent — crc7Table already stores the shifted 7-bit
// CRC value, so the final byte is crc7|0x01, not (crc7<<1)|0x01.
func putCommand(dst *[6]byte, cmd byte, arg uint32) {
	dst[0] = 0x40 | cmd
	binary.BigEndian.PutUint32(dst[1:5], arg)
}

// SendCommand transmits the 6-byte frame for cmd/arg. CRC7 is computed over
// the first five bytes on every call, after they're written — CRC-on mode is
// enabled partway through bring-up and every frame after that point must
// carry a correct CRC7 or the card answers ComCrcError, so the framer never
// takes a shortcut here.
func (f *Framer) SendCommand(cmd byte, arg uint32) error {
	putCommand(&f.buf, cmd, arg)
	f.buf[5] = CRC7(f.buf[:5]) | 0x01
	for _, b := range f.buf {
		if err := f.ops.tx(b); err != nil {
			return err
		}
	}
	return nil
}

// GetR1 polls rx() up to limits.R1Poll times for a byte with bit 7 clear,
// returning R1Timeout if none arrives in that budget.
func (f *Framer) GetR1() (R1, error) {
	for i := 0; i < f.limits.R1Poll; i++ {
		b, err := f.ops.rx()
		if err != nil {
			return 0, err
		}
		if b&0x80 == 0 {
			return R1(b), nil
		}
	}
	return R1Timeout, nil
}

// Command sends cmd/arg and returns its R1. Errors from the transport are
// distinct from a card-reported R1.
func (f *Framer) Command(cmd byte, arg uint32) (R1, error) {
	if err := f.SendCommand(cmd, arg); err != nil {
		return 0, err
	}
	return f.GetR1()
}

// AppCommand sends CMD55 followed by acmd/arg, per §4.2: the framer never
// auto-prefixes, this helper exists so ordinary call sites don't repeat the
// two-step dance, but the CMD55 R1 remains inspectable via the first return
// value.
func (f *Framer) AppCommand(acmd byte, arg uint32) (cmd55R1, acmdR1 R1, err error) {
	cmd55R1, err = f.Command(CMD55AppCmd, 0)
	if err != nil {
		return cmd55R1, 0, err
	}
	acmdR1, err = f.Command(acmd, arg)
	return cmd55R1, acmdR1, err
}

// Rx clocks a single dummy 0xFF byte and returns the card's reply.
func (f *Framer) Rx() (byte, error) { return f.ops.rx() }

// Tx clocks out a single byte, discarding the reply.
func (f *Framer) Tx(b byte) error { return f.ops.tx(b) }

func (f *Framer) rx() (byte, error)      { return f.ops.rx() }
func (f *Framer) tx(b byte) error        { return f.ops.tx(b) }
func (f *Framer) waitClocks(n int) error { return f.ops.bus.WaitClocks(n) }
func (f *Framer) csAssert()              { f.ops.bus.CSAssert() }
func (f *Framer) csDeassert()            { f.ops.bus.CSDeassert() }
