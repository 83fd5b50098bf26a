package sdcsd

import "github.com/jsfain/sdcard/sdspi"

// ReadCSD issues CMD9 and reads the 16-byte CSD register, decoding it per
// §4.5. CS is asserted for the duration of the transaction and deasserted
// on every exit path, success or failure, per §5's scoped-acquisition
// invariant.
func ReadCSD(bus sdspi.Bus, class sdspi.CapacityClass, limits sdspi.PollLimits) (CSD, error) {
	f := sdspi.NewFramer(bus, limits)

	bus.CSAssert()
	defer bus.CSDeassert()

	r1, err := f.Command(sdspi.CMD9SendCSD, 0)
	if err != nil {
		return CSD{}, err
	}
	if !r1.Ok() {
		return CSD{}, ErrFailedCapacityCalc{}
	}

	if err := waitStartToken(f, limits.TokenPoll); err != nil {
		return CSD{}, err
	}

	var data [16]byte
	for i := range data {
		b, err := f.Rx()
		if err != nil {
			return CSD{}, err
		}
		data[i] = b
	}
	// Discard the two CRC16 bytes: CRC is off post-init, the receive only
	// flushes the data path.
	if _, err := f.Rx(); err != nil {
		return CSD{}, err
	}
	if _, err := f.Rx(); err != nil {
		return CSD{}, err
	}

	return Decode(data, class)
}

func waitStartToken(f *sdspi.Framer, limit int) error {
	for i := 0; i < limit; i++ {
		b, err := f.Rx()
		if err != nil {
			return err
		}
		if b == sdspi.StartBlockToken {
			return nil
		}
	}
	return ErrFailedCapacityCalc{}
}
