package sdspi

// Init executes the SPI initialization sequence of §4.3 and returns the
// immutable CardInfo on success. Transport-level failures (Bus.Tx returning
// an error) are returned as-is; protocol-level failures are returned as an
// InitError, whose low byte always carries the last R1 seen.
func Init(bus Bus, cfg CardConfig) (CardInfo, error) {
	limits := cfg.Limits
	f := NewFramer(bus, limits)

	// 1. Cold-clock: CS deasserted, >=74 SPI clocks of 0xFF.
	bus.CSDeassert()
	if err := bus.WaitClocks(limits.ColdClocks); err != nil {
		return CardInfo{}, err
	}

	// 2. Go-idle: CMD0, expect R1 = InIdle, retry up to GoIdleAttempts.
	var r1 R1
	var err error
	ok := false
	for i := 0; i < limits.GoIdleAttempts; i++ {
		f.csAssert()
		r1, err = f.Command(CMD0GoIdleState, 0)
		f.csDeassert()
		if err != nil {
			return CardInfo{}, err
		}
		if r1.IsIdle() {
			ok = true
			break
		}
	}
	if !ok {
		return CardInfo{}, makeInitError(InitFailedGoIdleState, r1)
	}

	// 3. Send-if-cond: CMD8, determine version, validate R7 on v2.
	version := 1
	f.csAssert()
	r1, err = f.Command(CMD8SendIfCond, 0x1AA)
	if err != nil {
		f.csDeassert()
		return CardInfo{}, err
	}
	if r1.IllegalCommand() {
		version = 1
		f.csDeassert()
	} else {
		version = 2
		var status byte
		for i := 0; i < 3; i++ {
			status, err = f.rx()
			if err != nil {
				f.csDeassert()
				return CardInfo{}, err
			}
		}
		if status&0x0F != 0x01 {
			f.csDeassert()
			return CardInfo{}, makeInitError(InitUnsupportedCardType, r1)
		}
		echo, err := f.rx()
		if err != nil {
			f.csDeassert()
			return CardInfo{}, err
		}
		f.csDeassert()
		if echo != 0xAA {
			return CardInfo{}, makeInitError(InitUnsupportedCardType, r1)
		}
	}

	// 4. CRC-on: CMD59 arg=1, must return R1 = InIdle.
	f.csAssert()
	r1, err = f.Command(CMD59CrcOnOff, 1)
	f.csDeassert()
	if err != nil {
		return CardInfo{}, err
	}
	if r1 != R1InIdle {
		return CardInfo{}, makeInitError(InitFailedCrcOnOff, r1)
	}

	// 5. Idle-exit: CMD55+ACMD41 loop until OutOfIdle (R1 == 0).
	arg := uint32(0)
	if cfg.HostSupportsHC {
		arg = 0x40000000
	}
	ok = false
	var acmdR1 R1
	for i := 0; i < limits.IdleExitAttempts; i++ {
		f.csAssert()
		cmd55R1, aR1, err := f.AppCommand(ACMD41SDAppOpCond, arg)
		f.csDeassert()
		if err != nil {
			return CardInfo{}, err
		}
		if cmd55R1.IllegalCommand() {
			return CardInfo{}, makeInitError(InitFailedAppCmd, cmd55R1)
		}
		acmdR1 = aR1
		if acmdR1.Ok() {
			ok = true
			break
		}
	}
	if !ok {
		return CardInfo{}, makeInitError(InitOutOfIdleTimeout, acmdR1)
	}

	// 6. Read OCR: CMD58, determine capacity class and power-up state.
	f.csAssert()
	r1, err = f.Command(CMD58ReadOCR, 0)
	if err != nil {
		f.csDeassert()
		return CardInfo{}, err
	}
	if !r1.Ok() {
		f.csDeassert()
		return CardInfo{}, makeInitError(InitFailedReadOCR, r1)
	}
	var ocr [4]byte
	for i := range ocr {
		ocr[i], err = f.rx()
		if err != nil {
			f.csDeassert()
			return CardInfo{}, err
		}
	}
	f.csDeassert()

	if ocr[0]&0x80 == 0 {
		return CardInfo{}, makeInitError(InitPowerUpNotComplete, r1)
	}
	class := StandardCapacity
	if ocr[0]&0x40 != 0 {
		class = HighCapacity
	}

	return CardInfo{Version: version, CapacityClass: class}, nil
}
