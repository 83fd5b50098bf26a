package sdspi

import "encoding/binary"

// Card is the block I/O layer (§4.4): read/write/erase a card whose version
// and capacity class were already determined by Init. A Card owns no global
// state — it is constructed once and threaded explicitly into every call.
type Card struct {
	framer *Framer
	info   CardInfo
	limits PollLimits
}

// NewCard builds the block I/O layer over bus for a card already brought up
// to info.
func NewCard(bus Bus, info CardInfo, limits PollLimits) *Card {
	return &Card{framer: NewFramer(bus, limits), info: info, limits: limits}
}

func (c *Card) Info() CardInfo { return c.info }

// ReadSector adapts ReadBlock to fat32.BlockDevice: a BlockError outcome
// that isn't success is itself returned as the error, since BlockError
// already implements the error interface.
func (c *Card) ReadSector(lba uint32, buf *[512]byte) error {
	be, err := c.ReadBlock(lba, buf)
	if err != nil {
		return err
	}
	if !be.Ok() {
		return be
	}
	return nil
}

func withR1(kind byte, r1 R1) BlockError {
	return BlockError(kind)<<8 | BlockError(r1)
}

func makeR1BlockError(r1 R1) BlockError { return withR1(blockKindR1Error, r1) }

// waitStartToken polls rx() for the 0xFE start-block token, per §6.
func (c *Card) waitStartToken() (timedOut bool, err error) {
	for i := 0; i < c.limits.TokenPoll; i++ {
		b, err := c.framer.rx()
		if err != nil {
			return false, err
		}
		if b == tokenStartBlock {
			return false, nil
		}
	}
	return true, nil
}

func sendGuardBytes(f *Framer, n int) error {
	for i := 0; i < n; i++ {
		if err := f.tx(0xFF); err != nil {
			return err
		}
	}
	return nil
}

// ReadBlock reads 512 bytes from block into buf.
func (c *Card) ReadBlock(block uint32, buf *[512]byte) (BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	r1, err := c.framer.Command(CMD17ReadSingleBlock, c.info.blockArg(block))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return makeR1BlockError(r1), nil
	}

	timedOut, err := c.waitStartToken()
	if err != nil {
		return 0, err
	}
	if timedOut {
		return StartTokenTimeout, nil
	}

	for i := range buf {
		b, err := c.framer.rx()
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	// Two CRC16 bytes: CRC is off post-init, so these are discarded, but the
	// receive must still happen to flush the data path.
	if _, err := c.framer.rx(); err != nil {
		return 0, err
	}
	if _, err := c.framer.rx(); err != nil {
		return 0, err
	}
	return ReadSuccess, nil
}

// dataResponseToken polls rx() for a non-0xFF byte (the data-response token)
// within limits.DataResponsePoll attempts.
func (c *Card) dataResponseToken() (resp byte, found bool, err error) {
	for i := 0; i < c.limits.DataResponsePoll; i++ {
		resp, err = c.framer.rx()
		if err != nil {
			return 0, false, err
		}
		if resp != 0xFF {
			return resp, true, nil
		}
	}
	return 0, false, nil
}

// waitNotBusy polls rx() for a non-zero byte (the card releasing the
// data-out busy line) within limit attempts.
func (c *Card) waitNotBusy(limit int) (notBusy bool, err error) {
	for i := 0; i < limit; i++ {
		b, err := c.framer.rx()
		if err != nil {
			return false, err
		}
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}

// WriteBlock writes 512 bytes from buf to block.
func (c *Card) WriteBlock(block uint32, buf *[512]byte) (BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	r1, err := c.framer.Command(CMD24WriteBlock, c.info.blockArg(block))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return makeR1BlockError(r1), nil
	}

	if err := c.framer.tx(tokenStartBlock); err != nil {
		return 0, err
	}
	for _, b := range buf {
		if err := c.framer.tx(b); err != nil {
			return 0, err
		}
	}
	if err := c.framer.tx(0xFF); err != nil {
		return 0, err
	}
	if err := c.framer.tx(0xFF); err != nil {
		return 0, err
	}

	resp, found, err := c.dataResponseToken()
	if err != nil {
		return 0, err
	}
	if !found {
		return DataResponseTimeout, nil
	}
	switch resp & dataRespMask {
	case dataRespCRCErr:
		return CrcErrorToken, nil
	case dataRespWriteErr:
		return WriteErrorToken, nil
	case dataRespAccepted:
	default:
		return InvalidDataResponse, nil
	}

	notBusy, err := c.waitNotBusy(c.limits.WriteBusyPoll)
	if err != nil {
		return 0, err
	}
	if !notBusy {
		return CardBusyTimeout, nil
	}

	if err := sendGuardBytes(c.framer, c.limits.WriteGuardClocks); err != nil {
		return 0, err
	}
	return WriteSuccess, nil
}

// EraseRange erases blocks [start, end] inclusive.
func (c *Card) EraseRange(start, end uint32) (BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	r1, err := c.framer.Command(CMD32EraseWrBlkStartAdr, c.info.blockArg(start))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return withR1(blockKindSetStartAddrError, r1), nil
	}

	r1, err = c.framer.Command(CMD33EraseWrBlkEndAddr, c.info.blockArg(end))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return withR1(blockKindSetEndAddrError, r1), nil
	}

	r1, err = c.framer.Command(CMD38Erase, 0)
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return withR1(blockKindEraseError, r1), nil
	}

	notBusy, err := c.waitNotBusy(c.limits.EraseBusyPoll)
	if err != nil {
		return 0, err
	}
	if !notBusy {
		return EraseBusyTimeout, nil
	}
	return EraseSuccess, nil
}

// ReadMulti starts a CMD18 streaming read and fills each of bufs in order.
func (c *Card) ReadMulti(start uint32, bufs []*[512]byte) (BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	r1, err := c.framer.Command(CMD18ReadMultipleBlock, c.info.blockArg(start))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return makeR1BlockError(r1), nil
	}

	for _, buf := range bufs {
		timedOut, err := c.waitStartToken()
		if err != nil {
			return 0, err
		}
		if timedOut {
			return StartTokenTimeout, nil
		}
		for i := range buf {
			b, err := c.framer.rx()
			if err != nil {
				return 0, err
			}
			buf[i] = b
		}
		if _, err := c.framer.rx(); err != nil {
			return 0, err
		}
		if _, err := c.framer.rx(); err != nil {
			return 0, err
		}
	}

	if err := c.framer.SendCommand(CMD12StopTransmission, 0); err != nil {
		return 0, err
	}
	// The byte immediately following CMD12 is a stuff byte, not part of R1.
	if _, err := c.framer.rx(); err != nil {
		return 0, err
	}
	if _, err := c.framer.GetR1(); err != nil {
		return 0, err
	}
	return ReadSuccess, nil
}

// WriteMulti starts a CMD25 streaming write. It writes every block in bufs
// unless one fails, in which case it stops at the failing block but always
// closes the stream with the stop-transmit token and a guard window.
func (c *Card) WriteMulti(start uint32, bufs []*[512]byte) (BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	r1, err := c.framer.Command(CMD25WriteMultipleBlock, c.info.blockArg(start))
	if err != nil {
		return 0, err
	}
	if !r1.Ok() {
		return makeR1BlockError(r1), nil
	}

	outcome := WriteSuccess
	for _, buf := range bufs {
		if err := c.framer.tx(tokenStartBlockMulti); err != nil {
			return 0, err
		}
		for _, b := range buf {
			if err := c.framer.tx(b); err != nil {
				return 0, err
			}
		}
		if err := c.framer.tx(0xFF); err != nil {
			return 0, err
		}
		if err := c.framer.tx(0xFF); err != nil {
			return 0, err
		}

		resp, found, err := c.dataResponseToken()
		if err != nil {
			return 0, err
		}
		if !found {
			outcome = DataResponseTimeout
			break
		}
		switch resp & dataRespMask {
		case dataRespAccepted:
		case dataRespCRCErr:
			outcome = CrcErrorToken
		case dataRespWriteErr:
			outcome = WriteErrorToken
		default:
			outcome = InvalidDataResponse
		}
		if outcome != WriteSuccess {
			break
		}

		notBusy, err := c.waitNotBusy(c.limits.WriteBusyPoll)
		if err != nil {
			return 0, err
		}
		if !notBusy {
			outcome = CardBusyTimeout
			break
		}
	}

	if err := c.framer.tx(tokenStopTran); err != nil {
		return 0, err
	}
	if _, err := c.waitNotBusy(c.limits.WriteBusyPoll); err != nil {
		return 0, err
	}
	if err := sendGuardBytes(c.framer, c.limits.WriteGuardClocks); err != nil {
		return 0, err
	}
	return outcome, nil
}

// NumWellWritten uses ACMD22 to ask the card how many blocks of the last
// WriteMulti were actually committed.
func (c *Card) NumWellWritten() (uint32, BlockError, error) {
	c.framer.csAssert()
	defer c.framer.csDeassert()

	cmd55R1, acmdR1, err := c.framer.AppCommand(ACMD22SendNumWrBlocks, 0)
	if err != nil {
		return 0, 0, err
	}
	if cmd55R1.IllegalCommand() {
		return 0, makeR1BlockError(cmd55R1), nil
	}
	if !acmdR1.Ok() {
		return 0, makeR1BlockError(acmdR1), nil
	}

	timedOut, err := c.waitStartToken()
	if err != nil {
		return 0, 0, err
	}
	if timedOut {
		return 0, StartTokenTimeout, nil
	}

	var buf [4]byte
	for i := range buf {
		buf[i], err = c.framer.rx()
		if err != nil {
			return 0, 0, err
		}
	}
	if _, err := c.framer.rx(); err != nil {
		return 0, 0, err
	}
	if _, err := c.framer.rx(); err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), ReadSuccess, nil
}
