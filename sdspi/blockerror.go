package sdspi

// BlockError reports the outcome of a block read/write/erase operation. It
// occupies bits 8-15 of a 16-bit outcome word; the low byte carries the
// offending R1 when the kind is blockKindR1Error, blockKindSetStartAddrError,
// blockKindSetEndAddrError or blockKindEraseError, and is zero otherwise.
type BlockError uint16

const (
	blockKindSuccess byte = iota
	blockKindStartTokenTimeout
	blockKindR1Error
	blockKindCrcErrorToken
	blockKindWriteErrorToken
	blockKindInvalidDataResponse
	blockKindDataResponseTimeout
	blockKindCardBusyTimeout
	blockKindSetStartAddrError
	blockKindSetEndAddrError
	blockKindEraseError
	blockKindEraseBusyTimeout
)

const (
	ReadSuccess  BlockError = BlockError(blockKindSuccess) << 8
	WriteSuccess BlockError = BlockError(blockKindSuccess) << 8
	EraseSuccess BlockError = BlockError(blockKindSuccess) << 8

	StartTokenTimeout    BlockError = BlockError(blockKindStartTokenTimeout) << 8
	CrcErrorToken        BlockError = BlockError(blockKindCrcErrorToken) << 8
	WriteErrorToken      BlockError = BlockError(blockKindWriteErrorToken) << 8
	InvalidDataResponse  BlockError = BlockError(blockKindInvalidDataResponse) << 8
	DataResponseTimeout  BlockError = BlockError(blockKindDataResponseTimeout) << 8
	CardBusyTimeout      BlockError = BlockError(blockKindCardBusyTimeout) << 8
	SetStartAddrError    BlockError = BlockError(blockKindSetStartAddrError) << 8
	SetEndAddrError      BlockError = BlockError(blockKindSetEndAddrError) << 8
	EraseError           BlockError = BlockError(blockKindEraseError) << 8
	EraseBusyTimeout     BlockError = BlockError(blockKindEraseBusyTimeout) << 8
)

// Kind returns the operation-level outcome, stripped of any carried R1.
func (e BlockError) Kind() byte { return byte(e >> 8) }

// R1 returns the R1 byte carried in the low byte of the outcome.
func (e BlockError) R1() R1 { return R1(e & 0xFF) }

// Ok reports whether the operation succeeded.
func (e BlockError) Ok() bool { return e.Kind() == blockKindSuccess }

func (e BlockError) Error() string {
	if e.Kind() == blockKindR1Error {
		return "block: r1 error " + e.R1().Error()
	}
	switch e.Kind() {
	case blockKindSuccess:
		return "block: ok"
	case blockKindStartTokenTimeout:
		return "block: start token timeout"
	case blockKindCrcErrorToken:
		return "block: crc error token"
	case blockKindWriteErrorToken:
		return "block: write error token"
	case blockKindInvalidDataResponse:
		return "block: invalid data response token"
	case blockKindDataResponseTimeout:
		return "block: data response timeout"
	case blockKindCardBusyTimeout:
		return "block: card busy timeout"
	case blockKindSetStartAddrError:
		return "block: set erase start address error"
	case blockKindSetEndAddrError:
		return "block: set erase end address error"
	case blockKindEraseError:
		return "block: erase error"
	case blockKindEraseBusyTimeout:
		return "block: erase busy timeout"
	default:
		return "block: unknown error"
	}
}
