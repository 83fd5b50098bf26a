package sdspi

// InitError reports which step of the bring-up state machine (§4.3) failed.
// It occupies bits 8-19 of a 32-bit outcome word; the low byte always
// carries the last R1 seen, so callers can triage a failure without a
// second round-trip.
type InitError uint32

const (
	InitSuccess InitError = 0

	InitFailedGoIdleState   InitError = 1 << 8
	InitFailedSendIfCond    InitError = 1 << 9
	InitUnsupportedCardType InitError = 1 << 10
	InitFailedCrcOnOff      InitError = 1 << 11
	InitFailedAppCmd        InitError = 1 << 12
	InitFailedAcmd41        InitError = 1 << 13
	InitOutOfIdleTimeout    InitError = 1 << 14
	InitFailedReadOCR       InitError = 1 << 15
	InitPowerUpNotComplete  InitError = 1 << 16
)

const initKindMask InitError = 0x000FFF00

func makeInitError(kind InitError, r1 R1) InitError {
	return (kind & initKindMask) | InitError(r1)
}

// LastR1 returns the R1 response captured in the low byte of the outcome.
func (e InitError) LastR1() R1 { return R1(e & 0xFF) }

// Ok reports whether bring-up completed without error.
func (e InitError) Ok() bool { return e&initKindMask == 0 }

func (e InitError) Error() string {
	var kind string
	switch e & initKindMask {
	case 0:
		return "init: ok"
	case InitFailedGoIdleState:
		kind = "failed go-idle"
	case InitFailedSendIfCond:
		kind = "failed send-if-cond"
	case InitUnsupportedCardType:
		kind = "unsupported card type"
	case InitFailedCrcOnOff:
		kind = "failed crc on/off"
	case InitFailedAppCmd:
		kind = "failed app command"
	case InitFailedAcmd41:
		kind = "failed acmd41"
	case InitOutOfIdleTimeout:
		kind = "out of idle timeout"
	case InitFailedReadOCR:
		kind = "failed read ocr"
	case InitPowerUpNotComplete:
		kind = "power-up not complete"
	default:
		kind = "unknown init error"
	}
	return "init: " + kind + " (" + e.LastR1().Error() + ")"
}
