package sdspi

// SD command indices used in SPI mode. ACMDxx values are sent as CMD55
// followed by the numeric command index below; the framer does not
// auto-prefix ACMDs, callers compose the CMD55+ACMD sequence themselves so
// the R1 from CMD55 stays inspectable.
const (
	CMD0GoIdleState         = 0
	CMD8SendIfCond          = 8
	CMD9SendCSD             = 9
	CMD10SendCID            = 10
	CMD12StopTransmission   = 12
	CMD16SetBlockLen        = 16
	CMD17ReadSingleBlock    = 17
	CMD18ReadMultipleBlock  = 18
	CMD24WriteBlock         = 24
	CMD25WriteMultipleBlock = 25
	CMD32EraseWrBlkStartAdr = 32
	CMD33EraseWrBlkEndAddr  = 33
	CMD38Erase              = 38
	CMD55AppCmd             = 55
	CMD58ReadOCR            = 58
	CMD59CrcOnOff           = 59

	ACMD22SendNumWrBlocks = 22
	ACMD41SDAppOpCond     = 41
)

// Block transfer tokens (§6). StartBlockToken is exported because sdcsd's
// single CMD9 register read needs it too.
const (
	StartBlockToken      byte = 0xFE // single-block read/write & CMD18 stream
	tokenStartBlock           = StartBlockToken
	tokenStartBlockMulti byte = 0xFC // CMD25 multi-block write, per-block
	tokenStopTran        byte = 0xFD // CMD25 multi-block write, stream end

	dataRespMask     byte = 0x1F
	dataRespAccepted byte = 0x05
	dataRespCRCErr   byte = 0x0B
	dataRespWriteErr byte = 0x0D
)
