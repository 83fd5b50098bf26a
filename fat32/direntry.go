package fat32

import "encoding/binary"

// Attribute bits (byte 11 of a short entry).
const (
	attrReadOnly byte = 0x01
	attrHidden   byte = 0x02
	attrSystem   byte = 0x04
	attrVolumeID byte = 0x08
	attrDirect   byte = 0x10
	attrArchive  byte = 0x20
	attrLongName      = attrReadOnly | attrHidden | attrSystem | attrVolumeID
)

const (
	entryFree byte = 0xE5
	entryEnd  byte = 0x00
)

// DirEntry is the logical result of folding zero or more LFN entries into
// the short entry they precede — the unit everything above walkEntries
// deals in.
type DirEntry struct {
	ShortName    [11]byte
	LongName     string
	Attr         byte
	FirstCluster uint32
	Size         uint32
	CreateDate   uint16
	CreateTime   uint16
	AccessDate   uint16
	ModifyDate   uint16
	ModifyTime   uint16
}

func (d DirEntry) IsDirectory() bool { return d.Attr&attrDirect != 0 }
func (d DirEntry) IsHidden() bool    { return d.Attr&attrHidden != 0 }

func entryIsLongName(e []byte) bool { return e[11]&attrLongName == attrLongName }

func entryFirstCluster(e []byte) uint32 {
	hi := binary.LittleEndian.Uint16(e[20:22])
	lo := binary.LittleEndian.Uint16(e[26:28])
	return uint32(hi)<<16 | uint32(lo)
}

func shortEntryToDirEntry(e []byte, longName string) DirEntry {
	var sn [11]byte
	copy(sn[:], e[0:11])
	return DirEntry{
		ShortName:    sn,
		LongName:     longName,
		Attr:         e[11],
		FirstCluster: entryFirstCluster(e),
		Size:         binary.LittleEndian.Uint32(e[28:32]),
		CreateTime:   binary.LittleEndian.Uint16(e[14:16]),
		CreateDate:   binary.LittleEndian.Uint16(e[16:18]),
		AccessDate:   binary.LittleEndian.Uint16(e[18:20]),
		ModifyTime:   binary.LittleEndian.Uint16(e[22:24]),
		ModifyDate:   binary.LittleEndian.Uint16(e[24:26]),
	}
}

// isDotDot reports whether a short name is the ".." parent-directory entry
// every non-root directory carries, as opposed to the "." self entry.
func isDotDot(sn [11]byte) bool {
	return sn[0] == '.' && sn[1] == '.' && sn[2] == ' '
}
