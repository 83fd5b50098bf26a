package fat32

// BlockDevice is the only thing this package depends on: a 512-byte sector
// reader. Callers hand in whatever backs the FAT32 volume — an sdspi.Card,
// a memory-backed fixture in tests, anything.
type BlockDevice interface {
	ReadSector(lba uint32, buf *[512]byte) error
}
