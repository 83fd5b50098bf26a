package fat32

// memDevice is an in-memory BlockDevice fixture: sectors live in a map keyed
// by LBA, and a sector never set reads back as all zeros.
type memDevice struct {
	sectors map[uint32][512]byte
}

func newMemDevice() *memDevice {
	return &memDevice{sectors: make(map[uint32][512]byte)}
}

func (m *memDevice) ReadSector(lba uint32, buf *[512]byte) error {
	*buf = m.sectors[lba]
	return nil
}

func (m *memDevice) set(lba uint32, data [512]byte) {
	m.sectors[lba] = data
}

// a sample geometry: 1 reserved sector, 1 FAT of 1 sector, 1 sector per
// cluster, root directory at cluster 2.
func sampleGeometry() Geometry {
	return Geometry{
		BytesPerSector:      512,
		SectorsPerCluster:   1,
		ReservedSectorCount: 1,
		NumFATs:             1,
		FATSizeSectors:      1,
		RootCluster:         2,
	}
}

// writeBootSector installs a minimal valid BPB matching sampleGeometry at
// LBA 0.
func writeBootSector(dev *memDevice) {
	var buf [512]byte
	buf[11], buf[12] = 0x00, 0x02 // bytes per sector = 512
	buf[13] = 1                  // sectors per cluster
	buf[14], buf[15] = 1, 0      // reserved sector count
	buf[16] = 1                  // num FATs
	buf[36], buf[37], buf[38], buf[39] = 1, 0, 0, 0 // FAT size sectors
	buf[44], buf[45], buf[46], buf[47] = 2, 0, 0, 0 // root cluster
	buf[510], buf[511] = 0x55, 0xAA
	dev.set(0, buf)
}

// setFATEntry writes cluster's 28-bit next-cluster value into the single
// FAT sector at LBA 1.
func setFATEntry(dev *memDevice, geo Geometry, cluster, next uint32) {
	fatSector := uint32(geo.ReservedSectorCount) + cluster/entriesPerFATSector
	offset := 4 * (cluster % entriesPerFATSector)
	buf := dev.sectors[fatSector]
	buf[offset] = byte(next)
	buf[offset+1] = byte(next >> 8)
	buf[offset+2] = byte(next >> 16)
	buf[offset+3] = byte(next>>24) & 0x0F
	dev.set(fatSector, buf)
}

// shortEntry packs a minimal 32-byte short directory entry.
func shortEntry(name83 [11]byte, attr byte, firstCluster, size uint32) [32]byte {
	var e [32]byte
	copy(e[0:11], name83[:])
	e[11] = attr
	e[20] = byte(firstCluster >> 16)
	e[21] = byte(firstCluster >> 24)
	e[26] = byte(firstCluster)
	e[27] = byte(firstCluster >> 8)
	e[28] = byte(size)
	e[29] = byte(size >> 8)
	e[30] = byte(size >> 16)
	e[31] = byte(size >> 24)
	return e
}
