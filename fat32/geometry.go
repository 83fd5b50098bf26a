package fat32

import "encoding/binary"

// Geometry is the BIOS Parameter Block fields this package needs, loaded
// once at mount time and held for the lifetime of the volume (§4.6).
type Geometry struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumFATs             uint8
	FATSizeSectors      uint32
	RootCluster         uint32
}

// DataRegionFirstSector is the LBA of cluster 2, computed from the reserved
// sector count and the FAT sizes on each call.
func (g Geometry) DataRegionFirstSector() uint32 {
	return uint32(g.ReservedSectorCount) + uint32(g.NumFATs)*g.FATSizeSectors
}

// SectorOfCluster maps (cluster, sector-within-cluster) to an absolute LBA.
// Clusters are numbered from 2; sectorInCluster must be < SectorsPerCluster.
func (g Geometry) SectorOfCluster(cluster, sectorInCluster uint32) uint32 {
	return g.DataRegionFirstSector() + (cluster-2)*uint32(g.SectorsPerCluster) + sectorInCluster
}

// LoadGeometry reads LBA 0 and extracts the BPB fields (§4.6). It returns
// CorruptBootSector unless the 0x55AA boot signature is present, the sector
// size is 512, sectors per cluster is a nonzero power of two, the reserved
// sector count, FAT count and FAT size are nonzero, and the root cluster is
// at least 2.
func LoadGeometry(dev BlockDevice) (Geometry, error) {
	var buf [512]byte
	if err := dev.ReadSector(0, &buf); err != nil {
		return Geometry{}, err
	}
	if buf[510] != 0x55 || buf[511] != 0xAA {
		return Geometry{}, CorruptBootSector
	}

	bytesPerSector := binary.LittleEndian.Uint16(buf[11:13])
	if bytesPerSector != 512 {
		return Geometry{}, CorruptBootSector
	}

	sectorsPerCluster := buf[13]
	if sectorsPerCluster == 0 || sectorsPerCluster&(sectorsPerCluster-1) != 0 {
		return Geometry{}, CorruptBootSector
	}

	g := Geometry{
		BytesPerSector:      bytesPerSector,
		SectorsPerCluster:   sectorsPerCluster,
		ReservedSectorCount: binary.LittleEndian.Uint16(buf[14:16]),
		NumFATs:             buf[16],
		FATSizeSectors:      binary.LittleEndian.Uint32(buf[36:40]),
		RootCluster:         binary.LittleEndian.Uint32(buf[44:48]),
	}
	if g.ReservedSectorCount == 0 || g.NumFATs == 0 || g.FATSizeSectors == 0 || g.RootCluster < 2 {
		return Geometry{}, CorruptBootSector
	}
	return g, nil
}
