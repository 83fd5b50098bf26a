package fat32

import "testing"

func TestLoadGeometryValid(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)

	geo, err := LoadGeometry(dev)
	if err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	want := sampleGeometry()
	if geo != want {
		t.Errorf("geo = %+v, want %+v", geo, want)
	}
}

func TestLoadGeometryRejectsBadSignature(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)
	buf := dev.sectors[0]
	buf[511] = 0x00
	dev.set(0, buf)

	if _, err := LoadGeometry(dev); err != CorruptBootSector {
		t.Fatalf("err = %v, want CorruptBootSector", err)
	}
}

func TestLoadGeometryRejectsNonPowerOfTwoSectorsPerCluster(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)
	buf := dev.sectors[0]
	buf[13] = 3
	dev.set(0, buf)

	if _, err := LoadGeometry(dev); err != CorruptBootSector {
		t.Fatalf("err = %v, want CorruptBootSector", err)
	}
}

func TestLoadGeometryRejectsWrongSectorSize(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)
	buf := dev.sectors[0]
	buf[11], buf[12] = 0x00, 0x04 // 1024
	dev.set(0, buf)

	if _, err := LoadGeometry(dev); err != CorruptBootSector {
		t.Fatalf("err = %v, want CorruptBootSector", err)
	}
}

func TestDataRegionFirstSector(t *testing.T) {
	geo := sampleGeometry()
	if got := geo.DataRegionFirstSector(); got != 2 {
		t.Errorf("DataRegionFirstSector = %d, want 2", got)
	}
	if got := geo.SectorOfCluster(2, 0); got != 2 {
		t.Errorf("SectorOfCluster(2,0) = %d, want 2", got)
	}
	if got := geo.SectorOfCluster(3, 0); got != 3 {
		t.Errorf("SectorOfCluster(3,0) = %d, want 3", got)
	}
}
