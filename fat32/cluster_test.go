package fat32

import "testing"

func TestNextCluster(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)
	geo := sampleGeometry()

	setFATEntry(dev, geo, 2, 0x0FFFFFFF) // root is end-of-chain
	setFATEntry(dev, geo, 5, 8)
	setFATEntry(dev, geo, 8, eocMin)

	next, err := NextCluster(dev, geo, 5)
	if err != nil {
		t.Fatalf("NextCluster: %v", err)
	}
	if next != 8 {
		t.Errorf("next = %d, want 8", next)
	}

	next, err = NextCluster(dev, geo, 8)
	if err != nil {
		t.Fatalf("NextCluster: %v", err)
	}
	if !IsEndOfChain(next) {
		t.Errorf("next = 0x%X, want end-of-chain", next)
	}
}

func TestIsEndOfChainBoundary(t *testing.T) {
	cases := []struct {
		entry uint32
		want  bool
	}{
		{0x00000002, false},
		{eocMin - 1, false},
		{eocMin, true},
		{0x0FFFFFFF, true},
	}
	for _, c := range cases {
		if got := IsEndOfChain(c.entry); got != c.want {
			t.Errorf("IsEndOfChain(0x%X) = %v, want %v", c.entry, got, c.want)
		}
	}
}

func TestNextClusterMasksReservedBits(t *testing.T) {
	dev := newMemDevice()
	writeBootSector(dev)
	geo := sampleGeometry()

	fatSector := uint32(1)
	buf := dev.sectors[fatSector]
	buf[4*3+0] = 0x34
	buf[4*3+1] = 0x12
	buf[4*3+2] = 0x00
	buf[4*3+3] = 0xF0 // top nibble reserved, must be masked off
	dev.set(fatSector, buf)

	next, err := NextCluster(dev, geo, 3)
	if err != nil {
		t.Fatalf("NextCluster: %v", err)
	}
	if next != 0x1234 {
		t.Errorf("next = 0x%X, want 0x1234", next)
	}
}
