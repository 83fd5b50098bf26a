package fat32

import "testing"

// twoSectorGeometry is a root directory spanning two sectors in one
// two-sector cluster, used to exercise LFN runs that straddle a sector.
func twoSectorGeometry() Geometry {
	return Geometry{
		BytesPerSector:      512,
		SectorsPerCluster:   2,
		ReservedSectorCount: 1,
		NumFATs:             1,
		FATSizeSectors:      1,
		RootCluster:         2,
	}
}

func TestWalkEntriesStopsAtEndMarker(t *testing.T) {
	dev := newMemDevice()
	geo := sampleGeometry()

	var buf [512]byte
	e := shortEntry(pack83("ONE"), attrArchive, 5, 10)
	copy(buf[0:32], e[:])
	// buf[32] stays 0x00 (entryEnd), terminating the scan after one entry.
	dev.set(2, buf)

	count := 0
	_, endOfDir, err := walkEntries(dev, geo, 2, func(de DirEntry) (bool, error) {
		count++
		return false, nil
	})
	if err != nil {
		t.Fatalf("walkEntries: %v", err)
	}
	if !endOfDir {
		t.Error("expected endOfDir = true")
	}
	if count != 1 {
		t.Errorf("visited %d entries, want 1", count)
	}
}

func TestWalkEntriesSkipsFreeEntries(t *testing.T) {
	dev := newMemDevice()
	geo := sampleGeometry()

	var buf [512]byte
	free := shortEntry(pack83("DEAD"), attrArchive, 0, 0)
	free[0] = entryFree
	copy(buf[0:32], free[:])
	live := shortEntry(pack83("LIVE"), attrArchive, 6, 20)
	copy(buf[32:64], live[:])
	dev.set(2, buf)

	var names []string
	_, _, err := walkEntries(dev, geo, 2, func(de DirEntry) (bool, error) {
		names = append(names, string(de.ShortName[:]))
		return false, nil
	})
	if err != nil {
		t.Fatalf("walkEntries: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("visited %d entries, want 1", len(names))
	}
}

func TestWalkEntriesReconstructsSingleSectorLFN(t *testing.T) {
	dev := newMemDevice()
	geo := sampleGeometry()

	var buf [512]byte
	lfn := lfnEntry(1, true, "hello.txt")
	copy(buf[0:32], lfn[:])
	sfn := shortEntry(pack83("HELLO.TXT"), attrArchive, 10, 123)
	copy(buf[32:64], sfn[:])
	dev.set(2, buf)

	var got DirEntry
	matched, _, err := walkEntries(dev, geo, 2, func(de DirEntry) (bool, error) {
		got = de
		return true, nil
	})
	if err != nil {
		t.Fatalf("walkEntries: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}
	if got.LongName != "hello.txt" {
		t.Errorf("LongName = %q, want %q", got.LongName, "hello.txt")
	}
	if got.FirstCluster != 10 || got.Size != 123 {
		t.Errorf("FirstCluster/Size = %d/%d, want 10/123", got.FirstCluster, got.Size)
	}
}

// TestWalkEntriesReconstructsCrossSectorLFN places the LFN entry in the
// last slot of sector 0 and its short entry in the first slot of sector 1,
// confirming the walker's transparent sector crossing preserves the run.
func TestWalkEntriesReconstructsCrossSectorLFN(t *testing.T) {
	dev := newMemDevice()
	geo := twoSectorGeometry()

	var sector0 [512]byte
	for i := 0; i < 480; i += 32 {
		sector0[i] = entryFree
	}
	lfn := lfnEntry(1, true, "hello.txt")
	copy(sector0[480:512], lfn[:])
	dev.set(2, sector0)

	var sector1 [512]byte
	sfn := shortEntry(pack83("HELLO.TXT"), attrArchive, 10, 123)
	copy(sector1[0:32], sfn[:])
	dev.set(3, sector1)

	var got DirEntry
	matched, _, err := walkEntries(dev, geo, 2, func(de DirEntry) (bool, error) {
		got = de
		return true, nil
	})
	if err != nil {
		t.Fatalf("walkEntries: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}
	if got.LongName != "hello.txt" {
		t.Errorf("LongName = %q, want %q", got.LongName, "hello.txt")
	}
}

func TestWalkEntriesDetectsCorruptLFNChain(t *testing.T) {
	dev := newMemDevice()
	geo := sampleGeometry()

	var buf [512]byte
	// Ordinal 2 with no last-entry flag, immediately followed by a short
	// entry: the chain is missing its ordinal-1 member.
	lfn := lfnEntry(2, false, "broken.txt")
	copy(buf[0:32], lfn[:])
	sfn := shortEntry(pack83("BROKEN.TXT"), attrArchive, 11, 1)
	copy(buf[32:64], sfn[:])
	dev.set(2, buf)

	_, _, err := walkEntries(dev, geo, 2, func(de DirEntry) (bool, error) {
		return true, nil
	})
	if err != CorruptFatEntry {
		t.Fatalf("err = %v, want CorruptFatEntry", err)
	}
}

// lfnEntry builds a single-entry LFN run encoding name (assumed to fit
// within 13 UCS-2 code units) at the given 1-based ordinal.
func lfnEntry(ordinal byte, last bool, name string) [32]byte {
	var e [32]byte
	e[0] = ordinal
	if last {
		e[0] |= 0x40
	}
	e[11] = attrLongName
	units := make([]uint16, 0, 13)
	for _, r := range name {
		units = append(units, uint16(r))
	}
	units = append(units, 0)
	for len(units) < 13 {
		units = append(units, 0xFFFF)
	}
	pos := 0
	write := func(off int, n int) {
		for i := 0; i < n; i++ {
			e[off+2*i] = byte(units[pos])
			e[off+2*i+1] = byte(units[pos] >> 8)
			pos++
		}
	}
	write(1, 5)
	write(14, 6)
	write(28, 2)
	return e
}
