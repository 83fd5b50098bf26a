package fat32

// dirWalker streams 32-byte directory entries across sector and cluster
// boundaries. 512 divides evenly by 32, so no single entry ever straddles a
// sector; only a run of LFN entries plus its short entry can span sectors,
// and that's handled one level up in walkEntries.
type dirWalker struct {
	dev             BlockDevice
	geo             Geometry
	cluster         uint32
	sectorInCluster uint32
	buf             [512]byte
	pos             uint32
}

func newDirWalker(dev BlockDevice, geo Geometry, firstCluster uint32) (*dirWalker, error) {
	w := &dirWalker{dev: dev, geo: geo, cluster: firstCluster}
	if err := dev.ReadSector(geo.SectorOfCluster(firstCluster, 0), &w.buf); err != nil {
		return nil, err
	}
	return w, nil
}

// next returns the next physical entry. ok is false once the cluster chain
// reaches end-of-chain with no further sectors to read.
func (w *dirWalker) next() (e [32]byte, ok bool, err error) {
	if w.pos >= 512 {
		w.sectorInCluster++
		if w.sectorInCluster >= uint32(w.geo.SectorsPerCluster) {
			nc, err := NextCluster(w.dev, w.geo, w.cluster)
			if err != nil {
				return e, false, err
			}
			if IsEndOfChain(nc) {
				return e, false, nil
			}
			w.cluster = nc
			w.sectorInCluster = 0
		}
		if err := w.dev.ReadSector(w.geo.SectorOfCluster(w.cluster, w.sectorInCluster), &w.buf); err != nil {
			return e, false, err
		}
		w.pos = 0
	}
	copy(e[:], w.buf[w.pos:w.pos+32])
	w.pos += 32
	return e, true, nil
}

// walkEntries folds the raw entry stream of firstCluster's directory into
// logical DirEntry values and feeds them to visit in order. visit returning
// found=true stops the walk early (matched=true, no further reads). A 0x00
// entry or an end-of-chain cluster both end the walk normally (matched=
// false, endOfDir=true) — list() treats that as "nothing more to print",
// cd()/readFile() as "no such name".
func walkEntries(dev BlockDevice, geo Geometry, firstCluster uint32, visit func(DirEntry) (bool, error)) (matched, endOfDir bool, err error) {
	w, err := newDirWalker(dev, geo, firstCluster)
	if err != nil {
		return false, false, err
	}

	var pending [][32]byte
	for {
		e, ok, err := w.next()
		if err != nil {
			return false, false, err
		}
		if !ok || e[0] == entryEnd {
			return false, true, nil
		}
		if e[0] == entryFree {
			pending = pending[:0]
			continue
		}
		if entryIsLongName(e[:]) {
			pending = append(pending, e)
			continue
		}

		var longName string
		if len(pending) > 0 {
			if lfnOrdinal(pending[0][:]) != byte(len(pending)) || !lfnIsLast(pending[0][:]) {
				return false, false, CorruptFatEntry
			}
			ordered := make([][]byte, len(pending))
			for i, pe := range pending {
				cp := pe
				ordered[len(pending)-1-i] = cp[:]
			}
			longName = decodeLFNEntries(ordered)
			pending = pending[:0]
		}

		de := shortEntryToDirEntry(e[:], longName)
		found, verr := visit(de)
		if verr != nil {
			return false, false, verr
		}
		if found {
			return true, false, nil
		}
	}
}
