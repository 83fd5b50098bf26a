package fat32

import (
	"fmt"
	"io"
	"strings"
)

// ListFlags selects which fields List prints for each visible entry.
type ListFlags uint8

const (
	ListLongName ListFlags = 1 << iota
	ListShortName
	ListHidden
	ListCreation
	ListLastAccess
	ListLastModified
)

// List walks cur's directory once, writing one line per visible entry to w.
// Entries with the hidden attribute are skipped unless ListHidden is set.
func List(dev BlockDevice, geo Geometry, cur Cursor, flags ListFlags, w io.Writer) (Result, error) {
	_, _, err := walkEntries(dev, geo, cur.FirstCluster, func(de DirEntry) (bool, error) {
		if de.IsHidden() && flags&ListHidden == 0 {
			return false, nil
		}
		writeListLine(w, de, flags)
		return false, nil
	})
	if err != nil {
		if r, ok := err.(Result); ok {
			return r, nil
		}
		return 0, err
	}
	return Success, nil
}

func writeListLine(w io.Writer, de DirEntry, flags ListFlags) {
	name := displayName(de)
	if flags&ListLongName != 0 && de.LongName != "" {
		name = de.LongName
	}
	kind := "F"
	if de.IsDirectory() {
		kind = "D"
	}
	// Size prints in whole kilobytes, floor(size/1000).
	fmt.Fprintf(w, "%s %8d %s", kind, de.Size/1000, name)

	if flags&ListShortName != 0 && de.LongName != "" {
		fmt.Fprintf(w, " (%s)", strings.TrimRight(string(de.ShortName[0:8]), " "))
	}
	if flags&ListCreation != 0 {
		y, mo, d := decodeFATDate(de.CreateDate)
		h, mi, s := decodeFATTime(de.CreateTime)
		fmt.Fprintf(w, " created=%04d-%02d-%02d %02d:%02d:%02d", y, mo, d, h, mi, s)
	}
	if flags&ListLastAccess != 0 {
		y, mo, d := decodeFATDate(de.AccessDate)
		fmt.Fprintf(w, " accessed=%04d-%02d-%02d", y, mo, d)
	}
	if flags&ListLastModified != 0 {
		y, mo, d := decodeFATDate(de.ModifyDate)
		h, mi, s := decodeFATTime(de.ModifyTime)
		fmt.Fprintf(w, " modified=%04d-%02d-%02d %02d:%02d:%02d", y, mo, d, h, mi, s)
	}
	fmt.Fprintln(w)
}

// ReadFile locates name in cur's directory and streams its cluster chain to
// w, dropping NUL bytes and translating '\n' to "\r\n" on the way out;
// every other byte is written unchanged. It does not
// truncate at the short entry's recorded file size — the bare-metal source
// this is distilled from dumps whole clusters, relying on the trailing
// region being zero-padded, and this keeps the same behavior.
func ReadFile(dev BlockDevice, geo Geometry, cur Cursor, name string, w io.Writer) (Result, error) {
	if !validateName(name) {
		return InvalidFileName, nil
	}

	var target DirEntry
	matched, _, err := walkEntries(dev, geo, cur.FirstCluster, func(de DirEntry) (bool, error) {
		if matchFileName(de, name) {
			target = de
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		if r, ok := err.(Result); ok {
			return r, nil
		}
		return 0, err
	}
	if !matched {
		return FileNotFound, nil
	}

	cluster := target.FirstCluster
	for {
		for k := uint32(0); k < uint32(geo.SectorsPerCluster); k++ {
			var buf [512]byte
			if err := dev.ReadSector(geo.SectorOfCluster(cluster, k), &buf); err != nil {
				return 0, err
			}
			if err := writeFileSector(w, buf[:]); err != nil {
				return 0, err
			}
		}
		nc, err := NextCluster(dev, geo, cluster)
		if err != nil {
			return 0, err
		}
		if IsEndOfChain(nc) {
			break
		}
		cluster = nc
	}
	return Success, nil
}

func writeFileSector(w io.Writer, buf []byte) error {
	for _, b := range buf {
		if b == 0 {
			continue
		}
		if b == '\n' {
			if _, err := w.Write([]byte{'\r', '\n'}); err != nil {
				return err
			}
			continue
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return err
		}
	}
	return nil
}
