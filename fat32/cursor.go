package fat32

import "strings"

// Cursor is the resolver's entire working set: the current directory's
// first cluster plus enough path bookkeeping to support "..".  Names are
// carried in both forms because a directory visited by its LFN and one
// visited by its 8.3 alias can legitimately print differently.
type Cursor struct {
	FirstCluster    uint32
	LongName        string
	ShortName       string
	LongParentPath  string
	ShortParentPath string
}

// RootCursor is the starting point of every resolution.
func RootCursor(geo Geometry) Cursor {
	return Cursor{
		FirstCluster:    geo.RootCluster,
		LongName:        "/",
		ShortName:       "/",
		LongParentPath:  "/",
		ShortParentPath: "/",
	}
}

// CD resolves name against cur's directory and returns the cursor for the
// subdirectory it names. It never mutates cur; on any non-Success Result
// the returned cursor equals cur unchanged.
func CD(dev BlockDevice, geo Geometry, cur Cursor, name string) (Cursor, Result, error) {
	if name == "." {
		return cur, Success, nil
	}
	if name == ".." {
		return cdUp(dev, geo, cur)
	}
	if !validateName(name) {
		return cur, InvalidDirName, nil
	}

	var target DirEntry
	matched, endOfDir, err := walkEntries(dev, geo, cur.FirstCluster, func(de DirEntry) (bool, error) {
		if !de.IsDirectory() {
			return false, nil
		}
		if matchDirName(de, name) {
			target = de
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		if r, ok := err.(Result); ok {
			return cur, r, nil
		}
		return cur, 0, err
	}
	if !matched {
		_ = endOfDir
		return cur, EndOfDirectory, nil
	}

	next := Cursor{
		FirstCluster:    target.FirstCluster,
		LongName:        displayName(target),
		ShortName:       strings.TrimRight(string(target.ShortName[0:8]), " "),
		LongParentPath:  joinParent(cur.LongParentPath, cur.LongName),
		ShortParentPath: joinParent(cur.ShortParentPath, cur.ShortName),
	}
	return next, Success, nil
}

func cdUp(dev BlockDevice, geo Geometry, cur Cursor) (Cursor, Result, error) {
	if cur.FirstCluster == geo.RootCluster {
		return cur, Success, nil
	}

	var parentCluster uint32
	found := false
	_, _, err := walkEntries(dev, geo, cur.FirstCluster, func(de DirEntry) (bool, error) {
		if de.IsDirectory() && isDotDot(de.ShortName) {
			parentCluster = de.FirstCluster
			found = true
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		if r, ok := err.(Result); ok {
			return cur, r, nil
		}
		return cur, 0, err
	}
	if !found {
		return cur, CorruptFatEntry, nil
	}
	if parentCluster == 0 {
		return RootCursor(geo), Success, nil
	}

	newLongParent, newLongName := popLastSegment(cur.LongParentPath)
	newShortParent, newShortName := popLastSegment(cur.ShortParentPath)
	next := Cursor{
		FirstCluster:    parentCluster,
		LongName:        newLongName,
		ShortName:       newShortName,
		LongParentPath:  newLongParent,
		ShortParentPath: newShortParent,
	}
	return next, Success, nil
}

func displayName(de DirEntry) string {
	if de.LongName != "" {
		return de.LongName
	}
	return strings.TrimRight(string(de.ShortName[0:8]), " ")
}

// joinParent appends name to parent to form the path a child cursor will
// record as its own parent path. The root name is never concatenated since
// it's implicit in the leading "/".
func joinParent(parent, name string) string {
	if name == "/" {
		return parent
	}
	return parent + name + "/"
}

// popLastSegment splits path at its final "/"-delimited component, returning
// the remainder (still slash-terminated) and the component itself.
func popLastSegment(path string) (remaining, segment string) {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" {
		return "/", ""
	}
	idx := strings.LastIndexByte(trimmed, '/')
	segment = trimmed[idx+1:]
	remaining = trimmed[:idx+1]
	if remaining == "" {
		remaining = "/"
	}
	return remaining, segment
}
