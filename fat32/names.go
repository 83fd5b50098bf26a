package fat32

import "strings"

const invalidNameChars = `\/:*?"<>|`

// validateName rejects names FAT32 short/long entries cannot represent:
// empty, leading-space, all-space, or containing a reserved character.
func validateName(name string) bool {
	if name == "" {
		return false
	}
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.HasPrefix(name, " ") {
		return false
	}
	return !strings.ContainsAny(name, invalidNameChars)
}

// pack8 upper-cases and space-pads name (no extension) into an 8-byte field,
// used to match directory names against a short entry's bytes 0..7.
func pack8(name string) [8]byte {
	var out [8]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[:], strings.ToUpper(name))
	return out
}

// pack83 splits name on its last '.', upper-cases and space-pads base (8)
// and extension (3) into an 11-byte field matching a short entry's bytes
// 0..10.
func pack83(name string) [11]byte {
	base, ext := name, ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[0:8], strings.ToUpper(base))
	copy(out[8:11], strings.ToUpper(ext))
	return out
}

// matchDirName applies §4.8's matching rule: an LFN always wins when one
// preceded the short entry; otherwise the name must fit 8 characters and
// is compared against the short entry's base field only (directories
// conventionally carry no extension).
func matchDirName(de DirEntry, name string) bool {
	if de.LongName != "" {
		return de.LongName == name
	}
	if len(name) > 8 {
		return false
	}
	want := pack8(name)
	return want == [8]byte(de.ShortName[0:8])
}

// matchFileName is matchDirName's counterpart for read_file, where the
// short-name fallback must also account for the 3-character extension.
func matchFileName(de DirEntry, name string) bool {
	if de.LongName != "" {
		return de.LongName == name
	}
	if len(name) > 12 {
		return false
	}
	return pack83(name) == de.ShortName
}
