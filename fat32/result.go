// Package fat32 walks cluster chains in a FAT32 data region, decodes short
// and long directory entries, and implements read-only cd/list/read_file
// against them. It knows nothing about how the underlying card works — it
// only depends on the BlockDevice contract in this package.
package fat32

// Result is the outcome of a FAT32 operation (§7 "FAT kinds").
type Result uint8

const (
	Success Result = iota
	EndOfDirectory
	InvalidFileName
	InvalidDirName
	FileNotFound
	DirNotFound
	CorruptFatEntry
	EndOfFile
	CorruptBootSector
)

func (r Result) Error() string {
	switch r {
	case Success:
		return "fat32: ok"
	case EndOfDirectory:
		return "fat32: end of directory"
	case InvalidFileName:
		return "fat32: invalid file name"
	case InvalidDirName:
		return "fat32: invalid directory name"
	case FileNotFound:
		return "fat32: file not found"
	case DirNotFound:
		return "fat32: directory not found"
	case CorruptFatEntry:
		return "fat32: corrupt directory entry"
	case EndOfFile:
		return "fat32: end of file"
	case CorruptBootSector:
		return "fat32: corrupt boot sector"
	default:
		return "fat32: unknown result"
	}
}

// Ok reports whether the operation succeeded.
func (r Result) Ok() bool { return r == Success }
