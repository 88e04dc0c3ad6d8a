package domain

import "go.trai.ch/zerr"

// FileState is the declared or discovered state of a filesystem path.
type FileState string

const (
	// FileStateAbsent means the path does not exist (or must be removed).
	FileStateAbsent FileState = "absent"
	// FileStateFile means the path is a regular file.
	FileStateFile FileState = "file"
	// FileStateDirectory means the path is a directory.
	FileStateDirectory FileState = "directory"
	// FileStateLink means the path is a symbolic link.
	FileStateLink FileState = "link"
	// FileStateHard means the path is a hard link (regular file with link count > 1).
	FileStateHard FileState = "hard"
	// FileStateTouch is a declared-only target: create an empty file or
	// bump timestamps on an existing node.
	FileStateTouch FileState = "touch"
)

// ParseFileState validates a declared state string.
func ParseFileState(s string) (FileState, error) {
	switch FileState(s) {
	case FileStateAbsent, FileStateFile, FileStateDirectory, FileStateLink, FileStateHard, FileStateTouch:
		return FileState(s), nil
	default:
		return "", zerr.With(ErrUnknownFileState, "state", s)
	}
}
