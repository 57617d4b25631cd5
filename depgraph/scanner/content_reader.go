package scanner

import "os"

// ContentReader is a function that reads file content given a file path.
// This lets the caller control how files are read (filesystem, snapshot, tests).
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files straight from disk.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}
