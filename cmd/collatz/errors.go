package main

import "fmt"

// FileError reports a failed file operation.
type FileError struct {
	// Op is the operation that failed: open, create, encode, decode, verify or close.
	Op string

	// Path is the file involved.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
