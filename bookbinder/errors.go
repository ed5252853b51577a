package bookbinder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by chapter and book assembly.
var (
	// ErrInputPath is returned when the book root is missing or not a directory.
	ErrInputPath = errors.New("input path is not a readable directory")

	// ErrFileAccess is returned when a source file is missing or unreadable.
	ErrFileAccess = errors.New("file is not a readable regular file")

	// ErrPathScope is returned when a file lies outside the declared content root.
	ErrPathScope = errors.New("file lies outside the content root")

	// ErrEmptyInput is returned when a book root contains no eligible files.
	ErrEmptyInput = errors.New("no eligible files found")

	// ErrVolumeCount is returned when the volume count is less than one or
	// exceeds the number of chapters, which would leave a volume empty.
	ErrVolumeCount = errors.New("invalid volume count")

	// ErrIdentifierCollision is returned when two distinct source paths
	// sanitize to the same fragment identifier.
	ErrIdentifierCollision = errors.New("chapter identifier collision")

	// ErrTemplateVariable is returned when a template references a variable
	// that was not supplied.
	ErrTemplateVariable = errors.New("template variable not supplied")

	// ErrRender is returned when the external typesetting compiler fails or
	// leaves no usable PDF behind.
	ErrRender = errors.New("typesetting failed")
)

// ChapterError wraps a per-file assembly failure and names the file.
// Any chapter failure aborts the whole book build.
type ChapterError struct {
	File string
	Err  error
}

func (e *ChapterError) Error() string {
	return fmt.Sprintf("chapter %s: %v", e.File, e.Err)
}

func (e *ChapterError) Unwrap() error { return e.Err }

// CompileError reports a typesetting failure, including which of the two
// compiler passes it happened in.
type CompileError struct {
	Source string
	Pass   CompilePass
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s (%s pass): %v", e.Source, e.Pass, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

func (e *CompileError) Is(target error) bool { return target == ErrRender }
