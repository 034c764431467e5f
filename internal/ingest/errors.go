package ingest

import "errors"

// Error definitions for the ingest package.
var (
	// ErrUnsupportedFormat is returned when a file's extension is not on the
	// configured allow-list.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge is returned when a single file exceeds the configured
	// maximum size.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrArchiveTooLarge is returned when an archive's total expanded size
	// exceeds the configured cap. This bounds decompression-bomb risk.
	ErrArchiveTooLarge = errors.New("archive expanded size exceeds limit")

	// ErrUnsafeArchivePath is returned when an archive entry would escape
	// the expansion directory.
	ErrUnsafeArchivePath = errors.New("archive entry escapes extraction directory")

	// ErrNoInputFiles is returned when a folder or archive contains no
	// allow-listed files at all.
	ErrNoInputFiles = errors.New("no supported input files found")
)
