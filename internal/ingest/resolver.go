// Package ingest resolves a user-supplied path into the ordered list of
// extraction units that feed the rest of the pipeline. A path may name a
// single file, a folder, or a zip archive; folders and archives are expanded
// subject to a format allow-list and size caps.
package ingest

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/cardforge/internal/domain"
)

// Format identifies a supported input document format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// Unit is one resolved extraction unit: the raw bytes of a single document
// together with its provenance name and detected format.
type Unit struct {
	SourceName string
	Data       []byte
	Format     Format
}

// Options configures resolution behavior.
type Options struct {
	// AllowedFormats restricts which formats are accepted. Empty means all
	// supported formats.
	AllowedFormats []Format

	// MaxFileSize caps the size of any single input file in bytes.
	MaxFileSize int64

	// MaxArchiveSize caps the total expanded size of an archive in bytes.
	MaxArchiveSize int64

	// Recurse expands folders recursively instead of one level deep.
	Recurse bool
}

const (
	defaultMaxFileSize    = 20 << 20  // 20 MiB
	defaultMaxArchiveSize = 100 << 20 // 100 MiB
)

// Resolver expands paths into extraction units.
type Resolver struct {
	logger *slog.Logger
	opts   Options
}

// NewResolver creates a Resolver, applying defaults for zero-valued size caps.
func NewResolver(logger *slog.Logger, opts Options) *Resolver {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}
	if opts.MaxArchiveSize <= 0 {
		opts.MaxArchiveSize = defaultMaxArchiveSize
	}
	return &Resolver{logger: logger, opts: opts}
}

// FormatForPath maps a file name to its document format by extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return FormatText, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	default:
		return "", false
	}
}

func (r *Resolver) formatAllowed(f Format) bool {
	if len(r.opts.AllowedFormats) == 0 {
		return true
	}
	for _, allowed := range r.opts.AllowedFormats {
		if f == allowed {
			return true
		}
	}
	return false
}

// Resolve expands the given path into an ordered list of extraction units
// plus warnings for skipped entries. A single unsupported or oversized file
// is rejected with a FileProcessingError; inside folders and archives,
// unsupported entries are skipped and recorded as warnings instead. Any
// temporary expansion area is removed before Resolve returns, regardless of
// outcome.
func (r *Resolver) Resolve(path string) ([]Unit, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, domain.NewFileProcessingError(path, err)
	}

	if info.IsDir() {
		return r.resolveDir(path)
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return r.resolveArchive(path)
	}

	unit, err := r.resolveFile(path, info.Size())
	if err != nil {
		return nil, nil, err
	}
	return []Unit{unit}, nil, nil
}

func (r *Resolver) resolveFile(path string, size int64) (Unit, error) {
	format, ok := FormatForPath(path)
	if !ok || !r.formatAllowed(format) {
		return Unit{}, domain.NewFileProcessingError(path, ErrUnsupportedFormat)
	}

	if size > r.opts.MaxFileSize {
		return Unit{}, domain.NewFileProcessingError(path,
			fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, r.opts.MaxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Unit{}, domain.NewFileProcessingError(path, err)
	}

	return Unit{SourceName: filepath.Base(path), Data: data, Format: format}, nil
}

func (r *Resolver) resolveDir(root string) ([]Unit, []string, error) {
	var units []Unit
	var warnings []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !r.opts.Recurse {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		format, ok := FormatForPath(path)
		if !ok || !r.formatAllowed(format) {
			warnings = append(warnings, fmt.Sprintf("skipped unsupported file %s", path))
			return nil
		}
		if info.Size() > r.opts.MaxFileSize {
			warnings = append(warnings, fmt.Sprintf("skipped oversized file %s (%d bytes)", path, info.Size()))
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped unreadable file %s: %v", path, err))
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		units = append(units, Unit{SourceName: rel, Data: data, Format: format})
		return nil
	})
	if err != nil {
		return nil, warnings, domain.NewFileProcessingError(root, err)
	}

	if len(units) == 0 {
		return nil, warnings, domain.NewFileProcessingError(root, ErrNoInputFiles)
	}

	if r.logger != nil {
		r.logger.Debug("resolved folder",
			"root", root,
			"units", len(units),
			"skipped", len(warnings))
	}
	return units, warnings, nil
}

// resolveArchive expands a zip archive into a temporary directory, applying
// per-entry path traversal checks and a cumulative expanded-size cap, then
// reads the allow-listed entries back as units. The temporary directory is
// always removed before returning.
func (r *Resolver) resolveArchive(path string) ([]Unit, []string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, domain.NewFileProcessingError(path, err)
	}
	defer func() { _ = reader.Close() }()

	tmpDir, err := os.MkdirTemp("", "cardforge-archive-")
	if err != nil {
		return nil, nil, domain.NewFileProcessingError(path, err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	var units []Unit
	var warnings []string
	var totalExpanded int64

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		// No produced path may escape the extraction directory.
		dest := filepath.Join(tmpDir, filepath.FromSlash(entry.Name))
		if !strings.HasPrefix(dest, filepath.Clean(tmpDir)+string(os.PathSeparator)) {
			return nil, warnings, domain.NewFileProcessingError(path,
				fmt.Errorf("%w: %s", ErrUnsafeArchivePath, entry.Name))
		}

		format, ok := FormatForPath(entry.Name)
		if !ok || !r.formatAllowed(format) {
			warnings = append(warnings, fmt.Sprintf("skipped unsupported archive entry %s", entry.Name))
			continue
		}

		totalExpanded += int64(entry.UncompressedSize64)
		if totalExpanded > r.opts.MaxArchiveSize {
			return nil, warnings, domain.NewFileProcessingError(path,
				fmt.Errorf("%w: limit %d bytes", ErrArchiveTooLarge, r.opts.MaxArchiveSize))
		}

		data, err := extractEntry(entry, dest, r.opts.MaxFileSize)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped archive entry %s: %v", entry.Name, err))
			continue
		}

		units = append(units, Unit{SourceName: entry.Name, Data: data, Format: format})
	}

	if len(units) == 0 {
		return nil, warnings, domain.NewFileProcessingError(path, ErrNoInputFiles)
	}
	return units, warnings, nil
}

// extractEntry writes one archive entry to dest with a hard size limit, then
// reads it back. Writing through the filesystem keeps the expansion inside
// the scoped temporary directory that resolveArchive owns.
func extractEntry(entry *zip.File, dest string, maxSize int64) ([]byte, error) {
	if int64(entry.UncompressedSize64) > maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}

	// LimitReader guards against entries whose declared size lies.
	_, err = io.Copy(out, io.LimitReader(src, maxSize+1))
	closeErr := out.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, ErrFileTooLarge
	}

	return os.ReadFile(dest)
}
