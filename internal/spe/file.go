// Package spe reads Princeton Instruments SPE 3.0 camera files: a fixed
// 4100-byte binary header, a data region of fixed-stride frames, and an
// optional XML footer. Files may still be growing while they are read; the
// package never trusts a cached file size and only ever exposes complete
// frames.
package spe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samcharles93/tsphot/internal/logger"
)

// OpenOptions tune a session. The zero value is correct for files written by
// LightField against the supported hardware.
type OpenOptions struct {
	// Schema overrides the embedded format 3.0 header layout.
	Schema *Schema
	// TicksPerSecond overrides DefaultTicksPerSecond.
	TicksPerSecond int64
	// BytesPerMetaElement overrides DefaultBytesPerMetaElement.
	BytesPerMetaElement int64
	// CreatedAt overrides the timestamp base derived from the file's
	// creation time. Mostly for tests and replayed files.
	CreatedAt time.Time
	// Logger receives the informational events (footer absent, footer
	// malformed). Defaults to logger.Default.
	Logger logger.Logger
}

// File is an open SPE session. It owns the underlying stream exclusively;
// it is not safe for concurrent use within the process, though the file on
// disk may be appended to by the acquisition process at any time.
type File struct {
	path   string
	f      *os.File
	header *HeaderTable
	footer *Footer
	geom   Geometry

	ctime          time.Time
	ticksPerSecond int64
	lastReadIndex  int

	log logger.Logger
}

// Open opens path with default options.
func Open(path string) (*File, error) {
	return OpenWith(path, OpenOptions{})
}

// OpenWith opens path, decodes the header, derives the frame geometry and
// parses the XML footer if one exists. Header and geometry errors abort
// construction and close the stream; no partially-valid session is ever
// returned. A malformed footer is logged and dropped, since the header
// already carries every required value.
func OpenWith(path string, opts OpenOptions) (*File, error) {
	schema := opts.Schema
	if schema == nil {
		var err error
		schema, err = DefaultSchema()
		if err != nil {
			return nil, err
		}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	ticks := opts.TicksPerSecond
	if ticks == 0 {
		ticks = DefaultTicksPerSecond
	}
	bytesPerMeta := opts.BytesPerMetaElement
	if bytesPerMeta == 0 {
		bytesPerMeta = DefaultBytesPerMetaElement
	}

	osf, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header, err := DecodeHeader(osf, schema)
	if err != nil {
		_ = osf.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	geom, err := deriveGeometry(header, bytesPerMeta)
	if err != nil {
		_ = osf.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ctime := opts.CreatedAt
	if ctime.IsZero() {
		fallback := time.Now()
		if fi, err := osf.Stat(); err == nil {
			fallback = fi.ModTime()
		}
		ctime = creationTime(path, fallback)
	}

	f := &File{
		path:           path,
		f:              osf,
		header:         header,
		geom:           geom,
		ctime:          ctime,
		ticksPerSecond: ticks,
		log:            log,
	}

	if xoff, ok := header.Value("XMLOffset"); !ok || xoff == 0 {
		// Normal while an acquisition is still running: the writer only
		// appends the footer once it finishes.
		log.Info("no XML footer metadata", "path", path)
	} else if size, err := osf.Seek(0, io.SeekEnd); err == nil {
		footer, err := decodeFooter(osf, int64(xoff), size)
		if err != nil {
			log.Warn("ignoring XML footer", "path", path, "error", err)
		} else {
			f.footer = footer
		}
	}

	return f, nil
}

// Close releases the underlying stream. Idempotent.
func (f *File) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

// Path returns the file path the session was opened with.
func (f *File) Path() string { return f.path }

// Header returns the decoded header field table.
func (f *File) Header() *HeaderTable { return f.header }

// Footer returns the parsed XML footer. ok is false when the file has none
// (or it was malformed), in which case callers fall back to header values.
func (f *File) Footer() (*Footer, bool) {
	return f.footer, f.footer != nil
}

// Geometry returns the derived frame geometry.
func (f *File) Geometry() Geometry { return f.geom }

// CreatedAt returns the timestamp base used for frame metadata times.
func (f *File) CreatedAt() time.Time { return f.ctime }

// LastReadIndex returns the resolved index of the most recent successful
// frame read, 0 before any read.
func (f *File) LastReadIndex() int { return f.lastReadIndex }

// NumFrames returns the number of complete frames in the file right now.
// Re-derived from the live file size on every call.
func (f *File) NumFrames() (int, error) {
	return numFramesAvailable(f.f, f.geom)
}
