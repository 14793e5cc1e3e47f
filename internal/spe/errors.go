package spe

import "errors"

var (
	// ErrSchemaNotFound means the header format description is missing.
	ErrSchemaNotFound = errors.New("spe: header schema not found")
	// ErrSchemaFormat means the header format description is not the
	// expected Offset,Binary,Type_Name table.
	ErrSchemaFormat = errors.New("spe: malformed header schema")
	// ErrTruncatedHeader means a required header offset could not be read.
	ErrTruncatedHeader = errors.New("spe: truncated header")
	// ErrUnsupportedType means an on-disk datatype code or binary tag is
	// outside the supported set.
	ErrUnsupportedType = errors.New("spe: unsupported data type")
	// ErrMalformedFooter means the XML footer exists but does not parse.
	// The session is still usable with header-derived values only.
	ErrMalformedFooter = errors.New("spe: malformed XML footer")
	// ErrGeometry means the header dimensions and datatype are inconsistent.
	ErrGeometry = errors.New("spe: invalid frame geometry")
	// ErrNoFrames means no complete frame is in the file yet. Transient
	// while an acquisition is still starting up.
	ErrNoFrames = errors.New("spe: no frames available")
	// ErrFrameRead means a frame read ran past the live end of file.
	ErrFrameRead = errors.New("spe: frame read failed")
)
