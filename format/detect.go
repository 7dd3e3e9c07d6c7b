// Package format provides file format detection for the worddoc library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOC indicates a legacy binary Microsoft Word (.doc) document.
	DOC
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOC:
		return "DOC"
	case DOCX:
		return "DOCX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOC:
		return ".doc"
	case DOCX:
		return ".docx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".dot":
		return DOC
	case ".docx", ".docm":
		return DOCX
	default:
		return Unknown
	}
}

// Compound-file and zip magic bytes. A .doc is an OLE2 compound file; a
// .docx is a zip archive.
var (
	compoundMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic      = []byte{'P', 'K', 0x03, 0x04}
)

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, compoundMagic):
		return DOC
	case bytes.HasPrefix(data, zipMagic):
		return DOCX
	default:
		return Unknown
	}
}
