// Package doc decodes the legacy binary Word (.doc) format into paragraphs,
// formatted runs, and tables.
//
// A .doc file is an OLE2 compound container holding a main content stream
// ("WordDocument") and an auxiliary table stream ("0Table" or "1Table").
// Nothing in the format is self-describing: every structure is located
// through offset/length pairs in the fixed header (FIB) at the start of the
// main stream, text is addressed through a piece table that maps logical
// character positions to physical byte ranges, and formatting is encoded as
// variable-length property-modifier records (SPRMs). This package walks
// those layers in order and exposes the result as a Document.
package doc

import "errors"

// Errors returned by the decoder. Deeper context is attached with
// fmt.Errorf wrapping; match with errors.Is.
var (
	// ErrInvalidFormat indicates a structural signature mismatch, such as
	// a bad FIB magic value or a CLX with no piece-table section.
	ErrInvalidFormat = errors.New("doc: invalid format")

	// ErrCorrupted indicates an internally inconsistent length or offset
	// field, such as a declared section size running past its buffer.
	ErrCorrupted = errors.New("doc: corrupted document")

	// ErrStreamNotFound indicates a required container stream is absent.
	ErrStreamNotFound = errors.New("doc: stream not found")

	// ErrEncrypted indicates the document is password protected.
	// Encrypted documents are detected but not supported.
	ErrEncrypted = errors.New("doc: document is encrypted")
)
