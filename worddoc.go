// Package worddoc provides a fluent API for extracting text, tables, and
// other content from legacy binary Word (.doc) files.
//
// Basic usage:
//
//	text, warnings, err := worddoc.Open("document.doc").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", worddoc.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := worddoc.Open("report.doc").
//	    IncludeHidden().
//	    JoinParagraphs().
//	    Text()
//
// For advanced use cases, the lower-level doc and cfb packages are also
// available.
package worddoc

import "strings"

// Open opens a .doc file and returns an Extractor for fluent configuration.
// The file is not read until a terminal operation such as Text() runs.
//
// Example:
//
//	text, warnings, err := worddoc.Open("document.doc").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an in-memory .doc file.
//
// Example:
//
//	text, warnings, err := worddoc.FromBytes(data).Text()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// Warning describes a non-fatal issue encountered during extraction, such
// as an embedded picture whose content could not be decoded.
type Warning struct {
	// Code is a stable machine-readable identifier.
	Code string
	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	WarnHiddenText = "hidden-text"
	WarnPicture    = "picture"
)

// FormatWarnings renders warnings as a single semicolon-separated string
// for logging.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}
	return strings.Join(msgs, "; ")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	md := worddoc.Must(worddoc.Open("document.doc").Metadata())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or HTML() and panics
// if the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	text := worddoc.MustText(worddoc.Open("document.doc").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
