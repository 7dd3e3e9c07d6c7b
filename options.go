package worddoc

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// includeHidden keeps runs formatted as hidden text; by default
	// they are dropped from extraction output.
	includeHidden bool

	// joinParagraphs joins paragraphs with spaces instead of newlines.
	joinParagraphs bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		includeHidden:  false,
		joinParagraphs: false,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		includeHidden:  o.includeHidden,
		joinParagraphs: o.joinParagraphs,
	}
}
