package domain

// Page is a single page of a document's text.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the extracted plain text of the page.
	Text string
}

// Document represents one input document in the analysis corpus.
// Pages are ordered by page number and are read-only for a run.
type Document struct {
	// ID is the unique identifier, typically the file name.
	ID string

	// Pages is the ordered page text of the document.
	Pages []Page
}

// Text returns the document's linear text: page texts joined by a
// single newline. Section spans are defined against this text.
func (d Document) Text() string {
	switch len(d.Pages) {
	case 0:
		return ""
	case 1:
		return d.Pages[0].Text
	}

	n := len(d.Pages) - 1
	for _, p := range d.Pages {
		n += len(p.Text)
	}

	buf := make([]byte, 0, n)
	for i, p := range d.Pages {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, p.Text...)
	}
	return string(buf)
}
