package spe

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Footer is the structured-text metadata block some files carry after the
// data region. It only exists once an acquisition has finished; a missing
// footer is a normal state, reported as absence rather than an error.
type Footer struct {
	Root XMLNode
}

// XMLNode is a generic element of the footer tree. The footer schema varies
// per acquisition software version, so no fixed struct mapping is attempted.
type XMLNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []XMLNode  `xml:",any"`
}

// Find does a depth-first search for the first element with the given local
// name. The receiver itself is a candidate.
func (n *XMLNode) Find(local string) (*XMLNode, bool) {
	if n.XMLName.Local == local {
		return n, true
	}
	for i := range n.Children {
		if m, ok := n.Children[i].Find(local); ok {
			return m, true
		}
	}
	return nil, false
}

// Attr returns the value of the named attribute.
func (n *XMLNode) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// decodeFooter parses the XML block spanning [off, size) of the stream.
func decodeFooter(r io.ReaderAt, off, size int64) (*Footer, error) {
	if off >= size {
		return nil, fmt.Errorf("%w: footer offset %d beyond end of file %d", ErrMalformedFooter, off, size)
	}
	buf := make([]byte, size-off)
	if _, err := r.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFooter, err)
	}
	var root XMLNode
	if err := xml.Unmarshal(buf, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFooter, err)
	}
	return &Footer{Root: root}, nil
}
