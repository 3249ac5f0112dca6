package model

import (
	"encoding/xml"
	"strings"
)

// HTML is the XHTML page the service sends instead of an SSC document when a
// request is rejected before it reaches the query engine.
type HTML struct {
	XMLName xml.Name `xml:"html"`
	Head    HTMLHead `xml:"head"`
	Body    HTMLBody `xml:"body"`
}

// HTMLHead holds the page title.
type HTMLHead struct {
	Title string `xml:"title"`
}

// HTMLBody keeps the body markup verbatim.
type HTMLBody struct {
	Inner string `xml:",innerxml"`
}

// Summary returns the title, or the first non-empty line of body text.
func (h *HTML) Summary() string {
	if h == nil {
		return ""
	}
	if t := strings.TrimSpace(h.Head.Title); t != "" {
		return t
	}
	var text strings.Builder
	d := xml.NewDecoder(strings.NewReader("<b>" + h.Body.Inner + "</b>"))
	d.Strict = false
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			text.Write(cd)
			text.WriteByte('\n')
		}
	}
	for _, line := range strings.Split(text.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
