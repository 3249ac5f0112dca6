package model

import (
	"encoding/xml"
	"fmt"
)

const (
	// Namespace is the XML namespace of SSC request and response documents.
	Namespace = "http://sscweb.gsfc.nasa.gov/schema"
	// XSINamespace is the XML Schema instance namespace used for xsi:type.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
	// XHTMLNamespace is the namespace of the HTML pages the service returns on errors.
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// UnknownTypeError reports an xsi:type value that has no Go counterpart.
type UnknownTypeError struct {
	Element string
	Type    string
}

func (e *UnknownTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("element <%s> is missing xsi:type", e.Element)
	}
	return fmt.Sprintf("element <%s> has unsupported xsi:type %q", e.Element, e.Type)
}

// encodeTyped writes v as the start element annotated with xsi:type. The
// namespace declaration is repeated on every typed element so fragments stay
// self-describing when logged on their own.
func encodeTyped(e *xml.Encoder, start xml.StartElement, typeName string, v any) error {
	start.Attr = append(start.Attr,
		xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: XSINamespace},
		xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: typeName},
	)
	return e.EncodeElement(v, start)
}

// xsiType returns the local type name carried by start. Prefixed values such
// as "ns2:SatelliteCondition" are reduced to their local part.
func xsiType(start xml.StartElement) string {
	for _, a := range start.Attr {
		if a.Name.Local != "type" {
			continue
		}
		// The decoder resolves a declared xsi prefix to the namespace URL and
		// leaves an undeclared one as-is.
		if a.Name.Space != XSINamespace && a.Name.Space != "xsi" {
			continue
		}
		v := a.Value
		for i := len(v) - 1; i >= 0; i-- {
			if v[i] == ':' {
				return v[i+1:]
			}
		}
		return v
	}
	return ""
}
