// Package sscxml reads and writes SSC web service documents. Values are
// dispatched by document family: SSC schema documents and the XHTML pages
// the service answers with on errors.
package sscxml

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

// ErrUnsupportedDocument is returned when a value belongs to no known
// document family.
var ErrUnsupportedDocument = errors.New("sscxml: unsupported document")

// Family is a document family.
type Family int

const (
	FamilyUnknown Family = iota
	FamilySSC
	FamilyXHTML
)

func (f Family) String() string {
	switch f {
	case FamilySSC:
		return "ssc"
	case FamilyXHTML:
		return "xhtml"
	default:
		return "unknown"
	}
}

// DefaultIndent is the indentation used for diagnostic dumps.
const DefaultIndent = "  "

// Kind classifies v.
func Kind(v any) (Family, error) {
	switch v.(type) {
	case *model.ObservatoryResponse, *model.GroundStationResponse,
		*model.QueryRequest, *model.QueryResponse,
		*model.DataRequest, *model.DataResponse,
		*model.GraphRequest, *model.FileResponse:
		return FamilySSC, nil
	case *model.HTML:
		return FamilyXHTML, nil
	default:
		return FamilyUnknown, fmt.Errorf("%w: %T", ErrUnsupportedDocument, v)
	}
}

// Encoder writes documents as indented XML with a declaration. A nil
// Logger drops warnings.
type Encoder struct {
	Logger logging.Logger
	Indent string
}

// NewEncoder returns an Encoder using DefaultIndent.
func NewEncoder(log logging.Logger) *Encoder {
	return &Encoder{Logger: log, Indent: DefaultIndent}
}

// Encode writes v to w. Values of an unknown kind are logged and skipped:
// nothing is written and the returned error is nil.
func (e *Encoder) Encode(w io.Writer, v any) error {
	fam, err := Kind(v)
	if err != nil {
		e.logger().Warn(context.Background(), "skipping document of unknown kind",
			logging.String("type", fmt.Sprintf("%T", v)))
		return nil
	}

	// Render fully before touching w so a failed encode leaves it untouched.
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", e.Indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("sscxml: encode %s document: %w", fam, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sscxml: encode %s document: %w", fam, err)
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("sscxml: write %s document: %w", fam, err)
	}
	return nil
}

func (e *Encoder) logger() logging.Logger {
	if e == nil || e.Logger == nil {
		return logging.Noop()
	}
	return e.Logger
}

// Marshal returns the compact encoding of v, prefixed with the XML
// declaration. Unlike Encode, an unknown kind is an error.
func Marshal(v any) ([]byte, error) {
	if _, err := Kind(v); err != nil {
		return nil, err
	}
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sscxml: marshal %T: %w", v, err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Decode reads one document from r into v.
func Decode(r io.Reader, v any) error {
	if _, err := Kind(v); err != nil {
		return err
	}
	if err := xml.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("sscxml: decode %T: %w", v, err)
	}
	return nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return Decode(bytes.NewReader(data), v)
}

// IsXHTML reports whether data looks like an HTML page rather than an SSC
// document.
func IsXHTML(data []byte) bool {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false
	for {
		tok, err := d.Token()
		if err != nil {
			return false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local == "html" || se.Name.Space == model.XHTMLNamespace
		}
	}
}
