package model

import "encoding/xml"

// BFieldModel configures the internal and external magnetic field models
// used for field line traces.
type BFieldModel struct {
	InternalBFieldModel InternalFieldModel `xml:"InternalBFieldModel,omitempty"`
	ExternalBFieldModel ExternalFieldModel `xml:"ExternalBFieldModel,omitempty"`
	// TraceStopAltitude is in km.
	TraceStopAltitude int `xml:"TraceStopAltitude,omitempty"`
}

// UnmarshalXML resolves the xsi:type of the external model.
func (b *BFieldModel) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var aux struct {
		InternalBFieldModel InternalFieldModel  `xml:"InternalBFieldModel"`
		ExternalBFieldModel *externalModelField `xml:"ExternalBFieldModel"`
		TraceStopAltitude   int                 `xml:"TraceStopAltitude"`
	}
	if err := d.DecodeElement(&aux, &start); err != nil {
		return err
	}
	b.InternalBFieldModel = aux.InternalBFieldModel
	b.TraceStopAltitude = aux.TraceStopAltitude
	b.ExternalBFieldModel = nil
	if aux.ExternalBFieldModel != nil {
		b.ExternalBFieldModel = aux.ExternalBFieldModel.model
	}
	return nil
}

// ExternalFieldModel is one of the Tsyganenko external field models.
type ExternalFieldModel interface {
	externalModelType() string
}

// Tsyganenko89cModel is the Kp-driven T89c model.
type Tsyganenko89cModel struct {
	KeyParameterValues Tsyganenko89cKp `xml:"KeyParameterValues"`
}

// Tsyganenko96Model is driven by solar wind pressure, Dst and IMF.
type Tsyganenko96Model struct {
	SolarWindPressure float64 `xml:"SolarWindPressure"`
	DstIndex          int     `xml:"DstIndex"`
	ByImf             float64 `xml:"ByImf"`
	BzImf             float64 `xml:"BzImf"`
}

// Tsyganenko01Model adds the G1/G2 storm-time parameters to the T96 inputs.
type Tsyganenko01Model struct {
	SolarWindPressure float64 `xml:"SolarWindPressure"`
	DstIndex          int     `xml:"DstIndex"`
	ByImf             float64 `xml:"ByImf"`
	BzImf             float64 `xml:"BzImf"`
	G1                float64 `xml:"G1"`
	G2                float64 `xml:"G2"`
}

func (*Tsyganenko89cModel) externalModelType() string { return "Tsyganenko89cBFieldModel" }
func (*Tsyganenko96Model) externalModelType() string  { return "Tsyganenko96BFieldModel" }
func (*Tsyganenko01Model) externalModelType() string  { return "Tsyganenko01BFieldModel" }

func (m Tsyganenko89cModel) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain Tsyganenko89cModel
	return encodeTyped(e, start, m.externalModelType(), plain(m))
}

func (m Tsyganenko96Model) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain Tsyganenko96Model
	return encodeTyped(e, start, m.externalModelType(), plain(m))
}

func (m Tsyganenko01Model) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain Tsyganenko01Model
	return encodeTyped(e, start, m.externalModelType(), plain(m))
}

type externalModelField struct {
	model ExternalFieldModel
}

func (f *externalModelField) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var m ExternalFieldModel
	switch t := xsiType(start); t {
	case "Tsyganenko89cBFieldModel":
		m = &Tsyganenko89cModel{}
	case "Tsyganenko96BFieldModel":
		m = &Tsyganenko96Model{}
	case "Tsyganenko01BFieldModel":
		m = &Tsyganenko01Model{}
	default:
		return &UnknownTypeError{Element: start.Name.Local, Type: t}
	}
	if err := d.DecodeElement(m, &start); err != nil {
		return err
	}
	f.model = m
	return nil
}
