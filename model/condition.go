package model

import "encoding/xml"

// Condition is one proximity condition of a conjunction query. The concrete
// kinds are *SatelliteCondition, *LeadSatelliteCondition and
// *GroundStationCondition.
type Condition interface {
	conditionType() string
}

// SatelliteCondition asks for times when SatelliteCombination of the listed
// satellites are in conjunction.
type SatelliteCondition struct {
	Satellites           []Satellite `xml:"Satellite"`
	SatelliteCombination int         `xml:"SatelliteCombination"`
}

// LeadSatelliteCondition measures proximity relative to one lead satellite.
type LeadSatelliteCondition struct {
	Satellite       Satellite       `xml:"Satellite"`
	ConjunctionArea ConjunctionArea `xml:"ConjunctionArea"`
	TraceType       TraceType       `xml:"TraceType"`
}

// GroundStationCondition measures proximity of satellite footpoints to fixed
// ground sites.
type GroundStationCondition struct {
	GroundStations   []GroundStationSite   `xml:"GroundStation"`
	CoordinateSystem TraceCoordinateSystem `xml:"CoordinateSystem"`
	ConjunctionArea  ConjunctionArea       `xml:"ConjunctionArea"`
}

// GroundStationSite is a ground station reference inside a condition.
type GroundStationSite struct {
	ID       string      `xml:"Id,omitempty"`
	Name     string      `xml:"Name,omitempty"`
	Location GeoLocation `xml:"Location"`
}

func (*SatelliteCondition) conditionType() string     { return "SatelliteCondition" }
func (*LeadSatelliteCondition) conditionType() string { return "LeadSatelliteCondition" }
func (*GroundStationCondition) conditionType() string { return "GroundStationCondition" }

func (c SatelliteCondition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain SatelliteCondition
	return encodeTyped(e, start, c.conditionType(), plain(c))
}

func (c LeadSatelliteCondition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain LeadSatelliteCondition
	return encodeTyped(e, start, c.conditionType(), plain(c))
}

func (c GroundStationCondition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain GroundStationCondition
	return encodeTyped(e, start, c.conditionType(), plain(c))
}

func (c *LeadSatelliteCondition) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var aux struct {
		Satellite       Satellite         `xml:"Satellite"`
		ConjunctionArea *conjunctionField `xml:"ConjunctionArea"`
		TraceType       TraceType         `xml:"TraceType"`
	}
	if err := d.DecodeElement(&aux, &start); err != nil {
		return err
	}
	*c = LeadSatelliteCondition{Satellite: aux.Satellite, TraceType: aux.TraceType}
	if aux.ConjunctionArea != nil {
		c.ConjunctionArea = aux.ConjunctionArea.area
	}
	return nil
}

func (c *GroundStationCondition) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var aux struct {
		GroundStations   []GroundStationSite   `xml:"GroundStation"`
		CoordinateSystem TraceCoordinateSystem `xml:"CoordinateSystem"`
		ConjunctionArea  *conjunctionField     `xml:"ConjunctionArea"`
	}
	if err := d.DecodeElement(&aux, &start); err != nil {
		return err
	}
	*c = GroundStationCondition{GroundStations: aux.GroundStations, CoordinateSystem: aux.CoordinateSystem}
	if aux.ConjunctionArea != nil {
		c.ConjunctionArea = aux.ConjunctionArea.area
	}
	return nil
}

// ConditionList is the ordered, heterogeneous condition sequence of a query.
// Each member is written as a <Conditions> element carrying its xsi:type.
type ConditionList []Condition

func (l ConditionList) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	for _, c := range l {
		if c == nil {
			continue
		}
		if err := e.EncodeElement(c, start); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalXML is invoked once per <Conditions> element and appends it.
func (l *ConditionList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var c Condition
	switch t := xsiType(start); t {
	case "SatelliteCondition":
		c = &SatelliteCondition{}
	case "LeadSatelliteCondition":
		c = &LeadSatelliteCondition{}
	case "GroundStationCondition":
		c = &GroundStationCondition{}
	default:
		return &UnknownTypeError{Element: start.Name.Local, Type: t}
	}
	if err := d.DecodeElement(c, &start); err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

// ConjunctionArea bounds how close traced positions must be. The concrete
// kinds are *DistanceConjunctionArea and *BoxConjunctionArea.
type ConjunctionArea interface {
	conjunctionAreaType() string
}

// DistanceConjunctionArea is a circle of Radius km around the lead position.
type DistanceConjunctionArea struct {
	Radius float64 `xml:"Radius"`
}

// BoxConjunctionArea is a latitude/longitude box in degrees.
type BoxConjunctionArea struct {
	DeltaLatitude  float64 `xml:"DeltaLatitude"`
	DeltaLongitude float64 `xml:"DeltaLongitude"`
}

func (*DistanceConjunctionArea) conjunctionAreaType() string { return "DistanceConjunctionArea" }
func (*BoxConjunctionArea) conjunctionAreaType() string      { return "BoxConjunctionArea" }

func (a DistanceConjunctionArea) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain DistanceConjunctionArea
	return encodeTyped(e, start, a.conjunctionAreaType(), plain(a))
}

func (a BoxConjunctionArea) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain BoxConjunctionArea
	return encodeTyped(e, start, a.conjunctionAreaType(), plain(a))
}

type conjunctionField struct {
	area ConjunctionArea
}

func (f *conjunctionField) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var a ConjunctionArea
	switch t := xsiType(start); t {
	case "DistanceConjunctionArea":
		a = &DistanceConjunctionArea{}
	case "BoxConjunctionArea":
		a = &BoxConjunctionArea{}
	default:
		return &UnknownTypeError{Element: start.Name.Local, Type: t}
	}
	if err := d.DecodeElement(a, &start); err != nil {
		return err
	}
	f.area = a
	return nil
}
