package model

import (
	"encoding/xml"
	"time"
)

// QueryRequest is the root document POSTed to /conjunctions.
type QueryRequest struct {
	XMLName xml.Name          `xml:"http://sscweb.gsfc.nasa.gov/schema QueryRequest"`
	Request *ConjunctionQuery `xml:"Request"`
}

// ConjunctionQuery describes which satellites to compare, over which interval,
// with which field model and proximity conditions.
type ConjunctionQuery struct {
	Description       string            `xml:"Description,omitempty"`
	TimeInterval      TimeInterval      `xml:"TimeInterval"`
	BFieldModel       *BFieldModel      `xml:"BFieldModel,omitempty"`
	ExecuteOptions    *ExecuteOptions   `xml:"ExecuteOptions,omitempty"`
	ResultOptions     *ResultOptions    `xml:"ResultOptions,omitempty"`
	ConditionOperator ConditionOperator `xml:"ConditionOperator,omitempty"`
	Conditions        ConditionList     `xml:"Conditions"`
}

// TimeInterval is a closed interval of timezone-aware instants.
type TimeInterval struct {
	Start time.Time `xml:"Start"`
	End   time.Time `xml:"End"`
}

// Duration returns End - Start.
func (t TimeInterval) Duration() time.Duration { return t.End.Sub(t.Start) }

// Contains reports whether other lies entirely within t.
func (t TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(t.Start) && !other.End.After(t.End)
}

// ExecuteOptions controls how the service runs the query.
type ExecuteOptions struct {
	WaitForResult bool `xml:"WaitForResult"`
}

// ResultOptions controls the content of the result document.
type ResultOptions struct {
	IncludeQueryInResult             bool                  `xml:"IncludeQueryInResult"`
	QueryResultType                  QueryResultType       `xml:"QueryResultType,omitempty"`
	FormatOptions                    *FormatOptions        `xml:"FormatOptions,omitempty"`
	TraceCoordinateSystem            TraceCoordinateSystem `xml:"TraceCoordinateSystem,omitempty"`
	SubSatelliteCoordinateSystem     CoordinateSystem      `xml:"SubSatelliteCoordinateSystem,omitempty"`
	SubSatelliteCoordinateSystemType CoordinateSystemType  `xml:"SubSatelliteCoordinateSystemType,omitempty"`
}

// FormatOptions applies to Listing results.
type FormatOptions struct {
	DateFormat     string `xml:"DateFormat,omitempty"`
	TimeFormat     string `xml:"TimeFormat,omitempty"`
	DistanceFormat string `xml:"DistanceFormat,omitempty"`
	DistanceDigits int    `xml:"DistanceDigits,omitempty"`
	DegreeFormat   string `xml:"DegreeFormat,omitempty"`
	DegreeDigits   int    `xml:"DegreeDigits,omitempty"`
}

// Satellite identifies an observatory and how its field line is traced.
type Satellite struct {
	ID                   string              `xml:"Id"`
	BFieldTraceDirection FieldTraceDirection `xml:"BFieldTraceDirection,omitempty"`
}

// SatelliteIDs returns the distinct satellite ids referenced by the query's
// conditions, in first-seen order.
func (q *ConjunctionQuery) SatelliteIDs() []string {
	if q == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, c := range q.Conditions {
		switch c := c.(type) {
		case *SatelliteCondition:
			if c == nil {
				continue
			}
			for _, s := range c.Satellites {
				add(s.ID)
			}
		case *LeadSatelliteCondition:
			if c == nil {
				continue
			}
			add(c.Satellite.ID)
		}
	}
	return ids
}
