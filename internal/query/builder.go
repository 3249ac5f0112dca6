// Package query builds, loads and validates conjunction query requests.
package query

import (
	"time"

	"github.com/signalsfoundry/ssc-conjunctions/model"
)

// Builder assembles a QueryRequest. Methods record the last value set; Build
// validates the result.
type Builder struct {
	q model.ConjunctionQuery
}

// NewBuilder starts a query that waits for an XML result and requires all
// conditions to hold.
func NewBuilder() *Builder {
	return &Builder{q: model.ConjunctionQuery{
		ExecuteOptions:    &model.ExecuteOptions{WaitForResult: true},
		ResultOptions:     &model.ResultOptions{QueryResultType: model.ResultTypeXML},
		ConditionOperator: model.ConditionAll,
	}}
}

func (b *Builder) Description(d string) *Builder {
	b.q.Description = d
	return b
}

// Interval sets the query window. Times are converted to UTC.
func (b *Builder) Interval(start, end time.Time) *Builder {
	b.q.TimeInterval = model.TimeInterval{Start: start.UTC(), End: end.UTC()}
	return b
}

func (b *Builder) WaitForResult(wait bool) *Builder {
	b.q.ExecuteOptions = &model.ExecuteOptions{WaitForResult: wait}
	return b
}

// Results replaces the result options.
func (b *Builder) Results(opts model.ResultOptions) *Builder {
	b.q.ResultOptions = &opts
	return b
}

// FieldModel sets the magnetic field models. external may be nil.
func (b *Builder) FieldModel(internal model.InternalFieldModel, external model.ExternalFieldModel, stopAltitudeKm int) *Builder {
	b.q.BFieldModel = &model.BFieldModel{
		InternalBFieldModel: internal,
		ExternalBFieldModel: external,
		TraceStopAltitude:   stopAltitudeKm,
	}
	return b
}

func (b *Builder) Operator(op model.ConditionOperator) *Builder {
	b.q.ConditionOperator = op
	return b
}

// Satellites appends a SatelliteCondition requiring combination of ids to be
// in conjunction, each traced with dir.
func (b *Builder) Satellites(combination int, dir model.FieldTraceDirection, ids ...string) *Builder {
	c := &model.SatelliteCondition{SatelliteCombination: combination}
	for _, id := range ids {
		c.Satellites = append(c.Satellites, model.Satellite{ID: id, BFieldTraceDirection: dir})
	}
	return b.Condition(c)
}

// Lead appends a LeadSatelliteCondition.
func (b *Builder) Lead(sat model.Satellite, area model.ConjunctionArea, trace model.TraceType) *Builder {
	return b.Condition(&model.LeadSatelliteCondition{
		Satellite:       sat,
		ConjunctionArea: area,
		TraceType:       trace,
	})
}

// GroundStations appends a GroundStationCondition.
func (b *Builder) GroundStations(cs model.TraceCoordinateSystem, area model.ConjunctionArea, sites ...model.GroundStationSite) *Builder {
	return b.Condition(&model.GroundStationCondition{
		GroundStations:   sites,
		CoordinateSystem: cs,
		ConjunctionArea:  area,
	})
}

// Condition appends c as is.
func (b *Builder) Condition(c model.Condition) *Builder {
	b.q.Conditions = append(b.q.Conditions, c)
	return b
}

// Request returns the assembled request without validating it.
func (b *Builder) Request() *model.QueryRequest {
	q := b.q
	q.Conditions = append(model.ConditionList(nil), b.q.Conditions...)
	return model.NewQueryRequest(&q)
}

// Build returns the assembled request, or an ErrInvalidQuery error.
func (b *Builder) Build() (*model.QueryRequest, error) {
	req := b.Request()
	if err := Validate(req); err != nil {
		return nil, err
	}
	return req, nil
}

// DemoSatellites are the five THEMIS spacecraft used by Demo.
var DemoSatellites = []string{"themisa", "themisb", "themisc", "themisd", "themise"}

// Demo returns the sample request: any three THEMIS spacecraft in conjunction
// with THEMIS-A's field line footpoint within 400 km, on 2008-01-02 between
// 11:00 and 11:59:59 UTC.
func Demo() *model.QueryRequest {
	start := time.Date(2008, 1, 2, 11, 0, 0, 0, time.UTC)
	end := time.Date(2008, 1, 2, 11, 59, 59, 0, time.UTC)

	return NewBuilder().
		WaitForResult(true).
		Results(model.ResultOptions{
			IncludeQueryInResult:             false,
			QueryResultType:                  model.ResultTypeXML,
			TraceCoordinateSystem:            model.TraceCoordinateGeo,
			SubSatelliteCoordinateSystem:     model.CoordinateGeo,
			SubSatelliteCoordinateSystemType: model.CoordinateTypeSpherical,
		}).
		Operator(model.ConditionAll).
		Interval(start, end).
		FieldModel(model.InternalFieldIGRF, &model.Tsyganenko89cModel{KeyParameterValues: model.Kp3_3_3}, 100).
		Satellites(3, model.TraceSameHemisphere, DemoSatellites...).
		Lead(
			model.Satellite{ID: DemoSatellites[0], BFieldTraceDirection: model.TraceSameHemisphere},
			&model.DistanceConjunctionArea{Radius: 400},
			model.TraceTypeBField,
		).
		Request()
}
