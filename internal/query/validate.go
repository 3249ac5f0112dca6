package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signalsfoundry/ssc-conjunctions/model"
)

// ErrInvalidQuery is wrapped by every validation failure.
var ErrInvalidQuery = errors.New("invalid query")

// Validate checks the structural rules the service would otherwise reject
// remotely. All problems are reported together.
func Validate(req *model.QueryRequest) error {
	if req == nil || req.Request == nil {
		return fmt.Errorf("%w: request is empty", ErrInvalidQuery)
	}
	q := req.Request
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	iv := q.TimeInterval
	switch {
	case iv.Start.IsZero() || iv.End.IsZero():
		add("time interval start and end are required")
	case !iv.Start.Before(iv.End):
		add("time interval start %s is not before end %s", iv.Start, iv.End)
	}
	if q.ConditionOperator != "" && q.ConditionOperator != model.ConditionAll && q.ConditionOperator != model.ConditionAny {
		add("unknown condition operator %q", q.ConditionOperator)
	}
	if len(q.Conditions) == 0 {
		add("at least one condition is required")
	}

	for i, c := range q.Conditions {
		switch c := c.(type) {
		case *model.SatelliteCondition:
			if c == nil {
				add("condition %d: nil", i)
				continue
			}
			n := len(c.Satellites)
			if n == 0 {
				add("condition %d: no satellites", i)
				break
			}
			if c.SatelliteCombination < 2 || c.SatelliteCombination > n {
				add("condition %d: satellite combination %d must be between 2 and %d", i, c.SatelliteCombination, n)
			}
			for _, s := range c.Satellites {
				if s.ID == "" {
					add("condition %d: satellite with empty id", i)
				}
			}
		case *model.LeadSatelliteCondition:
			if c == nil {
				add("condition %d: nil", i)
				continue
			}
			if c.Satellite.ID == "" {
				add("condition %d: lead satellite id is required", i)
			}
			checkArea(i, c.ConjunctionArea, add)
		case *model.GroundStationCondition:
			if c == nil {
				add("condition %d: nil", i)
				continue
			}
			if len(c.GroundStations) == 0 {
				add("condition %d: no ground stations", i)
			}
			for _, gs := range c.GroundStations {
				if gs.Location.Latitude < -90 || gs.Location.Latitude > 90 {
					add("condition %d: ground station %s latitude %v out of range", i, gs.ID, gs.Location.Latitude)
				}
			}
			checkArea(i, c.ConjunctionArea, add)
		case nil:
			add("condition %d: nil", i)
		default:
			add("condition %d: unsupported type %T", i, c)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidQuery, strings.Join(problems, "; "))
}

func checkArea(i int, area model.ConjunctionArea, add func(string, ...any)) {
	switch a := area.(type) {
	case nil:
		add("condition %d: conjunction area is required", i)
	case *model.DistanceConjunctionArea:
		if a == nil || a.Radius <= 0 {
			add("condition %d: distance radius must be positive", i)
		}
	case *model.BoxConjunctionArea:
		if a == nil || a.DeltaLatitude <= 0 || a.DeltaLongitude <= 0 {
			add("condition %d: box deltas must be positive", i)
		}
	}
}
