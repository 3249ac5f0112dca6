package geo

import "github.com/signalsfoundry/ssc-conjunctions/model"

// ConjunctionSummary condenses one conjunction for display.
type ConjunctionSummary struct {
	Interval   model.TimeInterval
	Satellites []string
	// MaxSeparationKm is the largest distance between any two participants'
	// first reported locations.
	MaxSeparationKm float64
	// MaxFootpointKm is the largest surface distance between any two
	// participants' first footpoints; zero when traces were not returned.
	MaxFootpointKm float64
}

// Summarize computes per-conjunction separations from a query result.
func Summarize(r *model.QueryResult) []ConjunctionSummary {
	if r == nil {
		return nil
	}
	out := make([]ConjunctionSummary, 0, len(r.Conjunctions))
	for _, c := range r.Conjunctions {
		s := ConjunctionSummary{Interval: c.TimeInterval}
		var positions []Vec3
		var feet []model.TracePoint
		for _, sat := range c.Satellites {
			s.Satellites = append(s.Satellites, sat.Satellite)
			if len(sat.Descriptions) == 0 {
				continue
			}
			d := sat.Descriptions[0]
			positions = append(positions, FromVector(d.Location))
			if fp := d.Footpoint(); fp != nil {
				feet = append(feet, *fp)
			}
		}
		for i := range positions {
			for j := i + 1; j < len(positions); j++ {
				if d := positions[i].DistanceTo(positions[j]); d > s.MaxSeparationKm {
					s.MaxSeparationKm = d
				}
			}
		}
		for i := range feet {
			for j := i + 1; j < len(feet); j++ {
				if d := FootpointSeparationKm(feet[i], feet[j]); d > s.MaxFootpointKm {
					s.MaxFootpointKm = d
				}
			}
		}
		out = append(out, s)
	}
	return out
}
