// Package catalog keeps the observatories and ground stations reported by
// SSC so requests can be checked locally before they are submitted.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/signalsfoundry/ssc-conjunctions/internal/geo"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

var (
	ErrUnknownObservatory = errors.New("unknown observatory")
	ErrOutsideCoverage    = errors.New("time range outside observatory coverage")
)

// Fetcher is the part of the SSC client a catalog is loaded from.
type Fetcher interface {
	GetObservatories(ctx context.Context) ([]model.ObservatoryDescription, error)
	GetGroundStations(ctx context.Context) ([]model.GroundStation, error)
}

// Catalog is an in-memory, thread-safe store of observatories and ground
// stations keyed by id.
type Catalog struct {
	mu sync.RWMutex

	observatories  map[string]model.ObservatoryDescription
	groundStations map[string]model.GroundStation
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		observatories:  make(map[string]model.ObservatoryDescription),
		groundStations: make(map[string]model.GroundStation),
	}
}

// Load fetches both listings from f into a new catalog.
func Load(ctx context.Context, f Fetcher) (*Catalog, error) {
	obs, err := f.GetObservatories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load observatories: %w", err)
	}
	stations, err := f.GetGroundStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ground stations: %w", err)
	}
	c := New()
	c.PutObservatories(obs...)
	c.PutGroundStations(stations...)
	return c, nil
}

// PutObservatories adds or replaces observatories by id.
func (c *Catalog) PutObservatories(obs ...model.ObservatoryDescription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range obs {
		c.observatories[o.ID] = o
	}
}

// PutGroundStations adds or replaces ground stations by id.
func (c *Catalog) PutGroundStations(stations ...model.GroundStation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range stations {
		c.groundStations[s.ID] = s
	}
}

// Observatory returns the observatory with the given id.
func (c *Catalog) Observatory(id string) (model.ObservatoryDescription, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.observatories[id]
	return o, ok
}

// GroundStation returns the ground station with the given id.
func (c *Catalog) GroundStation(id string) (model.GroundStation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.groundStations[id]
	return s, ok
}

// Observatories returns a snapshot sorted by name. SSC lists some spacecraft
// under several ids with the same display name; only the first id in sort
// order is kept for each name.
func (c *Catalog) Observatories() []model.ObservatoryDescription {
	c.mu.RLock()
	res := make([]model.ObservatoryDescription, 0, len(c.observatories))
	for _, o := range c.observatories {
		res = append(res, o)
	}
	c.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	out := res[:0]
	for i, o := range res {
		if i > 0 && o.Name == res[i-1].Name {
			continue
		}
		out = append(out, o)
	}
	return out
}

// GroundStations returns a snapshot sorted by id.
func (c *Catalog) GroundStations() []model.GroundStation {
	c.mu.RLock()
	res := make([]model.GroundStation, 0, len(c.groundStations))
	for _, s := range c.groundStations {
		res = append(res, s)
	}
	c.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// ValidateTimeRange checks that [start, end] lies within the coverage of
// observatory id.
func (c *Catalog) ValidateTimeRange(id string, start, end time.Time) error {
	o, ok := c.Observatory(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObservatory, id)
	}
	if !o.Coverage().Contains(model.TimeInterval{Start: start, End: end}) {
		return fmt.Errorf("%w: %s has data from %s to %s", ErrOutsideCoverage, id,
			o.StartTime.UTC().Format(time.RFC3339), o.EndTime.UTC().Format(time.RFC3339))
	}
	return nil
}

// ValidateQuery applies ValidateTimeRange to every satellite the query
// references and joins the failures.
func (c *Catalog) ValidateQuery(req *model.QueryRequest) error {
	if req == nil || req.Request == nil {
		return nil
	}
	iv := req.Request.TimeInterval
	var errs []error
	for _, id := range req.Request.SatelliteIDs() {
		if err := c.ValidateTimeRange(id, iv.Start, iv.End); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StationDistance pairs a ground station with its distance from a point.
type StationDistance struct {
	Station    model.GroundStation
	DistanceKm float64
}

// NearestGroundStations returns up to n stations ordered by surface distance
// from (lat, lon) in degrees.
func (c *Catalog) NearestGroundStations(lat, lon float64, n int) []StationDistance {
	if n <= 0 {
		return nil
	}
	stations := c.GroundStations()
	res := make([]StationDistance, 0, len(stations))
	for _, s := range stations {
		res = append(res, StationDistance{
			Station:    s,
			DistanceKm: geo.GreatCircleKm(lat, lon, s.Location.Latitude, s.Location.Longitude),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].DistanceKm < res[j].DistanceKm })
	if len(res) > n {
		res = res[:n]
	}
	return res
}
