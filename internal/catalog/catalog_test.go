package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/signalsfoundry/ssc-conjunctions/model"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func themis() []model.ObservatoryDescription {
	return []model.ObservatoryDescription{
		{ID: "themisa", Name: "THEMIS-A", StartTime: day(2007, 2, 18), EndTime: day(2030, 1, 1)},
		{ID: "themisb", Name: "THEMIS-B", StartTime: day(2007, 2, 18), EndTime: day(2030, 1, 1)},
		{ID: "artemisp1", Name: "THEMIS-B", StartTime: day(2007, 2, 18), EndTime: day(2030, 1, 1)},
		{ID: "ace", Name: "ACE", StartTime: day(1997, 8, 25), EndTime: day(2030, 1, 1)},
	}
}

func TestObservatoriesSortedAndDeduplicated(t *testing.T) {
	c := New()
	c.PutObservatories(themis()...)

	got := c.Observatories()
	var names []string
	for _, o := range got {
		names = append(names, o.Name+"/"+o.ID)
	}
	want := "ACE/ace,THEMIS-A/themisa,THEMIS-B/artemisp1"
	if strings.Join(names, ",") != want {
		t.Fatalf("Observatories = %v, want %s", names, want)
	}
	if _, ok := c.Observatory("themisb"); !ok {
		t.Fatalf("deduplicated listing must not drop lookups by id")
	}
}

func TestValidateTimeRange(t *testing.T) {
	c := New()
	c.PutObservatories(themis()...)

	if err := c.ValidateTimeRange("themisa", day(2008, 1, 2), day(2008, 1, 3)); err != nil {
		t.Fatalf("ValidateTimeRange in coverage: %v", err)
	}
	err := c.ValidateTimeRange("themisa", day(2006, 1, 1), day(2008, 1, 3))
	if !errors.Is(err, ErrOutsideCoverage) {
		t.Fatalf("ValidateTimeRange error = %v, want ErrOutsideCoverage", err)
	}
	if !strings.Contains(err.Error(), "2007-02-18T00:00:00Z") {
		t.Fatalf("coverage error %q does not name the window", err)
	}
	if err := c.ValidateTimeRange("nope", day(2008, 1, 2), day(2008, 1, 3)); !errors.Is(err, ErrUnknownObservatory) {
		t.Fatalf("ValidateTimeRange error = %v, want ErrUnknownObservatory", err)
	}
}

func TestValidateQueryJoinsFailures(t *testing.T) {
	c := New()
	c.PutObservatories(themis()...)
	req := model.NewQueryRequest(&model.ConjunctionQuery{
		TimeInterval: model.TimeInterval{Start: day(2008, 1, 2), End: day(2008, 1, 3)},
		Conditions: model.ConditionList{
			&model.SatelliteCondition{
				Satellites:           []model.Satellite{{ID: "themisa"}, {ID: "missing1"}, {ID: "missing2"}},
				SatelliteCombination: 2,
			},
		},
	})
	err := c.ValidateQuery(req)
	if !errors.Is(err, ErrUnknownObservatory) {
		t.Fatalf("ValidateQuery error = %v, want ErrUnknownObservatory", err)
	}
	if !strings.Contains(err.Error(), "missing1") || !strings.Contains(err.Error(), "missing2") {
		t.Fatalf("ValidateQuery error %q should name both missing satellites", err)
	}
}

func TestNearestGroundStations(t *testing.T) {
	c := New()
	c.PutGroundStations(
		model.GroundStation{ID: "GILL", Name: "Gillam", Location: model.GeoLocation{Latitude: 56.38, Longitude: 265.36}},
		model.GroundStation{ID: "FSMI", Name: "Fort Smith", Location: model.GeoLocation{Latitude: 60.03, Longitude: 248.07}},
		model.GroundStation{ID: "KIRU", Name: "Kiruna", Location: model.GeoLocation{Latitude: 67.84, Longitude: 20.41}},
	)
	got := c.NearestGroundStations(57, -95, 2)
	if len(got) != 2 {
		t.Fatalf("NearestGroundStations returned %d, want 2", len(got))
	}
	if got[0].Station.ID != "GILL" || got[1].Station.ID != "FSMI" {
		t.Fatalf("NearestGroundStations order = %s,%s, want GILL,FSMI", got[0].Station.ID, got[1].Station.ID)
	}
	if got[0].DistanceKm > got[1].DistanceKm {
		t.Fatalf("distances not ascending: %v", got)
	}
	if c.NearestGroundStations(0, 0, 0) != nil {
		t.Fatalf("NearestGroundStations(n=0) should be nil")
	}
}

type stubFetcher struct {
	obsErr error
}

func (s stubFetcher) GetObservatories(context.Context) ([]model.ObservatoryDescription, error) {
	return themis(), s.obsErr
}

func (s stubFetcher) GetGroundStations(context.Context) ([]model.GroundStation, error) {
	return []model.GroundStation{{ID: "GILL"}}, nil
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), stubFetcher{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := c.GroundStation("GILL"); !ok {
		t.Fatalf("ground station not loaded")
	}
	boom := errors.New("offline")
	if _, err := Load(context.Background(), stubFetcher{obsErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want wrapped %v", err, boom)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.PutObservatories(model.ObservatoryDescription{ID: fmt.Sprintf("sat%d", i), Name: fmt.Sprintf("SAT %d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Observatories()
		}()
	}
	wg.Wait()
	if got := len(c.Observatories()); got != 8 {
		t.Fatalf("Observatories = %d, want 8", got)
	}
}
