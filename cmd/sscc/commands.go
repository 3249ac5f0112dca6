package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/ssc-conjunctions/internal/catalog"
	"github.com/signalsfoundry/ssc-conjunctions/internal/config"
	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
	"github.com/signalsfoundry/ssc-conjunctions/internal/observability"
	"github.com/signalsfoundry/ssc-conjunctions/internal/query"
	"github.com/signalsfoundry/ssc-conjunctions/internal/ssc"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "sscc [endpoint]",
		Short: "Satellite Situation Center conjunction client",
		Long: "Without a subcommand, sscc lists observatories and ground stations and\n" +
			"runs the THEMIS demonstration conjunction query, printing the request and\n" +
			"response documents.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("accepts at most one endpoint argument, received %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run(stdout, stderr, runDemo),
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newObservatoriesCmd(stdout, stderr),
		newGroundStationsCmd(stdout, stderr),
		newConjunctionsCmd(stdout, stderr),
		newLocationsCmd(stdout, stderr),
		newGraphsCmd(stdout, stderr),
	)
	return root
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unexpected arguments %v", args)
	}
	return nil
}

func runDemo(ctx context.Context, a *app, _ []string) error {
	obs, err := a.client.GetObservatories(ctx)
	if err != nil {
		return err
	}
	stations, err := a.client.GetGroundStations(ctx)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "catalog fetched",
		logging.Int("observatories", len(obs)),
		logging.Int("ground_stations", len(stations)),
	)

	res, err := a.client.GetConjunctions(ctx, query.Demo())
	if err != nil {
		return err
	}
	if err := a.out.Conjunctions(res); err != nil {
		return err
	}
	return ssc.CheckStatus(res.ResultStatus)
}

func newObservatoriesCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "observatories",
		Short: "List observatories with their ephemeris coverage",
		Args:  noArgs,
		RunE: run(stdout, stderr, func(ctx context.Context, a *app, _ []string) error {
			obs, err := a.client.GetObservatories(ctx)
			if err != nil {
				return err
			}
			c := catalog.New()
			c.PutObservatories(obs...)
			return a.out.Observatories(c.Observatories())
		}),
	}
}

func newGroundStationsCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		near  []float64
		limit int
	)
	cmd := &cobra.Command{
		Use:   "groundstations",
		Short: "List ground stations, optionally the nearest to a point",
		Args:  noArgs,
		RunE: run(stdout, stderr, func(ctx context.Context, a *app, _ []string) error {
			if len(near) != 0 && len(near) != 2 {
				return usagef("--near wants lat,lon, got %v", near)
			}
			stations, err := a.client.GetGroundStations(ctx)
			if err != nil {
				return err
			}
			c := catalog.New()
			c.PutGroundStations(stations...)
			if len(near) == 0 {
				return a.out.GroundStations(c.GroundStations())
			}
			return a.out.NearestStations(c.NearestGroundStations(near[0], near[1], limit))
		}),
	}
	cmd.Flags().Float64SliceVar(&near, "near", nil, "list stations nearest to lat,lon (degrees)")
	cmd.Flags().IntVar(&limit, "limit", 5, "number of stations listed with --near")
	return cmd
}

func newConjunctionsCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		file          string
		checkCoverage bool
	)
	cmd := &cobra.Command{
		Use:   "conjunctions",
		Short: "Run a conjunction query (the THEMIS demo query unless -f is given)",
		Args:  noArgs,
		RunE: run(stdout, stderr, func(ctx context.Context, a *app, _ []string) error {
			req := query.Demo()
			if file != "" {
				loaded, err := query.Load(file)
				if err != nil {
					return fmt.Errorf("%w: %w", errUsage, err)
				}
				req = loaded
			}

			if checkCoverage {
				vctx, span := observability.StartSpan(ctx, "validate coverage")
				cat, err := catalog.Load(vctx, a.client)
				if err == nil {
					err = cat.ValidateQuery(req)
				}
				span.End()
				if err != nil {
					return err
				}
			}

			res, err := a.client.GetConjunctions(ctx, req)
			if err != nil {
				return err
			}
			if err := a.out.Conjunctions(res); err != nil {
				return err
			}
			return ssc.CheckStatus(res.ResultStatus)
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "query file (.yaml, .yml, .toml or .xml)")
	cmd.Flags().BoolVar(&checkCoverage, "check-coverage", false, "reject satellites whose ephemeris does not cover the query interval")
	return cmd
}

// trajectoryFlags are shared by the locations and graphs commands.
type trajectoryFlags struct {
	sats   []string
	start  string
	end    string
	system string
}

func (f *trajectoryFlags) register(cmd *cobra.Command, system model.CoordinateSystem) {
	cmd.Flags().StringSliceVar(&f.sats, "sat", append([]string(nil), query.DemoSatellites[:2]...), "observatory ids")
	cmd.Flags().StringVar(&f.start, "start", "2008-01-02T11:00:00Z", "interval start (RFC 3339)")
	cmd.Flags().StringVar(&f.end, "end", "2008-01-02T11:59:59Z", "interval end (RFC 3339)")
	cmd.Flags().StringVar(&f.system, "coords", string(system), "coordinate system")
}

func (f *trajectoryFlags) resolve() (model.TimeInterval, []model.SatelliteSpecification, model.CoordinateSystem, error) {
	var ti model.TimeInterval
	start, err := time.Parse(time.RFC3339, f.start)
	if err != nil {
		return ti, nil, "", usagef("--start: %v", err)
	}
	end, err := time.Parse(time.RFC3339, f.end)
	if err != nil {
		return ti, nil, "", usagef("--end: %v", err)
	}
	if !start.Before(end) {
		return ti, nil, "", usagef("--start must be before --end")
	}
	if len(f.sats) == 0 {
		return ti, nil, "", usagef("--sat needs at least one observatory")
	}
	system, ok := coordinateSystems[f.system]
	if !ok {
		return ti, nil, "", usagef("unknown coordinate system %q", f.system)
	}
	sats := make([]model.SatelliteSpecification, 0, len(f.sats))
	for _, id := range f.sats {
		sats = append(sats, model.SatelliteSpecification{ID: id, ResolutionFactor: 1})
	}
	return model.TimeInterval{Start: start.UTC(), End: end.UTC()}, sats, system, nil
}

var coordinateSystems = map[string]model.CoordinateSystem{}

func init() {
	for _, cs := range []model.CoordinateSystem{
		model.CoordinateGeo, model.CoordinateGm, model.CoordinateGse, model.CoordinateGsm,
		model.CoordinateSm, model.CoordinateGeiTod, model.CoordinateGeiJ2000,
	} {
		coordinateSystems[string(cs)] = cs
	}
}

func newLocationsCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags trajectoryFlags
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Fetch satellite positions over an interval",
		Args:  noArgs,
		RunE: run(stdout, stderr, func(ctx context.Context, a *app, _ []string) error {
			ti, sats, system, err := flags.resolve()
			if err != nil {
				return err
			}
			req := model.NewDataRequest()
			req.TimeInterval = ti
			req.Satellites = sats
			req.OutputOptions = &model.OutputOptions{
				CoordinateOptions: []model.CoordinateOptions{
					{CoordinateSystem: system, Component: model.ComponentX},
					{CoordinateSystem: system, Component: model.ComponentY},
					{CoordinateSystem: system, Component: model.ComponentZ},
				},
			}
			res, err := a.client.GetLocations(ctx, req)
			if err != nil {
				return err
			}
			if err := a.out.Locations(res); err != nil {
				return err
			}
			return ssc.CheckStatus(res.ResultStatus)
		}),
	}
	flags.register(cmd, model.CoordinateGeiTod)
	return cmd
}

func newGraphsCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags trajectoryFlags
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Request orbit plots and list their URLs",
		Args:  noArgs,
		RunE: run(stdout, stderr, func(ctx context.Context, a *app, _ []string) error {
			ti, sats, system, err := flags.resolve()
			if err != nil {
				return err
			}
			req := model.NewGraphRequest()
			req.TimeInterval = ti
			req.Satellites = sats
			req.GraphOptions = &model.OrbitGraphOptions{
				CoordinateSystem: system,
				XyView:           true,
				XzView:           true,
				SunToRight:       true,
				EvenAxesScale:    true,
			}
			res, err := a.client.GetGraphs(ctx, req)
			if err != nil {
				return err
			}
			if err := a.out.Files(res); err != nil {
				return err
			}
			return ssc.CheckStatus(res.ResultStatus)
		}),
	}
	flags.register(cmd, model.CoordinateGse)
	return cmd
}
