// Package render prints SSC listings and results for people. Output is a
// styled table on a terminal and plain space-separated columns otherwise.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/signalsfoundry/ssc-conjunctions/internal/catalog"
	"github.com/signalsfoundry/ssc-conjunctions/internal/geo"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	muted       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// Renderer writes tables to w.
type Renderer struct {
	w      io.Writer
	styled bool
}

// New returns a Renderer that styles its output when w is a terminal.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, styled: IsTerminal(w)}
}

// NewPlain returns a Renderer that never styles its output.
func NewPlain(w io.Writer) *Renderer { return &Renderer{w: w} }

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(r.w, r.note("(none)"))
		return err
	}
	t := table.New().Headers(headers...).Rows(rows...)
	if r.styled {
		t = t.Border(lipgloss.NormalBorder()).
			BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
			BorderColumn(false).BorderHeader(true).
			BorderStyle(muted).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle.PaddingRight(2)
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
			BorderColumn(false).BorderHeader(false).
			StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

func (r *Renderer) note(s string) string {
	if r.styled {
		return muted.Render(s)
	}
	return s
}

// Observatories prints one row per observatory.
func (r *Renderer) Observatories(obs []model.ObservatoryDescription) error {
	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, []string{
			o.ID, o.Name, day(o.StartTime), day(o.EndTime), resolution(o.Resolution),
		})
	}
	return r.table([]string{"ID", "NAME", "START", "END", "RESOLUTION"}, rows)
}

// GroundStations prints one row per ground station.
func (r *Renderer) GroundStations(stations []model.GroundStation) error {
	rows := make([][]string, 0, len(stations))
	for _, s := range stations {
		rows = append(rows, []string{s.ID, s.Name, deg(s.Location.Latitude), deg(s.Location.Longitude)})
	}
	return r.table([]string{"ID", "NAME", "LAT", "LON"}, rows)
}

// NearestStations prints stations with their distance from a point.
func (r *Renderer) NearestStations(stations []catalog.StationDistance) error {
	rows := make([][]string, 0, len(stations))
	for _, s := range stations {
		rows = append(rows, []string{s.Station.ID, s.Station.Name, km(s.DistanceKm)})
	}
	return r.table([]string{"ID", "NAME", "DISTANCE"}, rows)
}

// Conjunctions prints the status line and one row per conjunction.
func (r *Renderer) Conjunctions(res *model.QueryResult) error {
	if res == nil {
		return nil
	}
	if err := r.status(res.ResultStatus); err != nil {
		return err
	}
	summaries := geo.Summarize(res)
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		foot := "-"
		if s.MaxFootpointKm > 0 {
			foot = km(s.MaxFootpointKm)
		}
		rows = append(rows, []string{
			instant(s.Interval.Start),
			instant(s.Interval.End),
			s.Interval.Duration().String(),
			strings.Join(s.Satellites, ","),
			km(s.MaxSeparationKm),
			foot,
		})
	}
	return r.table([]string{"START", "END", "DURATION", "SATELLITES", "MAX SEPARATION", "MAX FOOTPOINT"}, rows)
}

// Locations prints each satellite's samples. Inertial positions also get
// their geodetic sub-satellite point.
func (r *Renderer) Locations(res *model.DataResult) error {
	if res == nil {
		return nil
	}
	if err := r.status(res.ResultStatus); err != nil {
		return err
	}
	var rows [][]string
	for _, sat := range res.Data {
		for _, coords := range sat.Coordinates {
			n := coords.Len()
			for i := 0; i < n && i < len(sat.Time); i++ {
				pos := geo.Vec3{X: coords.X[i], Y: coords.Y[i], Z: coords.Z[i]}
				lat, lon, alt := "-", "-", "-"
				if coords.CoordinateSystem.Inertial() {
					g := geo.Geodetic(pos, sat.Time[i])
					lat, lon, alt = deg(g.Latitude), deg(g.Longitude), km(g.Altitude)
				}
				rows = append(rows, []string{
					sat.ID, string(coords.CoordinateSystem), instant(sat.Time[i]),
					num(pos.X), num(pos.Y), num(pos.Z), lat, lon, alt,
				})
			}
		}
	}
	return r.table([]string{"SATELLITE", "SYSTEM", "TIME", "X", "Y", "Z", "LAT", "LON", "ALT"}, rows)
}

// Files prints the generated plot URLs.
func (r *Renderer) Files(res *model.FileResult) error {
	if res == nil {
		return nil
	}
	if err := r.status(res.ResultStatus); err != nil {
		return err
	}
	rows := make([][]string, 0, len(res.Files))
	for _, f := range res.Files {
		rows = append(rows, []string{f.Name, f.MimeType, strconv.FormatInt(f.Length, 10)})
	}
	return r.table([]string{"URL", "TYPE", "BYTES"}, rows)
}

func (r *Renderer) status(s model.ResultStatus) error {
	line := "status: " + string(s.StatusCode)
	if s.StatusSubCode != "" {
		line += " (" + s.StatusSubCode + ")"
	}
	if len(s.StatusText) > 0 {
		line += " " + strings.Join(s.StatusText, "; ")
	}
	_, err := fmt.Fprintln(r.w, r.note(line))
	return err
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}

func instant(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func deg(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func km(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + " km" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func resolution(sec int) string {
	if sec <= 0 {
		return "-"
	}
	return (time.Duration(sec) * time.Second).String()
}
