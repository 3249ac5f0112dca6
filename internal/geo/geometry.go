// Package geo holds the small amount of geometry the client does locally:
// distances between reported positions and footpoints, and converting
// inertial positions to geodetic coordinates.
package geo

import (
	"math"
	"time"

	"github.com/golang/geo/s2"
	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/ssc-conjunctions/model"
)

// EarthRadiusKm is the mean Earth radius used for surface distances.
const EarthRadiusKm = 6371.0

// Vec3 is a cartesian position in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// FromVector converts a position reported by the service.
func FromVector(v model.Vector) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// GreatCircleKm returns the surface distance between two points given in
// degrees.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * EarthRadiusKm
}

// FootpointSeparationKm is the surface distance between two trace footpoints.
func FootpointSeparationKm(a, b model.TracePoint) float64 {
	return GreatCircleKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// LatLonAlt is a geodetic position. Angles are degrees, altitude is km above
// the WGS84 ellipsoid.
type LatLonAlt struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Geodetic converts an Earth-centred inertial position at t to geodetic
// coordinates, rotating by Greenwich mean sidereal time.
func Geodetic(eci Vec3, t time.Time) LatLonAlt {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)

	alt, _, ll := satellite.ECIToLLA(satellite.Vector3{X: eci.X, Y: eci.Y, Z: eci.Z}, gmst)
	return LatLonAlt{
		Latitude:  ll.Latitude * 180 / math.Pi,
		Longitude: NormalizeLongitude(ll.Longitude * 180 / math.Pi),
		Altitude:  alt,
	}
}

// NormalizeLongitude wraps lon into [-180, 180).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
