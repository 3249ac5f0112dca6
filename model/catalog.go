package model

import (
	"encoding/xml"
	"time"
)

// ObservatoryResponse is the document returned by GET /observatories.
type ObservatoryResponse struct {
	XMLName       xml.Name                 `xml:"http://sscweb.gsfc.nasa.gov/schema ObservatoryResponse"`
	Observatories []ObservatoryDescription `xml:"Observatory"`
}

// ObservatoryDescription is one spacecraft known to SSC.
type ObservatoryDescription struct {
	ID                 string    `xml:"Id"`
	Name               string    `xml:"Name"`
	Resolution         int       `xml:"Resolution,omitempty"`
	StartTime          time.Time `xml:"StartTime"`
	EndTime            time.Time `xml:"EndTime"`
	Geometry           string    `xml:"Geometry,omitempty"`
	TrajectoryGeometry string    `xml:"TrajectoryGeometry,omitempty"`
	ResourceID         string    `xml:"ResourceId,omitempty"`
	GroupIDs           []string  `xml:"GroupId"`
}

// Coverage is the interval the service has ephemeris for.
func (o ObservatoryDescription) Coverage() TimeInterval {
	return TimeInterval{Start: o.StartTime, End: o.EndTime}
}

// GroundStationResponse is the document returned by GET /groundStations.
type GroundStationResponse struct {
	XMLName        xml.Name        `xml:"http://sscweb.gsfc.nasa.gov/schema GroundStationResponse"`
	GroundStations []GroundStation `xml:"GroundStation"`
}

// GroundStation is a fixed site known to SSC.
type GroundStation struct {
	ID       string      `xml:"Id"`
	Name     string      `xml:"Name"`
	Location GeoLocation `xml:"Location"`
}

// GeoLocation is a geographic position in degrees.
type GeoLocation struct {
	Latitude  float64 `xml:"Latitude"`
	Longitude float64 `xml:"Longitude"`
}
