package model

// InternalFieldModel selects the internal (core) magnetic field model.
type InternalFieldModel string

const (
	InternalFieldIGRF         InternalFieldModel = "IGRF"
	InternalFieldSimpleDipole InternalFieldModel = "SimpleDipole"
)

// Tsyganenko89cKp is the Kp range parameter of the T89c external model.
type Tsyganenko89cKp string

const (
	Kp0_0   Tsyganenko89cKp = "KP0_0"
	Kp1_1_1 Tsyganenko89cKp = "KP1_1_1"
	Kp2_2_2 Tsyganenko89cKp = "KP2_2_2"
	Kp3_3_3 Tsyganenko89cKp = "KP3_3_3"
	Kp4_4_4 Tsyganenko89cKp = "KP4_4_4"
	Kp5_5_5 Tsyganenko89cKp = "KP5_5_5"
	Kp6_6_6 Tsyganenko89cKp = "KP6_6_6"
	Kp7_7_7 Tsyganenko89cKp = "KP7_7_7"
)

// FieldTraceDirection controls which hemisphere a satellite's field line is
// traced into.
type FieldTraceDirection string

const (
	TraceSameHemisphere     FieldTraceDirection = "SameHemisphere"
	TraceOppositeHemisphere FieldTraceDirection = "OppositeHemisphere"
	TraceNorthHemisphere    FieldTraceDirection = "NorthHemisphere"
	TraceSouthHemisphere    FieldTraceDirection = "SouthHemisphere"
)

// TraceType is how a lead satellite's position is projected before the
// conjunction area is applied.
type TraceType string

const (
	TraceTypeBField TraceType = "BField"
	TraceTypeRadial TraceType = "Radial"
)

// CoordinateSystem names a geophysical coordinate system.
type CoordinateSystem string

const (
	CoordinateGeo      CoordinateSystem = "Geo"
	CoordinateGm       CoordinateSystem = "Gm"
	CoordinateGse      CoordinateSystem = "Gse"
	CoordinateGsm      CoordinateSystem = "Gsm"
	CoordinateSm       CoordinateSystem = "Sm"
	CoordinateGeiTod   CoordinateSystem = "GeiTod"
	CoordinateGeiJ2000 CoordinateSystem = "GeiJ2000"
)

// Inertial reports whether positions in c are expressed in an Earth-centred
// inertial frame.
func (c CoordinateSystem) Inertial() bool {
	return c == CoordinateGeiTod || c == CoordinateGeiJ2000
}

// TraceCoordinateSystem is the subset of systems field traces can be reported in.
type TraceCoordinateSystem string

const (
	TraceCoordinateGeo TraceCoordinateSystem = "Geo"
	TraceCoordinateGm  TraceCoordinateSystem = "Gm"
)

// CoordinateSystemType picks spherical or cartesian components.
type CoordinateSystemType string

const (
	CoordinateTypeSpherical CoordinateSystemType = "Spherical"
	CoordinateTypeCartesian CoordinateSystemType = "Cartesian"
)

// QueryResultType is the shape of a conjunction result.
type QueryResultType string

const (
	ResultTypeXML     QueryResultType = "Xml"
	ResultTypeListing QueryResultType = "Listing"
)

// ConditionOperator combines the conditions of a query.
type ConditionOperator string

const (
	ConditionAll ConditionOperator = "All"
	ConditionAny ConditionOperator = "Any"
)

// CoordinateComponent is one component requested in location output.
type CoordinateComponent string

const (
	ComponentX         CoordinateComponent = "X"
	ComponentY         CoordinateComponent = "Y"
	ComponentZ         CoordinateComponent = "Z"
	ComponentLat       CoordinateComponent = "Lat"
	ComponentLon       CoordinateComponent = "Lon"
	ComponentLocalTime CoordinateComponent = "Local_Time"
)

// StatusCode is the outcome the service reports inside a result document.
type StatusCode string

const (
	StatusSuccess             StatusCode = "Success"
	StatusConflict            StatusCode = "Conflict"
	StatusBadRequest          StatusCode = "BadRequest"
	StatusInternalServerError StatusCode = "InternalServerError"
	StatusServiceUnavailable  StatusCode = "ServiceUnavailable"
)

// IsSuccess reports whether the service completed the request.
func (s StatusCode) IsSuccess() bool { return s == StatusSuccess }
