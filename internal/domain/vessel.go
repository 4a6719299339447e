package domain

// VesselRecord is one AIS observation of one vessel at one instant, as
// reported by the AISHub web service. Field semantics follow the AISHub API
// documentation; "unknown" is encoded with the sentinel values listed per
// field, never with an error.
type VesselRecord struct {
	// Dimension to bow, meters. Zero when unknown.
	BowDistance uint64 `json:"a"`
	// Dimension to stern, meters. Zero when unknown.
	SternDistance uint64 `json:"b"`
	// Dimension to port, meters. Zero when unknown.
	PortDistance uint64 `json:"c"`
	// Radio callsign. Empty when unknown.
	Callsign string `json:"callsign"`
	// Course over ground in degrees. 360.0 means "not available".
	CourseOverGround float64 `json:"cog"`
	// Dimension to starboard, meters. Zero when unknown.
	StarboardDistance uint64 `json:"d"`
	// Declared destination. Empty when unknown.
	Destination string `json:"dest"`
	// Draught in 1/10 meters. Zero when unknown.
	Draught uint64 `json:"draught"`
	// Positioning device type. Empty when unknown.
	DeviceType string `json:"device"`
	// Estimated time of arrival, AIS-encoded. Zero when unknown.
	ETA uint64 `json:"eta"`
	// Heading in degrees. 511 means "not available".
	Heading uint64 `json:"heading"`
	// IMO ship identification number. Zero when unknown.
	IMO uint64 `json:"imo"`
	// Latitude as human-readable degrees text. Empty when unknown.
	Latitude string `json:"latitude"`
	// Longitude as human-readable degrees text. Empty when unknown.
	Longitude string `json:"longitude"`
	// Maritime Mobile Service Identity. Zero when unknown.
	MMSI uint64 `json:"mmsi"`
	// Vessel name, max 20 characters. Empty when unknown.
	Name string `json:"name"`
	// Navigational status. Empty when unknown.
	NavStatus string `json:"navstat"`
	// Position accuracy, 0 (low) or 1 (high). Low assumed when unknown.
	PositionAccuracy uint8 `json:"pac"`
	// Rate of turn. Empty when unknown.
	RateOfTurn string `json:"rot"`
	// Speed over ground in 1/10 knots. 1024 means "not available".
	SpeedOverGround uint64 `json:"sog"`
	// Report timestamp, Unix epoch seconds. Zero when unknown.
	Timestamp uint64 `json:"tstamp"`
	// AIS vessel type code. Zero when unknown.
	VesselType uint64 `json:"type"`
}

// NewVesselRecord returns a record with every field set to its "not
// available" sentinel. Decoders start from this baseline and overwrite only
// the fields present in a response.
func NewVesselRecord() *VesselRecord {
	return &VesselRecord{
		CourseOverGround: 360.0,
		Heading:          511,
		SpeedOverGround:  1024,
	}
}

// ColumnNames is the canonical AISHub column vocabulary in on-disk order.
// TSTAMP and TYPE are the two names that do not match their field tags and
// are treated as fixed exceptions rather than derived by convention.
var ColumnNames = []string{
	"A", "B", "C", "CALLSIGN", "COG", "D", "DEST", "DRAUGHT", "DEVICE",
	"ETA", "HEADING", "IMO", "LATITUDE", "LONGITUDE", "MMSI", "NAME",
	"NAVSTAT", "PAC", "ROT", "SOG", "TSTAMP", "TYPE",
}

// Header returns a fresh copy of the canonical column header row.
func Header() []string {
	out := make([]string, len(ColumnNames))
	copy(out, ColumnNames)
	return out
}
