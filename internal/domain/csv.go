package domain

import "strconv"

// Row renders the record as a CSV data row in canonical column order,
// matching ColumnNames position for position.
func (r *VesselRecord) Row() []string {
	return []string{
		strconv.FormatUint(r.BowDistance, 10),
		strconv.FormatUint(r.SternDistance, 10),
		strconv.FormatUint(r.PortDistance, 10),
		r.Callsign,
		strconv.FormatFloat(r.CourseOverGround, 'f', -1, 64),
		strconv.FormatUint(r.StarboardDistance, 10),
		r.Destination,
		strconv.FormatUint(r.Draught, 10),
		r.DeviceType,
		strconv.FormatUint(r.ETA, 10),
		strconv.FormatUint(r.Heading, 10),
		strconv.FormatUint(r.IMO, 10),
		r.Latitude,
		r.Longitude,
		strconv.FormatUint(r.MMSI, 10),
		r.Name,
		r.NavStatus,
		strconv.FormatUint(uint64(r.PositionAccuracy), 10),
		r.RateOfTurn,
		strconv.FormatUint(r.SpeedOverGround, 10),
		strconv.FormatUint(r.Timestamp, 10),
		strconv.FormatUint(r.VesselType, 10),
	}
}
