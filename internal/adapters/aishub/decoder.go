package aishub

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// RateLimitSentinel is the exact body AISHub returns instead of a table when
// the caller polls more often than the account allows.
const RateLimitSentinel = "Too frequent requests!"

// field indexes the canonical column vocabulary. Values match the position of
// the corresponding name in domain.ColumnNames.
type field int

const (
	fieldBow field = iota
	fieldStern
	fieldPort
	fieldCallsign
	fieldCOG
	fieldStarboard
	fieldDest
	fieldDraught
	fieldDevice
	fieldETA
	fieldHeading
	fieldIMO
	fieldLatitude
	fieldLongitude
	fieldMMSI
	fieldName
	fieldNavStatus
	fieldPAC
	fieldROT
	fieldSOG
	fieldTimestamp
	fieldVesselType

	fieldCount
)

// columnMapping records which column position each canonical field occupies
// in one specific response, or -1 when that field's column is absent. Built
// once per response, applied to every row.
type columnMapping [fieldCount]int

func newColumnMapping(header []string, obs ports.Observability) columnMapping {
	var m columnMapping
	for i := range m {
		m[i] = -1
	}
	for i, name := range header {
		switch name {
		case "A":
			m[fieldBow] = i
		case "B":
			m[fieldStern] = i
		case "C":
			m[fieldPort] = i
		case "CALLSIGN":
			m[fieldCallsign] = i
		case "COG":
			m[fieldCOG] = i
		case "D":
			m[fieldStarboard] = i
		case "DEST":
			m[fieldDest] = i
		case "DRAUGHT":
			m[fieldDraught] = i
		case "DEVICE":
			m[fieldDevice] = i
		case "ETA":
			m[fieldETA] = i
		case "HEADING":
			m[fieldHeading] = i
		case "IMO":
			m[fieldIMO] = i
		case "LATITUDE":
			m[fieldLatitude] = i
		case "LONGITUDE":
			m[fieldLongitude] = i
		case "MMSI":
			m[fieldMMSI] = i
		case "NAME":
			m[fieldName] = i
		case "NAVSTAT":
			m[fieldNavStatus] = i
		case "PAC":
			m[fieldPAC] = i
		case "ROT":
			m[fieldROT] = i
		case "SOG":
			m[fieldSOG] = i
		case "TSTAMP":
			// The timestamp column is not named after its field.
			m[fieldTimestamp] = i
		case "TYPE":
			// Neither is the vessel type column.
			m[fieldVesselType] = i
		default:
			// The upstream vocabulary may grow; unknown columns must not
			// abort decoding.
			obs.LogInfo("ignoring unknown response column", ports.Field{Key: "column", Value: name})
		}
	}
	return m
}

// Decoder decodes the AISHub CSV response body into vessel records.
type Decoder struct {
	obs ports.Observability
}

func NewDecoder(obs ports.Observability) *Decoder {
	return &Decoder{obs: obs}
}

// Decode returns the typed records for every parseable data row, in input
// order. A malformed row is skipped with a diagnostic; only an unreadable
// header aborts the whole response. The rate-limit sentinel body yields
// ports.ErrRateLimited without any decoding attempt.
func (d *Decoder) Decode(body string) ([]*domain.VesselRecord, error) {
	if body == RateLimitSentinel {
		return nil, ports.ErrRateLimited
	}

	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1 // arity is validated against the mapped columns

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read response header: %w", err)
	}
	mapping := newColumnMapping(header, d.obs)

	var out []*domain.VesselRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d.obs.LogError("skipping unreadable response row", err)
			continue
		}
		rec, err := decodeRow(row, mapping)
		if err != nil {
			d.obs.LogError("skipping malformed response row", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRow(row []string, m columnMapping) (*domain.VesselRecord, error) {
	rec := domain.NewVesselRecord()
	for f := field(0); f < fieldCount; f++ {
		col := m[f]
		if col < 0 {
			continue
		}
		if col >= len(row) {
			return nil, fmt.Errorf("row has %d cells, column %s mapped at %d", len(row), domain.ColumnNames[f], col)
		}
		if err := assign(rec, f, row[col]); err != nil {
			return nil, fmt.Errorf("column %s: %w", domain.ColumnNames[f], err)
		}
	}
	return rec, nil
}

func assign(rec *domain.VesselRecord, f field, cell string) error {
	switch f {
	case fieldBow:
		return setUint(&rec.BowDistance, cell)
	case fieldStern:
		return setUint(&rec.SternDistance, cell)
	case fieldPort:
		return setUint(&rec.PortDistance, cell)
	case fieldCallsign:
		rec.Callsign = cell
	case fieldCOG:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return err
		}
		rec.CourseOverGround = v
	case fieldStarboard:
		return setUint(&rec.StarboardDistance, cell)
	case fieldDest:
		rec.Destination = cell
	case fieldDraught:
		return setUint(&rec.Draught, cell)
	case fieldDevice:
		rec.DeviceType = cell
	case fieldETA:
		return setUint(&rec.ETA, cell)
	case fieldHeading:
		return setUint(&rec.Heading, cell)
	case fieldIMO:
		return setUint(&rec.IMO, cell)
	case fieldLatitude:
		rec.Latitude = cell
	case fieldLongitude:
		rec.Longitude = cell
	case fieldMMSI:
		return setUint(&rec.MMSI, cell)
	case fieldName:
		rec.Name = cell
	case fieldNavStatus:
		rec.NavStatus = cell
	case fieldPAC:
		v, err := strconv.ParseUint(cell, 10, 8)
		if err != nil {
			return err
		}
		rec.PositionAccuracy = uint8(v)
	case fieldROT:
		rec.RateOfTurn = cell
	case fieldSOG:
		return setUint(&rec.SpeedOverGround, cell)
	case fieldTimestamp:
		return setUint(&rec.Timestamp, cell)
	case fieldVesselType:
		return setUint(&rec.VesselType, cell)
	}
	return nil
}

func setUint(dst *uint64, cell string) error {
	v, err := strconv.ParseUint(cell, 10, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

var _ ports.Decoder = (*Decoder)(nil)
