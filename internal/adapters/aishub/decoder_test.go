package aishub

import (
	"errors"
	"strings"
	"testing"

	"github.com/G0rocks/aishub-data-collector/internal/adapters/observability"
	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

func newTestDecoder() *Decoder {
	return NewDecoder(observability.NopObs{})
}

func TestDecodeColumnOrderIsPermutationInvariant(t *testing.T) {
	canonical := "MMSI,IMO,NAME,TSTAMP,SOG,COG\n" +
		"230123000,9000001,GULLFOSS,1700000000,57,123.4\n"
	permuted := "COG,NAME,TSTAMP,IMO,SOG,MMSI\n" +
		"123.4,GULLFOSS,1700000000,9000001,57,230123000\n"

	d := newTestDecoder()

	a, err := d.Decode(canonical)
	if err != nil {
		t.Fatalf("decode canonical: %v", err)
	}
	b, err := d.Decode(permuted)
	if err != nil {
		t.Fatalf("decode permuted: %v", err)
	}
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected one record each, got %d and %d", len(a), len(b))
	}
	if *a[0] != *b[0] {
		t.Fatalf("records differ across column permutations:\n%+v\n%+v", a[0], b[0])
	}
	if a[0].MMSI != 230123000 || a[0].IMO != 9000001 || a[0].Timestamp != 1700000000 {
		t.Fatalf("unexpected record: %+v", a[0])
	}
	if a[0].CourseOverGround != 123.4 || a[0].SpeedOverGround != 57 {
		t.Fatalf("unexpected record: %+v", a[0])
	}
}

func TestDecodeIgnoresUnknownColumn(t *testing.T) {
	body := "MMSI,WIND_SPEED,TSTAMP\n" +
		"230123000,12,1700000000\n"

	records, err := newTestDecoder().Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].MMSI != 230123000 || records[0].Timestamp != 1700000000 {
		t.Fatalf("recognized columns not decoded: %+v", records[0])
	}
}

func TestDecodeMissingColumnsKeepUnknownSentinels(t *testing.T) {
	body := "MMSI,TSTAMP\n" +
		"230123000,1700000000\n"

	records, err := newTestDecoder().Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	want := domain.NewVesselRecord()
	want.MMSI = 230123000
	want.Timestamp = 1700000000
	if *records[0] != *want {
		t.Fatalf("expected sentinel defaults for absent columns, got %+v", records[0])
	}
}

func TestDecodeRateLimitSentinel(t *testing.T) {
	records, err := newTestDecoder().Decode(RateLimitSentinel)
	if !errors.Is(err, ports.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if records != nil {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestDecodeSkipsMalformedRows(t *testing.T) {
	body := strings.Join([]string{
		"MMSI,TSTAMP,SOG",
		"230123000,1700000000,57",
		"230123001,not-a-timestamp,57", // malformed cell
		"230123002",                    // wrong arity
		"230123003,1700000003,58",
	}, "\n") + "\n"

	records, err := newTestDecoder().Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after skipping bad rows, got %d", len(records))
	}
	if records[0].MMSI != 230123000 || records[1].MMSI != 230123003 {
		t.Fatalf("unexpected surviving records: %+v %+v", records[0], records[1])
	}
}

func TestDecodePreservesRowOrder(t *testing.T) {
	body := "MMSI,TSTAMP\n" +
		"3,1700000003\n" +
		"1,1700000001\n" +
		"2,1700000002\n"

	records, err := newTestDecoder().Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got []uint64
	for _, r := range records {
		got = append(got, r.MMSI)
	}
	want := []uint64{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected input row order %v, got %v", want, got)
		}
	}
}

func TestDecodeFullVocabulary(t *testing.T) {
	header := strings.Join(domain.ColumnNames, ",")
	row := "10,20,3,TFAB,123.4,4,REYKJAVIK,45,GPS,1719072000,90,9000001," +
		"64.15,-21.94,230123000,GULLFOSS,Under way,1,0,57,1700000000,70"

	records, err := newTestDecoder().Decode(header + "\n" + row + "\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.BowDistance != 10 || r.SternDistance != 20 || r.PortDistance != 3 || r.StarboardDistance != 4 {
		t.Fatalf("dimensions not decoded: %+v", r)
	}
	if r.Callsign != "TFAB" || r.Destination != "REYKJAVIK" || r.DeviceType != "GPS" {
		t.Fatalf("text fields not decoded: %+v", r)
	}
	if r.Draught != 45 {
		t.Fatalf("expected DRAUGHT column to populate the draught field, got %+v", r)
	}
	if r.ETA != 1719072000 || r.Heading != 90 || r.VesselType != 70 {
		t.Fatalf("numeric fields not decoded: %+v", r)
	}
	if r.Latitude != "64.15" || r.Longitude != "-21.94" {
		t.Fatalf("position text not decoded: %+v", r)
	}
	if r.NavStatus != "Under way" || r.PositionAccuracy != 1 || r.RateOfTurn != "0" {
		t.Fatalf("status fields not decoded: %+v", r)
	}
}

func TestDecodeEmptyTable(t *testing.T) {
	records, err := newTestDecoder().Decode("MMSI,TSTAMP\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
