package archive

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
)

func TestPostgresArchiveWriteBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	a := NewPostgresArchive(db, "vessel_reports")

	rec := domain.NewVesselRecord()
	rec.Name = "GULLFOSS"
	rec.IMO = 9000001
	rec.MMSI = 230123000
	rec.Timestamp = 1700000000

	expectedQuery := regexp.QuoteMeta(
		"INSERT INTO vessel_reports (" + archiveColumns + ") VALUES " +
			"($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)" +
			" ON CONFLICT (imo, mmsi, tstamp) DO NOTHING")
	mock.ExpectExec(expectedQuery).
		WithArgs(
			uint64(0), uint64(0), uint64(0), "", 360.0, uint64(0), "",
			uint64(0), "", uint64(0), uint64(511), uint64(9000001), "", "",
			uint64(230123000), "GULLFOSS", "", uint8(0), "", uint64(1024),
			uint64(1700000000), uint64(0),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := a.WriteBatch([]*domain.VesselRecord{rec}); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresArchiveWriteBatchEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	a := NewPostgresArchive(db, "vessel_reports")
	if err := a.WriteBatch(nil); err != nil {
		t.Fatalf("expected nil error for empty batch, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresArchiveName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	a := NewPostgresArchive(db, "vessel_reports")
	if a.Name() != "postgres-archive" {
		t.Fatalf("expected sink name postgres-archive, got %s", a.Name())
	}
}
