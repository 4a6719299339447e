package archive

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// PostgresArchive mirrors decoded observations into a relational table.
// Duplicate observations are absorbed by the unique key rather than by tail
// comparison, so the archive can safely receive the full batch of every
// cycle.
type PostgresArchive struct {
	db    *sql.DB
	table string
}

func NewPostgresArchive(db *sql.DB, table string) *PostgresArchive {
	return &PostgresArchive{db: db, table: table}
}

func (a *PostgresArchive) Name() string { return "postgres-archive" }

const archiveColumns = "a, b, c, callsign, cog, d, dest, draught, device, eta, " +
	"heading, imo, latitude, longitude, mmsi, name, navstat, pac, rot, sog, " +
	"tstamp, vessel_type"

const archiveColumnCount = 22

func (a *PostgresArchive) WriteBatch(records []*domain.VesselRecord) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(a.table)
	b.WriteString(" (")
	b.WriteString(archiveColumns)
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(records)*archiveColumnCount)
	for i, r := range records {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(")
		for j := 0; j < archiveColumnCount; j++ {
			if j > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "$%d", len(args)+j+1)
		}
		b.WriteString(")")

		args = append(args,
			r.BowDistance,
			r.SternDistance,
			r.PortDistance,
			r.Callsign,
			r.CourseOverGround,
			r.StarboardDistance,
			r.Destination,
			r.Draught,
			r.DeviceType,
			r.ETA,
			r.Heading,
			r.IMO,
			r.Latitude,
			r.Longitude,
			r.MMSI,
			r.Name,
			r.NavStatus,
			r.PositionAccuracy,
			r.RateOfTurn,
			r.SpeedOverGround,
			r.Timestamp,
			r.VesselType,
		)
	}

	b.WriteString(" ON CONFLICT (imo, mmsi, tstamp) DO NOTHING")

	_, err := a.db.Exec(b.String(), args...)
	return err
}

var _ ports.Sink = (*PostgresArchive)(nil)
