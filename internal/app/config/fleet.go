package config

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// FleetFile reads the tracked fleet from a CSV file with a header row and
// two columns: IMO, then MMSI. A row identifies its vessel by IMO when that
// cell is non-empty and by MMSI otherwise; rows with neither are skipped.
type FleetFile struct {
	path string
}

func NewFleetFile(path string) *FleetFile {
	return &FleetFile{path: path}
}

func (f *FleetFile) Load() (imoKeys, mmsiKeys []string, err error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read fleet file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	for _, row := range rows[1:] {
		if len(row) > 0 && row[0] != "" {
			imoKeys = append(imoKeys, row[0])
			continue
		}
		if len(row) > 1 && row[1] != "" {
			mmsiKeys = append(mmsiKeys, row[1])
		}
	}
	return imoKeys, mmsiKeys, nil
}

var _ ports.FleetProvider = (*FleetFile)(nil)
