package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFleet(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ships.csv")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fleet: %v", err)
	}
	return path
}

func TestFleetFileLoad(t *testing.T) {
	path := writeFleet(t, "imo,mmsi\n9000001,\n,230123000\n9000002,230999000\n")

	imoKeys, mmsiKeys, err := NewFleetFile(path).Load()
	if err != nil {
		t.Fatalf("load fleet: %v", err)
	}

	// A vessel with both keys is requested by IMO only.
	if !reflect.DeepEqual(imoKeys, []string{"9000001", "9000002"}) {
		t.Fatalf("unexpected imo keys: %v", imoKeys)
	}
	if !reflect.DeepEqual(mmsiKeys, []string{"230123000"}) {
		t.Fatalf("unexpected mmsi keys: %v", mmsiKeys)
	}
}

func TestFleetFileSkipsBlankRows(t *testing.T) {
	path := writeFleet(t, "imo,mmsi\n,\n9000001,\n")

	imoKeys, mmsiKeys, err := NewFleetFile(path).Load()
	if err != nil {
		t.Fatalf("load fleet: %v", err)
	}
	if len(imoKeys) != 1 || len(mmsiKeys) != 0 {
		t.Fatalf("expected blank row skipped, got imo=%v mmsi=%v", imoKeys, mmsiKeys)
	}
}

func TestFleetFileHeaderOnly(t *testing.T) {
	path := writeFleet(t, "imo,mmsi\n")

	imoKeys, mmsiKeys, err := NewFleetFile(path).Load()
	if err != nil {
		t.Fatalf("load fleet: %v", err)
	}
	if len(imoKeys) != 0 || len(mmsiKeys) != 0 {
		t.Fatalf("expected empty fleet, got imo=%v mmsi=%v", imoKeys, mmsiKeys)
	}
}

func TestFleetFileMissing(t *testing.T) {
	if _, _, err := NewFleetFile(filepath.Join(t.TempDir(), "absent.csv")).Load(); err == nil {
		t.Fatalf("expected error for missing fleet file")
	}
}
