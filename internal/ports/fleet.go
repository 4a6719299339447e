package ports

// FleetProvider yields the tracked vessel keys. A vessel that has both an IMO
// and an MMSI entry appears only in the IMO list.
type FleetProvider interface {
	Load() (imoKeys, mmsiKeys []string, err error)
}
