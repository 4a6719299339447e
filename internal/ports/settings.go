package ports

// Settings is the flat set of AISHub query parameters the polling loop
// reloads at the start of every cycle. Optional filters are pointers so the
// request builder can tell "unset" from zero.
type Settings struct {
	APIKey          string   `yaml:"api_key"`
	IntervalMinutes uint     `yaml:"interval_minutes"`
	Format          int      `yaml:"format"`
	Output          string   `yaml:"output"`
	Compress        int      `yaml:"compress"`
	LatMin          *float64 `yaml:"lat_min,omitempty"`
	LatMax          *float64 `yaml:"lat_max,omitempty"`
	LonMin          *float64 `yaml:"lon_min,omitempty"`
	LonMax          *float64 `yaml:"lon_max,omitempty"`
	MaxAgeSeconds   *uint64  `yaml:"max_age_seconds,omitempty"`
}

// SettingsProvider loads and persists Settings. Save must be immediately
// durable: the rate-limit transition bumps the interval and relies on the new
// value surviving a crash.
type SettingsProvider interface {
	Load() (Settings, error)
	Save(Settings) error
}
