package movementdb

import "gati.bengalurutransit.org/internal/appconf"

const defaultBulkInsertBatchSize = 500

// Config carries the options needed to open a measurement database.
type Config struct {
	DBPath string
	Env    appconf.Environment

	// BulkInsertBatchSize caps how many rows one multi-row INSERT carries.
	// Zero means the default.
	BulkInsertBatchSize int

	verbose bool
}

// NewConfig creates a Config for the given database path and environment.
func NewConfig(dbPath string, env appconf.Environment, verbose bool) Config {
	return Config{
		DBPath:  dbPath,
		Env:     env,
		verbose: verbose,
	}
}

func (c Config) GetBulkInsertBatchSize() int {
	if c.BulkInsertBatchSize > 0 {
		return c.BulkInsertBatchSize
	}
	return defaultBulkInsertBatchSize
}
