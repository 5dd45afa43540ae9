package movementdb

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/movement"
	"gati.bengalurutransit.org/internal/traveltime"
	"gati.bengalurutransit.org/internal/wards"
)

// Aggregate CSV column names. Uber Movement ships weekly aggregates bucketed
// by day of week (dow) and hourly ones bucketed by hour of day (hod); either
// bucket column is accepted.
const (
	columnSourceID  = "sourceid"
	columnDestID    = "dstid"
	columnDayOfWeek = "dow"
	columnHourOfDay = "hod"
	columnMean      = "mean_travel_time"
	columnStddev    = "standard_deviation_travel_time"
)

// ImportTravelTimes parses a travel-time aggregate CSV (gzipped or plain)
// and replaces the stored measurements with it. Reimporting an unchanged
// payload from the same source is a no-op, keyed on a content hash.
func (c *Client) ImportTravelTimes(ctx context.Context, data []byte, source string) error {
	logger := slog.Default().With(slog.String("component", "movement_importer"))

	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)
		logging.LogOperation(logger, "travel_time_import_completed",
			slog.Duration("duration", c.importRuntime),
			slog.String("source", source))
	}()

	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	existing, err := c.Queries.GetImportMetadata(ctx)
	if err == nil {
		if existing.FileHash == hashStr && existing.FileSource == source {
			logging.LogOperation(logger, "travel_time_data_unchanged_skipping_import",
				slog.String("hash", hashStr[:8]))
			return nil
		}
		logging.LogOperation(logger, "travel_time_data_changed_reimporting",
			slog.String("old_hash", existing.FileHash[:8]),
			slog.String("new_hash", hashStr[:8]))
		if err := c.Queries.ClearTravelTimes(ctx); err != nil {
			return fmt.Errorf("error clearing existing travel times: %w", err)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("error checking import metadata: %w", err)
	}

	rows, err := parseAggregateCSV(data)
	if err != nil {
		return err
	}

	if err := c.bulkInsertTravelTimes(ctx, rows); err != nil {
		return fmt.Errorf("unable to store travel times: %w", err)
	}

	logging.LogOperation(logger, "updating_import_metadata",
		slog.String("hash", hashStr[:8]),
		slog.String("source", source))

	err = c.Queries.UpsertImportMetadata(ctx, ImportMetadataRow{
		FileHash:   hashStr,
		ImportTime: time.Now().Unix(),
		FileSource: source,
	})
	if err != nil {
		logging.LogError(logger, "Error updating import metadata", err)
		return fmt.Errorf("error updating import metadata: %w", err)
	}

	return nil
}

func parseAggregateCSV(data []byte) ([]TravelTimeRow, error) {
	var reader io.Reader = bytes.NewReader(data)
	if len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzipped aggregate: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregate header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnSourceID, columnDestID, columnMean} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("aggregate header is missing column %q", required)
		}
	}
	bucketColumn, ok := columns[columnDayOfWeek]
	if !ok {
		bucketColumn, ok = columns[columnHourOfDay]
	}
	if !ok {
		return nil, fmt.Errorf("aggregate header needs a %q or %q column", columnDayOfWeek, columnHourOfDay)
	}

	var parsed []TravelTimeRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read aggregate record at line %d: %w", line, err)
		}

		row, err := travelTimeRowFromRecord(record, columns, bucketColumn)
		if err != nil {
			return nil, fmt.Errorf("aggregate record at line %d: %w", line, err)
		}
		parsed = append(parsed, row)
	}
	return parsed, nil
}

func travelTimeRowFromRecord(record []string, columns map[string]int, bucketColumn int) (TravelTimeRow, error) {
	readField := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	src, err := strconv.ParseInt(readField(columns[columnSourceID]), 10, 64)
	if err != nil {
		return TravelTimeRow{}, fmt.Errorf("bad %s: %w", columnSourceID, err)
	}
	dst, err := strconv.ParseInt(readField(columns[columnDestID]), 10, 64)
	if err != nil {
		return TravelTimeRow{}, fmt.Errorf("bad %s: %w", columnDestID, err)
	}
	bucket, err := strconv.ParseInt(readField(bucketColumn), 10, 64)
	if err != nil {
		return TravelTimeRow{}, fmt.Errorf("bad bucket: %w", err)
	}
	mean, err := strconv.ParseFloat(readField(columns[columnMean]), 64)
	if err != nil {
		return TravelTimeRow{}, fmt.Errorf("bad %s: %w", columnMean, err)
	}

	row := TravelTimeRow{
		SourceMovementID: src,
		DestMovementID:   dst,
		DayBucket:        bucket,
		MeanSeconds:      mean,
	}
	if i, ok := columns[columnStddev]; ok {
		if stddev, err := strconv.ParseFloat(readField(i), 64); err == nil {
			row.StddevSeconds = sql.NullFloat64{Float64: stddev, Valid: true}
		}
	}
	return row, nil
}

func (c *Client) bulkInsertTravelTimes(ctx context.Context, rows []TravelTimeRow) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	logging.LogOperation(logger, "inserting_travel_times",
		slog.Int("count", len(rows)))

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "bulk_insert_travel_times")

	const baseQuery = `INSERT INTO travel_times (
		source_movement_id, dest_movement_id, day_bucket, mean_seconds, stddev_seconds
	) VALUES `

	batchSize := c.config.GetBulkInsertBatchSize()
	for start := 0; start < len(rows); start += batchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		var query strings.Builder
		query.WriteString(baseQuery)
		args := make([]interface{}, 0, len(batch)*5)
		for j, row := range batch {
			if j > 0 {
				query.WriteString(", ")
			}
			query.WriteString("(?, ?, ?, ?, ?)")
			args = append(args,
				row.SourceMovementID,
				row.DestMovementID,
				row.DayBucket,
				row.MeanSeconds,
				row.StddevSeconds,
			)
		}

		if _, err := tx.ExecContext(ctx, query.String(), args...); err != nil {
			return fmt.Errorf("failed to insert travel_times batch: %w", err)
		}

		if end%100000 == 0 || end == len(rows) {
			logging.LogOperation(logger, "travel_times_progress",
				slog.Int("inserted", end),
				slog.Int("total", len(rows)))
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logging.LogOperation(logger, "travel_times_inserted",
		slog.Int("count", len(rows)))

	return nil
}

// StoreWards replaces the ward table with the given wards.
func (c *Client) StoreWards(ctx context.Context, all []wards.Ward) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "store_wards")

	qtx := c.Queries.WithTx(tx)
	if err := qtx.ClearWards(ctx); err != nil {
		return fmt.Errorf("error clearing wards: %w", err)
	}
	for _, w := range all {
		err := qtx.CreateWard(ctx, WardRow{
			WardNo:     int64(w.ID),
			Name:       w.Name,
			MovementID: int64(w.MovementID),
		})
		if err != nil {
			return fmt.Errorf("unable to create ward %d: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logging.LogOperation(logger, "wards_stored",
		slog.Int("count", len(all)))

	return nil
}

// StoreWardPairs replaces the planned measurement pairs.
func (c *Client) StoreWardPairs(ctx context.Context, pairs []traveltime.PlannedPair) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "store_ward_pairs")

	qtx := c.Queries.WithTx(tx)
	if err := qtx.ClearWardPairs(ctx); err != nil {
		return fmt.Errorf("error clearing ward pairs: %w", err)
	}
	for _, p := range pairs {
		err := qtx.CreateWardPair(ctx, WardPairRow{
			SrcWardNo:     int64(p.Src.WardID),
			DstWardNo:     int64(p.Dst.WardID),
			SrcMovementID: int64(p.Src.MovementID),
			DstMovementID: int64(p.Dst.MovementID),
		})
		if err != nil {
			return fmt.Errorf("unable to create ward pair %d->%d: %w", p.Src.WardID, p.Dst.WardID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logging.LogOperation(logger, "ward_pairs_stored",
		slog.Int("count", len(pairs)))

	return nil
}

// Matrix builds the in-memory pairwise lookup from stored measurements,
// joining provider Movement IDs back to ward numbers.
func (c *Client) Matrix(ctx context.Context) (*movement.Matrix, error) {
	rows, err := c.Queries.ListMeanTravelTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mean travel times: %w", err)
	}

	means := make(map[movement.PairKey]float64, len(rows))
	for _, row := range rows {
		key := movement.PairKey{Src: int(row.SrcWardNo), Dst: int(row.DstWardNo)}
		means[key] = row.MeanSeconds
	}
	return movement.NewMatrixFromMeans(means), nil
}

func configureSQLitePerformance(ctx context.Context, db *sql.DB) error {
	pragmas := []struct {
		name        string
		description string
	}{
		{"PRAGMA cache_size=-64000", "Set cache size to 64MB"},
		{"PRAGMA temp_store=MEMORY", "Store temporary data in memory"},
	}

	logger := slog.Default().With(slog.String("component", "sqlite_performance"))

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma.name); err != nil {
			logging.LogError(logger, fmt.Sprintf("Failed to set %s", pragma.description), err)
			return fmt.Errorf("failed to execute %s: %w", pragma.name, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

// configureConnectionPool sets pool limits for SQLite. Every connection to a
// :memory: database is its own separate database, so in-memory setups are
// pinned to a single connection; file databases allow concurrent readers.
func configureConnectionPool(db *sql.DB, config Config) {
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
}
