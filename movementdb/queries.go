package movementdb

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside transactions.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// WardRow is one ward as stored in the measurement database.
type WardRow struct {
	WardNo     int64
	Name       string
	MovementID int64
}

const createWard = `
INSERT INTO wards (ward_no, name, movement_id)
VALUES (?, ?, ?)
`

func (q *Queries) CreateWard(ctx context.Context, arg WardRow) error {
	_, err := q.db.ExecContext(ctx, createWard, arg.WardNo, arg.Name, arg.MovementID)
	return err
}

const getWard = `
SELECT ward_no, name, movement_id FROM wards WHERE ward_no = ?
`

func (q *Queries) GetWard(ctx context.Context, wardNo int64) (WardRow, error) {
	row := q.db.QueryRowContext(ctx, getWard, wardNo)
	var w WardRow
	err := row.Scan(&w.WardNo, &w.Name, &w.MovementID)
	return w, err
}

const listWards = `
SELECT ward_no, name, movement_id FROM wards ORDER BY ward_no
`

func (q *Queries) ListWards(ctx context.Context) ([]WardRow, error) {
	rows, err := q.db.QueryContext(ctx, listWards)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []WardRow
	for rows.Next() {
		var w WardRow
		if err := rows.Scan(&w.WardNo, &w.Name, &w.MovementID); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

const clearWards = `DELETE FROM wards`

func (q *Queries) ClearWards(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearWards)
	return err
}

// TravelTimeRow is one time-bucketed measurement keyed by the provider's
// Movement IDs.
type TravelTimeRow struct {
	SourceMovementID int64
	DestMovementID   int64
	DayBucket        int64
	MeanSeconds      float64
	StddevSeconds    sql.NullFloat64
}

const createTravelTime = `
INSERT INTO travel_times (source_movement_id, dest_movement_id, day_bucket, mean_seconds, stddev_seconds)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateTravelTime(ctx context.Context, arg TravelTimeRow) error {
	_, err := q.db.ExecContext(ctx, createTravelTime,
		arg.SourceMovementID, arg.DestMovementID, arg.DayBucket, arg.MeanSeconds, arg.StddevSeconds)
	return err
}

const clearTravelTimes = `DELETE FROM travel_times`

func (q *Queries) ClearTravelTimes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearTravelTimes)
	return err
}

// MeanTravelTimeRow is a ward-ID keyed pair mean, averaged over every day
// bucket stored for the pair. Movement IDs resolve to ward numbers through
// the wards table; measurements whose Movement ID no ward claims are left
// out, as are wards without a provider mapping.
type MeanTravelTimeRow struct {
	SrcWardNo   int64
	DstWardNo   int64
	MeanSeconds float64
}

const listMeanTravelTimes = `
SELECT src.ward_no, dst.ward_no, AVG(t.mean_seconds)
FROM travel_times t
JOIN wards src ON src.movement_id = t.source_movement_id AND src.movement_id != 0
JOIN wards dst ON dst.movement_id = t.dest_movement_id AND dst.movement_id != 0
GROUP BY src.ward_no, dst.ward_no
`

func (q *Queries) ListMeanTravelTimes(ctx context.Context) ([]MeanTravelTimeRow, error) {
	rows, err := q.db.QueryContext(ctx, listMeanTravelTimes)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []MeanTravelTimeRow
	for rows.Next() {
		var m MeanTravelTimeRow
		if err := rows.Scan(&m.SrcWardNo, &m.DstWardNo, &m.MeanSeconds); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// WardPairRow is one directed ward pair scheduled for measurement.
type WardPairRow struct {
	SrcWardNo     int64
	DstWardNo     int64
	SrcMovementID int64
	DstMovementID int64
}

const createWardPair = `
INSERT INTO ward_pairs (src_ward_no, dst_ward_no, src_movement_id, dst_movement_id)
VALUES (?, ?, ?, ?)
ON CONFLICT (src_ward_no, dst_ward_no) DO UPDATE SET
    src_movement_id = excluded.src_movement_id,
    dst_movement_id = excluded.dst_movement_id
`

func (q *Queries) CreateWardPair(ctx context.Context, arg WardPairRow) error {
	_, err := q.db.ExecContext(ctx, createWardPair,
		arg.SrcWardNo, arg.DstWardNo, arg.SrcMovementID, arg.DstMovementID)
	return err
}

const listWardPairs = `
SELECT src_ward_no, dst_ward_no, src_movement_id, dst_movement_id
FROM ward_pairs
ORDER BY src_ward_no, dst_ward_no
`

func (q *Queries) ListWardPairs(ctx context.Context) ([]WardPairRow, error) {
	rows, err := q.db.QueryContext(ctx, listWardPairs)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []WardPairRow
	for rows.Next() {
		var p WardPairRow
		if err := rows.Scan(&p.SrcWardNo, &p.DstWardNo, &p.SrcMovementID, &p.DstMovementID); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const clearWardPairs = `DELETE FROM ward_pairs`

func (q *Queries) ClearWardPairs(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearWardPairs)
	return err
}

// ImportMetadataRow records the hash and origin of the last imported
// travel-time payload.
type ImportMetadataRow struct {
	FileHash   string
	ImportTime int64
	FileSource string
}

const getImportMetadata = `
SELECT file_hash, import_time, file_source FROM import_metadata WHERE id = 1
`

func (q *Queries) GetImportMetadata(ctx context.Context) (ImportMetadataRow, error) {
	row := q.db.QueryRowContext(ctx, getImportMetadata)
	var m ImportMetadataRow
	err := row.Scan(&m.FileHash, &m.ImportTime, &m.FileSource)
	return m, err
}

const upsertImportMetadata = `
INSERT INTO import_metadata (id, file_hash, import_time, file_source)
VALUES (1, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    file_hash = excluded.file_hash,
    import_time = excluded.import_time,
    file_source = excluded.file_source
`

func (q *Queries) UpsertImportMetadata(ctx context.Context, arg ImportMetadataRow) error {
	_, err := q.db.ExecContext(ctx, upsertImportMetadata, arg.FileHash, arg.ImportTime, arg.FileSource)
	return err
}
