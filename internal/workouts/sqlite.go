package workouts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS workout (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		external_id TEXT,
		type TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration INTEGER NOT NULL,
		distance_mi REAL,
		active_energy_kcal REAL,
		pace_min_mi REAL,
		created_at TEXT NOT NULL,
		UNIQUE(start_time, type)
	);

	CREATE TABLE IF NOT EXISTS route_point (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL REFERENCES workout(id),
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		altitude REAL,
		speed REAL,
		course REAL,
		h_accuracy REAL,
		v_accuracy REAL,
		speed_accuracy REAL,
		course_accuracy REAL,
		point_time TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS processed_file (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		file_create_time TEXT NOT NULL,
		ingest_time TEXT NOT NULL,
		records_inserted INTEGER NOT NULL
	);`

// sqliteTimeLayout keeps stored timestamps lexicographically sortable and the
// (start_time, type) uniqueness deterministic across timezones.
const sqliteTimeLayout = time.RFC3339

// SQLiteStore is the single file, zero setup store backend. Same schema
// shape and dedupe behavior as the postgres Repo.
type SQLiteStore struct {
	db          *sql.DB
	path        string
	storeRoutes bool
}

func NewSQLiteStore(path string, storeRoutes bool) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// modernc sqlite serializes access per connection; a single connection
	// avoids SQLITE_BUSY between the importer and the API reads.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{
		db:          db,
		path:        path,
		storeRoutes: storeRoutes,
	}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, workout Workout) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO workout
			(external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		nullableStr(workout.ExternalID), workout.Type,
		workout.StartTime.UTC().Format(sqliteTimeLayout),
		workout.EndTime.UTC().Format(sqliteTimeLayout),
		workout.DurationSeconds, workout.DistanceMiles, workout.ActiveEnergyKcal, workout.PaceMinPerMile,
		time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// duplicate (start_time, type)
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("commit tx: %w", err)
		}
		return false, nil
	}

	if s.storeRoutes && len(workout.Route) > 0 {
		var workoutID int64
		if workoutID, err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("last insert id: %w", err)
		}
		for _, p := range workout.Route {
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO route_point
					(workout_id, lat, lon, altitude, speed, course, h_accuracy, v_accuracy, speed_accuracy, course_accuracy, point_time)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
				workoutID, p.Lat, p.Lon, p.Altitude, p.Speed, p.Course,
				p.HorizontalAccuracy, p.VerticalAccuracy, p.SpeedAccuracy, p.CourseAccuracy,
				p.Timestamp.UTC().Format(sqliteTimeLayout),
			)
			if err != nil {
				return false, fmt.Errorf("insert route point: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}

	return true, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at
		FROM workout
		WHERE id = ?;`,
		id,
	)

	w, err := scanSQLiteWorkout(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context, order Order) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	orderBy := "DESC"
	if order == OrderAsc {
		orderBy = "ASC"
	}

	rows, err := s.db.QueryContext(
		ctx,
		fmt.Sprintf(`
			SELECT id, external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at
			FROM workout
			ORDER BY start_time %s;`, orderBy),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	found := make([]Workout, 0)
	for rows.Next() {
		w, err := scanSQLiteWorkout(rows.Scan)
		if err != nil {
			return nil, err
		}
		found = append(found, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return found, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workout;`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

// SizeMB reports the database file size, matching what the run summary shows.
func (s *SQLiteStore) SizeMB(_ context.Context) (float64, error) {
	return pkg.FileSizeMB(s.path), nil
}

func (s *SQLiteStore) IsFileProcessed(ctx context.Context, filename string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.isfileprocessed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var one int
	err = s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM processed_file WHERE filename = ?;`,
		filename,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) MarkFileProcessed(ctx context.Context, file ProcessedFile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sqlite.workouts.markfileprocessed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO processed_file
			(filename, file_create_time, ingest_time, records_inserted)
			VALUES (?, ?, ?, ?);`,
		file.Filename,
		file.FileCreatedAt.UTC().Format(sqliteTimeLayout),
		file.IngestedAt.UTC().Format(sqliteTimeLayout),
		file.RecordsInserted,
	)
	return err
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func scanSQLiteWorkout(scan func(dest ...any) error) (*Workout, error) {
	var w Workout
	var externalID sql.NullString
	var startTime, endTime, createdAt string
	if err := scan(
		&w.ID, &externalID, &w.Type, &startTime, &endTime,
		&w.DurationSeconds, &w.DistanceMiles, &w.ActiveEnergyKcal, &w.PaceMinPerMile,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	if w.StartTime, err = time.Parse(sqliteTimeLayout, startTime); err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	if w.EndTime, err = time.Parse(sqliteTimeLayout, endTime); err != nil {
		return nil, fmt.Errorf("parse end time: %w", err)
	}
	if w.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created at: %w", err)
	}
	if externalID.Valid {
		w.ExternalID = externalID.String
	}

	return &w, nil
}

func nullableStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
