package workouts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the postgres backed workouts store. The dedupe invariant lives in
// the workout table itself: UNIQUE(start_time, type), so the insert-if-absent
// is a single statement and safe against races.
type Repo struct {
	db          *pgxpool.Pool
	storeRoutes bool
}

func NewRepo(db *pgxpool.Pool, storeRoutes bool) *Repo {
	return &Repo{
		db:          db,
		storeRoutes: storeRoutes,
	}
}

func (r *Repo) Insert(ctx context.Context, workout Workout) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.type", workout.Type))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rows, err := tx.Query(
		ctx,
		`INSERT INTO workout
				(external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (start_time, type) DO NOTHING
			RETURNING id;`,
		workout.ExternalID, workout.Type, workout.StartTime, workout.EndTime,
		workout.DurationSeconds, workout.DistanceMiles, workout.ActiveEnergyKcal, workout.PaceMinPerMile,
		time.Now(),
	)
	if err != nil {
		return false, err
	}

	var id int
	inserted := false
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return false, fmt.Errorf("rows scan: %w", err)
		}
		inserted = true
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return false, err
	}

	if !inserted {
		// duplicate (start_time, type), nothing stored
		if err = tx.Commit(ctx); err != nil {
			return false, fmt.Errorf("commit tx: %w", err)
		}
		return false, nil
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	if r.storeRoutes && len(workout.Route) > 0 {
		if err = insertRoutePoints(ctx, tx, id, workout.Route); err != nil {
			return false, fmt.Errorf("insert route points: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}

	return true, nil
}

func insertRoutePoints(ctx context.Context, tx pgx.Tx, workoutID int, route []RoutePoint) error {
	for _, p := range route {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO route_point
				(workout_id, lat, lon, altitude, speed, course, h_accuracy, v_accuracy, speed_accuracy, course_accuracy, point_time)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			workoutID, p.Lat, p.Lon, p.Altitude, p.Speed, p.Course,
			p.HorizontalAccuracy, p.VerticalAccuracy, p.SpeedAccuracy, p.CourseAccuracy, p.Timestamp,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context, order Order) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("order", string(order)))

	orderBy := "DESC"
	if order == OrderAsc {
		orderBy = "ASC"
	}

	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`
			SELECT
				id, external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at
			FROM workout
			ORDER BY start_time %s;`, orderBy),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2workouts(rows)
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
			id, external_id, type, start_time, end_time, duration, distance_mi, active_energy_kcal, pace_min_mi, created_at
		FROM workout
		WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	found, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &found[0], nil
}

func (r *Repo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout;`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

// SizeMB returns the size of the whole database in megabytes, for the run
// summary, same as the original file based size report.
func (r *Repo) SizeMB(ctx context.Context) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sizemb")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var sizeBytes int64
	if err := r.db.QueryRow(ctx, `SELECT pg_database_size(current_database());`).Scan(&sizeBytes); err != nil {
		return 0, err
	}
	return math.Round(float64(sizeBytes)/(1024*1024)*100) / 100, nil
}

func (r *Repo) IsFileProcessed(ctx context.Context, filename string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.isfileprocessed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("filename", filename))

	var one int
	err = r.db.QueryRow(
		ctx,
		`SELECT 1 FROM processed_file WHERE filename = $1;`,
		filename,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) MarkFileProcessed(ctx context.Context, file ProcessedFile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.markfileprocessed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("filename", file.Filename))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO processed_file
			(filename, file_create_time, ingest_time, records_inserted)
			VALUES ($1, $2, $3, $4);`,
		file.Filename, file.FileCreatedAt, file.IngestedAt, file.RecordsInserted,
	)
	return err
}

func (r *Repo) Close() {
	r.db.Close()
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var found []Workout
	for rows.Next() {
		var w Workout
		var externalID *string
		if err := rows.Scan(
			&w.ID, &externalID, &w.Type, &w.StartTime, &w.EndTime,
			&w.DurationSeconds, &w.DistanceMiles, &w.ActiveEnergyKcal, &w.PaceMinPerMile,
			&w.CreatedAt,
		); err != nil {
			return nil, err
		}
		if externalID != nil {
			w.ExternalID = *externalID
		}
		found = append(found, w)
	}

	if found == nil {
		found = make([]Workout, 0)
	}

	return found, nil
}
