package workouts

import "context"

type Order string

const (
	// OrderAsc is chronological, used when feeding the sheet mirror.
	OrderAsc Order = "ASC"
	// OrderDesc is most-recent-first, used for API reads.
	OrderDesc Order = "DESC"
)

// Store is the persistence sink for workouts and processed file markers.
// Insert must be atomic with respect to the (start time, type) uniqueness
// check: a concurrent duplicate insert results in exactly one stored row.
type Store interface {
	Insert(ctx context.Context, workout Workout) (inserted bool, err error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListAll(ctx context.Context, order Order) ([]Workout, error)
	Count(ctx context.Context) (int, error)
	SizeMB(ctx context.Context) (float64, error)
	IsFileProcessed(ctx context.Context, filename string) (bool, error)
	MarkFileProcessed(ctx context.Context, file ProcessedFile) error
	Close()
}
