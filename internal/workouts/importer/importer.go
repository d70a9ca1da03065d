package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/2beens/workouttracker/internal/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// File is one source export file, wherever it lives.
type File struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Source lists and opens workout export files. Implementations: a local
// folder and a google drive folder.
type Source interface {
	Name() string
	ListFiles(ctx context.Context) ([]File, error)
	Open(ctx context.Context, file File) (io.ReadCloser, error)
}

// Importer runs one batch import: every unseen file from the source is read,
// its rows normalized and stored, and the sheet mirror refreshed once at the
// end. A file is marked processed only after all of its rows went through the
// store, so a crashed run re-reads the file and the store dedupe absorbs the
// overlap.
type Importer struct {
	source     Source
	store      workouts.Store
	normalizer *workouts.Normalizer
	publisher  workouts.SheetPublisher // nil: mirror disabled
	notifier   workouts.PushNotifier   // nil: email disabled
	metrics    *metrics.Manager
}

func New(
	source Source,
	store workouts.Store,
	normalizer *workouts.Normalizer,
	publisher workouts.SheetPublisher,
	notifier workouts.PushNotifier,
	metricsManager *metrics.Manager,
) *Importer {
	return &Importer{
		source:     source,
		store:      store,
		normalizer: normalizer,
		publisher:  publisher,
		notifier:   notifier,
		metrics:    metricsManager,
	}
}

// Run executes one import over the whole source. A broken file does not stop
// the run; its error lands in the returned (multi)error next to the summary.
func (i *Importer) Run(ctx context.Context) (_ *workouts.ImportSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "importer.run")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("source", i.source.Name()))

	startedAt := time.Now()
	defer func() {
		i.metrics.HistImportRunDuration.Observe(time.Since(startedAt).Seconds())
	}()

	summary := &workouts.ImportSummary{
		StartedAt: startedAt,
	}

	files, err := i.source.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files from %s: %w", i.source.Name(), err)
	}
	summary.FilesScanned = len(files)

	log.Infof("import run from %s: %d files found", i.source.Name(), len(files))

	var runErr error
	for _, file := range files {
		processed, err := i.store.IsFileProcessed(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("check file %s processed: %w", file.Name, err)
		}
		if processed {
			log.Debugf("file %s already processed, skipping", file.Name)
			summary.FilesSkipped++
			i.metrics.CounterFilesSkipped.Inc()
			continue
		}

		if err := i.processFile(ctx, file, summary); err != nil {
			log.Errorf("process file %s: %s", file.Name, err)
			runErr = multierr.Append(runErr, fmt.Errorf("file %s: %w", file.Name, err))
			continue
		}
		i.metrics.CounterFilesProcessed.Inc()
	}

	if summary.TotalInDB, err = i.store.Count(ctx); err != nil {
		runErr = multierr.Append(runErr, fmt.Errorf("count workouts: %w", err))
	}
	if summary.DBSizeMB, err = i.store.SizeMB(ctx); err != nil {
		runErr = multierr.Append(runErr, fmt.Errorf("get db size: %w", err))
	}

	i.publishMirror(ctx, summary)

	summary.FinishedAt = time.Now()

	i.notify(summary)

	log.Infof("import run done:\n%s", summary)

	return summary, runErr
}

func (i *Importer) processFile(ctx context.Context, file File, summary *workouts.ImportSummary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "importer.processfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("file", file.Name))

	reader, err := i.source.Open(ctx, file)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Warnf("close file %s: %s", file.Name, closeErr)
		}
	}()

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1 // ragged rows are handled per row

	header, err := csvReader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	inserted := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		summary.RowsRead++

		row := make(map[string]string, len(header))
		for c, colName := range header {
			if c < len(record) {
				row[colName] = record[c]
			}
		}

		workout, err := i.normalizer.FromCSVRow(row)
		if err != nil {
			log.Warnf("file %s: bad row: %s", file.Name, err)
			summary.RowsWithErrors++
			continue
		}

		if !i.normalizer.TypeAllowed(workout.Type) {
			summary.RowsFilteredType++
			continue
		}

		ok, err := i.store.Insert(ctx, *workout)
		if err != nil {
			return fmt.Errorf("insert workout [%s %s]: %w", workout.Type, workout.StartTime, err)
		}
		if ok {
			inserted++
			summary.Stored++
			i.metrics.CounterWorkoutsStored.Inc()
		} else {
			summary.Duplicates++
			i.metrics.CounterWorkoutsDuplicate.Inc()
		}
	}

	// mark only after every row went through the store
	return i.store.MarkFileProcessed(ctx, workouts.ProcessedFile{
		Filename:        file.Name,
		FileCreatedAt:   file.CreatedAt,
		IngestedAt:      time.Now(),
		RecordsInserted: inserted,
	})
}

// publishMirror refreshes the sheet with the full store content. Best-effort:
// a failure only shows up in the summary, the stored data is unaffected.
func (i *Importer) publishMirror(ctx context.Context, summary *workouts.ImportSummary) {
	if i.publisher == nil {
		summary.SheetsUpdate = "skipped"
		return
	}

	all, err := i.store.ListAll(ctx, workouts.OrderAsc)
	if err != nil {
		log.Errorf("list workouts for sheet mirror: %s", err)
		summary.SheetsUpdate = fmt.Sprintf("failed: %s", err)
		return
	}

	if err := i.publisher.Publish(ctx, all); err != nil {
		log.Errorf("publish sheet mirror: %s", err)
		summary.SheetsUpdate = fmt.Sprintf("failed: %s", err)
		return
	}

	i.metrics.CounterSheetPublishes.Inc()
	summary.SheetsUpdate = "ok"
}

func (i *Importer) notify(summary *workouts.ImportSummary) {
	if i.notifier == nil {
		summary.EmailNotification = "skipped"
		return
	}
	if err := i.notifier.SendImportSummary(summary.String()); err != nil {
		log.Errorf("send import summary email: %s", err)
		summary.EmailNotification = fmt.Sprintf("failed: %s", err)
		return
	}
	summary.EmailNotification = "sent"
}
