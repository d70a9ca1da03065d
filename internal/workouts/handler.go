package workouts

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/2beens/workouttracker/internal/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsStore interface {
	Insert(ctx context.Context, workout Workout) (inserted bool, err error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListAll(ctx context.Context, order Order) ([]Workout, error)
	Count(ctx context.Context) (int, error)
	SizeMB(ctx context.Context) (float64, error)
}

// SheetPublisher mirrors the store to a spreadsheet. Nil disables mirroring.
type SheetPublisher interface {
	Publish(ctx context.Context, all []Workout) error
}

// PushNotifier sends the import outcome by email. Nil disables it.
type PushNotifier interface {
	SendImportSummary(summary string) error
}

// WebhookRequest is the health export push payload: {"data": {"workouts": [...]}}.
type WebhookRequest struct {
	Data struct {
		Workouts []WebhookWorkout `json:"workouts"`
	} `json:"data"`
}

type WebhookResponse struct {
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	Stored       int       `json:"stored"`
	Duplicates   int       `json:"duplicates"`
	Filtered     int       `json:"filtered,omitempty"`
	TotalInDB    int       `json:"total_in_db"`
	DBSizeMB     float64   `json:"db_size_mb"`
	SheetsUpdate string    `json:"sheets_update"`
	Workouts     []Workout `json:"workouts"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

// Handler serves the workouts HTTP API: the push webhook and reads.
type Handler struct {
	store      workoutsStore
	normalizer *Normalizer
	publisher  SheetPublisher // nil: mirror disabled
	notifier   PushNotifier   // nil: email disabled
	metrics    *metrics.Manager
}

func NewHandler(
	store workoutsStore,
	normalizer *Normalizer,
	publisher SheetPublisher,
	notifier PushNotifier,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		store:      store,
		normalizer: normalizer,
		publisher:  publisher,
		notifier:   notifier,
		metrics:    metricsManager,
	}
}

// HandlePush ingests a batch of workouts pushed by the health export app.
// Normalization errors fail the whole request; duplicates and filtered types
// are counted, not errors. The sheet mirror refresh afterwards is
// best-effort.
func (handler *Handler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.push")
	defer span.End()

	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("push workouts, unmarshal json params: %s", err)
		http.Error(w, "store workouts failed", http.StatusBadRequest)
		return
	}

	if len(req.Data.Workouts) == 0 {
		http.Error(w, "error, no workouts in payload", http.StatusBadRequest)
		return
	}

	resp := WebhookResponse{
		Status: "ok",
	}

	var stored []Workout
	for _, payload := range req.Data.Workouts {
		workout, err := handler.normalizer.FromWebhook(payload)
		if err != nil {
			log.Errorf("push workouts, normalize [%s]: %s", payload.ID, err)
			http.Error(w, "invalid workout payload", http.StatusBadRequest)
			return
		}

		if !handler.normalizer.TypeAllowed(workout.Type) {
			resp.Filtered++
			continue
		}

		inserted, err := handler.store.Insert(ctx, *workout)
		if err != nil {
			log.Errorf("push workouts, insert [%s %s]: %s", workout.Type, workout.StartTime, err)
			http.Error(w, "error, failed to store workouts", http.StatusInternalServerError)
			return
		}
		if inserted {
			resp.Stored++
			handler.metrics.CounterWorkoutsStored.Inc()
			stored = append(stored, *workout)
		} else {
			resp.Duplicates++
			handler.metrics.CounterWorkoutsDuplicate.Inc()
		}
	}
	resp.Workouts = stored

	var err error
	if resp.TotalInDB, err = handler.store.Count(ctx); err != nil {
		log.Errorf("push workouts, count: %s", err)
	}
	if resp.DBSizeMB, err = handler.store.SizeMB(ctx); err != nil {
		log.Errorf("push workouts, db size: %s", err)
	}

	resp.SheetsUpdate = handler.refreshMirror(ctx)

	if handler.notifier != nil && resp.Stored > 0 {
		summary := ImportSummary{
			Stored:       resp.Stored,
			Duplicates:   resp.Duplicates,
			TotalInDB:    resp.TotalInDB,
			DBSizeMB:     resp.DBSizeMB,
			SheetsUpdate: resp.SheetsUpdate,
		}
		if err := handler.notifier.SendImportSummary(summary.String()); err != nil {
			log.Errorf("push workouts, send summary email: %s", err)
		}
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("push workouts, marshal response: %s", err)
		http.Error(w, "error, failed to store workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) refreshMirror(ctx context.Context) string {
	if handler.publisher == nil {
		return "skipped"
	}

	all, err := handler.store.ListAll(ctx, OrderAsc)
	if err != nil {
		log.Errorf("list workouts for sheet mirror: %s", err)
		return "failed"
	}
	if err := handler.publisher.Publish(ctx, all); err != nil {
		log.Errorf("publish sheet mirror: %s", err)
		return "failed"
	}

	handler.metrics.CounterSheetPublishes.Inc()
	return "ok"
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	order := OrderDesc
	if r.URL.Query().Get("order") == "asc" {
		order = OrderAsc
	}

	all, err := handler.store.ListAll(ctx, order)
	if err != nil {
		log.Errorf("failed to list workouts: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Workouts: all,
		Total:    len(all),
	})
	if err != nil {
		log.Errorf("failed to marshal workouts list: %s", err)
		http.Error(w, "failed to marshal workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.store.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	respJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
