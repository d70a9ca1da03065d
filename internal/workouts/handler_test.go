package workouts_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/workouttracker/internal/metrics"
	"github.com/2beens/workouttracker/internal/workouts"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pushPayload = `{
	"data": {
		"workouts": [
			{
				"id": "wk-1",
				"name": "Outdoor Run",
				"start": "2024-05-12 07:30:00",
				"end": "2024-05-12 08:00:06",
				"duration": 1806,
				"distance": {"qty": 3.11, "units": "mi"},
				"activeEnergyBurned": {"qty": 345.6, "units": "kcal"}
			},
			{
				"id": "wk-2",
				"name": "Yoga",
				"start": "2024-05-12 18:00:00",
				"end": "2024-05-12 19:00:00"
			}
		]
	}
}`

func TestHandler_HandlePush(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)
	publisherMock := NewMockSheetPublisher(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer(nil),
		publisherMock,
		nil,
		metrics.NewTestManager(),
	)

	gomock.InOrder(
		storeMock.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, w workouts.Workout) (bool, error) {
				assert.Equal(t, "wk-1", w.ExternalID)
				assert.Equal(t, "Outdoor Run", w.Type)
				assert.Equal(t, 1806, w.DurationSeconds)
				require.NotNil(t, w.DistanceMiles)
				assert.InDelta(t, 3.11, *w.DistanceMiles, 0.001)
				require.NotNil(t, w.PaceMinPerMile)
				assert.InDelta(t, 9.68, *w.PaceMinPerMile, 0.001)
				return true, nil
			}),
		storeMock.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, w workouts.Workout) (bool, error) {
				assert.Equal(t, "Yoga", w.Type)
				assert.Equal(t, 3600, w.DurationSeconds)
				assert.Nil(t, w.DistanceMiles)
				assert.Nil(t, w.PaceMinPerMile)
				// duplicate
				return false, nil
			}),
	)
	storeMock.EXPECT().Count(gomock.Any()).Return(120, nil)
	storeMock.EXPECT().SizeMB(gomock.Any()).Return(2.34, nil)
	storeMock.EXPECT().
		ListAll(gomock.Any(), workouts.OrderAsc).
		Return([]workouts.Workout{{ID: 1}, {ID: 2}}, nil)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Len(2)).Return(nil)

	req, err := http.NewRequest("POST", "/workouts", bytes.NewBufferString(pushPayload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandlePush(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp workouts.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Stored)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Equal(t, 120, resp.TotalInDB)
	assert.InDelta(t, 2.34, resp.DBSizeMB, 0.001)
	assert.Equal(t, "ok", resp.SheetsUpdate)
	require.Len(t, resp.Workouts, 1)
	assert.Equal(t, "Outdoor Run", resp.Workouts[0].Type)
}

func TestHandler_HandlePush_contentTypeWithCharset(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer(nil),
		nil, nil,
		metrics.NewTestManager(),
	)

	storeMock.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(2).Return(true, nil)
	storeMock.EXPECT().Count(gomock.Any()).Return(2, nil)
	storeMock.EXPECT().SizeMB(gomock.Any()).Return(0.1, nil)

	req, err := http.NewRequest("POST", "/workouts", bytes.NewBufferString(pushPayload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()

	h.HandlePush(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp workouts.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stored)
}

func TestHandler_HandlePush_invalidRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer(nil),
		nil, nil,
		metrics.NewTestManager(),
	)

	// missing content type
	req, err := http.NewRequest("POST", "/workouts", bytes.NewBufferString(pushPayload))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.HandlePush(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty payload
	req, err = http.NewRequest("POST", "/workouts", bytes.NewBufferString(`{"data":{"workouts":[]}}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.HandlePush(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// broken timestamp fails the whole batch
	req, err = http.NewRequest("POST", "/workouts", bytes.NewBufferString(
		`{"data":{"workouts":[{"name":"Run","start":"not a time","end":"2024-05-12 08:00:00"}]}}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.HandlePush(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandlePush_typeFiltered(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer([]string{"Outdoor Run"}),
		nil, nil,
		metrics.NewTestManager(),
	)

	storeMock.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, w workouts.Workout) (bool, error) {
			assert.Equal(t, "Outdoor Run", w.Type)
			return true, nil
		})
	storeMock.EXPECT().Count(gomock.Any()).Return(1, nil)
	storeMock.EXPECT().SizeMB(gomock.Any()).Return(0.1, nil)

	req, err := http.NewRequest("POST", "/workouts", bytes.NewBufferString(pushPayload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandlePush(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp workouts.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stored)
	assert.Equal(t, 1, resp.Filtered)
	assert.Equal(t, "skipped", resp.SheetsUpdate)
}

func TestHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer(nil),
		nil, nil,
		metrics.NewTestManager(),
	)

	now := time.Now()
	storeMock.EXPECT().
		ListAll(gomock.Any(), workouts.OrderDesc).
		Return([]workouts.Workout{
			{ID: 2, Type: "Outdoor Run", StartTime: now},
			{ID: 1, Type: "Yoga", StartTime: now.Add(-24 * time.Hour)},
		}, nil)

	req, err := http.NewRequest("GET", "/workouts", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp workouts.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Workouts, 2)
	assert.Equal(t, 2, resp.Workouts[0].ID)
}

func TestHandler_HandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockworkoutsStore(ctrl)

	h := workouts.NewHandler(
		storeMock,
		workouts.NewNormalizer(nil),
		nil, nil,
		metrics.NewTestManager(),
	)

	storeMock.EXPECT().
		Get(gomock.Any(), 42).
		Return(&workouts.Workout{ID: 42, Type: "Outdoor Run"}, nil)

	req, err := http.NewRequest("GET", "/workouts/42", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp workouts.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.ID)

	// not found
	storeMock.EXPECT().
		Get(gomock.Any(), 43).
		Return(nil, workouts.ErrWorkoutNotFound)

	req, err = http.NewRequest("GET", "/workouts/43", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "43"})
	rec = httptest.NewRecorder()

	h.HandleGet(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
