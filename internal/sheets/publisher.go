package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/workouts"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const cellTimeLayout = "2006-01-02 15:04:05"

// Header is the first row of the mirrored sheet.
var Header = []any{
	"id", "start_time", "end_time", "type", "duration",
	"distance_mi", "active_energy_kcal", "pace_min_mi", "created_at",
}

// Publisher mirrors the full workouts table to a single google sheet tab.
// Every publish replaces the whole tab, so the sheet never drifts from the
// database regardless of what happened to it in between.
type Publisher struct {
	service       *sheets.Service
	spreadsheetID string
	tab           string
}

func NewPublisher(
	ctx context.Context,
	credentialsJSON []byte,
	spreadsheetID string,
	tab string,
) (*Publisher, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve sheets client: %w", err)
	}

	return &Publisher{
		service:       service,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, all []workouts.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sheets.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tabRange := p.tab + "!A1"

	_, err = p.service.Spreadsheets.Values.
		Clear(p.spreadsheetID, p.tab, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear sheet values: %w", err)
	}

	updateRes, err := p.service.Spreadsheets.Values.
		Update(p.spreadsheetID, tabRange, &sheets.ValueRange{Values: ValuesMatrix(all)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update sheet values: %w", err)
	}

	log.Debugf("sheet %s updated: %d rows", p.spreadsheetID, updateRes.UpdatedRows)

	return nil
}

// ValuesMatrix renders the full sheet contents: the header row followed by
// one row per workout. Purely a function of its input, so publishing the same
// workouts twice writes identical cells.
func ValuesMatrix(all []workouts.Workout) [][]any {
	values := make([][]any, 0, len(all)+1)
	values = append(values, Header)
	for i := range all {
		values = append(values, WorkoutRow(&all[i]))
	}
	return values
}

// WorkoutRow renders one workout as a sheet row, in Header column order.
// Absent numeric fields become empty cells, not zeroes.
func WorkoutRow(w *workouts.Workout) []any {
	return []any{
		strconv.Itoa(w.ID),
		w.StartTime.Format(cellTimeLayout),
		w.EndTime.Format(cellTimeLayout),
		w.Type,
		strconv.Itoa(w.DurationSeconds),
		floatCell(w.DistanceMiles),
		floatCell(w.ActiveEnergyKcal),
		floatCell(w.PaceMinPerMile),
		w.CreatedAt.Format(cellTimeLayout),
	}
}

func floatCell(val *float64) string {
	if val == nil {
		return ""
	}
	return strconv.FormatFloat(*val, 'f', -1, 64)
}
