package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// caseDuration is one qualifying case with its instruction duration.
type caseDuration struct {
	CaseNumber string
	Caption    string
	Days       int
}

// clampDays returns the whole days between start and last, clamped to
// zero when the store holds a last movement earlier than the start.
func clampDays(start, last time.Time) int {
	days := int(last.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// qualifyingDurations loads every case that has both a start date and a
// last-movement date. Cases missing either are excluded from all
// duration statistics.
func (s *Store) qualifyingDurations(ctx context.Context) ([]caseDuration, error) {
	var rows []struct {
		CaseNumber   string
		Caption      string
		StartDate    *time.Time
		LastMovement *time.Time
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT numero_expediente AS case_number, caratula AS caption,
		       fecha_inicio AS start_date,
		       fecha_ultimo_movimiento AS last_movement
		FROM expediente
		WHERE fecha_inicio IS NOT NULL AND fecha_ultimo_movimiento IS NOT NULL
		ORDER BY numero_expediente`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("duration scan failed: %w", err)
	}

	durations := make([]caseDuration, 0, len(rows))
	for _, r := range rows {
		if r.StartDate == nil || r.LastMovement == nil {
			continue
		}
		durations = append(durations, caseDuration{
			CaseNumber: r.CaseNumber,
			Caption:    r.Caption,
			Days:       clampDays(*r.StartDate, *r.LastMovement),
		})
	}
	return durations, nil
}

// GlobalDurationStats computes mean, maximum, minimum and count over
// the full qualifying set, never limited by any display cap.
func (s *Store) GlobalDurationStats(ctx context.Context) (DurationStatsPayload, error) {
	durations, err := s.qualifyingDurations(ctx)
	if err != nil {
		return DurationStatsPayload{}, err
	}
	if len(durations) == 0 {
		return DurationStatsPayload{}, nil
	}

	stats := DurationStatsPayload{
		Max:   durations[0].Days,
		Min:   durations[0].Days,
		Count: int64(len(durations)),
	}
	var total int64
	for _, d := range durations {
		total += int64(d.Days)
		if d.Days > stats.Max {
			stats.Max = d.Days
		}
		if d.Days < stats.Min {
			stats.Min = d.Days
		}
	}
	stats.Mean = round2(float64(total) / float64(len(durations)))
	return stats, nil
}

// LongestCases returns the n longest-running qualifying cases,
// descending by duration, each enriched with an accused-party name
// when one exists.
func (s *Store) LongestCases(ctx context.Context, n int) ([]DurationCaseItem, error) {
	return s.extremeCases(ctx, n, true)
}

// ShortestCases returns the n shortest-running qualifying cases,
// ascending by duration.
func (s *Store) ShortestCases(ctx context.Context, n int) ([]DurationCaseItem, error) {
	return s.extremeCases(ctx, n, false)
}

func (s *Store) extremeCases(ctx context.Context, n int, longest bool) ([]DurationCaseItem, error) {
	durations, err := s.qualifyingDurations(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(durations, func(i, j int) bool {
		if longest {
			return durations[i].Days > durations[j].Days
		}
		return durations[i].Days < durations[j].Days
	})
	if n < len(durations) {
		durations = durations[:n]
	}

	items := make([]DurationCaseItem, 0, len(durations))
	for _, d := range durations {
		accused, err := s.accusedName(ctx, d.CaseNumber)
		if err != nil {
			return nil, err
		}
		items = append(items, DurationCaseItem{
			CaseNumber:  d.CaseNumber,
			Label:       durationLabel(d.Caption, d.CaseNumber),
			Days:        d.Days,
			AccusedName: accused,
		})
	}
	return items, nil
}

// accusedName returns the first accused-party name recorded for the
// case, or nil when the case has none.
func (s *Store) accusedName(ctx context.Context, caseNumber string) (*string, error) {
	var names []string
	err := s.db.WithContext(ctx).Raw(`
		SELECT nombre FROM rol_parte
		WHERE numero_expediente = ? AND UPPER(TRIM(rol)) IN (?)
		LIMIT 1`, caseNumber, accusedRoles).Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("accused lookup failed: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return &names[0], nil
}

// durationLabel picks the display label for a duration listing entry:
// the caption truncated to 57 characters plus an ellipsis when longer
// than 60, or the case number when the caption is empty.
func durationLabel(caption, caseNumber string) string {
	if caption == "" {
		return caseNumber
	}
	runes := []rune(caption)
	if len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return caption
}
