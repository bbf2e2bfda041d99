package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/normalize"
)

// Service assembles dashboard payloads from the aggregation store:
// display labels, parallel chart arrays, item details and totals.
type Service struct {
	store *Store
	db    *gorm.DB
}

// NewService creates a Service over the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{store: NewStore(db), db: db}
}

// Store exposes the underlying aggregation store.
func (s *Service) Store() *Store {
	return s.store
}

// StatusBreakdown returns per-status counts and percentages.
func (s *Service) StatusBreakdown(ctx context.Context) (StatusBreakdown, error) {
	return s.store.StatusStats(ctx)
}

// CasesByStatus lists cases filtered to one procedural status.
func (s *Service) CasesByStatus(ctx context.Context, status string, offset, limit int) (StatusDetail, error) {
	return s.store.CasesByStatus(ctx, status, offset, limit)
}

// YearBreakdown returns the cases-per-start-year timeline.
func (s *Service) YearBreakdown(ctx context.Context) (YearBreakdown, error) {
	items, err := s.store.CasesByYear(ctx)
	if err != nil {
		return YearBreakdown{}, err
	}

	out := YearBreakdown{
		Chart: YearChart{Years: []int{}, Open: []int64{}, Closed: []int64{}, Totals: []int64{}},
		Items: items,
	}
	for _, item := range items {
		out.Chart.Years = append(out.Chart.Years, item.Year)
		out.Chart.Open = append(out.Chart.Open, item.Open)
		out.Chart.Closed = append(out.Chart.Closed, item.Closed)
		out.Chart.Totals = append(out.Chart.Totals, item.Total)
		out.Total += item.Total
	}
	if out.Items == nil {
		out.Items = []YearItem{}
	}
	return out, nil
}

// CrimeBreakdown returns the most frequent crimes.
func (s *Service) CrimeBreakdown(ctx context.Context, limit int) (CrimeBreakdown, error) {
	items, err := s.store.TopCrimes(ctx, limit)
	if err != nil {
		return CrimeBreakdown{}, err
	}

	out := CrimeBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Crime = normalize.FormatLabel(item.Crime)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Crime)
		out.Chart.Values = append(out.Chart.Values, item.Total)
		out.Total += item.Total
	}
	if out.Items == nil {
		out.Items = []CrimeItem{}
	}
	return out, nil
}

// OpenCasesByCourt ranks courts by open cases.
func (s *Service) OpenCasesByCourt(ctx context.Context, limit int) (CourtBreakdown, error) {
	return s.courtBreakdown(ctx, database.StatusOpen, limit)
}

// ClosedCasesByCourt ranks courts by closed cases.
func (s *Service) ClosedCasesByCourt(ctx context.Context, limit int) (CourtBreakdown, error) {
	return s.courtBreakdown(ctx, database.StatusClosed, limit)
}

func (s *Service) courtBreakdown(ctx context.Context, status string, limit int) (CourtBreakdown, error) {
	items, err := s.store.CasesByCourt(ctx, status, limit)
	if err != nil {
		return CourtBreakdown{}, err
	}

	out := CourtBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Court = normalize.FormatLabel(item.Court)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Court)
		out.Chart.Values = append(out.Chart.Values, item.Count)
		out.Total += item.Count
	}
	if out.Items == nil {
		out.Items = []CourtItem{}
	}
	return out, nil
}

// ForumBreakdown returns open/closed/total counts per forum.
func (s *Service) ForumBreakdown(ctx context.Context) (ForumBreakdown, error) {
	items, err := s.store.CasesByForum(ctx)
	if err != nil {
		return ForumBreakdown{}, err
	}

	out := ForumBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Forum = normalize.FormatLabel(item.Forum)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Forum)
		out.Chart.Values = append(out.Chart.Values, item.Total)
		out.Total += item.Total
	}
	if out.Items == nil {
		out.Items = []ForumItem{}
	}
	return out, nil
}

// ProsecutorBreakdown returns counts per prosecutor.
func (s *Service) ProsecutorBreakdown(ctx context.Context, limit int) (ProsecutorBreakdown, error) {
	items, err := s.store.CasesByProsecutor(ctx, limit)
	if err != nil {
		return ProsecutorBreakdown{}, err
	}

	out := ProsecutorBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Prosecutor = normalize.FormatLabel(item.Prosecutor)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Prosecutor)
		out.Chart.Values = append(out.Chart.Values, item.Total)
		out.Total += item.Total
	}
	if out.Items == nil {
		out.Items = []ProsecutorItem{}
	}
	return out, nil
}

// OfficeBreakdown returns counts per prosecutor's office.
func (s *Service) OfficeBreakdown(ctx context.Context, limit int) (OfficeBreakdown, error) {
	items, err := s.store.CasesByOffice(ctx, limit)
	if err != nil {
		return OfficeBreakdown{}, err
	}

	out := OfficeBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Office = normalize.FormatLabel(item.Office)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Office)
		out.Chart.Values = append(out.Chart.Values, item.Total)
		out.Total += item.Total
	}
	if out.Items == nil {
		out.Items = []OfficeItem{}
	}
	return out, nil
}

// JudgeDelayBreakdown ranks judges by mean case delay.
func (s *Service) JudgeDelayBreakdown(ctx context.Context, limit int) (JudgeDelayBreakdown, error) {
	items, err := s.store.JudgeDelays(ctx, limit)
	if err != nil {
		return JudgeDelayBreakdown{}, err
	}

	out := JudgeDelayBreakdown{
		Chart: FloatChart{Labels: []string{}, Values: []float64{}},
		Items: items,
	}
	for i, item := range items {
		out.Items[i].Judge = normalize.DisplayName(item.Judge)
		out.Items[i].Court = normalize.FormatLabel(normalize.CleanCourtName(item.Court))
		// The ranking is per (judge, court) pair, so labels carry both
		// or rows for the same judge would be indistinguishable.
		label := fmt.Sprintf("%s - %s", out.Items[i].Judge, out.Items[i].Court)
		out.Chart.Labels = append(out.Chart.Labels, label)
		out.Chart.Values = append(out.Chart.Values, item.AvgDelayDays)
	}
	if out.Items == nil {
		out.Items = []JudgeDelayItem{}
	}
	return out, nil
}

// DurationBreakdown pairs global duration statistics with a capped
// longest-cases listing. The statistics always come from the full
// qualifying set, independent of the display limit.
func (s *Service) DurationBreakdown(ctx context.Context, limit int) (DurationBreakdown, error) {
	stats, err := s.store.GlobalDurationStats(ctx)
	if err != nil {
		return DurationBreakdown{}, err
	}
	items, err := s.store.LongestCases(ctx, limit)
	if err != nil {
		return DurationBreakdown{}, err
	}

	out := DurationBreakdown{Stats: stats, Chart: emptyChart(), Items: items}
	for _, item := range items {
		out.Chart.Labels = append(out.Chart.Labels, item.Label)
		out.Chart.Values = append(out.Chart.Values, int64(item.Days))
	}
	if out.Items == nil {
		out.Items = []DurationCaseItem{}
	}
	return out, nil
}

// OutlierBreakdown returns the n longest and n shortest cases.
func (s *Service) OutlierBreakdown(ctx context.Context, n int) (OutlierBreakdown, error) {
	longest, err := s.store.LongestCases(ctx, n)
	if err != nil {
		return OutlierBreakdown{}, err
	}
	shortest, err := s.store.ShortestCases(ctx, n)
	if err != nil {
		return OutlierBreakdown{}, err
	}
	if longest == nil {
		longest = []DurationCaseItem{}
	}
	if shortest == nil {
		shortest = []DurationCaseItem{}
	}
	return OutlierBreakdown{Longest: longest, Shortest: shortest}, nil
}

// MostDenounced ranks accused persons, alias spellings merged.
func (s *Service) MostDenounced(ctx context.Context, limit int) (PersonBreakdown, error) {
	items, err := s.store.MostDenounced(ctx, limit)
	if err != nil {
		return PersonBreakdown{}, err
	}
	return s.personBreakdown(items), nil
}

// MostDenouncing ranks denouncing persons.
func (s *Service) MostDenouncing(ctx context.Context, limit int) (PersonBreakdown, error) {
	items, err := s.store.MostDenouncing(ctx, limit)
	if err != nil {
		return PersonBreakdown{}, err
	}
	return s.personBreakdown(items), nil
}

func (s *Service) personBreakdown(items []PersonItem) PersonBreakdown {
	out := PersonBreakdown{Chart: emptyChart(), Items: items}
	for i, item := range items {
		out.Items[i].Name = normalize.DisplayName(item.Name)
		out.Chart.Labels = append(out.Chart.Labels, out.Items[i].Name)
		out.Chart.Values = append(out.Chart.Values, item.CaseCount)
		out.Total += item.CaseCount
	}
	if out.Items == nil {
		out.Items = []PersonItem{}
	}
	return out
}

// spanishMonths maps month numbers to their Spanish names for the
// formatted refresh date.
var spanishMonths = [...]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LastRefresh reports when the dataset was last loaded, with a
// human-readable date in Argentine local time.
func (s *Service) LastRefresh(ctx context.Context) (RefreshInfo, error) {
	t, err := database.LastRefresh(s.db.WithContext(ctx))
	if err != nil {
		return RefreshInfo{}, err
	}
	if t == nil {
		return RefreshInfo{Formatted: "Sin datos"}, nil
	}

	local := *t
	if loc, locErr := time.LoadLocation("America/Argentina/Buenos_Aires"); locErr == nil {
		local = t.In(loc)
	}
	iso := t.Format(time.RFC3339)
	formatted := fmt.Sprintf("%d de %s de %d a las %02d:%02d",
		local.Day(), spanishMonths[local.Month()], local.Year(),
		local.Hour(), local.Minute())
	return RefreshInfo{LastRefresh: &iso, Formatted: formatted}, nil
}

func emptyChart() NamedChart {
	return NamedChart{Labels: []string{}, Values: []int64{}}
}
