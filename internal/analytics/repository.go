package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/normalize"
)

// ErrInvalidStatus is returned when a status filter is not one of the
// known procedural states. The check runs before any query executes.
var ErrInvalidStatus = errors.New("unknown procedural status")

// Roles as written in the source dataset, upper-cased for comparison.
var (
	accusedRoles    = []string{"DENUNCIADO", "IMPUTADO"}
	denouncingRoles = []string{"DENUNCIANTE", "QUERELLANTE"}
)

// Store is the read-only aggregation layer over the case database.
// Every query is stateless and safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type statusRow struct {
	Status string
	Count  int64
}

type yearRow struct {
	Year   int
	Open   int64
	Closed int64
	Total  int64
}

type crimeRow struct {
	Crime  string
	Open   int64
	Closed int64
	Total  int64
}

type nameCountRow struct {
	Name  string
	Count int64
}

type splitCountRow struct {
	Name   string
	Open   int64
	Closed int64
	Total  int64
}

// StatusStats returns per-status case counts with percentages of the
// grand total. Percentage is 0 for every bucket when the store is empty.
func (s *Store) StatusStats(ctx context.Context) (StatusBreakdown, error) {
	var rows []statusRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT estado_procesal AS status, COUNT(*) AS count
		FROM expediente
		GROUP BY estado_procesal
		ORDER BY count DESC, estado_procesal`).Scan(&rows).Error
	if err != nil {
		return StatusBreakdown{}, fmt.Errorf("status aggregation failed: %w", err)
	}

	out := StatusBreakdown{Statuses: []StatusItem{}}
	for _, r := range rows {
		out.Total += r.Count
	}
	for _, r := range rows {
		item := StatusItem{Status: r.Status, Count: r.Count}
		if out.Total > 0 {
			item.Percentage = round2(float64(r.Count) * 100 / float64(out.Total))
		}
		out.Statuses = append(out.Statuses, item)
	}
	return out, nil
}

// CasesByStatus lists cases in one procedural status. Unknown status
// values are rejected before touching the database.
func (s *Store) CasesByStatus(ctx context.Context, status string, offset, limit int) (StatusDetail, error) {
	if status != database.StatusOpen && status != database.StatusClosed {
		return StatusDetail{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	detail := StatusDetail{Status: status, Cases: []database.Case{}}
	err := s.db.WithContext(ctx).Model(&database.Case{}).
		Where("estado_procesal = ?", status).
		Count(&detail.Count).Error
	if err != nil {
		return StatusDetail{}, fmt.Errorf("status count failed: %w", err)
	}
	err = s.db.WithContext(ctx).
		Where("estado_procesal = ?", status).
		Order("numero_expediente").Offset(offset).Limit(limit).
		Find(&detail.Cases).Error
	if err != nil {
		return StatusDetail{}, fmt.Errorf("status listing failed: %w", err)
	}
	return detail, nil
}

// CasesByYear returns open/closed/total counts per start year in
// chronological order.
func (s *Store) CasesByYear(ctx context.Context) ([]YearItem, error) {
	var rows []yearRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT ano_inicio AS year,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS open,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS closed,
		       COUNT(*) AS total
		FROM expediente
		WHERE ano_inicio IS NOT NULL
		GROUP BY ano_inicio
		ORDER BY ano_inicio`,
		database.StatusOpen, database.StatusClosed).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("year aggregation failed: %w", err)
	}

	items := make([]YearItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, YearItem{Year: r.Year, Open: r.Open, Closed: r.Closed, Total: r.Total})
	}
	return items, nil
}

// TopCrimes returns the most frequent crime types with open/closed
// splits, descending by total case count.
func (s *Store) TopCrimes(ctx context.Context, limit int) ([]CrimeItem, error) {
	var rows []crimeRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT td.nombre AS crime,
		       COUNT(CASE WHEN e.estado_procesal = ? THEN 1 END) AS open,
		       COUNT(CASE WHEN e.estado_procesal = ? THEN 1 END) AS closed,
		       COUNT(*) AS total
		FROM expediente_delito ed
		JOIN tipo_delito td ON td.id = ed.tipo_delito_id
		JOIN expediente e ON e.numero_expediente = ed.numero_expediente
		GROUP BY td.nombre
		ORDER BY total DESC, td.nombre
		LIMIT ?`,
		database.StatusOpen, database.StatusClosed, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("crime aggregation failed: %w", err)
	}

	items := make([]CrimeItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, CrimeItem{Crime: r.Crime, Open: r.Open, Closed: r.Closed, Total: r.Total})
	}
	return items, nil
}

// CasesByCourt ranks courts by case count in one status. Court names
// are cleaned before bucketing so honorific and casing variants of the
// same court collapse into one row.
func (s *Store) CasesByCourt(ctx context.Context, status string, limit int) ([]CourtItem, error) {
	var rows []nameCountRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT tribunal AS name, COUNT(*) AS count
		FROM expediente
		WHERE estado_procesal = ? AND tribunal IS NOT NULL AND TRIM(tribunal) <> ''
		GROUP BY tribunal`, status).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("court aggregation failed: %w", err)
	}

	merged := map[string]int64{}
	for _, r := range rows {
		merged[normalize.CleanCourtName(r.Name)] += r.Count
	}
	items := make([]CourtItem, 0, len(merged))
	for court, count := range merged {
		items = append(items, CourtItem{Court: court, Count: count})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Court < items[j].Court
	})
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// CasesByForum returns open/closed/total counts per forum, resolved
// through the best-effort court-name join.
func (s *Store) CasesByForum(ctx context.Context) ([]ForumItem, error) {
	var rows []splitCountRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT t.fuero AS name,
		       COUNT(CASE WHEN e.estado_procesal = ? THEN 1 END) AS open,
		       COUNT(CASE WHEN e.estado_procesal = ? THEN 1 END) AS closed,
		       COUNT(*) AS total
		FROM expediente e
		JOIN tribunal t ON t.nombre = e.tribunal
		WHERE t.fuero IS NOT NULL AND TRIM(t.fuero) <> ''
		GROUP BY t.fuero
		ORDER BY total DESC, t.fuero`,
		database.StatusOpen, database.StatusClosed).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("forum aggregation failed: %w", err)
	}

	items := make([]ForumItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ForumItem{Forum: r.Name, Open: r.Open, Closed: r.Closed, Total: r.Total})
	}
	return items, nil
}

// CasesByProsecutor returns open/closed/total counts per prosecutor,
// descending by total.
func (s *Store) CasesByProsecutor(ctx context.Context, limit int) ([]ProsecutorItem, error) {
	var rows []splitCountRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT TRIM(fiscal) AS name,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS open,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS closed,
		       COUNT(*) AS total
		FROM expediente
		WHERE fiscal IS NOT NULL AND TRIM(fiscal) <> '' AND UPPER(TRIM(fiscal)) <> 'NAN'
		GROUP BY TRIM(fiscal)
		ORDER BY total DESC, TRIM(fiscal)
		LIMIT ?`,
		database.StatusOpen, database.StatusClosed, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("prosecutor aggregation failed: %w", err)
	}

	items := make([]ProsecutorItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ProsecutorItem{Prosecutor: r.Name, Open: r.Open, Closed: r.Closed, Total: r.Total})
	}
	return items, nil
}

// CasesByOffice returns open/closed/total counts per prosecutor's
// office. Office names pass through the court-name idiom cleanup before
// bucketing.
func (s *Store) CasesByOffice(ctx context.Context, limit int) ([]OfficeItem, error) {
	var rows []splitCountRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT fiscalia AS name,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS open,
		       COUNT(CASE WHEN estado_procesal = ? THEN 1 END) AS closed,
		       COUNT(*) AS total
		FROM expediente
		WHERE fiscalia IS NOT NULL AND TRIM(fiscalia) <> '' AND UPPER(TRIM(fiscalia)) <> 'NAN'
		GROUP BY fiscalia`,
		database.StatusOpen, database.StatusClosed).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("office aggregation failed: %w", err)
	}

	merged := map[string]*OfficeItem{}
	for _, r := range rows {
		key := normalize.CleanOfficeName(r.Name)
		item, ok := merged[key]
		if !ok {
			item = &OfficeItem{Office: key}
			merged[key] = item
		}
		item.Open += r.Open
		item.Closed += r.Closed
		item.Total += r.Total
	}
	items := make([]OfficeItem, 0, len(merged))
	for _, item := range merged {
		items = append(items, *item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Total != items[j].Total {
			return items[i].Total > items[j].Total
		}
		return items[i].Office < items[j].Office
	})
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// JudgeDelays ranks (judge, court) pairs by the mean number of days
// between case start and last movement, descending. A judge sitting on
// several courts appears once per court.
func (s *Store) JudgeDelays(ctx context.Context, limit int) ([]JudgeDelayItem, error) {
	var raw []struct {
		Judge        string
		Court        string
		StartDate    *time.Time
		LastMovement *time.Time
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT j.nombre AS judge, t.nombre AS court,
		       e.fecha_inicio AS start_date,
		       e.fecha_ultimo_movimiento AS last_movement
		FROM expediente e
		JOIN tribunal t ON t.nombre = e.tribunal
		JOIN tribunal_juez tj ON tj.tribunal_id = t.id
		JOIN juez j ON j.id = tj.juez_id
		WHERE e.fecha_inicio IS NOT NULL AND e.fecha_ultimo_movimiento IS NOT NULL`).
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("judge delay aggregation failed: %w", err)
	}

	type bucket struct {
		judge, court string
		totalDays    int64
		count        int64
	}
	order := []string{}
	buckets := map[string]*bucket{}
	for _, r := range raw {
		if r.StartDate == nil || r.LastMovement == nil {
			continue
		}
		key := r.Judge + "\x00" + r.Court
		b, ok := buckets[key]
		if !ok {
			b = &bucket{judge: r.Judge, court: r.Court}
			buckets[key] = b
			order = append(order, key)
		}
		b.totalDays += int64(clampDays(*r.StartDate, *r.LastMovement))
		b.count++
	}

	items := make([]JudgeDelayItem, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		items = append(items, JudgeDelayItem{
			Judge:        b.judge,
			Court:        b.court,
			AvgDelayDays: round2(float64(b.totalDays) / float64(b.count)),
			CaseCount:    b.count,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AvgDelayDays > items[j].AvgDelayDays
	})
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// MostDenounced ranks persons by the number of distinct cases where
// they hold an accused role. Names are canonicalized before bucketing
// so alias spellings of the same person merge.
func (s *Store) MostDenounced(ctx context.Context, limit int) ([]PersonItem, error) {
	rows, err := s.roleCounts(ctx, accusedRoles)
	if err != nil {
		return nil, err
	}

	merged := map[string]int64{}
	for _, r := range rows {
		merged[normalize.CanonicalName(r.Name)] += r.Count
	}
	return rankPersons(merged, limit), nil
}

// MostDenouncing ranks persons by the number of distinct cases where
// they hold a denouncing role. Names bucket as written in the source;
// neither canonicalization nor case folding is applied here.
func (s *Store) MostDenouncing(ctx context.Context, limit int) ([]PersonItem, error) {
	rows, err := s.roleCounts(ctx, denouncingRoles)
	if err != nil {
		return nil, err
	}

	merged := map[string]int64{}
	for _, r := range rows {
		merged[r.Name] += r.Count
	}
	return rankPersons(merged, limit), nil
}

func (s *Store) roleCounts(ctx context.Context, roles []string) ([]nameCountRow, error) {
	var rows []nameCountRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT nombre AS name, COUNT(DISTINCT numero_expediente) AS count
		FROM rol_parte
		WHERE UPPER(TRIM(rol)) IN (?)
		  AND nombre IS NOT NULL AND TRIM(nombre) <> '' AND UPPER(TRIM(nombre)) <> 'NAN'
		GROUP BY nombre`, roles).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("party role aggregation failed: %w", err)
	}
	return rows, nil
}

func rankPersons(merged map[string]int64, limit int) []PersonItem {
	items := make([]PersonItem, 0, len(merged))
	for name, count := range merged {
		items = append(items, PersonItem{Name: name, CaseCount: count})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CaseCount != items[j].CaseCount {
			return items[i].CaseCount > items[j].CaseCount
		}
		return items[i].Name < items[j].Name
	})
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
