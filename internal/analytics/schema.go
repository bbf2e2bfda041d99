package analytics

import "github.com/openjusticia/corrupcion-api/internal/database"

// Response payloads follow the field names the dashboard frontend
// consumes, so labels and keys stay in Spanish while the Go identifiers
// do not.

// NamedChart is a pair of parallel arrays for bar/pie style charts.
type NamedChart struct {
	Labels []string `json:"etiquetas"`
	Values []int64  `json:"valores"`
}

// FloatChart is a NamedChart whose values are fractional.
type FloatChart struct {
	Labels []string  `json:"etiquetas"`
	Values []float64 `json:"valores"`
}

// StatusItem is one procedural-status bucket.
type StatusItem struct {
	Status     string  `json:"estado"`
	Count      int64   `json:"cantidad"`
	Percentage float64 `json:"porcentaje"`
}

// StatusBreakdown is the by-status aggregation payload.
type StatusBreakdown struct {
	Total    int64        `json:"total_casos"`
	Statuses []StatusItem `json:"estados"`
}

// StatusDetail lists cases filtered to a single status.
type StatusDetail struct {
	Status string          `json:"estado"`
	Count  int64           `json:"cantidad"`
	Cases  []database.Case `json:"expedientes"`
}

// YearChart carries the per-year series for the timeline chart.
type YearChart struct {
	Years  []int   `json:"anios"`
	Open   []int64 `json:"abiertas"`
	Closed []int64 `json:"terminadas"`
	Totals []int64 `json:"totales"`
}

// YearItem is one start-year bucket.
type YearItem struct {
	Year   int   `json:"anio"`
	Open   int64 `json:"cantidad_causas_abiertas"`
	Closed int64 `json:"cantidad_causas_terminadas"`
	Total  int64 `json:"total"`
}

// YearBreakdown is the cases-by-start-year payload.
type YearBreakdown struct {
	Chart YearChart  `json:"datos_grafico"`
	Items []YearItem `json:"detalle"`
	Total int64      `json:"total_causas"`
}

// CrimeItem is one crime-type bucket.
type CrimeItem struct {
	Crime  string `json:"delito"`
	Open   int64  `json:"cantidad_causas_abiertas"`
	Closed int64  `json:"cantidad_causas_terminadas"`
	Total  int64  `json:"total"`
}

// CrimeBreakdown is the most-frequent-crimes payload.
type CrimeBreakdown struct {
	Chart NamedChart  `json:"datos_grafico"`
	Items []CrimeItem `json:"detalle"`
	Total int64       `json:"total_causas"`
}

// CourtItem is one court bucket for a single-status court ranking.
type CourtItem struct {
	Court string `json:"juzgado"`
	Count int64  `json:"cantidad_causas"`
}

// CourtBreakdown ranks courts by case count for one status.
type CourtBreakdown struct {
	Chart NamedChart  `json:"datos_grafico"`
	Items []CourtItem `json:"detalle"`
	Total int64       `json:"total_causas"`
}

// ForumItem is one forum (fuero) bucket.
type ForumItem struct {
	Forum  string `json:"fuero"`
	Open   int64  `json:"cantidad_causas_abiertas"`
	Closed int64  `json:"cantidad_causas_terminadas"`
	Total  int64  `json:"total"`
}

// ForumBreakdown is the cases-by-forum payload.
type ForumBreakdown struct {
	Chart NamedChart  `json:"datos_grafico"`
	Items []ForumItem `json:"detalle"`
	Total int64       `json:"total_causas"`
}

// ProsecutorItem is one prosecutor bucket.
type ProsecutorItem struct {
	Prosecutor string `json:"fiscal"`
	Open       int64  `json:"cantidad_causas_abiertas"`
	Closed     int64  `json:"cantidad_causas_terminadas"`
	Total      int64  `json:"total"`
}

// ProsecutorBreakdown is the cases-by-prosecutor payload.
type ProsecutorBreakdown struct {
	Chart NamedChart       `json:"datos_grafico"`
	Items []ProsecutorItem `json:"detalle"`
	Total int64            `json:"total_causas"`
}

// OfficeItem is one prosecutor's-office bucket.
type OfficeItem struct {
	Office string `json:"fiscalia"`
	Open   int64  `json:"cantidad_causas_abiertas"`
	Closed int64  `json:"cantidad_causas_terminadas"`
	Total  int64  `json:"total"`
}

// OfficeBreakdown is the cases-by-prosecutor's-office payload.
type OfficeBreakdown struct {
	Chart NamedChart   `json:"datos_grafico"`
	Items []OfficeItem `json:"detalle"`
	Total int64        `json:"total_causas"`
}

// JudgeDelayItem is one (judge, court) delay bucket.
type JudgeDelayItem struct {
	Judge        string  `json:"juez"`
	Court        string  `json:"juzgado"`
	AvgDelayDays float64 `json:"demora_promedio_dias"`
	CaseCount    int64   `json:"cantidad_causas"`
}

// JudgeDelayBreakdown ranks judges by mean case delay.
type JudgeDelayBreakdown struct {
	Chart FloatChart       `json:"datos_grafico"`
	Items []JudgeDelayItem `json:"detalle"`
}

// DurationStatsPayload carries the global instruction-duration figures.
type DurationStatsPayload struct {
	Mean  float64 `json:"duracion_promedio_dias"`
	Max   int     `json:"duracion_maxima_dias"`
	Min   int     `json:"duracion_minima_dias"`
	Count int64   `json:"cantidad_causas"`
}

// DurationCaseItem is one case in a duration ranking.
type DurationCaseItem struct {
	CaseNumber  string  `json:"numero_expediente"`
	Label       string  `json:"caratula"`
	Days        int     `json:"duracion_dias"`
	AccusedName *string `json:"imputado_nombre"`
}

// DurationBreakdown pairs global duration statistics with a capped
// longest-cases listing.
type DurationBreakdown struct {
	Stats DurationStatsPayload `json:"estadisticas"`
	Chart NamedChart           `json:"datos_grafico"`
	Items []DurationCaseItem   `json:"detalle"`
}

// OutlierBreakdown holds the extreme-duration cases at both ends.
type OutlierBreakdown struct {
	Longest  []DurationCaseItem `json:"mas_largas"`
	Shortest []DurationCaseItem `json:"mas_cortas"`
}

// PersonItem is one person bucket in a party ranking.
type PersonItem struct {
	Name      string `json:"nombre"`
	CaseCount int64  `json:"cantidad_causas"`
}

// PersonBreakdown is the most-denounced / most-denouncing payload.
type PersonBreakdown struct {
	Chart NamedChart   `json:"datos_grafico"`
	Items []PersonItem `json:"detalle"`
	Total int64        `json:"total_causas"`
}

// RefreshInfo reports when the dataset was last loaded.
type RefreshInfo struct {
	LastRefresh *string `json:"ultima_actualizacion"`
	Formatted   string  `json:"fecha_formateada"`
}
