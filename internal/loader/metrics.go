package loader

import "github.com/prometheus/client_golang/prometheus"

var (
	rowsLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corrupcion_loader_rows_total",
			Help: "Rows upserted per entity across load runs",
		},
		[]string{"entity"},
	)
	rowsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corrupcion_loader_rows_skipped_total",
			Help: "Malformed rows skipped across load runs",
		},
	)
)

func init() {
	prometheus.MustRegister(rowsLoaded, rowsSkipped)
}

func recordSummary(s *Summary) {
	rowsLoaded.WithLabelValues("expediente").Add(float64(s.Cases))
	rowsLoaded.WithLabelValues("tribunal").Add(float64(s.Courts))
	rowsLoaded.WithLabelValues("juez").Add(float64(s.Judges))
	rowsLoaded.WithLabelValues("parte").Add(float64(s.Parties))
	rowsLoaded.WithLabelValues("tipo_delito").Add(float64(s.Crimes))
	rowsSkipped.Add(float64(s.Skipped))
}
