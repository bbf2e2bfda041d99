package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openjusticia/corrupcion-api/internal/cache"
	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

const archiveKey = "dataset-archive"

// tables lists every exported table in archive order.
var tables = []string{
	"expediente",
	"tribunal",
	"juez",
	"tribunal_juez",
	"parte",
	"rol_parte",
	"tipo_delito",
	"expediente_delito",
	"jurisdiccion",
	"fuero",
	"metadata",
}

// Service builds ZIP archives with one CSV per dataset table. Archives
// are cached for a bounded time so repeated downloads reuse the same
// bytes.
type Service struct {
	db     *gorm.DB
	cache  *cache.ArchiveCache
	logger *logger.Logger
}

// NewService creates an export Service.
func NewService(db *gorm.DB, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cache.New(ttl),
		logger: log,
	}
}

// Filename returns the date-stamped download name for the archive.
func (s *Service) Filename() string {
	return fmt.Sprintf("causas_corrupcion_%s.zip", time.Now().Format("2006-01-02"))
}

// Archive returns the full-dataset ZIP, building it on a cache miss.
// The cache key carries the dataset's last-refresh timestamp, so a
// completed load makes the next download rebuild instead of serving
// the pre-load archive. A table that fails to export becomes an
// error-note entry inside the archive instead of failing the whole
// download.
func (s *Service) Archive(ctx context.Context) ([]byte, error) {
	key, err := s.archiveCacheKey(ctx)
	if err != nil {
		return nil, err
	}
	if data := s.cache.Get(key); data != nil {
		return data, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, table := range tables {
		if err := s.writeTable(ctx, zw, table); err != nil {
			s.logger.Warn("table export failed", "table", table, "error", err)
			if noteErr := writeErrorNote(zw, table, err); noteErr != nil {
				zw.Close()
				return nil, fmt.Errorf("failed writing error note for %s: %w", table, noteErr)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	data := buf.Bytes()
	s.cache.Set(key, data)
	return data, nil
}

// archiveCacheKey derives the cache key from the dataset's last
// refresh. The loader runs in its own process, so staleness is decided
// by comparing timestamps, not by cross-process invalidation.
func (s *Service) archiveCacheKey(ctx context.Context) (string, error) {
	refresh, err := database.LastRefresh(s.db.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("refresh lookup failed: %w", err)
	}
	if refresh == nil {
		return archiveKey, nil
	}
	return archiveKey + ":" + refresh.UTC().Format(time.RFC3339Nano), nil
}

// CacheStats exposes archive-cache counters for diagnostics.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// writeTable streams one table into the archive as CSV.
func (s *Service) writeTable(ctx context.Context, zw *zip.Writer, table string) error {
	rows, err := s.db.WithContext(ctx).Raw("SELECT * FROM " + table).Rows()
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns unavailable: %w", err)
	}

	entry, err := zw.Create(table + ".csv")
	if err != nil {
		return fmt.Errorf("archive entry failed: %w", err)
	}
	w := csv.NewWriter(entry)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("header write failed: %w", err)
	}

	values := make([]interface{}, len(columns))
	scanTargets := make([]interface{}, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("row scan failed: %w", err)
		}
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("row write failed: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration failed: %w", err)
	}

	w.Flush()
	return w.Error()
}

func writeErrorNote(zw *zip.Writer, table string, cause error) error {
	entry, err := zw.Create(table + "_ERROR.txt")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(entry, "export of table %s failed: %v\n", table, cause)
	return err
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
