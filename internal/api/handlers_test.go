package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openjusticia/corrupcion-api/internal/analytics"
	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/export"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log, err := logger.NewLogger("error", "console")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	exportSvc := export.NewService(db, time.Minute, log)
	h := NewHandler(analytics.NewService(db), exportSvc, log, 10*time.Second)

	router := gin.New()
	RegisterRoutes(router, h)
	return router, db
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)
	rec := doGet(t, router, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestStatusBreakdownEndpoint(t *testing.T) {
	router, db := setupRouter(t)
	for _, c := range []database.Case{
		{CaseNumber: "1", Status: database.StatusOpen},
		{CaseNumber: "2", Status: database.StatusOpen},
		{CaseNumber: "3", Status: database.StatusClosed},
	} {
		if err := db.Create(&c).Error; err != nil {
			t.Fatal(err)
		}
	}

	rec := doGet(t, router, "/api/analytics/casos-por-estado")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body analytics.StatusBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Total != 3 {
		t.Errorf("total_casos = %d, want 3", body.Total)
	}
	if len(body.Statuses) != 2 {
		t.Errorf("estados = %d buckets, want 2", len(body.Statuses))
	}
}

func TestCasesByStatusEndpoint(t *testing.T) {
	router, db := setupRouter(t)
	if err := db.Create(&database.Case{CaseNumber: "1", Status: database.StatusOpen}).Error; err != nil {
		t.Fatal(err)
	}

	path := "/api/analytics/casos-por-estado/" + url.PathEscape(database.StatusOpen)
	rec := doGet(t, router, path)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body analytics.StatusDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Count != 1 || len(body.Cases) != 1 {
		t.Errorf("detail = %+v", body)
	}
}

func TestCasesByStatusRejectsUnknownValue(t *testing.T) {
	router, _ := setupRouter(t)
	rec := doGet(t, router, "/api/analytics/casos-por-estado/Archivada")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("expected error body, got %s", rec.Body.String())
	}
}

func TestLimitClampedToOne(t *testing.T) {
	router, db := setupRouter(t)
	for i, name := range []string{"ASOCIACION ILICITA", "COHECHO"} {
		if err := db.Create(&database.CrimeType{Name: name}).Error; err != nil {
			t.Fatal(err)
		}
		caseNumber := string(rune('1' + i))
		if err := db.Create(&database.Case{CaseNumber: caseNumber, Status: database.StatusOpen}).Error; err != nil {
			t.Fatal(err)
		}
		if err := db.Create(&database.CaseCrime{CaseNumber: caseNumber, CrimeTypeID: uint(i + 1)}).Error; err != nil {
			t.Fatal(err)
		}
	}

	rec := doGet(t, router, "/api/analytics/delitos-mas-frecuentes?limit=-3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body analytics.CrimeBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Items) != 1 {
		t.Errorf("expected negative limit clamped to 1 item, got %d", len(body.Items))
	}
}

func TestDurationEndpoints(t *testing.T) {
	router, db := setupRouter(t)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	if err := db.Create(&database.Case{
		CaseNumber: "1", Status: database.StatusOpen,
		StartDate: &start, LastMovement: &end,
	}).Error; err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/api/analytics/duracion-instruccion")
	if rec.Code != http.StatusOK {
		t.Fatalf("duracion-instruccion status = %d", rec.Code)
	}
	var body analytics.DurationBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Stats.Count != 1 || body.Stats.Mean != 30 {
		t.Errorf("stats = %+v", body.Stats)
	}

	rec = doGet(t, router, "/api/analytics/duracion-outliers")
	if rec.Code != http.StatusOK {
		t.Fatalf("duracion-outliers status = %d", rec.Code)
	}
}

func TestDownloadArchiveEndpoint(t *testing.T) {
	router, _ := setupRouter(t)
	rec := doGet(t, router, "/api/exportacion/descargar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q, want application/zip", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "causas_corrupcion_") {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty archive body")
	}
}

func TestLastRefreshEndpoint(t *testing.T) {
	router, db := setupRouter(t)
	if err := database.SetLastRefresh(db, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/api/analytics/ultima-actualizacion")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body analytics.RefreshInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.LastRefresh == nil {
		t.Error("expected ultima_actualizacion timestamp")
	}
}
