package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

func setupLoader(t *testing.T, files map[string]string) (*Loader, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	log, err := logger.NewLogger("error", "console")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return New(db, dir, log), db
}

const casesCSV = `numero_expediente,caratula,estado_procesal,tribunal,fiscal,fiscalia,fuero,jurisdiccion,fecha_inicio,fecha_ultimo_movimiento,delitos
100/2020,NN s/ cohecho,En trámite,Juzgado Federal 1,STORNELLI CARLOS,Fiscalia Federal 1,Federal,CABA,2020-03-15,2021-06-01,"Art. 210 CP - ASOCIACION ILICITA, COHECHO (256 CP)"
101/2019,NN s/ fraude,Terminada,Juzgado Federal 2,,,Federal,CABA,15/03/2019,2020-01-10,MALVERSACION
`

func TestRunLoadsCases(t *testing.T) {
	l, db := setupLoader(t, map[string]string{casesFile: casesCSV})

	summary, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Cases != 2 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 2 cases 0 skipped", summary)
	}
	if summary.Crimes != 3 {
		t.Errorf("crimes = %d, want 3", summary.Crimes)
	}

	var c database.Case
	if err := db.First(&c, "numero_expediente = ?", "100/2020").Error; err != nil {
		t.Fatalf("case not loaded: %v", err)
	}
	if c.Status != database.StatusOpen || c.Court != "Juzgado Federal 1" {
		t.Errorf("case = %+v", c)
	}
	if c.StartYear == nil || *c.StartYear != 2020 {
		t.Errorf("start year = %v, want 2020", c.StartYear)
	}

	var crimeCount int64
	if err := db.Model(&database.CrimeType{}).Count(&crimeCount).Error; err != nil {
		t.Fatal(err)
	}
	if crimeCount != 3 {
		t.Errorf("crime types = %d, want 3", crimeCount)
	}

	var links int64
	if err := db.Model(&database.CaseCrime{}).Where("numero_expediente = ?", "100/2020").Count(&links).Error; err != nil {
		t.Fatal(err)
	}
	if links != 2 {
		t.Errorf("crime links = %d, want 2", links)
	}

	refreshed, err := database.LastRefresh(db)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed == nil {
		t.Error("expected last-refresh timestamp after successful load")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	l, db := setupLoader(t, map[string]string{
		casesFile: casesCSV,
		partiesFile: `numero_expediente,nombre,rol
100/2020,LOPEZ JOSE,IMPUTADO
100/2020,GOMEZ ANA,DENUNCIANTE
`,
	})

	for i := 0; i < 2; i++ {
		if _, err := l.Run(context.Background()); err != nil {
			t.Fatalf("Run() pass %d error: %v", i+1, err)
		}
	}

	var cases, parties, links int64
	db.Model(&database.Case{}).Count(&cases)
	db.Model(&database.Party{}).Count(&parties)
	db.Model(&database.CaseCrime{}).Count(&links)
	if cases != 2 {
		t.Errorf("cases = %d after two runs, want 2", cases)
	}
	if parties != 2 {
		t.Errorf("parties = %d after two runs, want 2", parties)
	}
	if links != 3 {
		t.Errorf("crime links = %d after two runs, want 3", links)
	}
}

func TestRunSkipsBadRows(t *testing.T) {
	l, db := setupLoader(t, map[string]string{
		casesFile: `numero_expediente,caratula,estado_procesal,fecha_inicio,fecha_ultimo_movimiento,delitos
100/2020,NN s/ cohecho,En trámite,2020-01-01,2020-06-01,
,missing number,En trámite,2020-01-01,2020-06-01,
102/2020,bad date,En trámite,not-a-date,2020-06-01,
`,
	})

	summary, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Cases != 1 || summary.Skipped != 2 {
		t.Errorf("summary = %+v, want 1 loaded 2 skipped", summary)
	}

	var count int64
	db.Model(&database.Case{}).Count(&count)
	if count != 1 {
		t.Errorf("cases = %d, want 1", count)
	}
}

func TestRunRequiresCasesFile(t *testing.T) {
	l, db := setupLoader(t, map[string]string{})

	if _, err := l.Run(context.Background()); err == nil {
		t.Fatal("expected error when case extract is missing")
	}

	// A failed run must not move the refresh timestamp.
	refreshed, err := database.LastRefresh(db)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed != nil {
		t.Errorf("refresh timestamp moved on failed load: %v", refreshed)
	}
}

func TestRunLoadsCourtsAndJudges(t *testing.T) {
	l, db := setupLoader(t, map[string]string{
		casesFile: casesCSV,
		courtsFile: `nombre,fuero,localidad
Juzgado Federal 1,Criminal y Correccional Federal,CABA
`,
		judgesFile: `juez,tribunal
GARCIA JUAN,Juzgado Federal 1
`,
	})

	summary, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Courts != 1 || summary.Judges != 1 {
		t.Errorf("summary = %+v, want 1 court 1 judge", summary)
	}

	var link database.CourtJudge
	if err := db.First(&link).Error; err != nil {
		t.Fatalf("judge assignment missing: %v", err)
	}
}
