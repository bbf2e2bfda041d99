package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/normalize"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

// Dataset extract files inside the data directory. Only the case file
// is mandatory.
const (
	casesFile   = "expedientes.csv"
	courtsFile  = "tribunales.csv"
	judgesFile  = "jueces.csv"
	partiesFile = "partes.csv"
)

// Summary counts what a load run processed. Skipped rows were
// malformed and left out without aborting the run.
type Summary struct {
	Courts  int `json:"tribunales"`
	Judges  int `json:"jueces"`
	Cases   int `json:"expedientes"`
	Crimes  int `json:"delitos"`
	Parties int `json:"partes"`
	Skipped int `json:"omitidos"`
}

// Loader ingests the CSV extracts into the database with idempotent
// upserts keyed on natural keys. The whole run is one transaction; the
// last-refresh timestamp moves only when every file loads.
type Loader struct {
	db      *gorm.DB
	dataDir string
	logger  *logger.Logger
}

// New creates a Loader reading extracts from dataDir.
func New(db *gorm.DB, dataDir string, log *logger.Logger) *Loader {
	return &Loader{db: db, dataDir: dataDir, logger: log}
}

// Run executes one full load.
func (l *Loader) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	started := time.Now()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.loadCourts(tx, summary); err != nil {
			return err
		}
		if err := l.loadJudges(tx, summary); err != nil {
			return err
		}
		if err := l.loadCases(tx, summary); err != nil {
			return err
		}
		if err := l.loadParties(tx, summary); err != nil {
			return err
		}
		return database.SetLastRefresh(tx, time.Now())
	})
	if err != nil {
		return nil, err
	}

	recordSummary(summary)
	l.logger.Info("dataset load finished",
		"cases", summary.Cases,
		"courts", summary.Courts,
		"judges", summary.Judges,
		"parties", summary.Parties,
		"crimes", summary.Crimes,
		"skipped", summary.Skipped,
		"duration", time.Since(started).String(),
	)
	return summary, nil
}

// table is one parsed CSV file: a header index plus its records.
type table struct {
	index   map[string]int
	records [][]string
}

func (t *table) cell(record []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return cleanCell(record[i])
}

// readFile parses one extract. Optional files that do not exist return
// nil without error.
func (l *Loader) readFile(name string, required bool) (*table, error) {
	f, err := os.Open(filepath.Join(l.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) && !required {
			l.logger.Info("extract not present, skipping", "file", name)
			return nil, nil
		}
		return nil, fmt.Errorf("cannot open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", name, err)
	}

	t := &table{index: make(map[string]int, len(header))}
	for i, col := range header {
		t.index[cleanCell(col)] = i
	}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", name, err)
		}
		t.records = append(t.records, record)
	}
	return t, nil
}

func (l *Loader) loadCourts(tx *gorm.DB, summary *Summary) error {
	t, err := l.readFile(courtsFile, false)
	if err != nil || t == nil {
		return err
	}

	for _, record := range t.records {
		name := t.cell(record, "nombre")
		if name == "" {
			summary.Skipped++
			continue
		}
		court := database.Court{
			Name:   name,
			Forum:  t.cell(record, "fuero"),
			Locale: t.cell(record, "localidad"),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "nombre"}},
			DoUpdates: clause.AssignmentColumns([]string{"fuero", "localidad"}),
		}).Create(&court).Error
		if err != nil {
			return fmt.Errorf("court upsert failed for %q: %w", name, err)
		}
		summary.Courts++
	}
	return nil
}

func (l *Loader) loadJudges(tx *gorm.DB, summary *Summary) error {
	t, err := l.readFile(judgesFile, false)
	if err != nil || t == nil {
		return err
	}

	for _, record := range t.records {
		name := t.cell(record, "juez")
		if name == "" {
			summary.Skipped++
			continue
		}
		var judge database.Judge
		err := tx.Where("nombre = ?", name).
			Attrs(database.Judge{Name: name}).
			FirstOrCreate(&judge).Error
		if err != nil {
			return fmt.Errorf("judge upsert failed for %q: %w", name, err)
		}
		summary.Judges++

		courtName := t.cell(record, "tribunal")
		if courtName == "" {
			continue
		}
		var court database.Court
		err = tx.Where("nombre = ?", courtName).
			Attrs(database.Court{Name: courtName}).
			FirstOrCreate(&court).Error
		if err != nil {
			return fmt.Errorf("court lookup failed for %q: %w", courtName, err)
		}
		link := database.CourtJudge{CourtID: court.ID, JudgeID: judge.ID}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
		if err != nil {
			return fmt.Errorf("judge assignment failed for %q: %w", name, err)
		}
	}
	return nil
}

func (l *Loader) loadCases(tx *gorm.DB, summary *Summary) error {
	t, err := l.readFile(casesFile, true)
	if err != nil {
		return err
	}

	crimeIDs := map[string]uint{}
	for _, record := range t.records {
		number := t.cell(record, "numero_expediente")
		if number == "" {
			summary.Skipped++
			continue
		}

		c := database.Case{
			CaseNumber:   number,
			Caption:      t.cell(record, "caratula"),
			Status:       t.cell(record, "estado_procesal"),
			Court:        t.cell(record, "tribunal"),
			Prosecutor:   t.cell(record, "fiscal"),
			Office:       t.cell(record, "fiscalia"),
			Forum:        t.cell(record, "fuero"),
			Jurisdiction: t.cell(record, "jurisdiccion"),
		}
		if c.StartDate, err = ParseDate(t.cell(record, "fecha_inicio")); err != nil {
			l.logger.Warn("skipping case with bad start date", "case", number, "error", err)
			summary.Skipped++
			continue
		}
		if c.ResolutionDate, err = ParseDate(t.cell(record, "fecha_resolucion")); err != nil {
			l.logger.Warn("skipping case with bad resolution date", "case", number, "error", err)
			summary.Skipped++
			continue
		}
		if c.ElevationDate, err = ParseDate(t.cell(record, "fecha_elevacion")); err != nil {
			l.logger.Warn("skipping case with bad elevation date", "case", number, "error", err)
			summary.Skipped++
			continue
		}
		if c.LastMovement, err = ParseDate(t.cell(record, "fecha_ultimo_movimiento")); err != nil {
			l.logger.Warn("skipping case with bad movement date", "case", number, "error", err)
			summary.Skipped++
			continue
		}
		if c.StartDate != nil {
			year := c.StartDate.Year()
			c.StartYear = &year
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "numero_expediente"}},
			UpdateAll: true,
		}).Create(&c).Error
		if err != nil {
			return fmt.Errorf("case upsert failed for %q: %w", number, err)
		}
		summary.Cases++

		if err := l.upsertCatalogs(tx, c); err != nil {
			return err
		}
		if err := l.linkCrimes(tx, number, t.cell(record, "delitos"), crimeIDs, summary); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) upsertCatalogs(tx *gorm.DB, c database.Case) error {
	if c.Jurisdiction != "" {
		j := database.Jurisdiction{Name: c.Jurisdiction}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&j).Error
		if err != nil {
			return fmt.Errorf("jurisdiction upsert failed: %w", err)
		}
	}
	if c.Forum != "" {
		f := database.Forum{Name: c.Forum}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error
		if err != nil {
			return fmt.Errorf("forum upsert failed: %w", err)
		}
	}
	return nil
}

func (l *Loader) linkCrimes(tx *gorm.DB, caseNumber, raw string, crimeIDs map[string]uint, summary *Summary) error {
	for _, crime := range normalize.SplitCrimes(raw) {
		if crime.Name == "" {
			summary.Skipped++
			continue
		}
		id, ok := crimeIDs[crime.Name]
		if !ok {
			var ct database.CrimeType
			err := tx.Where("nombre = ?", crime.Name).
				Attrs(database.CrimeType{Name: crime.Name, Article: crime.Article, Code: crime.Code}).
				FirstOrCreate(&ct).Error
			if err != nil {
				return fmt.Errorf("crime type upsert failed for %q: %w", crime.Name, err)
			}
			id = ct.ID
			crimeIDs[crime.Name] = id
			summary.Crimes++
		}
		link := database.CaseCrime{CaseNumber: caseNumber, CrimeTypeID: id}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
		if err != nil {
			return fmt.Errorf("crime link failed for %q: %w", caseNumber, err)
		}
	}
	return nil
}

func (l *Loader) loadParties(tx *gorm.DB, summary *Summary) error {
	t, err := l.readFile(partiesFile, false)
	if err != nil || t == nil {
		return err
	}

	// Replace party rows per case so reloads do not accumulate
	// duplicates; parties have no natural key of their own.
	cleared := map[string]bool{}
	for _, record := range t.records {
		number := t.cell(record, "numero_expediente")
		name := t.cell(record, "nombre")
		if number == "" || name == "" {
			summary.Skipped++
			continue
		}
		if !cleared[number] {
			if err := tx.Where("numero_expediente = ?", number).Delete(&database.Party{}).Error; err != nil {
				return fmt.Errorf("party cleanup failed for %q: %w", number, err)
			}
			if err := tx.Where("numero_expediente = ?", number).Delete(&database.PartyRole{}).Error; err != nil {
				return fmt.Errorf("party role cleanup failed for %q: %w", number, err)
			}
			cleared[number] = true
		}

		party := database.Party{CaseNumber: number, Name: name}
		if err := tx.Create(&party).Error; err != nil {
			return fmt.Errorf("party insert failed for %q: %w", number, err)
		}
		role := database.PartyRole{CaseNumber: number, Name: name, Role: t.cell(record, "rol")}
		if err := tx.Create(&role).Error; err != nil {
			return fmt.Errorf("party role insert failed for %q: %w", number, err)
		}
		summary.Parties++
	}
	return nil
}
