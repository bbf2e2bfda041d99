package analytics

import (
	"context"
	"strings"
	"testing"

	"github.com/openjusticia/corrupcion-api/internal/database"
)

func TestGlobalDurationStats(t *testing.T) {
	db := setupDB(t)
	seedCase(t, db, database.Case{
		CaseNumber: "1", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-01-11"),
	})
	seedCase(t, db, database.Case{
		CaseNumber: "2", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-01-31"),
	})
	// Cases missing either date never join the statistics.
	seedCase(t, db, database.Case{CaseNumber: "3", Status: database.StatusOpen, StartDate: date(t, "2020-01-01")})
	seedCase(t, db, database.Case{CaseNumber: "4", Status: database.StatusOpen, LastMovement: date(t, "2020-01-01")})

	stats, err := NewStore(db).GlobalDurationStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalDurationStats() error: %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2", stats.Count)
	}
	if stats.Mean != 20 {
		t.Errorf("mean = %v, want 20", stats.Mean)
	}
	if stats.Max != 30 || stats.Min != 10 {
		t.Errorf("max/min = %d/%d, want 30/10", stats.Max, stats.Min)
	}
}

func TestGlobalDurationStatsEmpty(t *testing.T) {
	db := setupDB(t)
	stats, err := NewStore(db).GlobalDurationStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalDurationStats() error: %v", err)
	}
	if stats != (DurationStatsPayload{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestNegativeDurationClampedToZero(t *testing.T) {
	db := setupDB(t)
	seedCase(t, db, database.Case{
		CaseNumber: "1", Status: database.StatusOpen,
		StartDate: date(t, "2020-06-01"), LastMovement: date(t, "2020-05-01"),
	})

	stats, err := NewStore(db).GlobalDurationStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalDurationStats() error: %v", err)
	}
	if stats.Count != 1 || stats.Mean != 0 || stats.Min != 0 || stats.Max != 0 {
		t.Errorf("clamped stats = %+v, want all zeros with count 1", stats)
	}
}

func TestLongestCases(t *testing.T) {
	db := setupDB(t)
	seedCase(t, db, database.Case{
		CaseNumber: "1", Caption: "NN s/ cohecho", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-03-01"),
	})
	seedCase(t, db, database.Case{
		CaseNumber: "2", Caption: "NN s/ fraude", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-01-15"),
	})
	seedCase(t, db, database.Case{
		CaseNumber: "3", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-02-01"),
	})
	err := db.Create(&database.PartyRole{CaseNumber: "1", Name: "LOPEZ JOSE", Role: "IMPUTADO"}).Error
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(db)

	items, err := store.LongestCases(context.Background(), 2)
	if err != nil {
		t.Fatalf("LongestCases() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].CaseNumber != "1" || items[0].Days != 60 {
		t.Errorf("longest = %+v", items[0])
	}
	if items[0].AccusedName == nil || *items[0].AccusedName != "LOPEZ JOSE" {
		t.Errorf("accused = %v, want LOPEZ JOSE", items[0].AccusedName)
	}
	if items[1].CaseNumber != "3" {
		t.Errorf("second longest = %+v", items[1])
	}
	if items[1].AccusedName != nil {
		t.Errorf("expected nil accused for case without one, got %v", *items[1].AccusedName)
	}
	// Case 3 has no caption so the number stands in as label.
	if items[1].Label != "3" {
		t.Errorf("label = %q, want case number", items[1].Label)
	}

	// A limit past the qualifying count returns exactly the qualifying set.
	all, err := store.LongestCases(context.Background(), 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items with oversized limit, got %d", len(all))
	}
}

func TestShortestCases(t *testing.T) {
	db := setupDB(t)
	seedCase(t, db, database.Case{
		CaseNumber: "1", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-03-01"),
	})
	seedCase(t, db, database.Case{
		CaseNumber: "2", Status: database.StatusOpen,
		StartDate: date(t, "2020-01-01"), LastMovement: date(t, "2020-01-03"),
	})

	items, err := NewStore(db).ShortestCases(context.Background(), 1)
	if err != nil {
		t.Fatalf("ShortestCases() error: %v", err)
	}
	if len(items) != 1 || items[0].CaseNumber != "2" || items[0].Days != 2 {
		t.Errorf("shortest = %+v", items)
	}
}

func TestMeanIndependentOfDisplayLimit(t *testing.T) {
	db := setupDB(t)
	for i, end := range []string{"2020-01-11", "2020-01-21", "2020-01-31", "2020-02-10"} {
		seedCase(t, db, database.Case{
			CaseNumber: string(rune('1' + i)), Status: database.StatusOpen,
			StartDate: date(t, "2020-01-01"), LastMovement: date(t, end),
		})
	}

	svc := NewService(db)
	small, err := svc.DurationBreakdown(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	large, err := svc.DurationBreakdown(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if small.Stats != large.Stats {
		t.Errorf("stats differ across limits: %+v vs %+v", small.Stats, large.Stats)
	}
	if small.Stats.Mean != 25 || small.Stats.Count != 4 {
		t.Errorf("stats = %+v, want mean 25 count 4", small.Stats)
	}
	if len(small.Items) != 1 || len(large.Items) != 4 {
		t.Errorf("item counts = %d/%d, want 1/4", len(small.Items), len(large.Items))
	}
}

func TestDurationLabelTruncation(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := durationLabel(long, "99/2020")
	if len([]rune(got)) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncated label = %q (len %d)", got, len([]rune(got)))
	}

	exact := strings.Repeat("b", 60)
	if got := durationLabel(exact, "99/2020"); got != exact {
		t.Errorf("60-char caption should pass through, got %q", got)
	}

	if got := durationLabel("", "99/2020"); got != "99/2020" {
		t.Errorf("empty caption label = %q, want case number", got)
	}
}
