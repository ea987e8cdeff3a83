package storage

import (
	"path/filepath"
	"testing"

	"bidrank/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "bidrank.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleRecord(source string) internal.DocumentRecord {
	r := internal.NewDocumentRecord(source)
	p := internal.Provenance{Tier: internal.TierText, Page: 1}
	r.Set(internal.FieldContractName, internal.TextValue("Hillside Road Upgrade"), p)
	r.Set(internal.FieldLicenseCategory, internal.TextValue("C2 - Civil Works"), p)
	r.Set(internal.FieldProjectDuration, internal.IntValue(24), p)
	r.Set(internal.FieldWarrantyPeriod, internal.IntValue(36), p)
	r.Set(internal.FieldClientRating, internal.FloatValue(4.6), p)
	r.Set(internal.FieldProjectSuccessRate, internal.FloatValue(92), p)
	r.Set(internal.FieldRejectionHistory, internal.IntValue(1), p)
	r.Set(internal.FieldSafetyCertification, internal.TextValue("Yes"), p)
	r.Set(internal.FieldBidAmount, internal.FloatValue(2_500_000),
		internal.Provenance{Tier: internal.TierDefault})
	r.CriticalGaps = []internal.Field{internal.FieldBidAmount}
	return r
}

func TestRecordRoundTrip(t *testing.T) {
	db := openTestDB(t)

	docID, err := db.UpsertDocument("notice.html", "abc123")
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if err := db.UpsertRecord(docID, sampleRecord("notice.html")); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	records, err := db.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}

	rec := records[0]
	if rec.Source != "notice.html" {
		t.Errorf("source = %q", rec.Source)
	}
	if got := rec.Text(internal.FieldContractName); got != "Hillside Road Upgrade" {
		t.Errorf("contract name = %q", got)
	}
	if got := rec.Number(internal.FieldBidAmount); got != 2_500_000 {
		t.Errorf("bid = %g", got)
	}
	if got := rec.Provenance[internal.FieldBidAmount].Tier; got != internal.TierDefault {
		t.Errorf("bid provenance tier = %s, want default", got)
	}
	if len(rec.CriticalGaps) != 1 || rec.CriticalGaps[0] != internal.FieldBidAmount {
		t.Errorf("critical gaps = %v", rec.CriticalGaps)
	}
}

func TestUpsertRecordReplaces(t *testing.T) {
	db := openTestDB(t)

	docID, err := db.UpsertDocument("notice.html", "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertRecord(docID, sampleRecord("notice.html")); err != nil {
		t.Fatal(err)
	}

	updated := sampleRecord("notice.html")
	updated.Set(internal.FieldBidAmount, internal.FloatValue(2_750_000),
		internal.Provenance{Tier: internal.TierText, Page: 38})
	if err := db.UpsertRecord(docID, updated); err != nil {
		t.Fatal(err)
	}

	records, err := db.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, upsert must replace", len(records))
	}
	if got := records[0].Number(internal.FieldBidAmount); got != 2_750_000 {
		t.Errorf("bid = %g, want updated value", got)
	}
}

func TestUpsertDocumentStableID(t *testing.T) {
	db := openTestDB(t)

	id1, err := db.UpsertDocument("a.pdf", "h1")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := db.UpsertDocument("a.pdf", "h2")
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("document id changed on upsert: %d vs %d", id1, id2)
	}
}

func TestInsertRankings(t *testing.T) {
	db := openTestDB(t)

	rows := []internal.RankingRow{
		{Rank: 1, Source: "a.pdf", CompositeScore: 64.3, PredictedWinner: true, WinProbability: 0.8},
		{Rank: 2, Source: "b.pdf", CompositeScore: 35.7},
	}
	if err := db.InsertRankings("run-1", internal.VariantComposite, rows); err != nil {
		t.Fatalf("InsertRankings: %v", err)
	}
	timings := map[string]int64{"rank_ms": 12}
	if err := db.InsertRun("run-1", string(internal.VariantComposite), timings, map[string]int{"ranked": 2}); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM rankings WHERE runId = ?`, "run-1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("rankings count = %d, want 2", count)
	}
}
