package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"bidrank/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL UNIQUE,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'extracted',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL UNIQUE,
  contract_name TEXT NOT NULL,
  license_category TEXT NOT NULL,
  project_duration INTEGER NOT NULL,
  warranty_period INTEGER NOT NULL,
  client_rating REAL NOT NULL,
  project_success_rate REAL NOT NULL,
  rejection_history INTEGER NOT NULL,
  safety_certification TEXT NOT NULL,
  bid_amount REAL NOT NULL,
  provenanceJson TEXT NOT NULL,
  criticalGapsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS rankings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  source TEXT NOT NULL,
  variant TEXT NOT NULL,
  rank INTEGER NOT NULL,
  composite_score REAL NOT NULL,
  comprehensive_score REAL NOT NULL,
  win_probability REAL NOT NULL,
  predicted_winner INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_rankings_runId ON rankings(runId);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  variant TEXT,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// UpsertDocument registers a source file and returns its row id.
func (d *DB) UpsertDocument(source, hash string) (int64, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (source, hash)
VALUES (?, ?)
ON CONFLICT(source) DO UPDATE SET
  hash=excluded.hash,
  updatedAt=CURRENT_TIMESTAMP
`, source, hash)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := d.conn.QueryRow(`SELECT id FROM documents WHERE source = ?`, source).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertRecord stores the extracted record for a document, replacing any
// earlier extraction.
func (d *DB) UpsertRecord(documentID int64, rec internal.DocumentRecord) error {
	provJSON, _ := json.Marshal(rec.Provenance)
	gapsJSON, _ := json.Marshal(rec.CriticalGaps)

	_, err := d.conn.Exec(`
INSERT INTO records (
  documentId, contract_name, license_category, project_duration, warranty_period,
  client_rating, project_success_rate, rejection_history, safety_certification,
  bid_amount, provenanceJson, criticalGapsJson
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(documentId) DO UPDATE SET
  contract_name=excluded.contract_name,
  license_category=excluded.license_category,
  project_duration=excluded.project_duration,
  warranty_period=excluded.warranty_period,
  client_rating=excluded.client_rating,
  project_success_rate=excluded.project_success_rate,
  rejection_history=excluded.rejection_history,
  safety_certification=excluded.safety_certification,
  bid_amount=excluded.bid_amount,
  provenanceJson=excluded.provenanceJson,
  criticalGapsJson=excluded.criticalGapsJson
`,
		documentID,
		rec.Text(internal.FieldContractName),
		rec.Text(internal.FieldLicenseCategory),
		int(rec.Number(internal.FieldProjectDuration)),
		int(rec.Number(internal.FieldWarrantyPeriod)),
		rec.Number(internal.FieldClientRating),
		rec.Number(internal.FieldProjectSuccessRate),
		int(rec.Number(internal.FieldRejectionHistory)),
		rec.Text(internal.FieldSafetyCertification),
		rec.Number(internal.FieldBidAmount),
		string(provJSON), string(gapsJSON),
	)
	return err
}

// ListRecords loads every stored record, rebuilt into the in-memory shape.
func (d *DB) ListRecords() ([]internal.DocumentRecord, error) {
	rows, err := d.conn.Query(`
SELECT d.source, r.contract_name, r.license_category, r.project_duration,
       r.warranty_period, r.client_rating, r.project_success_rate,
       r.rejection_history, r.safety_certification, r.bid_amount,
       r.provenanceJson, r.criticalGapsJson
FROM records r
JOIN documents d ON d.id = r.documentId
ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentRecord
	for rows.Next() {
		var (
			source, contract, license, safety string
			duration, warranty, rejections    int
			rating, success, bid              float64
			provJSON, gapsJSON                string
		)
		if err := rows.Scan(&source, &contract, &license, &duration, &warranty,
			&rating, &success, &rejections, &safety, &bid, &provJSON, &gapsJSON); err != nil {
			return nil, err
		}

		rec := internal.NewDocumentRecord(source)
		rec.Values[internal.FieldContractName] = internal.TextValue(contract)
		rec.Values[internal.FieldLicenseCategory] = internal.TextValue(license)
		rec.Values[internal.FieldProjectDuration] = internal.IntValue(duration)
		rec.Values[internal.FieldWarrantyPeriod] = internal.IntValue(warranty)
		rec.Values[internal.FieldClientRating] = internal.FloatValue(rating)
		rec.Values[internal.FieldProjectSuccessRate] = internal.FloatValue(success)
		rec.Values[internal.FieldRejectionHistory] = internal.IntValue(rejections)
		rec.Values[internal.FieldSafetyCertification] = internal.TextValue(safety)
		rec.Values[internal.FieldBidAmount] = internal.FloatValue(bid)
		_ = json.Unmarshal([]byte(provJSON), &rec.Provenance)
		_ = json.Unmarshal([]byte(gapsJSON), &rec.CriticalGaps)

		out = append(out, rec)
	}

	return out, rows.Err()
}

// InsertRun records one ranking run; timings is per-stage milliseconds and
// counts free-form counters.
func (d *DB) InsertRun(traceID, variant string, timings map[string]int64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, variant, timingsJson, countsJson) VALUES (?, ?, ?, ?)
`, traceID, variant, string(timingsJSON), string(countsJSON))
	return err
}

// InsertRankings stores the ranked rows of one run.
func (d *DB) InsertRankings(runID string, variant internal.ScoringVariant, rows []internal.RankingRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO rankings (
  runId, source, variant, rank, composite_score, comprehensive_score,
  win_probability, predicted_winner
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		winner := 0
		if row.PredictedWinner {
			winner = 1
		}
		if _, err := stmt.Exec(runID, row.Source, string(variant), row.Rank,
			row.CompositeScore, row.ComprehensiveScore, row.WinProbability, winner); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecordBySource loads one stored record, nil when absent.
func (d *DB) GetRecordBySource(source string) (*internal.DocumentRecord, error) {
	records, err := d.ListRecords()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Source == source {
			return &records[i], nil
		}
	}
	return nil, nil
}
