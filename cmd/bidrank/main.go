package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/document"
	"bidrank/internal/features"
	"bidrank/internal/ocr"
	"bidrank/internal/oracle"
	"bidrank/internal/pipeline"
	"bidrank/internal/scoring"
	"bidrank/internal/storage"
)

const trainingSetSize = 1000

func main() {
	cfg, err := config.Load()
	must(err)

	logger, err := zap.NewProduction()
	must(err)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "bid document (pdf|xlsx|html|eml)")
		docType := fs.String("type", "", "force document type when the extension lies")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		record, err := extractFile(cfg, logger, *input, *docType)
		must(err)

		docID, err := db.UpsertDocument(*input, fileHash(*input))
		must(err)
		must(db.UpsertRecord(docID, record))

		fmt.Printf("extracted %s: %d fields, %d defaulted, %d critical gaps\n",
			*input, len(record.Values),
			countDefaults(record), len(record.CriticalGaps))
	case "rank":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		variantFlag := fs.String("variant", "composite", "composite|comprehensive")
		inputs := fs.String("inputs", "", "comma-separated documents to rank ad hoc instead of stored records")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		variant, err := internal.ParseScoringVariant(*variantFlag)
		must(err)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		var records []internal.DocumentRecord
		if strings.TrimSpace(*inputs) != "" {
			records, err = extractAll(cfg, logger, *inputs)
			must(err)
		} else {
			records, err = db.ListRecords()
			must(err)
		}
		if len(records) == 0 {
			must(fmt.Errorf("no extracted records to rank; run extract first"))
		}

		started := time.Now()
		scored, err := rankRecords(cfg, records, variant)
		must(err)

		runID := fmt.Sprintf("run-%d", time.Now().UnixNano())
		rows := internal.FlattenScored(scored)
		must(db.InsertRankings(runID, variant, rows))
		timings := map[string]int64{"rank_ms": time.Since(started).Milliseconds()}
		must(db.InsertRun(runID, string(variant), timings, map[string]int{"ranked": len(rows)}))

		printRanking(scored, variant)
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportRankingsToXLSX(rows, *out))
			fmt.Printf("exported %d rows to %s\n", len(rows), *out)
		}
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		inputs := fs.String("inputs", "", "comma-separated bid documents")
		variantFlag := fs.String("variant", "composite", "composite|comprehensive")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*inputs) == "" {
			must(fmt.Errorf("--inputs is required"))
		}
		variant, err := internal.ParseScoringVariant(*variantFlag)
		must(err)

		records, err := extractAll(cfg, logger, *inputs)
		must(err)
		if len(records) == 0 {
			must(fmt.Errorf("no readable inputs"))
		}

		scored, err := rankRecords(cfg, records, variant)
		must(err)

		printRanking(scored, variant)
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportRankingsToXLSX(internal.FlattenScored(scored), *out))
			fmt.Printf("exported %d rows to %s\n", len(scored), *out)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func extractFile(cfg config.Config, logger *zap.Logger, input, docType string) (internal.DocumentRecord, error) {
	var rast document.Rasterizer
	var rec ocr.Recognizer = ocr.Nop{}
	available := false
	if cfg.OCREnabled {
		tess := ocr.NewTesseract(cfg.TesseractBinary)
		rec = tess
		available = tess.Available()
		rast = document.NewPdftoppm(cfg.PdftoppmBinary)
	}

	var doc document.Document
	var err error
	if strings.TrimSpace(docType) != "" {
		doc, err = document.ReadFileAs(input, docType, rast)
	} else {
		doc, err = document.ReadFile(input, rast)
	}
	if err != nil {
		return internal.DocumentRecord{}, err
	}

	extractor := pipeline.NewExtractor(cfg, logger, rec, available)
	return extractor.Extract(context.Background(), doc)
}

func extractAll(cfg config.Config, logger *zap.Logger, inputs string) ([]internal.DocumentRecord, error) {
	var records []internal.DocumentRecord
	for _, input := range strings.Split(inputs, ",") {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		record, err := extractFile(cfg, logger, input, "")
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// rankRecords trains the oracle on a synthetic corpus, predicts win
// probabilities for the batch and ranks it by the chosen variant.
func rankRecords(cfg config.Config, records []internal.DocumentRecord, variant internal.ScoringVariant) ([]internal.ScoredRecord, error) {
	training := oracle.Synthetic(trainingSetSize)
	trainMatrix, err := features.Build(training)
	if err != nil {
		return nil, err
	}

	var scaler features.Scaler
	trainRows := scaler.FitTransform(trainMatrix.Rows)
	labels := scoring.WinnerLabels(scoring.TrainingScores(training), cfg.WinnerPercentile)

	model := oracle.NewLogistic()
	if err := model.Train(trainRows, labels); err != nil {
		return nil, err
	}

	matrix, err := features.Build(records)
	if err != nil {
		return nil, err
	}
	probs, winners, err := model.Predict(scaler.Transform(matrix.Rows))
	if err != nil {
		return nil, err
	}

	preds := make([]scoring.Prediction, len(records))
	for i := range preds {
		preds[i] = scoring.Prediction{Probability: probs[i], Winner: winners[i]}
	}
	return scoring.Rank(records, variant, preds), nil
}

func printRanking(scored []internal.ScoredRecord, variant internal.ScoringVariant) {
	fmt.Printf("rank  %-40s %-10s %10s %8s\n", "source", "score", "win_prob", "winner")
	for _, s := range scored {
		winner := ""
		if s.PredictedWinner {
			winner = "yes"
		}
		fmt.Printf("%4d  %-40s %10.2f %10.3f %8s\n",
			s.Rank, filepath.Base(s.Source), s.Score(variant), s.WinProbability, winner)
	}
}

func countDefaults(record internal.DocumentRecord) int {
	n := 0
	for _, p := range record.Provenance {
		if p.Tier == internal.TierDefault {
			n++
		}
	}
	return n
}

func fileHash(path string) string {
	blob, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

func usage() {
	fmt.Println("usage: bidrank <command>")
	fmt.Println("commands:")
	fmt.Println("  extract --input=./bids/notice.pdf [--type=pdf|xlsx|html|eml]")
	fmt.Println("  rank --variant=composite|comprehensive [--inputs=a.pdf,b.xlsx] [--out=./out/ranking.xlsx]")
	fmt.Println("  run --inputs=a.pdf,b.xlsx,c.eml --variant=composite [--out=./out/ranking.xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
