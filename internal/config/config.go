package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	// Extraction knobs.
	MinPageTextLen  int     // below this a page is considered thin and OCR kicks in
	BidFloor        float64 // amounts at or below this are ignored as immaterial
	BidCeiling      float64 // amounts above this are discarded as noise
	AuthorityPage   int     // 1-based page whose explicit Bid Amount label overrides everything
	MinContractName int     // enhanced-tier contract names shorter than this are rejected

	// Imputation bands (bid amount -> project duration months).
	LargeProjectBid  float64
	MediumProjectBid float64

	// Scoring knobs.
	WinnerPercentile float64
	DetectThreshold  float64

	// OCR collaborator.
	OCREnabled      bool
	TesseractBinary string
	PdftoppmBinary  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "bidrank.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		MinPageTextLen:  getEnvInt("MIN_PAGE_TEXT_LEN", 50),
		BidFloor:        getEnvFloat("BID_FLOOR", 1000),
		BidCeiling:      getEnvFloat("BID_CEILING", 1_000_000_000),
		AuthorityPage:   getEnvInt("BID_AUTHORITY_PAGE", 38),
		MinContractName: getEnvInt("MIN_CONTRACT_NAME_LEN", 5),

		LargeProjectBid:  getEnvFloat("LARGE_PROJECT_BID", 5_000_000),
		MediumProjectBid: getEnvFloat("MEDIUM_PROJECT_BID", 2_000_000),

		WinnerPercentile: getEnvFloat("WINNER_PERCENTILE", 0.80),
		DetectThreshold:  getEnvFloat("DETECT_THRESHOLD", 0.45),

		OCREnabled:      getEnvBool("OCR_ENABLED", true),
		TesseractBinary: getEnv("TESSERACT_BINARY", "tesseract"),
		PdftoppmBinary:  getEnv("PDFTOPPM_BINARY", "pdftoppm"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
