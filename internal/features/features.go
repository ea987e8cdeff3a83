// Package features turns completed document records into the numeric
// matrix the training oracle consumes: raw numerics, derived ratios and
// integer-encoded categoricals, plus standard scaling.
package features

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"bidrank/internal"
)

// Columns is the fixed feature order of every matrix row.
var Columns = []string{
	"project_duration",
	"warranty_period",
	"client_rating",
	"project_success_rate",
	"rejection_history",
	"bid_amount",
	"bid_per_duration",
	"success_to_rating",
	"warranty_to_duration",
	"contract_name_code",
	"license_category_code",
	"safety_certification_code",
}

// Matrix is one feature row per input record, in input order.
type Matrix struct {
	Rows    [][]float64
	Columns []string
}

// Values meaning "we do not actually know this" that sometimes survive
// upstream systems as literal text.
var sentinels = map[string]struct{}{
	"":        {},
	"none":    {},
	"unknown": {},
	"nan":     {},
	"null":    {},
}

func isSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Build validates the batch and produces the feature matrix. A field that
// carries no usable value in any record fails the whole batch with a
// PreprocessingError, since a column of sentinels would train the oracle
// on noise.
func Build(records []internal.DocumentRecord) (*Matrix, error) {
	if len(records) == 0 {
		return nil, eris.New("no records to featurize")
	}

	var missing []internal.Field
	for _, field := range internal.RequiredFields() {
		usable := false
		for _, r := range records {
			if r.Has(field) && !isSentinel(r.Text(field)) {
				usable = true
				break
			}
		}
		if !usable {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &internal.PreprocessingError{Missing: missing}
	}

	contractCodes := encode(records, internal.FieldContractName)
	licenseCodes := encode(records, internal.FieldLicenseCategory)
	safetyCodes := encode(records, internal.FieldSafetyCertification)

	rows := make([][]float64, 0, len(records))
	for _, r := range records {
		duration := r.Number(internal.FieldProjectDuration)
		warranty := r.Number(internal.FieldWarrantyPeriod)
		rating := r.Number(internal.FieldClientRating)
		bid := r.Number(internal.FieldBidAmount)

		rows = append(rows, []float64{
			duration,
			warranty,
			rating,
			r.Number(internal.FieldProjectSuccessRate),
			r.Number(internal.FieldRejectionHistory),
			bid,
			ratio(bid, duration),
			ratio(r.Number(internal.FieldProjectSuccessRate), rating),
			ratio(warranty, duration),
			float64(contractCodes[r.Text(internal.FieldContractName)]),
			float64(licenseCodes[r.Text(internal.FieldLicenseCategory)]),
			float64(safetyCodes[r.Text(internal.FieldSafetyCertification)]),
		})
	}

	return &Matrix{Rows: rows, Columns: Columns}, nil
}

// encode assigns codes by sorted distinct value, so the encoding is
// deterministic for a given batch regardless of record order.
func encode(records []internal.DocumentRecord, field internal.Field) map[string]int {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[r.Text(field)] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	codes := make(map[string]int, len(values))
	for i, v := range values {
		codes[v] = i
	}
	return codes
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
