package fieldspec

import (
	"regexp"

	"github.com/rotisserie/eris"

	"bidrank/internal"
)

var (
	errUnknownField      = eris.New("unknown field")
	errEmptyText         = eris.New("empty text capture")
	errNonPositiveAmount = eris.New("non-positive amount")
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// The cascades are tuned to the wording seen across the tender corpus.
// Order matters: the most specific label comes first and wins.
var specs = []Spec{
	{
		Field:     internal.FieldContractName,
		Type:      TypeText,
		Direction: DirectionNone,
		Primary: compile(
			`(?i)Contract\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Project\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Tender\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Work\s*Description\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Contract\s*Title\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Project\s*Title\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Name\s*of\s*Work\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Description\s*of\s*Work\s*[:\-]\s*([^\n\r]+)`,
		),
		Enhanced: compile(
			`(?i)Contract\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Project\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Tender\s*Name\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Work\s*Description\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Contract\s*Title\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Project\s*Title\s*[:\-]\s*([^\n\r]+)`,
		),
		Line: compile(
			`(?i)Contract Name:\s*([^\n\r]+)`,
			`(?i)Project Name:\s*([^\n\r]+)`,
			`(?i)Tender Name:\s*([^\n\r]+)`,
			`(?i)Work Description:\s*([^\n\r]+)`,
			`(?i)Contract Title:\s*([^\n\r]+)`,
			`(?i)Project Title:\s*([^\n\r]+)`,
			`(?i)Name\s*of\s*Work:\s*([^\n\r]+)`,
			`(?i)Description\s*of\s*Work:\s*([^\n\r]+)`,
		),
	},
	{
		Field:     internal.FieldLicenseCategory,
		Type:      TypeText,
		Direction: DirectionNone,
		Primary: compile(
			`(?i)Contractor\s*License\s*Category\s*[:\-]\s*([^\n\r]+)`,
			`(?i)License\s*Category\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Category\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Class\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Grade\s*[:\-]\s*([^\n\r]+)`,
			`(?i)(C\d+\s*[–\-]\s*[^\n\r]+)`,
		),
		Line: compile(
			`(?i)Contractor License Category:\s*([^\n\r]+)`,
			`(?i)License Category:\s*([^\n\r]+)`,
			`(?i)Category:\s*([^\n\r]+)`,
			`(?i)Class:\s*([^\n\r]+)`,
			`(?i)Grade:\s*([^\n\r]+)`,
			`(?i)(C\d+\s*[–\-]\s*[^\n\r]+)`,
		),
	},
	{
		Field:     internal.FieldProjectDuration,
		Type:      TypeInteger,
		Direction: LowerBetter,
		Primary: compile(
			`(?i)Project\s*Duration\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Duration\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Contract\s*Period\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Time\s*Period\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Completion\s*Time\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Period\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
		),
		// Enhanced variants capture the unit so the scanner can convert
		// years and days to months.
		Enhanced: compile(
			`(?i)Project\s*Duration\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Duration\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Contract\s*Period\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Time\s*Period\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Completion\s*Time\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
		),
		Line: compile(
			`(?i)Project Duration:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Duration:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Contract Period:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Time\s*Period:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Completion\s*Time:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Period:\s*(\d+)\s*(?:months?|days?|years?)`,
		),
	},
	{
		Field:     internal.FieldWarrantyPeriod,
		Type:      TypeInteger,
		Direction: HigherBetter,
		Primary: compile(
			`(?i)Warranty\s*Period\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Warranty\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Guarantee\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Maintenance\s*Period\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Defect\s*Liability\s*[:\-]\s*(\d+)\s*(?:months?|days?|years?)`,
		),
		Enhanced: compile(
			`(?i)Warranty\s*Period\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Warranty\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Guarantee\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
			`(?i)Maintenance\s*Period\s*[:\-]\s*(\d+)\s*(months?|days?|years?)`,
		),
		Line: compile(
			`(?i)Warranty Period:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Warranty:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Guarantee:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Maintenance Period:\s*(\d+)\s*(?:months?|days?|years?)`,
			`(?i)Defect Liability:\s*(\d+)\s*(?:months?|days?|years?)`,
		),
	},
	{
		Field:     internal.FieldClientRating,
		Type:      TypeDecimal,
		Direction: HigherBetter,
		Primary: compile(
			`(?i)Average\s*Client\s*Rating\s*[:\-]\s*(\d+(?:\.\d+)?)`,
			`(?i)Client\s*Rating\s*[:\-]\s*(\d+(?:\.\d+)?)`,
			`(?i)Rating\s*[:\-]\s*(\d+(?:\.\d+)?)`,
			`(?i)Performance\s*Rating\s*[:\-]\s*(\d+(?:\.\d+)?)`,
			`(?i)Quality\s*Rating\s*[:\-]\s*(\d+(?:\.\d+)?)`,
			`(?i)Score\s*[:\-]\s*(\d+(?:\.\d+)?)`,
		),
		Line: compile(
			`(?i)Average Client Rating:\s*(\d+(?:\.\d+)?)`,
			`(?i)Client Rating:\s*(\d+(?:\.\d+)?)`,
			`(?i)Rating:\s*(\d+(?:\.\d+)?)`,
			`(?i)Performance Rating:\s*(\d+(?:\.\d+)?)`,
			`(?i)Quality Rating:\s*(\d+(?:\.\d+)?)`,
			`(?i)Score:\s*(\d+(?:\.\d+)?)`,
		),
	},
	{
		Field:     internal.FieldProjectSuccessRate,
		Type:      TypeDecimal,
		Direction: HigherBetter,
		Primary: compile(
			`(?i)Project\s*Success\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Success\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Success\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Completion\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Performance\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Track\s*Record\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
		),
		Enhanced: compile(
			`(?i)Success\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Completion\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Performance\s*Rate\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Track\s*Record\s*[:\-]\s*(\d+(?:\.\d+)?)\s*%`,
		),
		Line: compile(
			`(?i)Project Success Rate:\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Success Rate:\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Success:\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Completion Rate:\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Performance Rate:\s*(\d+(?:\.\d+)?)\s*%`,
			`(?i)Track Record:\s*(\d+(?:\.\d+)?)\s*%`,
		),
	},
	{
		Field:     internal.FieldRejectionHistory,
		Type:      TypeInteger,
		Direction: LowerBetter,
		Primary: compile(
			`(?i)Rejection\s*History\s*[:\-]\s*(\d+)`,
			`(?i)Rejections\s*[:\-]\s*(\d+)`,
			`(?i)Failed\s*Bids\s*[:\-]\s*(\d+)`,
			`(?i)Rejected\s*Tenders\s*[:\-]\s*(\d+)`,
		),
		Line: compile(
			`(?i)Rejection History:\s*(\d+)`,
			`(?i)Rejections:\s*(\d+)`,
			`(?i)Failed Bids:\s*(\d+)`,
			`(?i)Rejected Tenders:\s*(\d+)`,
		),
	},
	{
		Field:     internal.FieldSafetyCertification,
		Type:      TypeBoolLabel,
		Direction: HigherBetter,
		Primary: compile(
			`(?i)Safety\s*Certification\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Safety\s*Record\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Safety\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Quality\s*Certification\s*[:\-]\s*([^\n\r]+)`,
			`(?i)Certification\s*[:\-]\s*([^\n\r]+)`,
			`(?i)ISO\s*[:\-]\s*([^\n\r]+)`,
		),
		Line: compile(
			`(?i)Safety Certification:\s*([^\n\r]+)`,
			`(?i)Safety Record:\s*([^\n\r]+)`,
			`(?i)Safety:\s*([^\n\r]+)`,
			`(?i)Quality Certification:\s*([^\n\r]+)`,
			`(?i)Certification:\s*([^\n\r]+)`,
			`(?i)ISO:\s*([^\n\r]+)`,
		),
	},
	{
		Field:     internal.FieldBidAmount,
		Type:      TypeCurrency,
		Direction: LowerBetter,
		Primary: compile(
			`(?i)Bid\s*Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Total\s*Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Contract\s*Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Project\s*Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Tender\s*Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Estimated\s*Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Budget\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Price\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Rs\.?\s*([\d,]+(?:\.\d+)?)`,
			`₹\s*([\d,]+(?:\.\d+)?)`,
			`\$\s*([\d,]+(?:\.\d+)?)`,
			`(?i)([\d,]{6,}(?:\.\d+)?)\s*(?:lakhs?|crores?|million)`,
		),
		Enhanced: compile(
			`(?i)Bid\s*Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Total\s*Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Contract\s*Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Project\s*Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Tender\s*Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Estimated\s*Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Budget\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Price\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Cost\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Value\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Amount\s*[:\-]\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Rs\.?\s*([\d,]+(?:\.\d+)?)`,
			`₹\s*([\d,]+(?:\.\d+)?)`,
			`\$\s*([\d,]+(?:\.\d+)?)`,
			`(?i)([\d,]{6,}(?:\.\d+)?)\s*(?:lakhs?|crores?|million)`,
		),
		Line: compile(
			`(?i)Bid Amount:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Total Amount:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Contract Value:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Project Cost:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Tender Value:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Estimated Cost:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Budget:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Price:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Cost:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Value:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Amount:\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`,
			`(?i)Rs\.?\s*([\d,]+(?:\.\d+)?)`,
			`₹\s*([\d,]+(?:\.\d+)?)`,
			`\$\s*([\d,]+(?:\.\d+)?)`,
		),
	},
}
