package verifier

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// модель иногда оборачивает JSON текстом или markdown
var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseVerdict извлекает JSON из текста модели и нормализует его
func ParseVerdict(text string) (*domain.VerificationResult, error) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, ErrNoJSON
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode verdict: %v", domain.ErrParseFailure, err)
	}

	return normalize(raw), nil
}

// normalize приводит поля к ожидаемым типам:
// confidence в [0, 100], нечисловая сумма -> nil, issues -> [], documentType -> "Unknown"
func normalize(raw rawVerdict) *domain.VerificationResult {
	result := &domain.VerificationResult{
		IsPaymentProof:   truthy(raw.IsPaymentProof),
		DetectedAmount:   toDecimal(raw.DetectedAmount),
		AmountMatches:    truthy(raw.AmountMatches),
		BankName:         toOptionalString(raw.BankName),
		TransactionDate:  toOptionalString(raw.TransactionDate),
		ReferenceNumber:  toOptionalString(raw.ReferenceNumber),
		ReferenceMatches: truthy(raw.ReferenceMatches),
		IsValid:          truthy(raw.IsValid),
		DocumentType:     "Unknown",
		Issues:           []string{},
	}

	if confidence, ok := toFloat(raw.Confidence); ok {
		result.Confidence = domain.ClampConfidence(confidence)
	}
	if docType := toOptionalString(raw.DocumentType); docType != nil {
		result.DocumentType = *docType
	}
	if issues, ok := raw.Issues.([]interface{}); ok {
		for _, issue := range issues {
			if s, ok := issue.(string); ok {
				result.Issues = append(result.Issues, s)
			}
		}
	}

	return result
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

func toDecimal(v interface{}) *decimal.Decimal {
	switch t := v.(type) {
	case float64:
		if t == 0 {
			return nil
		}
		d := decimal.NewFromFloat(t)
		return &d
	case string:
		cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "R"))
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		d, err := decimal.NewFromString(cleaned)
		if err != nil || d.IsZero() {
			return nil
		}
		return &d
	default:
		return nil
	}
}

func toOptionalString(v interface{}) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
