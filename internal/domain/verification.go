package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// VerificationSummary итог проверки подтверждения оплаты для показа администратору
type VerificationSummary string

const (
	SummaryVerified      VerificationSummary = "verified"
	SummaryLowConfidence VerificationSummary = "low_confidence"
	SummaryFailed        VerificationSummary = "failed"
	SummaryManualReview  VerificationSummary = "manual_review" // проверка не выполнилась
)

// VerificationResult структурированное заключение классификатора по документу
type VerificationResult struct {
	IsPaymentProof   bool             `json:"isPaymentProof"`
	DetectedAmount   *decimal.Decimal `json:"detectedAmount"`
	AmountMatches    bool             `json:"amountMatches"`
	Confidence       int              `json:"confidence"`
	IsValid          bool             `json:"isValid"`
	Issues           []string         `json:"issues"`
	DocumentType     string           `json:"documentType"`
	BankName         *string          `json:"bankName,omitempty"`
	TransactionDate  *string          `json:"transactionDate,omitempty"`
	ReferenceNumber  *string          `json:"referenceNumber,omitempty"`
	ReferenceMatches bool             `json:"referenceMatches"`
}

// Verification результат вызова проверки, который сохраняется вместе с заказом или записью.
// Носит только рекомендательный характер и никогда не блокирует создание
type Verification struct {
	Success    bool                `json:"success"`
	Result     *VerificationResult `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	Summary    VerificationSummary `json:"summary"`
	VerifiedAt time.Time           `json:"verifiedAt"`
}

// Summarize правило итоговой оценки:
//   - confidence >= 70 и isValid и amountMatches -> verified
//   - !isValid или confidence < 50 -> failed
//   - иначе (50..69) -> low_confidence
func Summarize(r *VerificationResult) VerificationSummary {
	if r == nil {
		return SummaryManualReview
	}
	switch {
	case r.Confidence >= VerifiedConfidenceThreshold && r.IsValid && r.AmountMatches:
		return SummaryVerified
	case !r.IsValid || r.Confidence < FailedConfidenceThreshold:
		return SummaryFailed
	default:
		return SummaryLowConfidence
	}
}

// NewVerification успешный вызов классификатора
func NewVerification(result *VerificationResult, at time.Time) *Verification {
	return &Verification{
		Success:    true,
		Result:     result,
		Summary:    Summarize(result),
		VerifiedAt: at,
	}
}

// FailedVerification вызов классификатора не удался: нужна ручная проверка
func FailedVerification(err error, at time.Time) *Verification {
	return &Verification{
		Success:    false,
		Error:      err.Error(),
		Summary:    SummaryManualReview,
		VerifiedAt: at,
	}
}

// IsVerified true, если заказ можно автоматически перевести в verified
func (v *Verification) IsVerified() bool {
	return v != nil && v.Success && v.Summary == SummaryVerified
}

// Label строка для уведомлений
func (v *Verification) Label() string {
	if v == nil || !v.Success || v.Result == nil {
		return "No AI verification performed"
	}
	confidence := v.Result.Confidence
	switch v.Summary {
	case SummaryVerified:
		return fmt.Sprintf("AI VERIFIED (%d%% confidence)", confidence)
	case SummaryLowConfidence:
		return fmt.Sprintf("LOW CONFIDENCE (%d%% confidence)", confidence)
	default:
		return fmt.Sprintf("VERIFICATION FAILED (%d%% confidence)", confidence)
	}
}

// ClampConfidence приводит значение к диапазону [0, 100]
func ClampConfidence(c float64) int {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > MaxConfidence:
		return MaxConfidence
	default:
		return int(c)
	}
}
