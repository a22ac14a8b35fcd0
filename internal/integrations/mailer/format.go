package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

const displayTimeFormat = "2006-01-02 15:04"

func money(d decimal.Decimal) string {
	return "R" + d.StringFixed(2)
}

func orderItemsText(items []domain.OrderItem) string {
	if len(items) == 0 {
		return "No items"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s × %d - %s", item.ProductName, item.Quantity, money(item.LineTotal())))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// verificationDetails подробности проверки для администратора
func verificationDetails(v *domain.Verification) string {
	if v == nil || !v.Success || v.Result == nil {
		if v != nil && v.Error != "" {
			return "Verification error: " + v.Error
		}
		return ""
	}
	r := v.Result

	detected := "Not detected"
	if r.DetectedAmount != nil {
		detected = money(*r.DetectedAmount)
	}

	var b strings.Builder
	b.WriteString("AI Verification Details:\n")
	fmt.Fprintf(&b, "• Payment Proof Valid: %s\n", yesNo(r.IsPaymentProof))
	fmt.Fprintf(&b, "• Amount Matches: %s\n", yesNo(r.AmountMatches))
	fmt.Fprintf(&b, "• Detected Amount: %s\n", detected)
	fmt.Fprintf(&b, "• Bank Name: %s\n", orDefault(r.BankName, "Not detected"))
	fmt.Fprintf(&b, "• Document Type: %s\n", r.DocumentType)
	fmt.Fprintf(&b, "• Confidence Score: %d%%", r.Confidence)
	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "\n• Issues Found: %s", strings.Join(r.Issues, ", "))
	}
	return b.String()
}

func formatTime(t time.Time) string {
	return t.Format(displayTimeFormat)
}
