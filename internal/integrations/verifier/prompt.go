package verifier

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const promptTemplate = `Analyze this payment proof image and extract the following information:

Expected payment amount: R%[1]s
Expected reference (if any): %[2]s

Please provide a JSON response with the following structure:
{
  "isPaymentProof": boolean,
  "detectedAmount": number or null,
  "amountMatches": boolean,
  "bankName": string or null,
  "transactionDate": string or null,
  "referenceNumber": string or null,
  "referenceMatches": boolean,
  "confidence": number (0-100),
  "documentType": string,
  "isValid": boolean,
  "issues": array of strings describing any problems found
}

Look for:
- Payment confirmation screens
- Bank transfer receipts
- EFT confirmations
- Mobile banking screenshots
- Any document showing a financial transaction

The document should clearly show:
- Transaction amount
- Bank or payment service name
- Date and time
- Reference or transaction number
- Confirmation that payment was successful

Be strict about amount matching - it must be exactly R%[1]s.
Confidence should be high (80-100) only if all details are clearly visible and correct.`

func buildPrompt(expected decimal.Decimal, reference string) string {
	return fmt.Sprintf(promptTemplate, expected.StringFixed(2), reference)
}
