package handlers

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PaymentProofPayload документ, приложенный к заказу или записи
type PaymentProofPayload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"` // base64, допускается префикс data:<mime>;base64,
}

// Decode байты документа. MIME из data URL используется, если contentType не задан
func (p *PaymentProofPayload) Decode() (contentType string, data []byte, err error) {
	raw := strings.TrimSpace(p.Data)
	contentType = strings.TrimSpace(p.ContentType)

	if strings.HasPrefix(raw, "data:") {
		header, body, ok := strings.Cut(raw, ",")
		if !ok {
			return "", nil, fmt.Errorf("malformed data URL")
		}
		if contentType == "" {
			contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		raw = body
	}

	data, err = base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, fmt.Errorf("payment proof is not valid base64: %w", err)
	}
	return contentType, data, nil
}
