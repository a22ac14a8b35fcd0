package verifier

// Document документ подтверждения оплаты
type Document struct {
	Data     []byte
	MimeType string
}

// generateRequest тело запроса generateContent
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// generateResponse ответ generateContent (нужные поля)
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// rawVerdict заключение модели как есть: типы полей не гарантированы
type rawVerdict struct {
	IsPaymentProof   interface{} `json:"isPaymentProof"`
	DetectedAmount   interface{} `json:"detectedAmount"`
	AmountMatches    interface{} `json:"amountMatches"`
	BankName         interface{} `json:"bankName"`
	TransactionDate  interface{} `json:"transactionDate"`
	ReferenceNumber  interface{} `json:"referenceNumber"`
	ReferenceMatches interface{} `json:"referenceMatches"`
	Confidence       interface{} `json:"confidence"`
	DocumentType     interface{} `json:"documentType"`
	IsValid          interface{} `json:"isValid"`
	Issues           interface{} `json:"issues"`
}
