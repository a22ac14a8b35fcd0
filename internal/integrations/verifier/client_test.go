package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

const (
	testBaseURL  = "https://models.test/v1beta"
	testEndpoint = "https://models.test/v1beta/models/gemini-1.5-flash:generateContent"
)

type countingRecorder struct {
	summaries []string
}

func (r *countingRecorder) RecordVerification(summary string) {
	r.summaries = append(r.summaries, summary)
}

func newTestClient(t *testing.T) (*Client, *countingRecorder) {
	t.Helper()
	recorder := &countingRecorder{}
	client := NewClient(testBaseURL, "secret", "gemini-1.5-flash", 5*time.Second,
		logger.NewWriter(io.Discard, logger.LevelDebug), recorder)
	client.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }

	httpmock.ActivateNonDefault(client.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	return client, recorder
}

func modelResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	}
}

var pdf = Document{Data: []byte("%PDF-1.4 proof"), MimeType: "application/pdf"}

func TestVerify_Verified(t *testing.T) {
	client, recorder := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "secret", req.Header.Get("x-goog-api-key"))
			assert.Empty(t, req.URL.RawQuery)

			var body generateRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Len(t, body.Contents[0].Parts, 2)
			assert.Contains(t, body.Contents[0].Parts[0].Text, "Expected payment amount: R450.00")
			assert.Equal(t, "application/pdf", body.Contents[0].Parts[1].InlineData.MimeType)

			return httpmock.NewJsonResponse(http.StatusOK, modelResponse(
				"Here is the result:\n```json\n"+
					`{"isPaymentProof": true, "detectedAmount": 450, "amountMatches": true,`+
					` "bankName": "FNB", "confidence": 92, "documentType": "EFT receipt", "isValid": true, "issues": []}`+
					"\n```"))
		})

	v := client.Verify(context.Background(), pdf, decimal.NewFromInt(450), "")

	require.True(t, v.Success)
	assert.Equal(t, domain.SummaryVerified, v.Summary)
	assert.True(t, v.IsVerified())
	assert.Equal(t, 92, v.Result.Confidence)
	require.NotNil(t, v.Result.DetectedAmount)
	assert.True(t, v.Result.DetectedAmount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "FNB", *v.Result.BankName)
	assert.Equal(t, []string{"verified"}, recorder.summaries)
}

func TestVerify_NotAProofIsFailedVerdict(t *testing.T) {
	client, _ := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, modelResponse(
			`{"isPaymentProof": false, "confidence": 45, "isValid": false, "issues": ["not a receipt"]}`)))

	v := client.Verify(context.Background(), pdf, decimal.NewFromInt(130), "")

	require.True(t, v.Success)
	assert.Equal(t, domain.SummaryFailed, v.Summary)
	assert.Equal(t, "VERIFICATION FAILED (45% confidence)", v.Label())
	assert.Equal(t, "Unknown", v.Result.DocumentType)
	assert.Nil(t, v.Result.DetectedAmount)
}

func TestVerify_GracefulDegradation(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{
			name:      "server error",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"boom"}`),
		},
		{
			name:      "rate limited",
			responder: httpmock.NewStringResponder(http.StatusTooManyRequests, ``),
		},
		{
			name:      "no json in output",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, modelResponse("I cannot read this image")),
		},
		{
			name:      "broken json",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, modelResponse(`{"confidence": 80,`+"\n}")),
		},
		{
			name:      "no candidates",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{"candidates": []interface{}{}}),
		},
		{
			name:      "transport error",
			responder: httpmock.NewErrorResponder(io.ErrUnexpectedEOF),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, recorder := newTestClient(t)
			httpmock.RegisterResponder(http.MethodPost, testEndpoint, tt.responder)

			v := client.Verify(context.Background(), pdf, decimal.NewFromInt(100), "")

			require.NotNil(t, v)
			assert.False(t, v.Success)
			assert.Equal(t, domain.SummaryManualReview, v.Summary)
			assert.NotEmpty(t, v.Error)
			assert.Equal(t, "No AI verification performed", v.Label())
			assert.Equal(t, []string{"manual_review"}, recorder.summaries)
		})
	}
}

func TestVerify_TransportErrorDoesNotLeakAPIKey(t *testing.T) {
	client, _ := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewErrorResponder(errors.New("dial tcp: i/o timeout")))

	v := client.Verify(context.Background(), pdf, decimal.NewFromInt(100), "")

	require.False(t, v.Success)
	assert.Contains(t, v.Error, "dial tcp: i/o timeout")
	assert.NotContains(t, v.Error, "secret")
	assert.NotContains(t, v.Error, "models.test")
}

func TestAnalyze_ErrorTaxonomy(t *testing.T) {
	client, _ := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusBadGateway, "bad gateway"))
	_, err := client.Analyze(context.Background(), pdf, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)

	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, modelResponse("no json here")))
	_, err = client.Analyze(context.Background(), pdf, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrParseFailure)

	_, err = client.Analyze(context.Background(), Document{}, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
