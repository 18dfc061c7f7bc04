package webhook

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ggfinance/internal/testutil"
)

type fakeProcessor struct {
	err   error
	calls []string
}

func (p *fakeProcessor) Process(_ context.Context, phone, text string) error {
	p.calls = append(p.calls, phone+":"+text)
	return p.err
}

func TestHandleInbound(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		engineErr      error
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "valid message",
			body:           `{"from": "5511999990000", "message": "oi"}`,
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "engine error still acknowledges",
			body:           `{"from": "5511999990000", "message": "oi"}`,
			engineErr:      fmt.Errorf("db down"),
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "malformed json",
			body:           `{"from":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing phone",
			body:           `{"message": "oi"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank message",
			body:           `{"from": "5511999990000", "message": "   "}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &fakeProcessor{err: tt.engineErr}
			router := NewHandler(processor, testutil.NewTestLogger()).Router()

			req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Len(t, processor.calls, tt.expectedCalls)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"status": "received"}`, rec.Body.String())
			}
		})
	}
}

func TestHandleInbound_PassesPhoneAndText(t *testing.T) {
	processor := &fakeProcessor{}
	router := NewHandler(processor, testutil.NewTestLogger()).Router()

	body := `{"from": " 5511999990000 ", "message": "gastei 50 no mercado"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Len(t, processor.calls, 1)
	assert.Equal(t, "5511999990000:gastei 50 no mercado", processor.calls[0])
}

func TestHealth(t *testing.T) {
	router := NewHandler(&fakeProcessor{}, testutil.NewTestLogger()).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
