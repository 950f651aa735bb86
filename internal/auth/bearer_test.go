package auth

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
)

const testToken = "asdasdsafd"

func TestGateCheck(t *testing.T) {
	gate := NewGate(testToken, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", MsgHeaderRequired},
		{"basic scheme", "Basic abc", MsgInvalidFormat},
		{"lowercase scheme", "bearer " + testToken, MsgInvalidFormat},
		{"scheme only", "Bearer", MsgTokenRequired},
		{"empty credential", "Bearer ", MsgTokenRequired},
		{"double space", "Bearer  " + testToken, MsgTokenRequired},
		{"wrong token", "Bearer nope", MsgInvalidToken},
		{"token with suffix", "Bearer " + testToken + "x", MsgInvalidToken},
		{"valid", "Bearer " + testToken, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Check(tc.header)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, httpx.ErrUnauthorized)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestGateLogsOnlyTokenPrefix(t *testing.T) {
	var logs bytes.Buffer
	gate := NewGate(testToken, slog.New(slog.NewTextHandler(&logs, nil)))

	_ = gate.Check("Bearer supersecretvalue")

	assert.Contains(t, logs.String(), "token=super...")
	assert.NotContains(t, logs.String(), "supersecretvalue")
}

func TestGateMiddleware(t *testing.T) {
	gate := NewGate(testToken, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	h := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/companies/adhesion", nil)
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, MsgHeaderRequired, body["message"])
	assert.Equal(t, "Unauthorized", body["error"])

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/companies/adhesion", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
}
