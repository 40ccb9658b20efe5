package vision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/platform/logging"
	"github.com/palabianco/basketstats/internal/usecase"
)

func visionResponse(t *testing.T, rows string) []byte {
	t.Helper()
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": rows}},
				},
			},
		},
	}
	raw, err := sonic.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func testRoster() []usecase.VisionRosterEntry {
	return []usecase.VisionRosterEntry{
		{PlayerID: "p4", Number: 4, Name: "ROSA CLOT"},
		{PlayerID: "p0", Number: 0, Name: "MORRA"},
	}
}

func TestAnalyzeScoreSheet(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write(visionResponse(t, `[
			{"playerId":"p4","points":10,"twoPtMade":2,"twoPtAtt":3},
			{"playerId":"stranger","points":99}
		]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
		Logger:  logging.NewNop(),
	})

	extracts, err := client.AnalyzeScoreSheet(context.Background(), []byte{0xFF, 0xD8}, testRoster())
	require.NoError(t, err)
	require.Len(t, extracts, 1)

	assert.Equal(t, "p4", extracts[0].PlayerID)
	assert.Equal(t, 10, extracts[0].Points)
	assert.Equal(t, 2, extracts[0].TwoPtMade)
	assert.Equal(t, "00:00:00", extracts[0].Minutes)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	assert.Equal(t, "image/jpeg", gotBody.Contents[0].Parts[0].InlineData.MimeType)
	prompt := gotBody.Contents[0].Parts[1].Text
	assert.Contains(t, prompt, "#4 ROSA CLOT (ID: p4)")
	assert.True(t, strings.Contains(prompt, "JSON array"))
}

func TestAnalyzeScoreSheetRetriesTransientStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(visionResponse(t, `[{"playerId":"p4","points":6}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "secret",
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	extracts, err := client.AnalyzeScoreSheet(context.Background(), []byte{0xFF}, testRoster())
	require.NoError(t, err)
	require.Len(t, extracts, 1)
	assert.Equal(t, 2, attempts)
}

func TestAnalyzeScoreSheetNonRetryableStatusFailsFast(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "secret",
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, err := client.AnalyzeScoreSheet(context.Background(), []byte{0xFF}, testRoster())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestAnalyzeScoreSheetRejectsEmptyInput(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := client.AnalyzeScoreSheet(context.Background(), nil, testRoster())
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = client.AnalyzeScoreSheet(context.Background(), []byte{0xFF}, nil)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestAnalyzeScoreSheetEmptyCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "secret", Logger: logging.NewNop()})

	_, err := client.AnalyzeScoreSheet(context.Background(), []byte{0xFF}, testRoster())
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}
