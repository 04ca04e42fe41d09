package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/resume-ranker/internal/assistant"
	"github.com/hireflow/resume-ranker/internal/common"
)

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	return httptest.NewServer(mux)
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestExtract_ParsesFencedReply(t *testing.T) {
	reply := "```json\n" + `{
		"name": "Jane Roe",
		"email": "jane@example.com",
		"years_experience": 6,
		"experience": [{"title": "Engineer", "company": "Acme"}],
		"education": [{"degree": "BSc", "institution": "MIT"}],
		"skills": ["Go", "SQL"]
	}` + "\n```"
	srv := chatServer(t, reply, http.StatusOK)
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, raw, err := c.Extract(context.Background(), assistant.ExtractRequest{Text: "resume text", PageRange: "1-2"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", out.Name)
	assert.Equal(t, "jane@example.com", out.Email)
	assert.Equal(t, 6.0, out.YearsExperience)
	assert.Len(t, out.Experience, 1)
	assert.Contains(t, string(raw), `"Jane Roe"`)
}

func TestExtract_LenientSanitizeRecoversNearMiss(t *testing.T) {
	reply := `{"name":"Jane","email":"j@e.c","experience":[],"education":[],"skills":[],"linkedin":"..."}`
	srv := chatServer(t, reply, http.StatusOK)
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, _, err := c.Extract(context.Background(), assistant.ExtractRequest{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", out.Name)
}

func TestExtract_ServerErrorWrapsExtractionSentinel(t *testing.T) {
	srv := chatServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, _, err := c.Extract(context.Background(), assistant.ExtractRequest{Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}

func TestScore_HappyPath(t *testing.T) {
	reply := `{"fit_score":82,"quality_score":74,"matched_skills":["Go"],"missing_skills":["Kubernetes"],"reasoning":"good overlap"}`
	srv := chatServer(t, reply, http.StatusOK)
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, _, err := c.Score(context.Background(), assistant.ScoreRequest{
		Resume:         assistant.ExtractedResume{Name: "Jane"},
		JobDescription: "Go backend engineer",
		CurrentDate:    "24/08/2026",
	})
	require.NoError(t, err)
	assert.Equal(t, 82.0, out.FitScore)
	assert.Equal(t, 74.0, out.QualityScore)
	assert.Equal(t, []string{"Go"}, out.MatchedSkills)
}

func TestScore_InvalidJSONWrapsScoringSentinel(t *testing.T) {
	srv := chatServer(t, "not json at all", http.StatusOK)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, _, err := c.Score(context.Background(), assistant.ScoreRequest{JobDescription: "jd"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrScoring)
}
