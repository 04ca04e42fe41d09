package ocr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/ocr"
)

func TestStripImagePlaceholders(t *testing.T) {
	in := "# Resume\n![photo](img-0.jpeg)\nJane Doe\n![](logo.png) Engineer"
	out := ocr.StripImagePlaceholders(in)
	assert.NotContains(t, out, "![")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Engineer")
}

func newOCRServer(t *testing.T, pages []map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ocr", r.FormValue("purpose"))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-123"})
	})
	mux.HandleFunc("GET /files/file-123/url", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://signed.example/doc"})
	})
	mux.HandleFunc("POST /ocr", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		doc := body["document"].(map[string]any)
		assert.Equal(t, "https://signed.example/doc", doc["document_url"])
		_ = json.NewEncoder(w).Encode(map[string]any{"pages": pages})
	})
	return httptest.NewServer(mux)
}

func TestMistralClient_ProcessPDF(t *testing.T) {
	srv := newOCRServer(t, []map[string]any{
		{"index": 0, "markdown": "page zero ![x](a.png)"},
		{"index": 1, "markdown": "page one"},
	})
	defer srv.Close()

	c := ocr.NewMistralClient(ocr.MistralConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	pages, err := c.ProcessPDF(context.Background(), "resumes.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "page zero", pages[0])
	assert.Equal(t, "page one", pages[1])
}

func TestMistralClient_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := ocr.NewMistralClient(ocr.MistralConfig{APIKey: "bad", BaseURL: srv.URL}, nil)
	_, err := c.ProcessPDF(context.Background(), "resumes.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrOCR)
}

func TestMistralClient_EmptyInputRejected(t *testing.T) {
	c := ocr.NewMistralClient(ocr.MistralConfig{APIKey: "k"}, nil)
	_, err := c.ProcessPDF(context.Background(), "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrOCR)
}
