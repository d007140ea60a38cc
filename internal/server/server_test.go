package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/db"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/extraction"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/server/middleware"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/server/ratelimit"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

const samplePDF = `%PDF-1.4
1 0 obj << /Length 120 >>
stream
BT (Jane Doe\nSkills: Go, Docker, Kubernetes\njane@acme.io\ngithub.com/janedoe/) Tj ET
endstream
endobj
%%EOF`

// mockStore is an in-memory CandidateStore.
type mockStore struct {
	mu         sync.Mutex
	candidates []db.Candidate
	err        error
}

func (m *mockStore) InsertCandidate(_ context.Context, input *db.CandidateInput) (*db.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c := db.Candidate{
		ID:          uuid.New(),
		JobID:       input.JobID,
		ContentHash: &input.ContentHash,
		Name:        input.Result.Name,
		Skills:      input.Result.Skills,
	}
	if input.Match != nil {
		c.MatchScore = &input.Match.Score
		c.Decision = &input.Match.Decision
	}
	m.candidates = append(m.candidates, c)
	return &c, nil
}

func (m *mockStore) ListCandidatesByJob(_ context.Context, jobID uuid.UUID) ([]db.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []db.Candidate
	for _, c := range m.candidates {
		if c.JobID != nil && *c.JobID == jobID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) FindCandidateByHash(_ context.Context, jobID uuid.UUID, contentHash string) (*db.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.candidates) - 1; i >= 0; i-- {
		c := m.candidates[i]
		if c.JobID != nil && *c.JobID == jobID && c.ContentHash != nil && *c.ContentHash == contentHash {
			return &c, nil
		}
	}
	return nil, nil
}

func newTestServer(store CandidateStore) *Server {
	return New(Config{ExtractionTimeout: 5 * time.Second}, extraction.New(), store, nil)
}

func uploadRequest(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse-cv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleParseCV(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, uploadRequest(t, "cv_0042.pdf", []byte(samplePDF), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Jane Doe", body["name"])
	assert.Equal(t, "jane@acme.io", body["email"])
	assert.Equal(t, "https://github.com/janedoe", body["github"])
	assert.Equal(t, false, body["fell_back"])
	assert.NotContains(t, body, "match")
	assert.NotContains(t, body, "candidate_id")
}

func TestHandleParseCV_WithRequirementsAndStore(t *testing.T) {
	store := &mockStore{}
	s := newTestServer(store)
	jobID := uuid.New()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, uploadRequest(t, "cv_0042.pdf", []byte(samplePDF), map[string]string{
		"job_id":    jobID.String(),
		"mandatory": "go, docker",
		"preferred": "rust",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	match, ok := body["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, types.DecisionAccepted, match["decision"])
	assert.Equal(t, 70.0, match["score"])
	assert.NotEmpty(t, body["candidate_id"])

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/"+jobID.String()+"/candidates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Jane Doe", list.Candidates[0].Name)
}

func TestHandleParseCV_DuplicateUpload(t *testing.T) {
	store := &mockStore{}
	s := newTestServer(store)
	fields := map[string]string{"job_id": uuid.New().String()}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, uploadRequest(t, "cv_0042.pdf", []byte(samplePDF), fields))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decodeBody(t, rec)
	assert.NotContains(t, first, "duplicate")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, uploadRequest(t, "cv_0042_copy.pdf", []byte(samplePDF), fields))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeBody(t, rec)

	assert.Equal(t, true, second["duplicate"])
	assert.Equal(t, first["candidate_id"], second["candidate_id"])
	assert.Len(t, store.candidates, 1)
}

func TestHandleParseCV_EmptyFile(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, uploadRequest(t, "empty.pdf", nil, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty document", decodeBody(t, rec)["error"])
}

func TestHandleParseCV_NotAPDF(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, uploadRequest(t, "Mary_Major_Resume.pdf", []byte("just some bytes"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Mary Major", body["name"])
	assert.Equal(t, []any{}, body["skills"])
}

func TestHandleParseCV_BadRequests(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{"missing file", func() *http.Request { return uploadRequest(t, "", nil, map[string]string{"x": "y"}) }},
		{"not multipart", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/parse-cv", strings.NewReader(`{}`))
		}},
		{"bad job id", func() *http.Request {
			return uploadRequest(t, "a.pdf", []byte(samplePDF), map[string]string{"job_id": "nope"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, tt.req())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody(t, rec)["error"])
		})
	}
}

func TestHandleParseCV_TooLarge(t *testing.T) {
	s := New(Config{MaxUploadBytes: 64}, extraction.New(), nil, nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, uploadRequest(t, "big.pdf", bytes.Repeat([]byte("x"), 4096), nil))

	assert.Contains(t, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest}, rec.Code)
}

func TestHandleParseCV_StoreError(t *testing.T) {
	s := newTestServer(&mockStore{err: errors.New("db down")})
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, uploadRequest(t, "a.pdf", []byte(samplePDF), map[string]string{"job_id": uuid.NewString()}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
}

func TestHandleScore(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantScore  float64
	}{
		{"full match", `{"skills":["python","react"],"requirements":{"mandatory_skills":["python"],"preferred_skills":["react"]}}`, http.StatusOK, 100},
		{"missing mandatory", `{"skills":["react"],"requirements":{"mandatory_skills":["python"],"preferred_skills":["react"]}}`, http.StatusOK, 30},
		{"invalid json", `{"skills":`, http.StatusBadRequest, 0},
		{"missing skills", `{"requirements":{}}`, http.StatusBadRequest, 0},
		{"blank requirement", `{"skills":["go"],"requirements":{"mandatory_skills":[""]}}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				var match types.MatchResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &match))
				assert.Equal(t, tt.wantScore, match.Score)
			}
		})
	}
}

func TestHandleQuality(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quality",
		strings.NewReader(`{"text":"Experience\nEducation\nSkills: Go\nContact: a@b.io"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.QualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 100.0, report.Completeness)
	assert.NotEmpty(t, report.Rating)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(`{"text":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListCandidates(t *testing.T) {
	t.Run("no store", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString()+"/candidates", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("bad job id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(&mockStore{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/abc/candidates", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(&mockStore{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString()+"/candidates", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"candidates":[]`)
	})
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/score", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRateLimit(t *testing.T) {
	cfg := ratelimit.NewConfig(true, 2)
	s := New(Config{RateLimit: cfg}, extraction.New(), nil, nil)
	defer s.rateLimiter.Stop()

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(`{"text":"hello"}`)))
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeBody(t, rec)["error"])
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	health := httptest.NewRecorder()
	s.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"go", "docker"}, splitList(" go, ,docker ,"))
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s := New(Config{Port: 0}, extraction.New(), nil, nil)
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
