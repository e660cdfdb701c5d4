package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/recapkit/recap"
	memorymailer "github.com/recapkit/recap/mailer/memory"
	memorystore "github.com/recapkit/recap/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result string
	err    error
	calls  int
}

func (g *stubGenerator) Generate(ctx context.Context, system string, prompt string) (string, error) {
	g.calls++
	return g.result, g.err
}

func newTestServer(t *testing.T, gen *stubGenerator) (*httptest.Server, *memorymailer.Mailer) {
	t.Helper()

	mail := memorymailer.NewMailer()
	app := recap.New(gen, memorystore.NewStore(), mail)

	srv := httptest.NewServer(NewServer(app).Handler())
	t.Cleanup(srv.Close)

	return srv, mail
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)

	return resp
}

func putJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestGenerateEndpoint(t *testing.T) {
	gen := &stubGenerator{result: "A tidy summary."}
	srv, _ := newTestServer(t, gen)

	resp := postJSON(t, srv.URL+"/api/generate-summary", map[string]string{
		"transcript":   "Alice: hello",
		"customPrompt": "summarize",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, "A tidy summary.", out["summary"])
}

func TestGenerateEndpointValidation(t *testing.T) {
	gen := &stubGenerator{result: "unused"}
	srv, _ := newTestServer(t, gen)

	resp := postJSON(t, srv.URL+"/api/generate-summary", map[string]string{
		"transcript":   "",
		"customPrompt": "summarize",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 0, gen.calls)
}

func TestGenerateEndpointBackendError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	srv, _ := newTestServer(t, gen)

	resp := postJSON(t, srv.URL+"/api/generate-summary", map[string]string{
		"transcript":   "Alice: hello",
		"customPrompt": "summarize",
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decode(t, resp)
	assert.NotContains(t, out["error"], "boom")
}

func TestCreateUpdateRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp := postJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"transcript":   "raw",
		"customPrompt": "summarize",
		"summary":      "Discussed Q3 roadmap",
		"meetingTitle": "Planning",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	created := decode(t, resp)
	assert.Equal(t, true, created["success"])
	id, ok := created["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	resp = putJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"id":      id,
		"summary": "Discussed Q3 roadmap. Action: ship by Friday.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decode(t, resp)
	fields, ok := updated["updatedFields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Discussed Q3 roadmap. Action: ship by Friday.", fields["summary"])
	assert.Equal(t, "Planning", fields["meetingTitle"], "omitted title must be preserved")
	assert.Equal(t, "raw", fields["transcript"])

	resp, err := http.Get(srv.URL + "/api/summaries/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rec := decode(t, resp)
	assert.Equal(t, "Discussed Q3 roadmap. Action: ship by Friday.", rec["summary"])
}

func TestCreateRejectsBlankSummary(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp := postJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"summary": "   ",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateUnknownAndMalformedIds(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp := putJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"id":      uuid.NewString(),
		"summary": "X",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = putJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"id":      "nonexistent-id",
		"summary": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = putJSON(t, srv.URL+"/api/save-summary", map[string]string{
		"summary": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSendEndpoint(t *testing.T) {
	srv, mail := newTestServer(t, &stubGenerator{})

	resp := postJSON(t, srv.URL+"/api/send-email", map[string]any{
		"recipients":   []string{"a@b.com"},
		"summary":      "Discussed Q3 roadmap",
		"meetingTitle": "Planning",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	sent := mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Meeting Summary: Planning", sent[0].Subject)
}

func TestSendEndpointNamesInvalidAddresses(t *testing.T) {
	srv, mail := newTestServer(t, &stubGenerator{})

	resp := postJSON(t, srv.URL+"/api/send-email", map[string]any{
		"recipients": []string{"a@b.com", "not-an-email"},
		"summary":    "Discussed Q3 roadmap",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode(t, resp)
	assert.Contains(t, out["error"], "not-an-email")
	assert.Empty(t, mail.Sent(), "all-or-nothing: nothing sent")
}

func TestUploadTranscriptEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "standup.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Bob: shipping Friday"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload-transcript", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, "Bob: shipping Friday", out["transcript"])
	assert.Equal(t, "standup", out["meetingTitle"])
	assert.Equal(t, float64(len("Bob: shipping Friday")), out["characters"])
}

func TestTemplatesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/api/templates")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	templates, ok := out["templates"].([]any)
	require.True(t, ok)
	assert.Len(t, templates, 4)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
