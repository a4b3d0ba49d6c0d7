package veo_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

const testKey = "test-key-123"

// capture records the last request seen by a fake server.
type capture struct {
	mu     sync.Mutex
	method string
	path   string
	query  string
	ctype  string
	body   []byte
}

func (c *capture) get() capture {
	c.mu.Lock()
	defer c.mu.Unlock()
	return capture{method: c.method, path: c.path, query: c.query, ctype: c.ctype, body: c.body}
}

// newFakeServer returns a server that records the request and answers with
// status and body.
func newFakeServer(t *testing.T, status int, body string) (*httptest.Server, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.ctype = r.Header.Get("Content-Type")
		c.body = data
		c.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func predictionBody(payload []byte) string {
	return `{"predictions":[{"bytesB64Encoded":"` + base64.StdEncoding.EncodeToString(payload) + `"}]}`
}

func newTestClient(srv *httptest.Server, logger *slog.Logger) *veo.Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return veo.NewClient(veo.Config{
		APIKey:    testKey,
		ProjectID: "proj",
		Location:  "us-central1",
		BaseURL:   srv.URL + "/v1/projects",
	}, veo.WithLogger(logger))
}

func TestGenerateVideo_Success(t *testing.T) {
	want := []byte("\x00\x00\x00\x18ftypmp42 fake video")
	srv, c := newFakeServer(t, http.StatusOK, predictionBody(want))
	client := newTestClient(srv, nil)

	video, err := client.GenerateVideo(context.Background(), &veo.Request{Prompt: "test"})
	if err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}
	if !bytes.Equal(video.Data, want) {
		t.Errorf("Data = %q, want %q", video.Data, want)
	}
	if video.Model != veo.ModelVeo20 {
		t.Errorf("Model = %q, want %q", video.Model, veo.ModelVeo20)
	}
	if video.MIMEType != "video/mp4" {
		t.Errorf("MIMEType = %q, want video/mp4", video.MIMEType)
	}

	got := c.get()
	if got.method != http.MethodPost {
		t.Errorf("method = %s, want POST", got.method)
	}
	wantPath := "/v1/projects/proj/locations/us-central1/publishers/google/models/veo-2.0-generate-001:predict"
	if got.path != wantPath {
		t.Errorf("path = %q, want %q", got.path, wantPath)
	}
	if got.query != "key="+testKey {
		t.Errorf("query = %q, want key=%s", got.query, testKey)
	}
	if got.ctype != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got.ctype)
	}
}

func TestGenerate_DefaultBody(t *testing.T) {
	srv, c := newFakeServer(t, http.StatusOK, predictionBody([]byte("x")))
	client := newTestClient(srv, nil)

	if data := client.Generate(context.Background(), &veo.Request{Prompt: "test"}); data == nil {
		t.Fatal("Generate returned nil")
	}

	want := `{"instances":[{"prompt":"test"}],"parameters":{"sampleCount":1,"aspectRatio":"16:9","duration":"5s","outputMimeType":"video/mp4"}}`
	if got := string(c.get().body); got != want {
		t.Errorf("body =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate_CustomParameters(t *testing.T) {
	srv, c := newFakeServer(t, http.StatusOK, predictionBody([]byte("x")))
	client := newTestClient(srv, nil)

	client.Generate(context.Background(), &veo.Request{
		Prompt:      "waves",
		Model:       "veo-3.0",
		AspectRatio: "9:16",
		Duration:    "10s",
	})

	got := c.get()
	want := `{"instances":[{"prompt":"waves"}],"parameters":{"sampleCount":1,"aspectRatio":"9:16","duration":"10s","outputMimeType":"video/mp4"}}`
	if string(got.body) != want {
		t.Errorf("body = %s, want %s", got.body, want)
	}
	if !strings.HasSuffix(got.path, "/models/"+veo.ModelVeo30+":predict") {
		t.Errorf("path = %q, want model %s", got.path, veo.ModelVeo30)
	}
}

func TestGenerate_DataOverride(t *testing.T) {
	srv, c := newFakeServer(t, http.StatusOK, predictionBody([]byte("x")))
	client := newTestClient(srv, nil)

	data := map[string]any{
		"instances":  []any{map[string]any{"prompt": "custom"}},
		"parameters": map[string]any{"sampleCount": float64(2), "personGeneration": "dont_allow"},
	}
	client.Generate(context.Background(), &veo.Request{
		Prompt:      "ignored",
		AspectRatio: "1:1",
		Duration:    "10s",
		Data:        data,
	})

	var sent map[string]any
	if err := json.Unmarshal(c.get().body, &sent); err != nil {
		t.Fatalf("unmarshal sent body: %v", err)
	}
	if !reflect.DeepEqual(sent, data) {
		t.Errorf("sent body = %v, want %v", sent, data)
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   veo.ErrorKind
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"message":"bad prompt"}}`, veo.KindHTTPStatus},
		{"forbidden", http.StatusForbidden, `denied`, veo.KindHTTPStatus},
		{"server error", http.StatusInternalServerError, `oops`, veo.KindHTTPStatus},
		{"missing predictions", http.StatusOK, `{}`, veo.KindResponseShape},
		{"empty predictions", http.StatusOK, `{"predictions":[]}`, veo.KindResponseShape},
		{"null predictions", http.StatusOK, `{"predictions":null}`, veo.KindResponseShape},
		{"missing payload field", http.StatusOK, `{"predictions":[{"mimeType":"video/mp4"}]}`, veo.KindResponseShape},
		{"null payload field", http.StatusOK, `{"predictions":[{"bytesB64Encoded":null}]}`, veo.KindResponseShape},
		{"non-string payload", http.StatusOK, `{"predictions":[{"bytesB64Encoded":42}]}`, veo.KindResponseShape},
		{"malformed json", http.StatusOK, `{"predictions":[`, veo.KindResponseShape},
		{"invalid base64", http.StatusOK, `{"predictions":[{"bytesB64Encoded":"!!not base64!!"}]}`, veo.KindDecode},
		{"bad padding", http.StatusOK, `{"predictions":[{"bytesB64Encoded":"abc"}]}`, veo.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newFakeServer(t, tt.status, tt.body)
			client := newTestClient(srv, nil)
			req := &veo.Request{Prompt: "test"}

			if data := client.Generate(context.Background(), req); data != nil {
				t.Fatalf("Generate = %q, want nil", data)
			}

			_, err := client.GenerateVideo(context.Background(), req)
			e, ok := veo.AsError(err)
			if !ok {
				t.Fatalf("error %v is not *veo.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
			}
			preds := map[veo.ErrorKind]bool{
				veo.KindHTTPStatus:    e.IsHTTPStatus(),
				veo.KindResponseShape: e.IsResponseShape(),
				veo.KindDecode:        e.IsDecode(),
			}
			for kind, got := range preds {
				if got != (kind == tt.kind) {
					t.Errorf("Is%s = %v", kind, got)
				}
			}
			if got, want := e.IsServerError(), tt.status >= 500; got != want {
				t.Errorf("IsServerError = %v, want %v", got, want)
			}
			if e.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
			if string(e.Body) != tt.body {
				t.Errorf("Body = %q, want %q", e.Body, tt.body)
			}
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, "")
	client := newTestClient(srv, nil)
	srv.Close()

	_, err := client.GenerateVideo(context.Background(), &veo.Request{Prompt: "test"})
	e, ok := veo.AsError(err)
	if !ok {
		t.Fatalf("error %v is not *veo.Error", err)
	}
	if !e.IsTransport() {
		t.Errorf("Kind = %s, want transport", e.Kind)
	}
	if strings.Contains(err.Error(), testKey) {
		t.Errorf("error leaks API key: %v", err)
	}
}

func TestGenerate_ContextCanceled(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, predictionBody([]byte("x")))
	client := newTestClient(srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateVideo(ctx, &veo.Request{Prompt: "test"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if e, _ := veo.AsError(err); e == nil || e.Kind != veo.KindTransport {
		t.Errorf("err = %v, want transport kind", err)
	}
}

type panicTransport struct{}

func (panicTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("boom")
}

func TestGenerate_RecoversPanic(t *testing.T) {
	client := veo.NewClient(veo.Config{APIKey: "k", ProjectID: "p", Location: "l"},
		veo.WithHTTPClient(&http.Client{Transport: panicTransport{}}),
		veo.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if data := client.Generate(context.Background(), &veo.Request{Prompt: "test"}); data != nil {
		t.Fatalf("Generate = %q, want nil", data)
	}

	_, err := client.GenerateVideo(context.Background(), &veo.Request{Prompt: "test"})
	if e, ok := veo.AsError(err); !ok || e.Kind != veo.KindUnexpected {
		t.Fatalf("err = %v, want unexpected kind", err)
	}
}

func TestGenerate_NilRequest(t *testing.T) {
	client := veo.NewClient(veo.Config{}, veo.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if data := client.Generate(context.Background(), nil); data != nil {
		t.Fatalf("Generate(nil) = %q, want nil", data)
	}
}

func TestGenerate_LogsResponseOnHTTPError(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusServiceUnavailable, `quota exceeded`)
	var buf bytes.Buffer
	client := newTestClient(srv, slog.New(slog.NewTextHandler(&buf, nil)))

	client.Generate(context.Background(), &veo.Request{Prompt: "test"})

	out := buf.String()
	for _, want := range []string{"level=ERROR", "status=503", "quota exceeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, testKey) {
		t.Errorf("log output leaks API key:\n%s", out)
	}
}

func TestGenerate_LogsResponseOnParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid base64", `{"predictions":[{"bytesB64Encoded":"!!bad!!"}]}`},
		{"malformed json", `{"predictions":[!!bad!!`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newFakeServer(t, http.StatusOK, tt.body)
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			client := newTestClient(srv, logger)

			if data := client.Generate(context.Background(), &veo.Request{Prompt: "test"}); data != nil {
				t.Fatalf("Generate = %q, want nil", data)
			}

			var errLine string
			for _, line := range strings.Split(buf.String(), "\n") {
				if strings.Contains(line, "level=ERROR") {
					errLine = line
				}
			}
			if !strings.Contains(errLine, "!!bad!!") {
				t.Errorf("error line missing response body:\n%s", buf.String())
			}
		})
	}
}
