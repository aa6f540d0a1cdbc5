package httpclient

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/resilience"
)

func testClient(t *testing.T, url string, attempts int) *Client {
	t.Helper()
	c, err := New("sidecar", Config{
		BaseURL: url,
		Timeout: 2 * time.Second,
		Retry: resilience.RetryConfig{
			MaxAttempts:    attempts,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New("x", Config{}); err == nil {
		t.Error("expected error for missing base_url")
	}
}

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/punctuate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if r.Header.Get("X-Token") != "abc" {
			t.Error("default header missing")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"words":["a","b"]}` {
			t.Errorf("body = %s", body)
		}
		_, _ = w.Write([]byte(`{"labels":["0","."]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL+"/", 1)
	c.config.Headers = map[string]string{"X-Token": "abc"}

	var out struct {
		Labels []string `json:"labels"`
	}
	err := c.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/punctuate",
		Body:   map[string][]string{"words": {"a", "b"}},
	}, &out)
	if err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if len(out.Labels) != 2 || out.Labels[1] != "." {
		t.Errorf("labels = %v", out.Labels)
	}
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := testClient(t, srv.URL, 3).Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(resp.Body) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q, calls = %d", resp.Body, calls.Load())
	}
}

func TestDo_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 3).Do(context.Background(), Request{Method: http.MethodPost, Path: "/x"})
	if !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Fatalf("err = %v", err)
	}
	if errors.IsRetryable(err) {
		t.Error("400 should not be retryable")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status    int
		code      errors.ErrorCode
		retryable bool
	}{
		{404, errors.ErrCodeNotFound, false},
		{408, errors.ErrCodeTimeout, true},
		{422, errors.ErrCodeExternalService, false},
		{429, errors.ErrCodeExternalService, true},
		{500, errors.ErrCodeExternalService, true},
		{504, errors.ErrCodeTimeout, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := classifyStatus("whisper", tt.status, []byte("x"))
			if err.Code != tt.code || err.Retryable != tt.retryable {
				t.Errorf("got %s retryable=%v, want %s retryable=%v", err.Code, err.Retryable, tt.code, tt.retryable)
			}
		})
	}
	if classifyStatus("whisper", 204, nil) != nil {
		t.Error("2xx should not produce an error")
	}
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	if !testClient(t, srv.URL, 1).Healthy(context.Background()) {
		t.Error("expected healthy")
	}
	srv.Close()
	if testClient(t, srv.URL, 1).Healthy(context.Background()) {
		t.Error("closed server reported healthy")
	}
}

func TestMultipartUploadFromPath(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "meeting.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		got := map[string]string{}
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("NextPart: %v", err)
				return
			}
			data, _ := io.ReadAll(part)
			key := part.FormName()
			if part.FileName() != "" {
				key += ":" + part.FileName()
			}
			got[key] = string(data)
		}
		if got["language"] != "en" || got["audio:meeting.wav"] != "RIFF" {
			t.Errorf("parts = %v", got)
		}
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 1).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &MultipartBody{
			Fields: map[string]string{"language": "en"},
			Files:  []FileField{{FieldName: "audio", Path: audio}},
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestMultipartMissingFile(t *testing.T) {
	_, err := testClient(t, "http://127.0.0.1:1", 1).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/x",
		Body:   &MultipartBody{Files: []FileField{{FieldName: "audio", Path: "/does/not/exist.wav"}}},
	})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
