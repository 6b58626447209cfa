package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/pipeline"
)

type recordedResponse struct {
	method, route string
	status        int
}

type recordingServerHooks struct {
	mu        sync.Mutex
	responses []recordedResponse
}

func (h *recordingServerHooks) OnRequest(context.Context, string, string) {}

func (h *recordingServerHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, recordedResponse{method, route, status})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(newRouter(pipeline.NewRunner(nil, nil, logger), logger))
	t.Cleanup(srv.Close)
	return srv
}

func postTrace(t *testing.T, srv *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/layout"+query, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/layout: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeLayout(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t)
	resp := postTrace(t, srv, "?width=600&strategy=relocate", testTrace)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Trace-Hash") == "" || resp.Header.Get("X-Levels") != "3" {
		t.Errorf("headers = %v", resp.Header)
	}

	var got struct {
		Width int `json:"width"`
		Items []struct {
			ID    string `json:"id"`
			Level int    `json:"level"`
		} `json:"items"`
		Connectors []struct {
			ParentID string `json:"parent_id"`
			ChildID  string `json:"child_id"`
		} `json:"connectors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Width != 600 || len(got.Items) != 3 {
		t.Errorf("width = %d, items = %d; want 600 and 3", got.Width, len(got.Items))
	}
	if len(got.Connectors) != 1 || got.Connectors[0].ParentID != "root" || got.Connectors[0].ChildID != "fetch" {
		t.Errorf("connectors = %+v, want root -> fetch", got.Connectors)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.responses) != 1 {
		t.Fatalf("server hooks saw %d responses, want 1", len(hooks.responses))
	}
	if r := hooks.responses[0]; r.method != http.MethodPost || r.route != "/v1/layout" || r.status != http.StatusOK {
		t.Errorf("recorded response = %+v", r)
	}
}

func TestServeLayoutFormats(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		marker      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz", "digraph"},
		{"layout", "application/json", `"nodes"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := postTrace(t, srv, "?format="+tt.format, testTrace)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !bytes.Contains(body, []byte(tt.marker)) {
				t.Errorf("body does not contain %q", tt.marker)
			}
		})
	}
}

func TestServeLayoutErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"malformed body", "", `{"operations": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"negative duration", "", `{"operations": [{"start": 0, "duration": -1}]}`, http.StatusBadRequest, "INVALID_OPERATION"},
		{"bad width", "?width=wide", testTrace, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown strategy", "?strategy=random", testTrace, http.StatusBadRequest, "INVALID_STRATEGY"},
		{"unknown format", "?format=gif", testTrace, http.StatusBadRequest, "INVALID_FORMAT"},
		{"non-finite window", "?from=NaN", testTrace, http.StatusBadRequest, "INVALID_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postTrace(t, srv, tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var got errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if got.Code != tt.code || got.Error == "" {
				t.Errorf("error body = %+v, want code %s", got, tt.code)
			}
		})
	}
}

func TestServeHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("/healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var v map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v["version"] == "" {
		t.Errorf("/version = %v", v)
	}
}

func TestOptionsFromQuery(t *testing.T) {
	q := map[string][]string{
		"width":        {"800"},
		"from":         {"12.5"},
		"row_gap":      {"0"},
		"visible_only": {""},
		"theme":        {"dark"},
	}
	opts, err := optionsFromQuery(q)
	if err != nil {
		t.Fatalf("optionsFromQuery: %v", err)
	}
	if opts.Width != 800 || opts.Theme != "dark" || !opts.VisibleOnly {
		t.Errorf("opts = %+v", opts)
	}
	if opts.From == nil || *opts.From != 12.5 || opts.To != nil {
		t.Errorf("window = %v..%v", opts.From, opts.To)
	}
	if opts.RowGap == nil || *opts.RowGap != 0 {
		t.Errorf("RowGap = %v, want explicit 0", opts.RowGap)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != pipeline.FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
}
