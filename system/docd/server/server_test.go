package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/system/docd/api"
	"github.com/signadot/space/system/docd/storage"

	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(Spec{
		Store: storage.NewMemory(),
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", api.ContentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(d)
}

func expectStatus(t *testing.T, resp *http.Response, body string, code int) {
	t.Helper()
	if resp.StatusCode != code {
		t.Fatalf("expected status %d, got %d: %s", code, resp.StatusCode, body)
	}
}

func expectDoc(t *testing.T, got, want string) {
	t.Helper()
	if !ir.Equal(parse.ParseString(got), parse.ParseString(want)) {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

const john = "name John\nage 20\ntags\n 0 a\n 1 b\naddress\n city Boston\n"

func TestPutGet(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := do(t, "PUT", ts.URL+"/docs/john", john)
	expectStatus(t, resp, body, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != api.ContentType {
		t.Errorf("expected Content-Type %s, got %s", api.ContentType, ct)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/john", "")
	expectStatus(t, resp, body, http.StatusOK)
	if body != john {
		t.Errorf("got %q want %q", body, john)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/john?path=address+city", "")
	expectStatus(t, resp, body, http.StatusOK)
	if body != "Boston" {
		t.Errorf("got %q", body)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/john?path=nope", "")
	expectStatus(t, resp, body, http.StatusNotFound)
	if e := api.ErrorFromNode(parse.ParseString(body)); e == nil || e.Code != api.ErrCodeInvalidPath {
		t.Errorf("unexpected error body %q", body)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/jane", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestGetFormats(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/john", john)

	resp, body := do(t, "GET", ts.URL+"/docs/john?format=json&guess=true", "")
	expectStatus(t, resp, body, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("got Content-Type %s", ct)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("bad json %q: %v", body, err)
	}
	want := map[string]any{
		"name":    "John",
		"age":     float64(20),
		"tags":    []any{"a", "b"},
		"address": map[string]any{"city": "Boston"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/docs/john", nil)
	req.Header.Set("Accept", "application/yaml")
	yresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	yresp.Body.Close()
	if ct := yresp.Header.Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("got Content-Type %s", ct)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/john?format=nope", "")
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func TestPutJSON(t *testing.T) {
	_, ts := newTestServer(t)
	req, _ := http.NewRequest("PUT", ts.URL+"/docs/j", strings.NewReader(`{"b":"2","a":{"x":"1"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	expectStatus(t, resp, "", http.StatusOK)

	_, body := do(t, "GET", ts.URL+"/docs/j", "")
	if body != "b 2\na\n x 1\n" {
		t.Errorf("got %q", body)
	}
}

func TestGetFilter(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/people", "0\n name Ann\n age 31\n1\n name Bob\n age 17\n")

	resp, body := do(t, "GET", ts.URL+"/docs/people?filter="+urlQuery(`num(get("age")) >= 21`), "")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "0\n name Ann\n age 31\n")

	resp, body = do(t, "GET", ts.URL+"/docs/people?filter="+urlQuery(`age >=`), "")
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func urlQuery(s string) string {
	return strings.NewReplacer(" ", "%20", `"`, "%22", ">", "%3E", "=", "%3D", "(", "%28", ")", "%29").Replace(s)
}

func TestPatch(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/john", "name John\nage 20\n")

	resp, body := do(t, "PATCH", ts.URL+"/docs/john", "patch\n age 22\n city Boston\n")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "name John\nage 22\ncity Boston\n")

	resp, body = do(t, "PATCH", ts.URL+"/docs/john", "path address\npatch\n zip 02134\n")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "name John\nage 22\ncity Boston\naddress\n zip 02134\n")

	resp, body = do(t, "PATCH", ts.URL+"/docs/john", "match\n name Jane\npatch\n age 1\n")
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = do(t, "PATCH", ts.URL+"/docs/john", "match\n name John\npatch\n age \n")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "name John\ncity Boston\naddress\n zip 02134\n")

	resp, body = do(t, "PATCH", ts.URL+"/docs/john", "path x\n")
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = do(t, "PATCH", ts.URL+"/docs/fresh", "patch\n a 1\n")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "a 1\n")
}

func TestDeleteAndList(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/b", "x 1\n")
	do(t, "PUT", ts.URL+"/docs/a", "x 1\n")

	resp, body := do(t, "GET", ts.URL+"/docs", "")
	expectStatus(t, resp, body, http.StatusOK)
	if diff := cmp.Diff([]string{"a", "b"}, api.Keys(parse.ParseString(body))); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	resp, body = do(t, "DELETE", ts.URL+"/docs/a", "")
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = do(t, "GET", ts.URL+"/docs/a", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestOrder(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/a", "a\n x 1\n y 2\nb 1\n")
	do(t, "PUT", ts.URL+"/docs/b", "b 9\na\n y 0\n x 0\n")

	resp, body := do(t, "GET", ts.URL+"/docs/a/diff/b?order=true", "")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "b\na\n y\n x\n")

	resp, body = do(t, "POST", ts.URL+"/docs/a/order", body)
	expectStatus(t, resp, body, http.StatusOK)
	if want := "b 1\na\n y 2\n x 1\n"; body != want {
		t.Errorf("got %q want %q", body, want)
	}

	resp, body = do(t, "POST", ts.URL+"/docs/a/order?path=a", "x\ny\n")
	expectStatus(t, resp, body, http.StatusOK)
	if want := "b 1\na\n x 1\n y 2\n"; body != want {
		t.Errorf("got %q want %q", body, want)
	}

	resp, body = do(t, "POST", ts.URL+"/docs/a/order?path=b", "x\n")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestDiff(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/a", "name John\nage 20\nstate MA\n")
	do(t, "PUT", ts.URL+"/docs/b", "name John\nage 22\nhometown Brockton\n")

	resp, body := do(t, "GET", ts.URL+"/docs/a/diff/b", "")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "age 22\nstate \nhometown Brockton\n")

	resp, body = do(t, "GET", ts.URL+"/docs/a/diff/b?cud=true", "")
	expectStatus(t, resp, body, http.StatusOK)
	expectDoc(t, body, "created\n hometown Brockton\nupdated\n age 22\ndeleted\n state\n")

	resp, body = do(t, "GET", ts.URL+"/docs/a/diff/b?text=true", "")
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(body, "-age 20\n") || !strings.Contains(body, "+age 22\n") {
		t.Errorf("got %q", body)
	}

	resp, body = do(t, "GET", ts.URL+"/docs/a/diff/c", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestWatch(t *testing.T) {
	s, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", ts.URL+"/docs/w/watch?count=2", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, "", http.StatusOK)
	if n := s.Hub.WatcherCount(); n != 1 {
		t.Fatalf("expected 1 watcher, got %d", n)
	}

	do(t, "PUT", ts.URL+"/docs/w", "a 1\n")
	do(t, "PATCH", ts.URL+"/docs/w", "patch\n b 2\n")

	d, err := io.ReadAll(bufio.NewReader(resp.Body))
	if err != nil {
		t.Fatal(err)
	}
	changes := parse.ParseString(string(d)).GetArray("change")
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got\n%s", d)
	}
	for i, want := range []string{
		"key w\nkind put\ndiff\n a 1\n",
		"key w\nkind patch\ndiff\n b 2\n",
	} {
		if got := encode.MustString(changes[i]); got != want {
			t.Errorf("change %d: got %q want %q", i, got, want)
		}
	}
}

func TestWatchHubFailsSlowWatcher(t *testing.T) {
	h := NewWatchHubWithTimeout(10 * time.Millisecond)
	w := NewWatcher("k", 1)
	h.Watch(w)
	h.Broadcast(&Change{Key: "k", Kind: ChangePut})
	h.Broadcast(&Change{Key: "k", Kind: ChangePut})
	select {
	case <-w.Failed:
	default:
		t.Fatal("expected watcher to fail")
	}
	if n := h.WatcherCount(); n != 0 {
		t.Errorf("expected no watchers, got %d", n)
	}
	h.Broadcast(&Change{Key: "other"})
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "PUT", ts.URL+"/docs/m", "a 1\n")
	do(t, "GET", ts.URL+"/docs/m", "")

	resp, body := do(t, "GET", ts.URL+"/metrics", "")
	expectStatus(t, resp, body, http.StatusOK)
	for _, want := range []string{
		`space_docd_changes_total{kind="put"} 1`,
		`space_docd_requests_total{code="200",method="GET"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestInvalidKey(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := do(t, "GET", ts.URL+"/docs/a%20b", "")
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docd.space")
	cfg := "addr :9000\nredis\n addr localhost:6379\n db 2\n ttl 1h30m\n"
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Addr: ":9000",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			DB:     2,
			Prefix: storage.DefaultRedisPrefix,
			TTL:    90 * time.Minute,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	got.Dir = "x"
	if _, err := got.OpenStore(); err == nil {
		t.Error("expected error for dir and redis")
	}
	got.Redis.Addr = ""
	store, err := got.OpenStore()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*storage.Dir); !ok {
		t.Errorf("expected a dir store, got %T", store)
	}
}
