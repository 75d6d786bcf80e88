package serve

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
)

func TestServer_ServesRenderedDocument(t *testing.T) {
	s, err := Start("127.0.0.1:0", func() string {
		return "<!DOCTYPE html><html><body>preview</body></html>"
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	resp, err := http.Get(s.URL())
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "preview") {
		t.Errorf("body = %q", body)
	}
}

func TestServer_RendersFreshOnEachRequest(t *testing.T) {
	var n atomic.Int64
	s, err := Start("127.0.0.1:0", func() string {
		return "generation " + string(rune('0'+n.Add(1)))
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	first := fetch(t, s.URL())
	second := fetch(t, s.URL())
	if first == second {
		t.Errorf("responses identical across requests: %q", first)
	}
}

func TestServer_NotFoundOffRoot(t *testing.T) {
	s, err := Start("127.0.0.1:0", func() string { return "x" })
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	resp, err := http.Get(s.URL() + "/other")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_URLIsLoopback(t *testing.T) {
	s, err := Start("127.0.0.1:0", func() string { return "x" })
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if !strings.HasPrefix(s.URL(), "http://127.0.0.1:") {
		t.Errorf("URL = %q", s.URL())
	}
}

func fetch(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}
