package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Story</title></head>
<body>
<nav><p>Home News Sport</p></nav>
<article>
  <h1>Budget passes</h1>
  <p>The national budget passed its final reading on Sunday after weeks of negotiation.</p>
  <p>Opposition parties criticised the spending plan but declined to force another vote.</p>
  <p>Economists said the deficit target remains within reach for the fiscal year.</p>
  <p>Subscribe to our newsletter for daily updates.</p>
</article>
<footer><p>All rights reserved.</p></footer>
</body></html>`

func TestExtractReturnsArticleParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := New(5 * time.Second)
	got, err := e.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !strings.Contains(got, "final reading on Sunday") {
		t.Errorf("missing first paragraph: %q", got)
	}
	if !strings.Contains(got, "deficit target") {
		t.Errorf("missing third paragraph: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "newsletter") {
		t.Errorf("boilerplate survived extraction: %q", got)
	}
	if strings.Contains(got, "All rights reserved") {
		t.Errorf("footer text survived extraction: %q", got)
	}
}

func TestExtractFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := New(time.Second)
	if _, err := e.Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 page")
	}
}

func TestExtractFailsOnEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nothing here</div></body></html>`))
	}))
	defer srv.Close()

	e := New(time.Second)
	if _, err := e.Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error when no paragraphs found")
	}
}

func TestExtractFailsOnUnreachableHost(t *testing.T) {
	e := New(500 * time.Millisecond)
	if _, err := e.Extract(context.Background(), "http://127.0.0.1:1/nope"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
