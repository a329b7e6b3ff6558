package news

import "testing"

func TestCanonicalURLStripsQueryAndFragment(t *testing.T) {
	got := CanonicalURL("https://example.com/a/b?utm_source=x&ref=rss#section")
	want := "https://example.com/a/b"
	if got != want {
		t.Fatalf("CanonicalURL = %q, want %q", got, want)
	}
}

func TestCanonicalURLKeepsUnparsableInput(t *testing.T) {
	in := "://not a url"
	if got := CanonicalURL(in); got != in {
		t.Fatalf("CanonicalURL(%q) = %q, want input unchanged", in, got)
	}
	// Relative links have no scheme/host to canonicalize on.
	in = "/politics/story.html"
	if got := CanonicalURL(in); got != in {
		t.Fatalf("CanonicalURL(%q) = %q, want input unchanged", in, got)
	}
}

func TestCanonicalURLIdempotent(t *testing.T) {
	urls := []string{
		"https://example.com/a?x=1#frag",
		"http://news.example.org/path/",
		"not-a-url",
		"",
	}
	for _, u := range urls {
		once := CanonicalURL(u)
		twice := CanonicalURL(once)
		if once != twice {
			t.Errorf("CanonicalURL not idempotent for %q: %q != %q", u, once, twice)
		}
	}
}

func TestCanonicalTitleStripsPublisherSuffix(t *testing.T) {
	got := CanonicalTitle("New Chip Announced - The Verge")
	if got != "new chip announced" {
		t.Fatalf("CanonicalTitle = %q", got)
	}
	// Suffix in the middle must not be touched.
	got = CanonicalTitle("Why | TechCrunch matters today")
	if got != "why | techcrunch matters today" {
		t.Fatalf("CanonicalTitle = %q", got)
	}
}

func TestCanonicalTitleIdempotent(t *testing.T) {
	titles := []string{
		"  Breaking News | Wired  ",
		"Plain headline",
		"",
	}
	for _, title := range titles {
		once := CanonicalTitle(title)
		twice := CanonicalTitle(once)
		if once != twice {
			t.Errorf("CanonicalTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
