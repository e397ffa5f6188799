package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Gender news</title>
<item>
  <title>Women in  fisheries value chains</title>
  <link>https://example.org/fish</link>
  <description><![CDATA[<p>Women process <b>most</b> of the catch.</p>]]></description>
  <pubDate>Wed, 10 Jan 2024 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Undated item</title>
  <link>https://example.org/undated</link>
</item>
</channel></rss>`

func TestParseFeed(t *testing.T) {
	recs, err := NewImporter("news", time.Second, "").ParseFeed(sampleFeed)
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	r := recs[0]
	if r.Section != "news" || r.Title != "Women in fisheries value chains" || r.URL != "https://example.org/fish" {
		t.Errorf("record = %+v", r)
	}
	if r.Summary != "Women process most of the catch." {
		t.Errorf("Summary = %q", r.Summary)
	}
	if r.DateISO != "2024-01-10" || r.Year != 2024 || r.Month != 1 || r.Date != "10 January 2024" {
		t.Errorf("dates = %q %q %d %d", r.Date, r.DateISO, r.Year, r.Month)
	}
	if r.Category != "Gender in fisheries and aquaculture" {
		t.Errorf("Category = %q", r.Category)
	}
	if recs[1].DateISO != "" || recs[1].Year != 0 {
		t.Errorf("undated record = %+v", recs[1])
	}
}

func TestFetchAllFeeds_SkipsBroken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	im := NewImporter("insights", time.Second, "test-agent")
	recs := im.FetchAllFeeds(context.Background(), []string{srv.URL + "/broken", srv.URL + "/ok"})
	if len(recs) != 2 || recs[0].Section != "insights" {
		t.Errorf("records = %+v", recs)
	}
}

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte("feeds:\n  - https://a.example/rss\n  - https://b.example/rss\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	feeds, err := LoadFeeds(path)
	if err != nil || len(feeds) != 2 || feeds[1] != "https://b.example/rss" {
		t.Errorf("LoadFeeds = %v, %v", feeds, err)
	}
}

func TestStripMarkup(t *testing.T) {
	if got := StripMarkup("<div>One <i>two</i>\n\nthree</div>"); got != "One two three" {
		t.Errorf("StripMarkup = %q", got)
	}
	if got := StripMarkup("   "); got != "" {
		t.Errorf("blank = %q", got)
	}
}
