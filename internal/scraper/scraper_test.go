package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articlePage = `<html><head><title>Page title | FAO</title></head>
<body>
<header><h1>Rural women lead seed banks</h1><nav><ul><li>Home</li><li>About</li></ul></nav></header>
<div class="content"><p>Short teaser.</p></div>
<article>
  <p>Women   farmers in Malawi run community seed banks.</p>
  <div class="share"><p>Share this on social media please now</p></div>
  <ul><li>Seed storage</li><li>Crop   diversity</li></ul>
  <p>The banks keep local varieties alive.</p>
  <script>var x = "<p>not text</p>";</script>
</article>
<footer><p>Copyright notice with a lot of words in it that would otherwise win</p></footer>
</body></html>`

func TestParseArticle(t *testing.T) {
	a := ParseArticle(articlePage)
	if a.Title != "Rural women lead seed banks" {
		t.Errorf("title = %q", a.Title)
	}
	wantBody := "Women farmers in Malawi run community seed banks.\nSeed storage\nCrop diversity\nThe banks keep local varieties alive."
	if a.Body != wantBody {
		t.Errorf("body = %q\nwant   %q", a.Body, wantBody)
	}
	if strings.Contains(a.Body, "Share this") || strings.Contains(a.Body, "Copyright") {
		t.Errorf("boilerplate leaked into body: %q", a.Body)
	}
	if strings.Contains(a.Text(), "\n") {
		t.Errorf("Text() kept newlines: %q", a.Text())
	}
}

func TestExtractBody_LongestCandidateWins(t *testing.T) {
	html := `<body>
<article><p>tiny</p></article>
<div class="entry-content"><p>This entry content block is clearly much longer than the article.</p></div>
</body>`
	got := ExtractBody(html)
	want := "This entry content block is clearly much longer than the article."
	if got != want {
		t.Errorf("ExtractBody = %q, want %q", got, want)
	}
}

func TestExtractBody_EqualLengthKeepsEarlierCandidate(t *testing.T) {
	html := `<body><article><p>same size</p></article><main><p>also size</p></main></body>`
	if got := ExtractBody(html); got != "same size" {
		t.Errorf("ExtractBody = %q, want the article text", got)
	}
}

func TestExtractBody_FallsBackToAllParagraphs(t *testing.T) {
	html := `<body><section><p>First loose paragraph.</p></section><p>Second one.</p></body>`
	want := "First loose paragraph.\nSecond one."
	if got := ExtractBody(html); got != want {
		t.Errorf("ExtractBody = %q, want %q", got, want)
	}
}

func TestExtractBody_SeparatesInlineText(t *testing.T) {
	html := `<article><p>Women farmers<br>gain land rights.</p><li><strong>Goal:</strong>equity</li></article>`
	if got, want := ExtractBody(html), "Women farmers gain land rights.\nGoal: equity"; got != want {
		t.Errorf("ExtractBody = %q, want %q", got, want)
	}
	if got, want := ExtractMainText(html), "Women farmers gain land rights. Goal: equity"; got != want {
		t.Errorf("ExtractMainText = %q, want %q", got, want)
	}
}

func TestExtractMainText_DegradesToEmpty(t *testing.T) {
	for _, html := range []string{"", "   ", "<<<>>>", "<html><body><div>no paragraphs</div></body></html>"} {
		if got := ExtractMainText(html); got != "" {
			t.Errorf("ExtractMainText(%q) = %q, want empty", html, got)
		}
	}
}

func TestExtractTitle_Fallbacks(t *testing.T) {
	tests := []struct {
		html, want string
	}{
		{`<html><head><title> Only   title </title></head><body></body></html>`, "Only title"},
		{`<html><head><meta property="og:title" content="OG title"><title>T</title></head></html>`, "OG title"},
		{`<html><body><p>nothing</p></body></html>`, ""},
	}
	for _, tt := range tests {
		if got := ExtractTitle(tt.html); got != tt.want {
			t.Errorf("ExtractTitle = %q, want %q", got, tt.want)
		}
	}
}

const listingPage = `<html><body>
<div class="d-list-content">
  <h5 class="title-link"><a href="/gender/news/detail/women-fisheries/en">Women in
     fisheries</a></h5>
  <h6 class="date">10/01/2024</h6>
  <div><p>Fish processors   organise.</p></div>
</div>
<div class="d-list-content">
  <h5 class="title-link"><a href="https://example.org/land">Land rights</a></h5>
  <h6 class="date">20 January 2024</h6>
  <div>Tenure reform.</div>
</div>
<div class="d-list-content"></div>
</body></html>`

func TestParseListing_Generic(t *testing.T) {
	news, _ := LookupSection("news")
	rows := ParseListing(news, "https://www.fao.org", listingPage)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	first := rows[0]
	if first.Title != "Women in fisheries" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://www.fao.org/gender/news/detail/women-fisheries/en" {
		t.Errorf("relative href not resolved: %q", first.URL)
	}
	if first.Date != "10/01/2024" || first.Summary != "Fish processors organise." {
		t.Errorf("row = %+v", first)
	}
	if rows[1].URL != "https://example.org/land" {
		t.Errorf("absolute href changed: %q", rows[1].URL)
	}
}

func TestParseListing_ELearning(t *testing.T) {
	html := `<div class="card card-elearning"><div class="card-body">
<h5 class="card-title"><a class="title-link" href="/elearning/course-1">Gender and food security</a></h5>
<h6 class="date">2023</h6><p class="card-text">Self-paced   course.</p></div></div>`
	sec, _ := LookupSection("e-learning")
	rows := ParseListing(sec, "https://www.fao.org/", html)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := Row{Title: "Gender and food security", Date: "2023", URL: "https://www.fao.org/elearning/course-1", Summary: "Self-paced course."}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
}

func TestSectionPageURL(t *testing.T) {
	news, _ := LookupSection("news")
	if got := news.PageURL(DefaultBaseURL, 1); got != "https://www.fao.org/gender/news/en" {
		t.Errorf("page 1 = %q", got)
	}
	pubs, _ := LookupSection("publications")
	if got := pubs.PageURL(DefaultBaseURL+"/", 61); got != "https://www.fao.org/gender/resources/publications/61/en" {
		t.Errorf("page 61 = %q", got)
	}
	if _, ok := LookupSection("blog"); ok {
		t.Error("unknown section found")
	}
}

func TestFetcher_FetchArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "test-agent")
	a, err := f.FetchArticle(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}
	if a.Title != "Rural women lead seed banks" {
		t.Errorf("title = %q", a.Title)
	}

	_, err = f.FetchArticle(context.Background(), srv.URL+"/missing")
	if !errors.Is(err, ErrStatus) {
		t.Errorf("err = %v, want ErrStatus", err)
	}

	resp, err := f.Get(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
