package collector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/ratelimit"
)

const listingHTML = `
<html><body>
<nav><ol class="menu"><li>Home</li></ol></nav>
<ol class="list-recent-jobs">
  <li>
    <h2 class="listing-company">
      <span class="listing-company-name"><a href="/jobs/1/">Senior  Python
        Engineer</a></span>
      <span class="listing-company">Acme Corp</span>
    </h2>
    <span class="listing-job-type">Back end, Django</span>
    <time datetime="2026-10-01">01 October 2026</time>
  </li>
  <li>
    <h2><a href="/jobs/2/">Data Scientist</a></h2>
    <time>02 October 2026</time>
  </li>
  <li>
    <h2><a href="/jobs/3/">Broken Listing</a></h2>
    <span class="listing-company">Flaky Inc</span>
  </li>
  <li>
    <h2>No Link Role</h2>
    <span class="listing-company">Quiet LLC</span>
  </li>
</ol>
</body></html>`

const detailHTML = `
<html><body>
<header>Python.org header</header>
<article class="text">
  <h1>Senior Python Engineer</h1>

  <p>We build APIs with Django and PostgreSQL.</p>
  <script>var tracking = true;</script>
  <p>   Docker   and k8s in production.  </p>
</article>
</body></html>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type boardServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string][]time.Time
}

func newBoardServer(t *testing.T) *boardServer {
	t.Helper()
	b := &boardServer{hits: make(map[string][]time.Time)}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path] = append(b.hits[r.URL.Path], time.Now())
		b.mu.Unlock()

		switch r.URL.Path {
		case "/jobs/":
			_, _ = w.Write([]byte(listingHTML))
		case "/jobs/1/":
			_, _ = w.Write([]byte(detailHTML))
		case "/jobs/2/":
			_, _ = w.Write([]byte(`<html><body><div class="other">No article here</div></body></html>`))
		case "/jobs/3/":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *boardServer) hitTimes(path string) []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func newTestCollector(srv *httptest.Server, fetcher model.PageFetcher) *Collector {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(srv.Client(), "")
	}
	return NewCollector(fetcher, PythonJobsSelectors(), 0, discardLogger())
}

func TestCollect_ExtractsEntriesAndDescriptions(t *testing.T) {
	srv := newBoardServer(t)
	c := newTestCollector(srv.Server, nil)

	jobs, err := c.Collect(context.Background(), srv.URL+"/jobs/")
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	first := jobs[0]
	assert.Equal(t, "Senior Python Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Back end, Django", first.JobType)
	assert.Equal(t, "01 October 2026", first.PostDate)
	assert.Equal(t, srv.URL+"/jobs/1/", first.Link)
	assert.Equal(t, model.DescriptionOK, first.Status)
	assert.Equal(t, "Senior Python Engineer\nWe build APIs with Django and PostgreSQL.\nDocker and k8s in production.", first.Description)
	assert.NotContains(t, first.Description, "tracking")

	second := jobs[1]
	assert.Equal(t, "Data Scientist", second.Title)
	assert.Empty(t, second.Company)
	assert.Empty(t, second.JobType)
	assert.Equal(t, model.DescriptionNotFound, second.Status)
	assert.Equal(t, model.DescriptionNotFoundMsg, second.DescriptionText())

	third := jobs[2]
	assert.Equal(t, model.DescriptionUnavailable, third.Status)
	assert.Equal(t, model.DescriptionErrorMsg, third.DescriptionText())

	fourth := jobs[3]
	assert.Equal(t, "", fourth.Title)
	assert.Equal(t, "Quiet LLC", fourth.Company)
	assert.Empty(t, fourth.Link)
	assert.Equal(t, model.DescriptionMissing, fourth.Status)
	assert.Empty(t, srv.hitTimes("/jobs/4/"))
}

func TestCollect_ListingFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestCollector(srv, nil)
	jobs, err := c.Collect(context.Background(), srv.URL+"/jobs/")
	require.Error(t, err)
	assert.Empty(t, jobs)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)

	var httpErr *model.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestCollect_ListingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewCollector(NewHTTPFetcher(&http.Client{Timeout: time.Second}, ""), PythonJobsSelectors(), 0, discardLogger())
	jobs, err := c.Collect(context.Background(), url+"/jobs/")
	require.Error(t, err)
	assert.Empty(t, jobs)

	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestCollect_ListingContainerMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Maintenance</p></body></html>`))
	}))
	defer srv.Close()

	c := newTestCollector(srv, nil)
	jobs, err := c.Collect(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.Empty(t, jobs)
}

func TestCollect_PacesDetailFetches(t *testing.T) {
	srv := newBoardServer(t)
	delay := 80 * time.Millisecond
	fetcher := ratelimit.NewPacedFetcher(NewHTTPFetcher(srv.Client(), ""), ratelimit.NewPacer(delay))
	c := newTestCollector(srv.Server, fetcher)

	_, err := c.Collect(context.Background(), srv.URL+"/jobs/")
	require.NoError(t, err)

	var times []time.Time
	for _, p := range []string{"/jobs/", "/jobs/1/", "/jobs/2/", "/jobs/3/"} {
		hits := srv.hitTimes(p)
		require.Len(t, hits, 1, p)
		times = append(times, hits[0])
	}
	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])
		assert.GreaterOrEqual(t, gap, delay-20*time.Millisecond, "gap %d", i)
	}
}

func TestCollect_MaxJobs(t *testing.T) {
	srv := newBoardServer(t)
	c := NewCollector(NewHTTPFetcher(srv.Client(), ""), PythonJobsSelectors(), 1, discardLogger())

	jobs, err := c.Collect(context.Background(), srv.URL+"/jobs/")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, srv.hitTimes("/jobs/2/"))
}

type stubFetcher struct {
	pages map[string]string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.calls++
	if page, ok := s.pages[url]; ok {
		return []byte(page), nil
	}
	return nil, s.err
}

func TestCollect_CancelledContextStopsBetweenEntries(t *testing.T) {
	stub := &stubFetcher{pages: map[string]string{"https://board.test/jobs/": listingHTML}}
	c := NewCollector(stub, PythonJobsSelectors(), 0, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	stub.err = errors.New("should not be reached")
	cancel()

	_, err := c.Collect(ctx, "https://board.test/jobs/")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stub.calls)
}

func TestCollect_CustomSelectors(t *testing.T) {
	page := `<div id="board">
	  <div class="job"><a class="t" href="https://other.test/a">Go Dev</a><em>Remote</em></div>
	</div>`
	stub := &stubFetcher{pages: map[string]string{
		"https://other.test/":  page,
		"https://other.test/a": `<section class="body">Go and Kubernetes</section>`,
	}}
	sel := Selectors{
		Listing:     "#board",
		Entry:       "div.job",
		Title:       "a.t",
		JobType:     "em",
		Description: "section.body",
	}.WithDefaults()

	c := NewCollector(stub, sel, 0, discardLogger())
	jobs, err := c.Collect(context.Background(), "https://other.test/")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Dev", jobs[0].Title)
	assert.Equal(t, "Remote", jobs[0].JobType)
	assert.Equal(t, "https://other.test/a", jobs[0].Link)
	assert.Equal(t, "Go and Kubernetes", jobs[0].Description)
}
