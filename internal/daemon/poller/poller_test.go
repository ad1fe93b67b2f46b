package poller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/easysurf/easysurf/internal/daemon/state"
	"github.com/easysurf/easysurf/internal/forecast"
	"github.com/easysurf/easysurf/internal/models"
	"github.com/easysurf/easysurf/internal/surf"
)

const waitFor = 2 * time.Second

type staticSettings struct {
	mu sync.Mutex
	s  models.Settings
}

func (f *staticSettings) Read() models.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s
}

func (f *staticSettings) set(s models.Settings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = s
}

type fakeTicker struct {
	d       time.Duration
	c       chan time.Time
	once    sync.Once
	stopped chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *tickerFactory) New(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{d: d, c: make(chan time.Time, 1), stopped: make(chan struct{})}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *tickerFactory) get(i int) *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[i]
}

type fakeFetcher struct {
	calls chan models.Settings
	resp  *models.ForecastResponse
	err   error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		calls: make(chan models.Settings, 16),
		resp:  &models.ForecastResponse{Forecast: []models.ForecastEntry{{SurfLevel: "beginner"}}},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, s models.Settings) (*models.ForecastResponse, error) {
	f.calls <- s
	return f.resp, f.err
}

func waitCall(t *testing.T, f *fakeFetcher) models.Settings {
	t.Helper()
	select {
	case s := <-f.calls:
		return s
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for fetch")
		return models.Settings{}
	}
}

func expectNoCall(t *testing.T, f *fakeFetcher) {
	t.Helper()
	select {
	case <-f.calls:
		t.Fatal("unexpected fetch")
	case <-time.After(100 * time.Millisecond):
	}
}

func waitStopped(t *testing.T, tk *fakeTicker) {
	t.Helper()
	select {
	case <-tk.stopped:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for ticker stop")
	}
}

func TestStartFetchesImmediatelyThenOnTick(t *testing.T) {
	settings := &staticSettings{s: *models.NewSettings()}
	fetcher := newFakeFetcher()
	tickers := &tickerFactory{}
	p := New(settings, fetcher, state.New(), WithTicker(tickers.New))

	p.Start()
	defer p.Stop()

	waitCall(t, fetcher)
	if p.Mode() != Active {
		t.Errorf("Mode() = %v, want active", p.Mode())
	}
	if got := tickers.get(0).d; got != 30*time.Minute {
		t.Errorf("ticker period = %v, want 30m", got)
	}

	tickers.get(0).c <- time.Now()
	waitCall(t, fetcher)
}

func TestRestartCancelsPreviousTimer(t *testing.T) {
	settings := &staticSettings{s: *models.NewSettings()}
	fetcher := newFakeFetcher()
	tickers := &tickerFactory{}
	p := New(settings, fetcher, state.New(), WithTicker(tickers.New))

	p.Start()
	waitCall(t, fetcher)

	next := *models.NewSettings()
	next.Interval = 15
	settings.set(next)
	p.Start()
	defer p.Stop()

	if got := waitCall(t, fetcher); got.Interval != 15 {
		t.Errorf("immediate fetch used interval %d, want 15", got.Interval)
	}
	waitStopped(t, tickers.get(0))

	if got := tickers.get(1).d; got != 15*time.Minute {
		t.Errorf("new ticker period = %v, want 15m", got)
	}
	if p.Interval() != 15*time.Minute {
		t.Errorf("Interval() = %v, want 15m", p.Interval())
	}

	tickers.get(0).c <- time.Now()
	expectNoCall(t, fetcher)
}

func TestStop(t *testing.T) {
	fetcher := newFakeFetcher()
	tickers := &tickerFactory{}
	p := New(&staticSettings{s: *models.NewSettings()}, fetcher, state.New(), WithTicker(tickers.New))

	p.Stop() // stopping an idle poller is a no-op
	p.Start()
	waitCall(t, fetcher)
	p.Stop()

	if p.Mode() != Idle {
		t.Errorf("Mode() = %v, want idle", p.Mode())
	}
	waitStopped(t, tickers.get(0))
}

func TestFetchOnceFailureSetsGray(t *testing.T) {
	st := state.New()
	st.ApplyUpdate(models.NewStatusUpdate(models.ForecastEntry{SurfLevel: "beginner"}, time.Now()))

	fetcher := newFakeFetcher()
	fetcher.err = errors.New("connection refused")
	p := New(&staticSettings{s: *models.NewSettings()}, fetcher, st)

	if err := p.FetchOnce(context.Background()); err == nil {
		t.Error("FetchOnce() error = nil, want the fetch error")
	}
	if st.Color() != surf.Gray {
		t.Errorf("Color() = %q, want gray", st.Color())
	}
}

func TestFetchOnceHTTP500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	st := state.New()
	st.ApplyUpdate(models.NewStatusUpdate(models.ForecastEntry{SurfLevel: "advanced"}, time.Now()))
	p := New(&staticSettings{s: models.Settings{APIURL: server.URL, Interval: 30}}, forecast.NewClient(), st)

	err := p.FetchOnce(context.Background())

	var ferr *forecast.FetchError
	if !errors.As(err, &ferr) || ferr.StatusCode != http.StatusInternalServerError {
		t.Errorf("FetchOnce() error = %v, want HTTP 500 FetchError", err)
	}
	if st.Color() != surf.Gray {
		t.Errorf("Color() = %q, want gray", st.Color())
	}
}

func TestFetchOnceEmptyForecastKeepsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"forecast":[]}`))
	}))
	defer server.Close()

	st := state.New()
	events, detach, _ := st.AttachWindow("w")
	defer detach()
	st.ApplyUpdate(models.NewStatusUpdate(models.ForecastEntry{SurfLevel: "advanced"}, time.Now()))
	<-events

	p := New(&staticSettings{s: models.Settings{APIURL: server.URL, Interval: 30}}, forecast.NewClient(), st)
	if err := p.FetchOnce(context.Background()); err != nil {
		t.Fatalf("FetchOnce() error = %v", err)
	}

	if st.Color() != surf.Red {
		t.Errorf("Color() = %q, want red (unchanged)", st.Color())
	}
	select {
	case ev := <-events:
		t.Errorf("unexpected push for empty forecast: %+v", ev)
	default:
	}
}

func TestFetchOnceAdvancedIsRed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "lat=-23.55&lon=-46.63" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"forecast":[{"surf_level":"advanced","wave_height":2.1,"peak_wave_period":9,"time":"T"}]}`))
	}))
	defer server.Close()

	fetchedAt := time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)
	st := state.New()
	events, detach, _ := st.AttachWindow("w")
	defer detach()

	s := models.Settings{Latitude: -23.55, Longitude: -46.63, Interval: 30, APIURL: server.URL}
	p := New(&staticSettings{s: s}, forecast.NewClient(), st, WithClock(func() time.Time { return fetchedAt }))
	if err := p.FetchOnce(context.Background()); err != nil {
		t.Fatalf("FetchOnce() error = %v", err)
	}

	if st.Color() != surf.Red {
		t.Errorf("Color() = %q, want red", st.Color())
	}

	ev := <-events
	want := models.StatusUpdate{
		Color:      surf.Red,
		Label:      "Challenging (Advanced)",
		Level:      "advanced",
		WaveHeight: 2.1,
		Period:     9,
		Time:       "T",
		FetchedAt:  fetchedAt,
	}
	if ev.Update != want {
		t.Errorf("pushed update = %+v, want %+v", ev.Update, want)
	}
}

func TestStartHookSeesEachRestart(t *testing.T) {
	settings := &staticSettings{s: *models.NewSettings()}
	tickers := &tickerFactory{}
	var seen []int
	p := New(settings, newFakeFetcher(), state.New(),
		WithTicker(tickers.New),
		WithStartHook(func(s models.Settings) { seen = append(seen, s.Interval) }),
	)
	defer p.Stop()

	p.Start()
	next := *models.NewSettings()
	next.Interval = 10
	settings.set(next)
	p.Start()

	if len(seen) != 2 || seen[0] != 30 || seen[1] != 10 {
		t.Errorf("start hook saw intervals %v, want [30 10]", seen)
	}
}
