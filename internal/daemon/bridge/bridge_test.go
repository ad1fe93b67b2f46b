package bridge

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/daemon/poller"
	"github.com/easysurf/easysurf/internal/daemon/state"
	"github.com/easysurf/easysurf/internal/models"
	"github.com/easysurf/easysurf/internal/surf"
)

type recordingTicker struct {
	d       time.Duration
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (r *recordingTicker) C() <-chan time.Time { return r.c }
func (r *recordingTicker) Stop()               { r.once.Do(func() { close(r.stopped) }) }

type tickers struct {
	mu  sync.Mutex
	all []*recordingTicker
}

func (t *tickers) New(d time.Duration) poller.Ticker {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := &recordingTicker{d: d, c: make(chan time.Time), stopped: make(chan struct{})}
	t.all = append(t.all, r)
	return r
}

func (t *tickers) snapshot() []*recordingTicker {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*recordingTicker(nil), t.all...)
}

type stubFetcher struct {
	level string
	err   error
}

func (f stubFetcher) Fetch(ctx context.Context, s models.Settings) (*models.ForecastResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ForecastResponse{Forecast: []models.ForecastEntry{{SurfLevel: f.level}}}, nil
}

func setup(t *testing.T, fetcher poller.Fetcher) (*Service, *config.SettingsStore, *poller.Poller, *tickers) {
	t.Helper()
	store := config.NewSettingsStore(filepath.Join(t.TempDir(), config.SettingsFileName))
	st := state.New()
	tk := &tickers{}
	p := poller.New(store, fetcher, st, poller.WithTicker(tk.New))
	t.Cleanup(p.Stop)
	return New(store, p, st), store, p, tk
}

func TestSaveSettingsRestartsPollerAtNewInterval(t *testing.T) {
	svc, store, p, tk := setup(t, stubFetcher{level: "beginner"})
	p.Start()

	res := svc.SaveSettings(context.Background(), config.Candidate{
		Latitude: 10, Longitude: 20, Interval: 15, APIURL: "http://x",
	})
	if !res.Success {
		t.Fatalf("SaveSettings() = %+v, want success", res)
	}

	all := tk.snapshot()
	if len(all) != 2 {
		t.Fatalf("created %d tickers, want 2", len(all))
	}
	if all[0].d != 30*time.Minute || all[1].d != 15*time.Minute {
		t.Errorf("ticker periods = %v, %v; want 30m, 15m", all[0].d, all[1].d)
	}
	select {
	case <-all[0].stopped:
	case <-time.After(2 * time.Second):
		t.Error("previous ticker was not stopped")
	}
	if got := store.Read().Interval; got != 15 {
		t.Errorf("stored interval = %d, want 15", got)
	}
	if p.Mode() != poller.Active {
		t.Errorf("Mode() = %v, want active", p.Mode())
	}
}

func TestSaveSettingsRejectedKeepsPoller(t *testing.T) {
	svc, store, p, tk := setup(t, stubFetcher{level: "beginner"})
	p.Start()
	before := store.Read()

	res := svc.SaveSettings(context.Background(), config.Candidate{
		Latitude: 91, Longitude: 20, Interval: 15, APIURL: "http://x",
	})

	if res.Success {
		t.Fatal("SaveSettings() succeeded with latitude 91")
	}
	if len(res.Messages) != 1 || res.Messages[0] != "Latitude must be between -90 and 90" {
		t.Errorf("Messages = %q", res.Messages)
	}
	if res.Error == "" {
		t.Error("Error is empty")
	}
	if len(tk.snapshot()) != 1 {
		t.Error("poller was restarted after a rejected save")
	}
	if store.Read() != before {
		t.Error("settings changed after a rejected save")
	}
}

func TestGetCurrentStatusAndRefresh(t *testing.T) {
	svc, _, _, _ := setup(t, stubFetcher{level: "intermediate"})

	st := svc.GetCurrentStatus(context.Background())
	if st.Color != surf.Gray || st.Label != "Unknown" || st.Last != nil {
		t.Errorf("initial status = %+v", st)
	}

	st, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Color != surf.Yellow || st.Label != "Moderate (Intermediate)" {
		t.Errorf("status after refresh = %+v", st)
	}
	if st.Last == nil || st.Last.Level != "intermediate" {
		t.Errorf("Last = %+v", st.Last)
	}
}

func TestRefreshFailureReportsGray(t *testing.T) {
	svc, _, _, _ := setup(t, stubFetcher{err: errors.New("boom")})

	st, err := svc.Refresh(context.Background())
	if err == nil {
		t.Error("Refresh() error = nil")
	}
	if st.Color != surf.Gray {
		t.Errorf("Color = %q, want gray", st.Color)
	}
}

func TestSubscribeSingleWindow(t *testing.T) {
	svc, _, _, _ := setup(t, stubFetcher{level: "advanced"})

	events, detach, err := svc.Subscribe(context.Background(), "w1")
	if err != nil {
		t.Fatal(err)
	}
	defer detach()

	if _, _, err := svc.Subscribe(context.Background(), "w2"); !errors.Is(err, state.ErrWindowOpen) {
		t.Errorf("second Subscribe() error = %v, want ErrWindowOpen", err)
	}
	if ev := <-events; ev.Kind != state.EventFocus {
		t.Errorf("first window got %+v, want a focus event", ev)
	}

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	ev := <-events
	if ev.Update.Color != surf.Red {
		t.Errorf("pushed color = %q, want red", ev.Update.Color)
	}
}

type heldFetcher struct {
	entered chan struct{}
	release chan struct{}
}

func (f *heldFetcher) Fetch(ctx context.Context, s models.Settings) (*models.ForecastResponse, error) {
	close(f.entered)
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &models.ForecastResponse{Forecast: []models.ForecastEntry{{SurfLevel: "advanced"}}}, nil
}

func TestRefreshSurvivesCallerCancel(t *testing.T) {
	f := &heldFetcher{entered: make(chan struct{}), release: make(chan struct{})}
	svc, _, _, _ := setup(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-f.entered
		cancel()
		time.Sleep(50 * time.Millisecond)
		close(f.release)
	}()

	st, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if st.Color != surf.Red {
		t.Errorf("Color after caller cancel = %q, want red", st.Color)
	}
}
