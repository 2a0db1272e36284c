package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/five82/weatherpi/internal/config"
	"github.com/five82/weatherpi/internal/icon"
	"github.com/five82/weatherpi/internal/observability"
	"github.com/five82/weatherpi/internal/schedule"
	"github.com/five82/weatherpi/internal/state"
	"github.com/five82/weatherpi/internal/ui"
	"github.com/five82/weatherpi/internal/weather"
)

// Options configure the kiosk application.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero uses the configured weather_refresh
}

const (
	timePeriod      = time.Second
	shutdownTimeout = 5 * time.Second
)

// Run boots the kiosk and blocks until it is closed, the context is
// cancelled, or a fatal weather error stops it.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithPollSeconds(opts.PollEvery)

	logger, err := observability.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := weather.NewClient(weather.Options{
		BaseURL:  cfg.BaseURL,
		Location: cfg.Location,
		APIKey:   cfg.APIKey,
		Include:  cfg.Include,
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
	})
	icons := icon.NewResolver(os.DirFS(cfg.AssetDir), cfg.FallbackIcon)

	k, err := newKiosk(cfg, client, icons, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}
	if err := k.prepare(ctx); err != nil {
		_ = k.life.Stop()
		if errors.Is(err, errInterrupted) {
			logger.Info("shutdown requested during startup", zap.Error(context.Cause(ctx)))
			return nil
		}
		return err
	}

	var metrics *observability.Server
	if cfg.MetricsAddr != "" {
		metrics = observability.NewServer(cfg.MetricsAddr, k.health, logger)
		metrics.Start()
	}

	program := tea.NewProgram(k.model, tea.WithAltScreen(), tea.WithoutSignalHandler())
	runErr := k.launch(program)
	if runErr == nil {
		runErr = k.run(ctx, program)
	}
	stopErr := k.life.Stop()

	if metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", zap.Error(err))
		}
		cancel()
	}

	if err := k.life.Err(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	return stopErr
}

// errInterrupted reports that the context was cancelled before the kiosk
// reached Running.
var errInterrupted = errors.New("startup interrupted")

// kiosk is the assembled application between Starting and Stopped.
type kiosk struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *state.Store
	weather *weatherRefresher
	sched   *schedule.Scheduler
	life    *Lifecycle
	model   ui.Model
}

func newKiosk(cfg config.Config, fetcher weather.Fetcher, icons *icon.Resolver, clock clockwork.Clock, logger *zap.Logger) (*kiosk, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	life := newLifecycle(logger)
	sched, err := schedule.New(schedule.Options{
		Clock:  clock,
		Logger: logger,
		OnHalt: life.onHalt,
	})
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}
	life.sched = sched

	store := &state.Store{}
	return &kiosk{
		cfg:    cfg,
		logger: logger,
		store:  store,
		weather: &weatherRefresher{
			fetcher: fetcher,
			icons:   icons,
			store:   store,
			clock:   sched.Clock(),
			policy:  cfg.FetchErrorPolicy,
			logger:  logger,
		},
		sched: sched,
		life:  life,
		model: ui.New(ui.Options{
			Theme:   cfg.Theme,
			OnClose: func() { _ = life.Stop() },
		}),
	}, nil
}

// prepare performs the synchronous startup fetch and renders the first
// frame. Under the keep policy a failed fetch leaves placeholders and the
// fallback icon on screen.
func (k *kiosk) prepare(ctx context.Context) error {
	for _, msg := range clockMessages(k.sched.Clock()) {
		k.model.Apply(msg)
	}

	msgs, err := k.weather.refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("initial weather fetch: %w: %w", errInterrupted, context.Cause(ctx))
		}
		if err := k.weather.failure(err); err != nil {
			return fmt.Errorf("initial weather fetch: %w", err)
		}
		msgs = []tea.Msg{k.weather.iconMessage("")}
	}
	for _, msg := range msgs {
		k.model.Apply(msg)
	}
	return nil
}

// launch attaches the surface, registers both refresh tasks and starts
// them. The weather task first fires one period after the startup fetch.
func (k *kiosk) launch(surface Surface) error {
	k.life.surface = surface
	if err := k.sched.Every(timeTaskName, timePeriod, true, timeTask(k.sched.Clock(), k.life.Dispatch)); err != nil {
		return fmt.Errorf("register time task: %w", err)
	}
	if err := k.sched.Every(weatherTaskName, k.cfg.WeatherRefresh, false, k.weather.task(k.life.Dispatch)); err != nil {
		return fmt.Errorf("register weather task: %w", err)
	}
	if err := k.life.start(); err != nil {
		return fmt.Errorf("start kiosk: %w", err)
	}
	return nil
}

// run drives the program until it exits. Cancelling ctx stops the kiosk.
func (k *kiosk) run(ctx context.Context, program *tea.Program) error {
	release := k.watch(ctx)
	defer release()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run display: %w", err)
	}
	return nil
}

// watch calls Stop when ctx is cancelled, until the returned release func
// is called.
func (k *kiosk) watch(ctx context.Context) (release func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			k.logger.Info("shutdown requested", zap.Error(context.Cause(ctx)))
			_ = k.life.Stop()
		case <-done:
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// health reports kiosk status for /healthz. Data older than two refresh
// intervals counts as stale.
func (k *kiosk) health() observability.Health {
	snap := k.store.Snapshot()
	st := k.life.State()
	h := observability.Health{
		State:               st.String(),
		ConsecutiveFailures: snap.ConsecutiveFailures,
	}
	if snap.HasReading {
		last := snap.LastSuccess
		h.LastUpdate = &last
	}
	if snap.LastError != nil {
		h.LastError = snap.LastError.Error()
	}
	h.Healthy = st == Running && !snap.IsStale(k.sched.Clock().Now(), 2*k.cfg.WeatherRefresh)
	return h
}
