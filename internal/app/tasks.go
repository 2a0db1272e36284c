package app

import (
	"context"
	"errors"

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

const (
	timeTaskName    = "time"
	weatherTaskName = "weather"
)

// clockMessages returns the time and date mutations for now.
func clockMessages(clock clockwork.Clock) []tea.Msg {
	now := clock.Now()
	return []tea.Msg{
		ui.SetTimeMsg{Text: ui.FormatTime(now)},
		ui.SetDateMsg{Text: ui.FormatDate(now)},
	}
}

// timeTask refreshes the clock and date. It never fails.
func timeTask(clock clockwork.Clock, dispatch func(tea.Msg) bool) schedule.Task {
	return func(context.Context) error {
		for _, msg := range clockMessages(clock) {
			dispatch(msg)
		}
		observability.ClockTicksTotal.Inc()
		return nil
	}
}

// weatherRefresher turns a fetch into display mutations.
type weatherRefresher struct {
	fetcher weather.Fetcher
	icons   *icon.Resolver
	store   *state.Store
	clock   clockwork.Clock
	policy  config.FetchErrorPolicy
	logger  *zap.Logger
}

// refresh fetches once. On success it records the reading and returns the
// temperature, icon and last update mutations.
func (w *weatherRefresher) refresh(ctx context.Context) ([]tea.Msg, error) {
	reading, err := w.fetch(ctx)
	now := w.clock.Now()
	if err != nil {
		w.store.Update(nil, now, err)
		return nil, err
	}
	w.store.Update(&reading, now, nil)
	observability.WeatherLastUpdate.Set(float64(now.Unix()))

	return []tea.Msg{
		ui.SetTemperatureMsg{Text: ui.FormatTemperature(reading.Current, reading.High, reading.Low)},
		w.iconMessage(reading.Icon),
		ui.SetLastUpdateMsg{Text: ui.FormatLastUpdate(now)},
	}, nil
}

func (w *weatherRefresher) fetch(ctx context.Context) (weather.Reading, error) {
	doc, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return weather.Reading{}, err
	}
	return doc.Reading()
}

// iconMessage resolves and loads the icon for code. A missing or broken
// asset degrades to an empty icon box.
func (w *weatherRefresher) iconMessage(code string) ui.SetIconMsg {
	name := w.icons.Resolve(code)
	if name == w.icons.Fallback() && code != "" {
		w.logger.Debug("no icon for condition code, using fallback", zap.String("code", code), zap.String("asset", name))
	}
	img, loaded, err := w.icons.Load(name)
	if err != nil {
		w.logger.Warn("weather icon unavailable", zap.String("code", code), zap.String("asset", name), zap.Error(err))
		return ui.SetIconMsg{Path: name}
	}
	return ui.SetIconMsg{Path: loaded, Image: img}
}

// task is the periodic weather refresh. Under the exit policy a failure is
// returned, which halts the cycle; under keep it is logged and the display
// keeps the last good reading.
func (w *weatherRefresher) task(dispatch func(tea.Msg) bool) schedule.Task {
	return func(ctx context.Context) error {
		msgs, err := w.refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return w.failure(err)
		}
		for _, msg := range msgs {
			dispatch(msg)
		}
		return nil
	}
}

// failure logs err and decides whether it is fatal. Config errors are always
// fatal since no later attempt can succeed.
func (w *weatherRefresher) failure(err error) error {
	fields := []zap.Field{zap.Error(err), zap.String("policy", string(w.policy))}
	var netErr *weather.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode > 0 {
		fields = append(fields, zap.Int("status", netErr.StatusCode), zap.String("body", netErr.Body))
	}
	var cfgErr *weather.ConfigError
	if w.policy == config.PolicyKeep && !errors.As(err, &cfgErr) {
		w.logger.Warn("weather refresh failed, keeping last reading", fields...)
		return nil
	}
	w.logger.Error("weather refresh failed", fields...)
	return err
}
