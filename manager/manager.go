package manager

import (
	"context"
	"errors"
	"sync"
	"time"
)

// App owns everything a search touches: the provider, the search history and
// the last successfully fetched display state. The theme is chosen once in New.
type App struct {
	weather Weather
	history *History
	theme   Theme
	now     func() time.Time

	mu       sync.RWMutex
	current  *CurrentWeather
	unit     Unit
	forecast []string
}

// Named is implemented by providers that can report who they are.
type Named interface {
	Name() string
}

type Option func(*App)

// WithClock replaces time.Now for theme selection and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func WithHistory(history *History) Option {
	return func(a *App) {
		a.history = history
	}
}

func New(weather Weather, opts ...Option) *App {
	a := &App{
		weather: weather,
		history: NewHistory(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.theme = SelectTheme(a.now())

	return a
}

type SearchResult struct {
	Query LocationQuery

	Current    CurrentWeather
	CurrentErr error

	Forecast    []string
	ForecastErr error

	Record HistoryRecord
}

// Notifications lists one entry per failed fetch, current first.
func (r SearchResult) Notifications() []Notification {
	var out []Notification
	if r.CurrentErr != nil {
		out = append(out, notificationFor(currentFetch, r.CurrentErr))
	}
	if r.ForecastErr != nil {
		out = append(out, notificationFor(forecastFetch, r.ForecastErr))
	}
	return out
}

// Search validates the location, runs both fetches side by side and waits for
// both. Only ErrInvalidLocation is returned as an error; fetch failures are
// reported per fetch in the result.
func (a *App) Search(ctx context.Context, location string, unit Unit) (SearchResult, error) {
	query, err := NewLocationQuery(location, unit)
	if err != nil {
		return SearchResult{}, err
	}

	type result struct {
		current  CurrentWeather
		forecast []ForecastEntry
		kind     fetchKind
		err      error
	}

	resultChannel := make(chan result, 2)

	go func() {
		current, err := a.weather.FetchCurrent(ctx, query)
		resultChannel <- result{current: current, kind: currentFetch, err: err}
	}()

	go func() {
		forecast, err := a.weather.FetchForecast(ctx, query)
		resultChannel <- result{forecast: forecast, kind: forecastFetch, err: err}
	}()

	res := SearchResult{Query: query}

	for i := 0; i < 2; i++ {
		r := <-resultChannel

		switch r.kind {
		case currentFetch:
			if r.err != nil {
				res.CurrentErr = r.err
				continue
			}
			res.Current = r.current
			current := r.current
			a.mu.Lock()
			a.current = &current
			a.unit = query.Unit
			a.mu.Unlock()
		case forecastFetch:
			if r.err != nil {
				res.ForecastErr = r.err
				continue
			}
			res.Forecast = FormatForecast(r.forecast, query.Unit)
			a.mu.Lock()
			a.forecast = res.Forecast
			a.mu.Unlock()
		}
	}

	res.Record = a.history.Record(query.Name, a.now())

	return res, nil
}

// Repeat searches again for the location of a history entry, addressed by ID
// or ID prefix. The repeat is recorded as a new entry.
func (a *App) Repeat(ctx context.Context, ref string, unit Unit) (SearchResult, error) {
	record, err := a.history.Get(ref)
	if err != nil {
		return SearchResult{}, err
	}

	return a.Search(ctx, record.LocationName, unit)
}

// Provider returns the provider name, or "" when it does not report one.
func (a *App) Provider() string {
	if named, ok := a.weather.(Named); ok {
		return named.Name()
	}
	return ""
}

func (a *App) Theme() Theme {
	return a.theme
}

func (a *App) History() *History {
	return a.history
}

// Current returns the last successfully fetched conditions and the unit they
// were requested in.
func (a *App) Current() (CurrentWeather, Unit, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return CurrentWeather{}, Metric, false
	}
	return *a.current, a.unit, true
}

func (a *App) Forecast() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]string(nil), a.forecast...)
}

// IsValidation reports whether err was raised before any request was made.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidLocation)
}
