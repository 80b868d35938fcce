package manager

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Weather is the provider side of a search: one blocking request per call.
type Weather interface {
	FetchCurrent(ctx context.Context, query LocationQuery) (CurrentWeather, error)
	FetchForecast(ctx context.Context, query LocationQuery) ([]ForecastEntry, error)
}

type Unit int

const (
	Metric Unit = iota
	Imperial
)

// String returns the value the provider expects in the units parameter.
func (u Unit) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

func (u Unit) TemperatureSuffix() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

func (u Unit) SpeedSuffix() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "metric", "celsius", "c":
		return Metric, nil
	case "imperial", "fahrenheit", "f":
		return Imperial, nil
	}

	return Metric, fmt.Errorf("unknown unit %q", s)
}

type LocationQuery struct {
	Name string
	Unit Unit
}

// NewLocationQuery trims name and rejects it when nothing is left.
func NewLocationQuery(name string, unit Unit) (LocationQuery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LocationQuery{}, ErrInvalidLocation
	}

	return LocationQuery{Name: name, Unit: unit}, nil
}

type CurrentWeather struct {
	Temperature      float64
	Humidity         int
	WindSpeed        float64
	ConditionSummary string
	IconID           string
	IconURL          string
}

type ForecastEntry struct {
	Timestamp   string
	Temperature float64
	Description string
}

type HistoryRecord struct {
	ID           string
	LocationName string
	SearchedAt   time.Time
}

func (r HistoryRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.LocationName, r.SearchedAt.Format("15:04"))
}

// ShortID is the ID prefix shown next to history lines.
func (r HistoryRecord) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}
