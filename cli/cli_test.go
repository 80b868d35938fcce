package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/manager"
)

type stubWeather struct {
	currentErr  error
	forecastErr error
}

func (s stubWeather) Name() string {
	return "stub.example"
}

func (s stubWeather) FetchCurrent(_ context.Context, query manager.LocationQuery) (manager.CurrentWeather, error) {
	if s.currentErr != nil {
		return manager.CurrentWeather{}, s.currentErr
	}
	return manager.CurrentWeather{
		Temperature:      21.5,
		Humidity:         60,
		WindSpeed:        3.2,
		ConditionSummary: "Clouds",
		IconID:           "04d",
		IconURL:          "https://openweathermap.org/img/wn/04d@2x.png",
	}, nil
}

func (s stubWeather) FetchForecast(_ context.Context, query manager.LocationQuery) ([]manager.ForecastEntry, error) {
	if s.forecastErr != nil {
		return nil, s.forecastErr
	}
	return []manager.ForecastEntry{
		{Timestamp: "2024-05-01 12:00:00", Temperature: 18, Description: query.Name + " drizzle"},
	}, nil
}

func newApp(weather manager.Weather, opts ...manager.Option) *manager.App {
	now := time.Date(2024, 5, 1, 13, 45, 0, 0, time.Local)
	return manager.New(weather, append([]manager.Option{manager.WithClock(func() time.Time { return now })}, opts...)...)
}

func run(t *testing.T, weather manager.Weather, stdin string, args ...string) (string, string) {
	t.Helper()

	return runApp(t, newApp(weather), stdin, args...)
}

func runApp(t *testing.T, app *manager.App, stdin string, args ...string) (string, string) {
	t.Helper()

	cmd, err := New(app, manager.Metric)
	require.NoError(t, err)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	return out.String(), errOut.String()
}

func TestSingleSearch(t *testing.T) {
	out, errOut := run(t, stubWeather{}, "", "New", "York")

	assert.Contains(t, out, "PROVIDER\t stub.example")
	assert.Contains(t, out, "THEME\t\t afternoon (#FF7F50 -> #FFA07A)")
	assert.Contains(t, out, "LOCATION\t New York")
	assert.Contains(t, out, "Temperature: 21.5 °C")
	assert.Contains(t, out, "Humidity: 60%")
	assert.Contains(t, out, "Wind Speed: 3.2 m/s")
	assert.Contains(t, out, "Condition: Clouds")
	assert.Contains(t, out, "ICON\t\t https://openweathermap.org/img/wn/04d@2x.png")
	assert.Contains(t, out, "2024-05-01 12:00:00: 18.0°C - New York drizzle")
	assert.Empty(t, errOut)
}

func TestSingleSearchImperialFlag(t *testing.T) {
	out, _ := run(t, stubWeather{}, "", "--unit", "imperial", "Austin")

	assert.Contains(t, out, "Temperature: 21.5 °F")
	assert.Contains(t, out, "Wind Speed: 3.2 mph")
	assert.Contains(t, out, "18.0°F")
}

func TestUnknownUnitFlag(t *testing.T) {
	app := manager.New(stubWeather{})
	cmd, err := New(app, manager.Metric)
	require.NoError(t, err)

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-u", "kelvin", "Paris"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestSearchNotifications(t *testing.T) {
	weather := stubWeather{
		currentErr:  &manager.APIError{StatusCode: 404},
		forecastErr: &manager.APIError{StatusCode: 404},
	}

	out, errOut := run(t, weather, "", "Atlantis")

	assert.NotContains(t, out, "Temperature")
	assert.NotContains(t, out, "FORECAST")
	assert.Contains(t, errOut, "API ERROR: Failed to fetch weather data. Please try again.")
	assert.Contains(t, errOut, "API ERROR: Failed to fetch forecast data. Response code: 404")
}

func TestSession(t *testing.T) {
	stdin := strings.Join([]string{
		"Paris",
		"   ",
		":imperial",
		"Rome",
		":history",
		":quit",
		"never searched",
	}, "\n")

	out, errOut := run(t, stubWeather{}, stdin)

	assert.Contains(t, out, "UNIT\t\t metric")
	assert.Contains(t, out, "UNIT\t\t imperial")
	assert.Contains(t, out, "18.0°C - Paris drizzle")
	assert.Contains(t, out, "18.0°F - Rome drizzle")
	assert.NotContains(t, out, "never searched")
	assert.Regexp(t, regexp.MustCompile(`HISTORY\n\t[0-9a-f-]{8} Rome \(13:45\)\n\t[0-9a-f-]{8} Paris \(13:45\)\n`), out)
	assert.Contains(t, errOut, "INPUT ERROR: Please enter a valid location.")
}

func TestSessionAgain(t *testing.T) {
	history := manager.NewHistory()
	oslo := history.Record("Oslo", time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local))
	app := newApp(stubWeather{}, manager.WithHistory(history))

	stdin := strings.Join([]string{
		":again " + oslo.ShortID(),
		":again ffff-not-there",
		":quit",
	}, "\n")

	out, errOut := runApp(t, app, stdin)

	assert.Contains(t, out, "LOCATION\t Oslo")
	assert.Contains(t, out, "18.0°C - Oslo drizzle")
	assert.Contains(t, out, "\t"+oslo.ShortID()+" Oslo (09:00)\n")
	assert.Contains(t, errOut, "HISTORY ERROR: no such history entry")

	records := history.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Oslo", records[0].LocationName)
	assert.NotEqual(t, oslo.ID, records[0].ID)
}
