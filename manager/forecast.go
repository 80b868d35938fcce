package manager

import "fmt"

const (
	ForecastLimit = 5

	NoForecastData = "No forecast data available"
)

// FormatForecast renders the first ForecastLimit entries in provider order.
// An empty list yields the single NoForecastData line.
func FormatForecast(entries []ForecastEntry, unit Unit) []string {
	n := len(entries)
	if n > ForecastLimit {
		n = ForecastLimit
	}

	if n == 0 {
		return []string{NoForecastData}
	}

	lines := make([]string, 0, n)
	for _, entry := range entries[:n] {
		lines = append(lines, fmt.Sprintf("%s: %.1f%s - %s",
			entry.Timestamp,
			entry.Temperature,
			unit.TemperatureSuffix(),
			entry.Description,
		))
	}

	return lines
}

// FormatCurrent renders the labels shown for current conditions.
func FormatCurrent(current CurrentWeather, unit Unit) []string {
	return []string{
		fmt.Sprintf("Temperature: %v %s", current.Temperature, unit.TemperatureSuffix()),
		fmt.Sprintf("Humidity: %d%%", current.Humidity),
		fmt.Sprintf("Wind Speed: %v %s", current.WindSpeed, unit.SpeedSuffix()),
		fmt.Sprintf("Condition: %s", current.ConditionSummary),
	}
}
