package openweathermap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"weatherapp/config"
	"weatherapp/manager"
)

const apiName = "api.openweathermap.org"

func New(cfg config.OpenWeatherMap) *openWeatherMap {
	o := &openWeatherMap{
		apiKey:   cfg.APIKey,
		iconHost: strings.TrimRight(cfg.IconHost, "/"),
		client:   resty.New().SetBaseURL(cfg.BaseURL),
	}

	// A full minute's allowance is available up front, so interactive use only
	// waits once a whole minute's worth of requests has been spent.
	if cfg.RateLimit > 0 {
		o.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), cfg.RateLimit)
	}

	return o
}

type openWeatherMap struct {
	apiKey   string
	iconHost string
	client   *resty.Client
	limiter  *rate.Limiter
}

var _ manager.Weather = (*openWeatherMap)(nil)

func (o *openWeatherMap) Name() string {
	return apiName
}

func (o *openWeatherMap) FetchCurrent(ctx context.Context, query manager.LocationQuery) (manager.CurrentWeather, error) {
	body, err := o.processRequest(ctx, "/weather", query)
	if err != nil {
		return manager.CurrentWeather{}, err
	}

	current, err := unmarshalCurrent(body)
	if err != nil {
		return manager.CurrentWeather{}, err
	}
	current.IconURL = o.IconURL(current.IconID)

	return current, nil
}

// FetchForecast returns at most manager.ForecastLimit entries in provider order.
// A 200 response without a list yields no entries and no error.
func (o *openWeatherMap) FetchForecast(ctx context.Context, query manager.LocationQuery) ([]manager.ForecastEntry, error) {
	body, err := o.processRequest(ctx, "/forecast", query)
	if err != nil {
		return nil, err
	}

	return unmarshalForecast(body)
}

func (o *openWeatherMap) IconURL(iconID string) string {
	return fmt.Sprintf("%s/%s@2x.png", o.iconHost, iconID)
}

func (o *openWeatherMap) processRequest(ctx context.Context, path string, query manager.LocationQuery) ([]byte, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, &manager.RequestError{Message: "rate limit wait canceled", Err: err}
		}
	}

	request := o.client.R().SetContext(ctx)
	request.SetQueryParams(map[string]string{
		"q":     query.Name,
		"units": query.Unit.String(),
		"appid": o.apiKey,
	})

	response, err := request.Get(path)
	if err != nil {
		return nil, &manager.RequestError{Message: "request failed", Err: err}
	}

	if response.StatusCode() != http.StatusOK {
		buf := &bytes.Buffer{}

		body := string(response.Body())
		if err = json.Indent(buf, response.Body(), "", "  "); err == nil {
			body = buf.String()
		}

		return nil, &manager.APIError{StatusCode: response.StatusCode(), Body: body}
	}

	return response.Body(), nil
}

func unmarshalCurrent(data []byte) (manager.CurrentWeather, error) {
	type result struct {
		Main *struct {
			Temp     *float64 `json:"temp"`
			Humidity *int     `json:"humidity"`
		} `json:"main"`
		Wind *struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main *string `json:"main"`
			Icon *string `json:"icon"`
		} `json:"weather"`
	}

	var r result

	if err := json.Unmarshal(data, &r); err != nil {
		return manager.CurrentWeather{}, &manager.RequestError{Message: "failed to parse API response", Err: err}
	}

	switch {
	case r.Main == nil || r.Main.Temp == nil:
		return manager.CurrentWeather{}, missingField("main.temp")
	case r.Main.Humidity == nil:
		return manager.CurrentWeather{}, missingField("main.humidity")
	case r.Wind == nil || r.Wind.Speed == nil:
		return manager.CurrentWeather{}, missingField("wind.speed")
	case len(r.Weather) == 0 || r.Weather[0].Main == nil:
		return manager.CurrentWeather{}, missingField("weather[0].main")
	case r.Weather[0].Icon == nil:
		return manager.CurrentWeather{}, missingField("weather[0].icon")
	}

	return manager.CurrentWeather{
		Temperature:      *r.Main.Temp,
		Humidity:         *r.Main.Humidity,
		WindSpeed:        *r.Wind.Speed,
		ConditionSummary: *r.Weather[0].Main,
		IconID:           *r.Weather[0].Icon,
	}, nil
}

func unmarshalForecast(data []byte) ([]manager.ForecastEntry, error) {
	type item struct {
		DtTxt *string `json:"dt_txt"`
		Main  *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description *string `json:"description"`
		} `json:"weather"`
	}

	// Only the first entries are decoded; the rest of the list is never looked at.
	var r struct {
		List []json.RawMessage `json:"list"`
	}

	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &manager.RequestError{Message: "failed to parse API response", Err: err}
	}

	n := len(r.List)
	if n > manager.ForecastLimit {
		n = manager.ForecastLimit
	}

	entries := make([]manager.ForecastEntry, 0, n)
	for i, raw := range r.List[:n] {
		var it item
		if err := json.Unmarshal(raw, &it); err != nil {
			return nil, &manager.RequestError{Message: fmt.Sprintf("failed to parse list[%d]", i), Err: err}
		}

		switch {
		case it.DtTxt == nil:
			return nil, missingField(fmt.Sprintf("list[%d].dt_txt", i))
		case it.Main == nil || it.Main.Temp == nil:
			return nil, missingField(fmt.Sprintf("list[%d].main.temp", i))
		case len(it.Weather) == 0 || it.Weather[0].Description == nil:
			return nil, missingField(fmt.Sprintf("list[%d].weather[0].description", i))
		}

		entries = append(entries, manager.ForecastEntry{
			Timestamp:   *it.DtTxt,
			Temperature: *it.Main.Temp,
			Description: *it.Weather[0].Description,
		})
	}

	return entries, nil
}

func missingField(name string) error {
	return &manager.RequestError{Message: "missing field " + name}
}
