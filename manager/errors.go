package manager

import (
	"errors"
	"fmt"
)

var ErrInvalidLocation = errors.New("please enter a valid location")

// APIError is returned when the provider answers with a status other than 200.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("status code: %d\n%s", e.StatusCode, e.Body)
}

// RequestError covers transport failures and bodies that could not be mapped.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

type Notification struct {
	Title   string
	Message string
}

type fetchKind int

const (
	currentFetch fetchKind = iota
	forecastFetch
)

func notificationFor(kind fetchKind, err error) Notification {
	if errors.Is(err, ErrInvalidLocation) {
		return Notification{Title: "Input Error", Message: "Please enter a valid location."}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if kind == forecastFetch {
			return Notification{
				Title:   "API Error",
				Message: fmt.Sprintf("Failed to fetch forecast data. Response code: %d", apiErr.StatusCode),
			}
		}
		return Notification{Title: "API Error", Message: "Failed to fetch weather data. Please try again."}
	}

	if kind == forecastFetch {
		return Notification{Title: "Error", Message: "Failed to fetch forecast data: " + err.Error()}
	}
	return Notification{Title: "Error", Message: "An error occurred: " + err.Error()}
}

// ValidationNotification is what the presentation layer shows for rejected input.
func ValidationNotification() Notification {
	return notificationFor(currentFetch, ErrInvalidLocation)
}
