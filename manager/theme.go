package manager

import "time"

type Theme int

const (
	Morning Theme = iota
	Afternoon
	Evening
)

func (t Theme) String() string {
	switch t {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	default:
		return "evening"
	}
}

// Gradient returns the top and bottom background colors of the theme.
func (t Theme) Gradient() (string, string) {
	switch t {
	case Morning:
		return "#87CEEB", "#E0FFFF"
	case Afternoon:
		return "#FF7F50", "#FFA07A"
	default:
		return "#daeff8", "#f5f5f5"
	}
}

// SelectTheme looks only at the wall-clock time of now.
func SelectTheme(now time.Time) Theme {
	switch hour := now.Hour(); {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}
