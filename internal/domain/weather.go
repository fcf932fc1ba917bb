package domain

import "strings"

// CityQuery is a validated, non-empty city name
type CityQuery string

// NewCityQuery trims the raw input and rejects empty or whitespace-only names
func NewCityQuery(raw string) (CityQuery, error) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return "", NewQueryError(KindEmptyInput, "Please enter a city name")
	}
	return CityQuery(city), nil
}

func (q CityQuery) String() string {
	return string(q)
}

// WeatherSummary represents the current weather for a looked-up city
type WeatherSummary struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed_kmh"`
}

// ErrorBody is the JSON shape of a failed lookup
type ErrorBody struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// WeatherResponse wraps a lookup result with metadata
type WeatherResponse struct {
	Data    *WeatherSummary `json:"data,omitempty"`
	Success bool            `json:"success"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

// DefaultCity is looked up once at startup when no other city is configured
const DefaultCity = "London"
