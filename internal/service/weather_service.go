package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smartcity/weather-lookup/internal/domain"
	"github.com/smartcity/weather-lookup/pkg/utils"
)

const (
	// DefaultEndpoint is the OpenWeatherMap current-weather endpoint
	DefaultEndpoint = "https://api.openweathermap.org/data/2.5/weather"

	// APIKeyPlaceholder is the token left in place when deployment did not inject a key
	APIKeyPlaceholder = "__API_KEY__"

	maxBodySize = 1 << 20
)

// WeatherService looks up current weather by city name. It holds no mutable
// state; concurrent calls are independent requests.
type WeatherService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// Option configures a WeatherService
type Option func(*WeatherService)

// WithEndpoint overrides the upstream endpoint
func WithEndpoint(endpoint string) Option {
	return func(s *WeatherService) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client used for the upstream call
func WithHTTPClient(c *http.Client) Option {
	return func(s *WeatherService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// NewWeatherService creates a new weather service
func NewWeatherService(apiKey string, opts ...Option) *WeatherService {
	s := &WeatherService{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a usable API key was provided
func (s *WeatherService) Configured() bool {
	return s.apiKey != "" && s.apiKey != APIKeyPlaceholder
}

// OpenWeatherResponse represents the subset of the OpenWeatherMap response we read.
// Pointers distinguish absent fields from zero values.
type OpenWeatherResponse struct {
	Name *string `json:"name"`
	Sys  *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch performs exactly one upstream request for cityName. Any returned error
// is a *domain.QueryError.
func (s *WeatherService) Fetch(ctx context.Context, cityName string) (domain.WeatherSummary, error) {
	city, err := domain.NewCityQuery(cityName)
	if err != nil {
		return domain.WeatherSummary{}, err
	}

	if !s.Configured() {
		return domain.WeatherSummary{}, domain.NewQueryError(domain.KindNotConfigured, "API key is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(city), nil)
	if err != nil {
		return domain.WeatherSummary{}, domain.NewNetworkError(fmt.Errorf("weather: failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSummary{}, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.WeatherSummary{}, classifyStatus(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return domain.WeatherSummary{}, domain.NewNetworkError(fmt.Errorf("weather: failed to read response: %w", err))
	}

	// Unmarshal, unlike a streaming Decode, rejects data after the object.
	var owResp OpenWeatherResponse
	if err := json.Unmarshal(body, &owResp); err != nil {
		return domain.WeatherSummary{}, domain.NewMalformedError(fmt.Errorf("weather: failed to decode response: %w", err))
	}

	summary, err := owResp.summary()
	if err != nil {
		return domain.WeatherSummary{}, domain.NewMalformedError(err)
	}
	return summary, nil
}

func (s *WeatherService) requestURL(city domain.CityQuery) string {
	params := url.Values{}
	params.Set("q", city.String())
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	sep := "?"
	if strings.Contains(s.endpoint, "?") {
		sep = "&"
	}
	return s.endpoint + sep + params.Encode()
}

func classifyStatus(resp *http.Response) *domain.QueryError {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewQueryError(domain.KindNotFound, "City not found")
	case http.StatusUnauthorized:
		return domain.NewQueryError(domain.KindUnauthorized, "Invalid API key")
	default:
		return domain.NewHTTPError(resp.StatusCode, statusText(resp))
	}
}

// statusText strips the numeric prefix net/http puts in Response.Status
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (r OpenWeatherResponse) summary() (domain.WeatherSummary, error) {
	switch {
	case r.Name == nil:
		return domain.WeatherSummary{}, errors.New("missing field: name")
	case r.Sys == nil || r.Sys.Country == nil:
		return domain.WeatherSummary{}, errors.New("missing field: sys.country")
	case r.Main == nil:
		return domain.WeatherSummary{}, errors.New("missing field: main")
	case r.Main.Temp == nil:
		return domain.WeatherSummary{}, errors.New("missing field: main.temp")
	case r.Main.FeelsLike == nil:
		return domain.WeatherSummary{}, errors.New("missing field: main.feels_like")
	case r.Main.Humidity == nil:
		return domain.WeatherSummary{}, errors.New("missing field: main.humidity")
	case len(r.Weather) == 0 || r.Weather[0].Description == nil:
		return domain.WeatherSummary{}, errors.New("missing field: weather[0].description")
	case r.Wind == nil || r.Wind.Speed == nil:
		return domain.WeatherSummary{}, errors.New("missing field: wind.speed")
	}

	return domain.WeatherSummary{
		City:        *r.Name,
		Country:     *r.Sys.Country,
		Temperature: utils.RoundHalfUp(*r.Main.Temp),
		FeelsLike:   utils.RoundHalfUp(*r.Main.FeelsLike),
		Description: *r.Weather[0].Description,
		Humidity:    int(*r.Main.Humidity),
		WindSpeed:   utils.WindKmh(*r.Wind.Speed),
	}, nil
}
