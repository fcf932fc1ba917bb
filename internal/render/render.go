// Package render turns lookup results into the HTML fragments shown by the page.
package render

import (
	"bytes"
	"errors"
	"html/template"
	"net/url"

	"github.com/smartcity/weather-lookup/internal/domain"
)

var templates = template.Must(template.New("render").Parse(`
{{define "loading"}}<div class="loading">Loading weather data...</div>{{end}}

{{define "error"}}<div class="error">{{if .Prefix}}Error: {{end}}{{.Message}}</div>{{end}}

{{define "summary"}}
      <div class="weather-info">
        <h2>{{.City}}, {{.Country}}</h2>
        <div class="temp">{{.Temperature}}°C</div>
        <div class="description">{{.Description}}</div>
        <div class="details">
          <div class="detail-item">
            <div class="detail-label">Feels Like</div>
            <div class="detail-value">{{.FeelsLike}}°C</div>
          </div>
          <div class="detail-item">
            <div class="detail-label">Humidity</div>
            <div class="detail-value">{{.Humidity}}%</div>
          </div>
          <div class="detail-item">
            <div class="detail-label">Wind</div>
            <div class="detail-value">{{.WindSpeed}} km/h</div>
          </div>
        </div>
      </div>
{{end}}

{{define "index"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Weather</title>
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
  <h1>Weather</h1>
  <form hx-get="/weather" hx-target="#result"
        hx-on::before-request="htmx.find('#result').innerHTML = htmx.find('#loading').innerHTML">
    <input id="cityInput" name="city" type="text" value="{{.DefaultCity}}" placeholder="Enter city name">
    <button type="submit">Get Weather</button>
  </form>
  <template id="loading">{{template "loading"}}</template>
  <div id="result"{{if .AutoLoadURL}} hx-get="{{.AutoLoadURL}}" hx-trigger="load"{{end}}></div>
</body>
</html>
{{end}}
`))

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Loading returns the loading-state fragment
func Loading() (string, error) {
	return execute("loading", nil)
}

// Summary renders a successful lookup
func Summary(s domain.WeatherSummary) (string, error) {
	return execute("summary", s)
}

// Error renders a failed lookup. Empty input is shown without the "Error:" prefix.
func Error(err error) (string, error) {
	data := struct {
		Prefix  bool
		Message string
	}{Prefix: true, Message: err.Error()}

	if errors.Is(err, domain.ErrEmptyInput) {
		data.Prefix = false
	}
	return execute("error", data)
}

// Index renders the lookup page. With autoLoad set the page requests
// defaultCity as soon as it loads.
func Index(defaultCity string, autoLoad bool) (string, error) {
	data := struct {
		DefaultCity string
		AutoLoadURL string
	}{DefaultCity: defaultCity}
	if autoLoad {
		data.AutoLoadURL = "/weather?city=" + url.QueryEscape(defaultCity)
	}
	return execute("index", data)
}
