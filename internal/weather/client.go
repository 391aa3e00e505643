package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNoHourlyData = errors.New("weather response has no hourly data")

// Condition buckets a temperature for display next to cycle data. The
// engine never consumes weather; it is informational only.
const (
	ConditionCold     = "cold"
	ConditionCool     = "cool"
	ConditionModerate = "moderate"
	ConditionWarm     = "warm"
	ConditionHot      = "hot"
)

// Report is a simplified current-weather snapshot.
type Report struct {
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Location    string    `json:"location"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Client fetches current temperature from the Open-Meteo forecast API.
type Client struct {
	httpClient *resty.Client
	latitude   float64
	longitude  float64
	location   string
}

type Options struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Location  string
	Timeout   time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.open-meteo.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout)

	return &Client{
		httpClient: restyClient,
		latitude:   opts.Latitude,
		longitude:  opts.Longitude,
		location:   opts.Location,
	}
}

type forecastResponse struct {
	Hourly struct {
		Temperature2m []float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// Fetch reads the hourly forecast and reports the first hour's
// temperature as the current one.
func (client *Client) Fetch(ctx context.Context) (Report, error) {
	var payload forecastResponse
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  fmt.Sprintf("%.4f", client.latitude),
			"longitude": fmt.Sprintf("%.4f", client.longitude),
			"hourly":    "temperature_2m",
		}).
		SetResult(&payload).
		Get("/v1/forecast")
	if err != nil {
		return Report{}, fmt.Errorf("fetch forecast: %w", err)
	}
	if response.IsError() {
		return Report{}, fmt.Errorf("fetch forecast: unexpected status %s", response.Status())
	}
	if len(payload.Hourly.Temperature2m) == 0 {
		return Report{}, ErrNoHourlyData
	}

	temperature := payload.Hourly.Temperature2m[0]
	return Report{
		Temperature: temperature,
		Condition:   ConditionForTemperature(temperature),
		Location:    client.location,
		FetchedAt:   time.Now(),
	}, nil
}

// ConditionForTemperature maps degrees Celsius onto a coarse bucket.
func ConditionForTemperature(temperature float64) string {
	switch {
	case temperature < 10:
		return ConditionCold
	case temperature < 20:
		return ConditionCool
	case temperature < 25:
		return ConditionModerate
	case temperature < 32:
		return ConditionWarm
	default:
		return ConditionHot
	}
}
