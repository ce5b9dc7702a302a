package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/pipeline"
	"github.com/citypulse/citypulse-data/internal/provider/openweather"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

var weatherSchema = warehouse.Schema{
	Table: config.WeatherTable,
	Columns: []warehouse.Column{
		{Name: "city_name", Type: warehouse.Text},
		{Name: "latitude", Type: warehouse.Float},
		{Name: "longitude", Type: warehouse.Float},
		{Name: "forecast_time", Type: warehouse.Timestamp},
		{Name: "temperature", Type: warehouse.Float},
		{Name: "min_temperature", Type: warehouse.Float},
		{Name: "max_temperature", Type: warehouse.Float},
		{Name: "feels_like", Type: warehouse.Float},
		{Name: "humidity", Type: warehouse.Float},
		{Name: "wind_speed", Type: warehouse.Float},
		{Name: "wind_direction", Type: warehouse.Float},
		{Name: "weather_condition", Type: warehouse.Text},
		{Name: "weather_description", Type: warehouse.Text},
		{Name: "pressure", Type: warehouse.Float},
		{Name: "visibility", Type: warehouse.Float},
		{Name: "cloud_cover", Type: warehouse.Float},
		{Name: "uv_index", Type: warehouse.Float},
		{Name: "precipitation_probability", Type: warehouse.Float},
		{Name: "forecast_day", Type: warehouse.Integer},
		{Name: "forecast_date", Type: warehouse.Date},
	},
}

// forecastEntry is one daily forecast row paired with the current
// conditions context it inherits fields from (visibility is only reported
// for the current block).
type forecastEntry struct {
	Day     int
	Daily   openweather.Daily
	Current openweather.Current
}

// Weather is the OpenWeatherMap forecast dataset: one row per forecast day
// per city, fetched by the registry coordinates.
func Weather() Dataset {
	return Dataset{
		Name:   "weather",
		Schema: weatherSchema,
		Collect: func(ctx context.Context, cfg *config.Config, workers int, logger *slog.Logger) pipeline.Result {
			client := openweather.NewClient(cfg.OpenWeatherAPIKey, logger)
			return pipeline.Run(ctx, config.CityRegistry, weatherStages(client), workers, logger)
		},
	}
}

func weatherStages(client *openweather.Client) pipeline.Stages[config.City, forecastEntry, struct{}] {
	return pipeline.Stages[config.City, forecastEntry, struct{}]{
		Dataset: "weather",
		List: func(ctx context.Context, _ string, city config.City, _ pipeline.Page) ([]forecastEntry, error) {
			forecast, err := client.OneCall(ctx, city.Lat, city.Lon)
			if err != nil {
				return nil, err
			}
			entries := make([]forecastEntry, len(forecast.Daily))
			for i, daily := range forecast.Daily {
				entries[i] = forecastEntry{Day: i, Daily: daily, Current: forecast.Current}
			}
			return entries, nil
		},
		Normalize: normalizeForecast,
	}
}

func normalizeForecast(city config.City, e forecastEntry, _ *struct{}, now time.Time) warehouse.Row {
	condition := openweather.FirstCondition(e.Daily.Weather)

	return warehouse.Row{
		city.Name,
		city.Lat,
		city.Lon,
		time.Unix(e.Daily.Dt, 0).UTC(),
		e.Daily.Temp.Day,
		e.Daily.Temp.Min,
		e.Daily.Temp.Max,
		e.Daily.FeelsLike.Day,
		e.Daily.Humidity,
		e.Daily.WindSpeed,
		e.Daily.WindDeg,
		condition.Main,
		condition.Description,
		e.Daily.Pressure,
		e.Current.Visibility,
		e.Daily.Clouds,
		e.Daily.UVI,
		e.Daily.Pop,
		e.Day,
		now,
	}
}
