package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bamsammich/tides/internal/gauge"
	"github.com/bamsammich/tides/internal/graph"
)

// Built-in defaults, substituted for any missing or invalid setting.
const (
	DefaultHours      = 24
	DefaultResolution = graph.Normal
)

// Settings are the effective, validated options for a run.
type Settings struct {
	Hours      int
	Resolution graph.Resolution
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type rawSettings struct {
	Hours      int    `validate:"min=1,max=72"`
	Resolution string `validate:"resolution"`
	BaseURL    string `validate:"http_url"`
	Timeout    string `validate:"positive_duration"`
	MaxRetries int    `validate:"min=0,max=10"`
}

func defaultRaw() rawSettings {
	return rawSettings{
		Hours:      DefaultHours,
		Resolution: DefaultResolution.String(),
		BaseURL:    gauge.DefaultBaseURL,
		Timeout:    gauge.DefaultTimeout.String(),
		MaxRetries: gauge.DefaultMaxRetries,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	//nolint:errcheck // tags are hardcoded and valid
	v.RegisterValidation("resolution", func(fl validator.FieldLevel) bool {
		_, err := graph.ParseResolution(fl.Field().String())
		return err == nil
	})
	//nolint:errcheck // tags are hardcoded and valid
	v.RegisterValidation("positive_duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	return v
}

// Resolve merges cfg over the built-in defaults and validates the result.
// Invalid values never fail a run: each one is logged and replaced by its
// default.
func (c Config) Resolve() Settings {
	raw := defaultRaw()
	if c.Defaults.Hours != nil {
		raw.Hours = *c.Defaults.Hours
	}
	if c.Defaults.Resolution != nil {
		raw.Resolution = *c.Defaults.Resolution
	}
	if c.API.BaseURL != nil {
		raw.BaseURL = *c.API.BaseURL
	}
	if c.API.Timeout != nil {
		raw.Timeout = *c.API.Timeout
	}
	if c.API.MaxRetries != nil {
		raw.MaxRetries = *c.API.MaxRetries
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(raw); errors.As(err, &verrs) {
		def := defaultRaw()
		for _, fe := range verrs {
			slog.Warn("invalid setting, using default",
				"setting", fe.Field(), "value", fe.Value(), "rule", fe.Tag())
			switch fe.StructField() {
			case "Hours":
				raw.Hours = def.Hours
			case "Resolution":
				raw.Resolution = def.Resolution
			case "BaseURL":
				raw.BaseURL = def.BaseURL
			case "Timeout":
				raw.Timeout = def.Timeout
			case "MaxRetries":
				raw.MaxRetries = def.MaxRetries
			}
		}
	}

	// Both parse cleanly once validation has run.
	res, _ := graph.ParseResolution(raw.Resolution) //nolint:errcheck // validated above
	timeout, _ := time.ParseDuration(raw.Timeout)   //nolint:errcheck // validated above
	return Settings{
		Hours:      raw.Hours,
		Resolution: res,
		BaseURL:    raw.BaseURL,
		Timeout:    timeout,
		MaxRetries: raw.MaxRetries,
	}
}
