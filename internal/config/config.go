// Package config holds the search sync Lambda's environment configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environment variable names.
const (
	EnvCloudID = "ELASTIC_CLOUD_ID"
	EnvAPIKey  = "ELASTIC_CLOUD_API_KEY"
	EnvIndex   = "SEARCH_INDEX"
)

// ErrMissingConfig is returned when a required setting is absent or empty.
var ErrMissingConfig = errors.New("missing env config")

// Config is the connection and target for the search index.
// The json tags name the environment variables so validation errors
// point at the setting that needs fixing.
type Config struct {
	CloudID string `json:"ELASTIC_CLOUD_ID"`
	APIKey  string `json:"ELASTIC_CLOUD_API_KEY"`
	Index   string `json:"SEARCH_INDEX"`
}

// FromEnv builds a Config using getenv, typically os.Getenv.
// Surrounding whitespace is trimmed, so blank values count as missing.
func FromEnv(getenv func(string) string) Config {
	return Config{
		CloudID: strings.TrimSpace(getenv(EnvCloudID)),
		APIKey:  strings.TrimSpace(getenv(EnvAPIKey)),
		Index:   strings.TrimSpace(getenv(EnvIndex)),
	}
}

// Validate checks that every setting is present.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.CloudID, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.Index, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}
	return nil
}
