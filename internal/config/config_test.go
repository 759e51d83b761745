package config

import (
	"errors"
	"strings"
	"testing"
)

func envFunc(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_ReadsAllSettings(t *testing.T) {
	cfg := FromEnv(envFunc(map[string]string{
		EnvCloudID: "deployment:abc",
		EnvAPIKey:  " key-123 ",
		EnvIndex:   "products",
	}))

	if cfg.CloudID != "deployment:abc" {
		t.Errorf("CloudID = %q, want %q", cfg.CloudID, "deployment:abc")
	}
	if cfg.APIKey != "key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "key-123")
	}
	if cfg.Index != "products" {
		t.Errorf("Index = %q, want %q", cfg.Index, "products")
	}
}

func TestValidate_Complete(t *testing.T) {
	cfg := Config{CloudID: "deployment:abc", APIKey: "key-123", Index: "products"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_MissingValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{
			name:    "missing cloud id",
			env:     map[string]string{EnvAPIKey: "key", EnvIndex: "products"},
			missing: EnvCloudID,
		},
		{
			name:    "missing api key",
			env:     map[string]string{EnvCloudID: "id", EnvIndex: "products"},
			missing: EnvAPIKey,
		},
		{
			name:    "missing index",
			env:     map[string]string{EnvCloudID: "id", EnvAPIKey: "key"},
			missing: EnvIndex,
		},
		{
			name:    "blank index",
			env:     map[string]string{EnvCloudID: "id", EnvAPIKey: "key", EnvIndex: "   "},
			missing: EnvIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromEnv(envFunc(tt.env)).Validate()
			if !errors.Is(err, ErrMissingConfig) {
				t.Fatalf("Validate() = %v, want ErrMissingConfig", err)
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error %q does not name %s", err.Error(), tt.missing)
			}
		})
	}
}
