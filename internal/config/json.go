package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config
// file. Secrets may be provided here as well as through the environment.
type StructuredJSONConfig struct {
	App struct {
		Env                  string   `json:"env"`
		EncryptionKey        string   `json:"encryption_key"`
		AdminPortalKey       string   `json:"admin_portal_key"`
		AdminSessionDuration Duration `json:"admin_session_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend    string `json:"backend"`
		Path       string `json:"path"`
		Durability string `json:"durability"`
		Driver     string `json:"driver"`
		DSN        string `json:"dsn"`
	} `json:"storage,omitempty"`

	Verification struct {
		BaseURL string   `json:"api_base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"verification,omitempty"`

	Uploads struct {
		AccountID       string `json:"account_id"`
		AccessKeyID     string `json:"access_key_id"`
		SecretAccessKey string `json:"secret_access_key"`
		BucketName      string `json:"bucket_name"`
		Endpoint        string `json:"endpoint"`
		PublicBaseURL   string `json:"public_base_url"`
	} `json:"uploads,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		AllowedOrigins  []string `json:"allowed_origins"`
		RateLimit       float64  `json:"rate_limit"`
		RateBurst       int      `json:"rate_burst"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:                  jsonCfg.App.Env,
			EncryptionKey:        jsonCfg.App.EncryptionKey,
			AdminPortalKey:       jsonCfg.App.AdminPortalKey,
			AdminSessionDuration: time.Duration(jsonCfg.App.AdminSessionDuration),
		},
		Storage: Storage{
			Backend:    jsonCfg.Storage.Backend,
			Path:       jsonCfg.Storage.Path,
			Durability: jsonCfg.Storage.Durability,
			Driver:     jsonCfg.Storage.Driver,
			DSN:        jsonCfg.Storage.DSN,
		},
		Verification: Verification{
			BaseURL: jsonCfg.Verification.BaseURL,
			Timeout: time.Duration(jsonCfg.Verification.Timeout),
		},
		Uploads: Uploads{
			AccountID:       jsonCfg.Uploads.AccountID,
			AccessKeyID:     jsonCfg.Uploads.AccessKeyID,
			SecretAccessKey: jsonCfg.Uploads.SecretAccessKey,
			BucketName:      jsonCfg.Uploads.BucketName,
			Endpoint:        jsonCfg.Uploads.Endpoint,
			PublicBaseURL:   jsonCfg.Uploads.PublicBaseURL,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			AllowedOrigins:  jsonCfg.Server.AllowedOrigins,
			RateLimit:       jsonCfg.Server.RateLimit,
			RateBurst:       jsonCfg.Server.RateBurst,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
