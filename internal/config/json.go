package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for file-based
// configuration, with durations accepted as strings like "30s" or "5m".
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Client struct {
		ServerURL      string   `json:"server_url"`
		Name           string   `json:"name"`
		JoinCode       string   `json:"join_code"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"client,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Party struct {
		MinMembers    int      `json:"min_members"`
		InitialBatch  int      `json:"initial_batch"`
		BatchSize     int      `json:"batch_size"`
		DeckSize      int      `json:"deck_size"`
		SweepInterval Duration `json:"sweep_interval"`
		IdleTTL       Duration `json:"idle_ttl"`
	} `json:"party,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
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
			Version: jsonCfg.App.Version,
		},
		Client: Client{
			ServerURL:      jsonCfg.Client.ServerURL,
			Name:           jsonCfg.Client.Name,
			JoinCode:       jsonCfg.Client.JoinCode,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Party: Party{
			MinMembers:    jsonCfg.Party.MinMembers,
			InitialBatch:  jsonCfg.Party.InitialBatch,
			BatchSize:     jsonCfg.Party.BatchSize,
			DeckSize:      jsonCfg.Party.DeckSize,
			SweepInterval: time.Duration(jsonCfg.Party.SweepInterval),
			IdleTTL:       time.Duration(jsonCfg.Party.IdleTTL),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
