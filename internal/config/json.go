package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		ProtocolSalt    string   `json:"protocol_salt"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		VaultKeyPolicy  string   `json:"vault_key_policy"`
		VaultPassphrase string   `json:"vault_passphrase"`
		SubjectID       string   `json:"subject_id"`
		LogFile         string   `json:"log_file"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		LedgerAddress    string   `json:"ledger_address"`
		EngineAddress    string   `json:"engine_address"`
		BlobStoreAddress string   `json:"blob_store_address"`
		RequestTimeout   Duration `json:"request_timeout"`
		RetryAttempts    uint64   `json:"retry_attempts"`
		RetryBackoff     Duration `json:"retry_backoff"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ReconcileInterval Duration `json:"reconcile_interval"`
		RequestTTL        Duration `json:"request_ttl"`
	} `json:"workers,omitempty"`
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
			ProtocolSalt:    jsonCfg.App.ProtocolSalt,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			VaultKeyPolicy:  jsonCfg.App.VaultKeyPolicy,
			VaultPassphrase: jsonCfg.App.VaultPassphrase,
			SubjectID:       jsonCfg.App.SubjectID,
			LogFile:         jsonCfg.App.LogFile,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DBConfig{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			LedgerAddress:    jsonCfg.Adapter.LedgerAddress,
			EngineAddress:    jsonCfg.Adapter.EngineAddress,
			BlobStoreAddress: jsonCfg.Adapter.BlobStoreAddress,
			RequestTimeout:   time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryAttempts:    jsonCfg.Adapter.RetryAttempts,
			RetryBackoff:     time.Duration(jsonCfg.Adapter.RetryBackoff),
		},
		Workers: Workers{
			ReconcileInterval: time.Duration(jsonCfg.Workers.ReconcileInterval),
			RequestTTL:        time.Duration(jsonCfg.Workers.RequestTTL),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
