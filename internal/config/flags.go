package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args on a private FlagSet, so it
// can be called more than once and from tests.
//
// Flags:
//
//	-a http server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-protocol-salt protocol salt for address derivation
//	-token-issuer transaction signature issuer
//	-token-duration transaction signature lifetime (e.g., "5m")
//	-request-timeout inbound request timeout (e.g., "30s")
//	-vault-key-policy vault key policy (passphrase|identity)
//	-subject default identity credential
//	-log-file client log file
//	-ledger-address ledger base URL
//	-engine-address analysis engine base URL
//	-blob-store-address blob store base URL
//	-adapter-timeout outbound request timeout
//	-retry-attempts ledger retry attempts
//	-retry-backoff ledger retry backoff base
//	-reconcile-interval reconcile worker period
//	-request-ttl pending request lifetime
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.ProtocolSalt, "protocol-salt", "", "Protocol salt")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Transaction signature issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Transaction signature lifetime (e.g., 5m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.App.VaultKeyPolicy, "vault-key-policy", "", "Vault key policy (passphrase|identity)")
	fs.StringVar(&cfg.App.SubjectID, "subject", "", "Default identity credential")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")
	fs.StringVar(&cfg.Adapter.LedgerAddress, "ledger-address", "", "Ledger base URL")
	fs.StringVar(&cfg.Adapter.EngineAddress, "engine-address", "", "Analysis engine base URL")
	fs.StringVar(&cfg.Adapter.BlobStoreAddress, "blob-store-address", "", "Blob store base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "Outbound request timeout")
	fs.Uint64Var(&cfg.Adapter.RetryAttempts, "retry-attempts", 0, "Ledger retry attempts")
	fs.DurationVar(&cfg.Adapter.RetryBackoff, "retry-backoff", 0, "Ledger retry backoff base")
	fs.DurationVar(&cfg.Workers.ReconcileInterval, "reconcile-interval", 0, "Reconcile worker period")
	fs.DurationVar(&cfg.Workers.RequestTTL, "request-ttl", 0, "Pending request lifetime")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
