package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-hash-key request integrity hash key
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-indexer-address indexer base URL
//	-indexer-timeout indexer request timeout (e.g., "10s")
//	-authz-mode authorization mode ("owner" or "fga")
//	-fga-api-url OpenFGA server base URL
//	-fga-store-id OpenFGA store id
//	-fga-model-id OpenFGA authorization model id
//	-sync-interval index sync worker interval (e.g., "1m")
//	-sync-batch index sync worker batch size
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var hashKey string
	var requestTimeout time.Duration
	var indexerAddress string
	var indexerTimeout time.Duration
	var authzMode string
	var fgaAPIURL string
	var fgaStoreID string
	var fgaModelID string
	var syncInterval time.Duration
	var syncBatchSize int

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&indexerAddress, "indexer-address", "", "Indexer base URL")
	flag.DurationVar(&indexerTimeout, "indexer-timeout", 0, "Indexer request timeout (e.g., 10s)")
	flag.StringVar(&authzMode, "authz-mode", "", "Authorization mode (owner or fga)")
	flag.StringVar(&fgaAPIURL, "fga-api-url", "", "OpenFGA server base URL")
	flag.StringVar(&fgaStoreID, "fga-store-id", "", "OpenFGA store id")
	flag.StringVar(&fgaModelID, "fga-model-id", "", "OpenFGA authorization model id")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Index sync worker interval (e.g., 1m)")
	flag.IntVar(&syncBatchSize, "sync-batch", 0, "Index sync worker batch size")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Indexer: Indexer{
			Address:        indexerAddress,
			RequestTimeout: indexerTimeout,
		},
		Authz: Authz{
			Mode: authzMode,
			FGA: FGA{
				APIURL:  fgaAPIURL,
				StoreID: fgaStoreID,
				ModelID: fgaModelID,
			},
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			SyncBatchSize: syncBatchSize,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
