package config

import (
	"errors"
	"flag"
	"fmt"
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

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-s identity store backend (memory, file, sql)
//	-f identity store file path
//	-durability file store durability (best-effort, strict)
//	-driver sql driver (postgres, sqlite3)
//	-d database DSN
//	-env deployment environment
//	-verification-url verification API base URL
//	-verification-timeout verification call timeout (e.g., "5s")
//	-request-timeout request timeout (e.g., "30s", "1m")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("identity-portal", flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	var backend, storePath, durability, driver, dsn string
	var appEnv, verificationURL string
	var verificationTimeout, requestTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&backend, "s", "", "Identity store backend: memory, file or sql")
	fs.StringVar(&storePath, "f", "", "Identity store file path")
	fs.StringVar(&durability, "durability", "", "File store durability: best-effort or strict")
	fs.StringVar(&driver, "driver", "", "SQL driver: postgres or sqlite3")
	fs.StringVar(&dsn, "d", "", "Database DSN")
	fs.StringVar(&appEnv, "env", "", "Deployment environment")
	fs.StringVar(&verificationURL, "verification-url", "", "Verification API base URL")
	fs.DurationVar(&verificationTimeout, "verification-timeout", 0, "Verification timeout (e.g., 5s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Env: appEnv,
		},
		Storage: Storage{
			Backend:    backend,
			Path:       storePath,
			Durability: durability,
			Driver:     driver,
			DSN:        dsn,
		},
		Verification: Verification{
			BaseURL: verificationURL,
			Timeout: verificationTimeout,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
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
// An empty host listens on all interfaces.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
