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
//	-a server listen address in format [host]:[port]
//	-d catalog database DSN (SQLite path or ":memory:")
//	-server-url party server base URL for the client
//	-name display name for the client
//	-join invite code to join directly
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-min-members members required to activate a party
//	-initial-batch size of the first candidate delivery
//	-batch-size size of each request-more delivery
//	-deck-size candidates drawn per party
//	-sweep-interval idle party sweep period
//	-idle-ttl idle party lifetime
func ParseFlags() *StructuredConfig {
	var listenAddress NetAddress
	var databaseDSN string
	var serverURL string
	var name string
	var joinCode string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var minMembers int
	var initialBatch int
	var batchSize int
	var deckSize int
	var sweepInterval time.Duration
	var idleTTL time.Duration

	flag.Var(&listenAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Catalog database DSN")
	flag.StringVar(&serverURL, "server-url", "", "Party server base URL")
	flag.StringVar(&name, "name", "", "Display name")
	flag.StringVar(&joinCode, "join", "", "Invite code to join")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&minMembers, "min-members", 0, "Members required to activate a party")
	flag.IntVar(&initialBatch, "initial-batch", 0, "Initial candidate delivery size")
	flag.IntVar(&batchSize, "batch-size", 0, "Incremental delivery size")
	flag.IntVar(&deckSize, "deck-size", 0, "Candidates drawn per party")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Idle party sweep period")
	flag.DurationVar(&idleTTL, "idle-ttl", 0, "Idle party lifetime")

	flag.Parse()

	return &StructuredConfig{
		Client: Client{
			ServerURL:      serverURL,
			Name:           name,
			JoinCode:       joinCode,
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Party: Party{
			MinMembers:    minMembers,
			InitialBatch:  initialBatch,
			BatchSize:     batchSize,
			DeckSize:      deckSize,
			SweepInterval: sweepInterval,
			IdleTTL:       idleTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
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

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
