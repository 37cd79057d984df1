// Package cmd implements the CLI application to browse the crypto market and
// manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/mockapi"
	"github.com/etnz/cryptotracker/remote"
	"github.com/etnz/cryptotracker/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Environment variables read when the matching flag is not set.
const (
	EnvGateway     = "CT_GATEWAY"       // gateway, mock or remote
	EnvAPIURL      = "CT_API_URL"       // remote API base URL
	EnvAPIListPath = "CT_API_LIST_PATH" // JSONPath of the asset array in the list response
	EnvPortfolio   = "CT_PORTFOLIO"     // initial holdings, id=amount,...
	EnvVerbose     = "CT_VERBOSE"       // debug logs when true
	EnvCopyright   = "COPYRIGHT_TEXT"   // footer text, no flag
)

// commands lists the subcommands with their help group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&listCmd{}, "market"},
	{&detailsCmd{}, "market"},

	{&portfolioCmd{}, "portfolio"},
	{&addCmd{}, "portfolio"},
	{&updateCmd{}, "portfolio"},
	{&removeCmd{}, "portfolio"},

	{&shellCmd{}, ""},
	{&AssistCmd{}, ""},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// mockLatency is the simulated round trip of the mock gateway.
const mockLatency = 300 * time.Millisecond

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var gatewayFlag = flag.String("gateway", "", "Market data gateway, 'mock' or 'remote'.\n If missing it will read for the environment variable \""+EnvGateway+"\", 'mock' by default.")
var apiURL = flag.String("api-url", "", "Base URL of the remote market data API.\n If missing it will read for the environment variable \""+EnvAPIURL+"\", "+remote.DefaultBaseURL+" by default.")
var apiListPath = flag.String("api-list-path", "", "JSONPath of the asset array in the remote list response, e.g. '$.data'.\n If missing it will read for the environment variable \""+EnvAPIListPath+"\".")
var portfolioFlag = flag.String("portfolio", "", "Initial holdings as a comma separated list of id=amount, e.g. 'bitcoin=0.5,ethereum=2'.\n If missing it will read for the environment variable \""+EnvPortfolio+"\".")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose output, it logs every action dispatched.\n It can also be enabled with the environment variable \""+EnvVerbose+"\".")

// env returns the flag value, or the environment variable, or the default.
func env(flagValue, name, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// Logger returns the application logger, writing to stderr.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	verbose := *Verbose
	if v, err := strconv.ParseBool(os.Getenv(EnvVerbose)); err == nil && v {
		verbose = true
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// NewGateway returns the configured gateway.
func NewGateway(log logrus.FieldLogger) (cryptotracker.Gateway, error) {
	switch g := env(*gatewayFlag, EnvGateway, "mock"); g {
	case "mock":
		return mockapi.New(mockLatency), nil
	case "remote":
		return remote.New(env(*apiURL, EnvAPIURL, remote.DefaultBaseURL), env(*apiListPath, EnvAPIListPath, ""), log), nil
	default:
		return nil, fmt.Errorf("unknown gateway %q, expected 'mock' or 'remote'", g)
	}
}

// OpenStore returns a store over the configured gateway, seeded with the
// configured holdings.
func OpenStore() (*cryptotracker.Store, error) {
	log := Logger()
	gw, err := NewGateway(log)
	if err != nil {
		return nil, err
	}
	holdings, err := ParseHoldings(env(*portfolioFlag, EnvPortfolio, ""))
	if err != nil {
		return nil, err
	}
	initial := cryptotracker.NewState()
	initial.Portfolio = holdings
	return cryptotracker.NewStore(gw, cryptotracker.WithLogger(log), cryptotracker.WithInitialState(initial)), nil
}

// Footer returns the configured footer text.
func Footer() string { return env("", EnvCopyright, renderer.DefaultFooter) }

// ParseHoldings parses a comma separated list of id=amount.
func ParseHoldings(s string) ([]cryptotracker.Holding, error) {
	var holdings []cryptotracker.Holding
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, amount, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid holding %q, expected id=amount", item)
		}
		h, err := parseHolding(id, amount)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// parseHolding parses a holding, the amount must be a positive number.
func parseHolding(id, amount string) (cryptotracker.Holding, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cryptotracker.Holding{}, fmt.Errorf("missing asset id")
	}
	q, err := cryptotracker.ParseQuantity(amount)
	if err != nil {
		return cryptotracker.Holding{}, fmt.Errorf("invalid amount for %s: %w", id, err)
	}
	if q.IsNegative() || q.IsZero() {
		return cryptotracker.Holding{}, fmt.Errorf("amount for %s must be positive, got %s", id, q)
	}
	return cryptotracker.Holding{AssetID: id, Amount: q.Float()}, nil
}
