package config

import (
	"flag"
	"fmt"
	"runtime"

	"sigmazk/pkg/log"
)

// Scenario names one of the demo flows cmd/sigmacli can run, each exercising
// a different testable property from statement/rangeproof.
type Scenario string

const (
	ScenarioDLRep     Scenario = "dlrep"
	ScenarioAnd       Scenario = "and"
	ScenarioOr        Scenario = "or"
	ScenarioRange     Scenario = "range"
	ScenarioFiatShamir Scenario = "fiatshamir"
	ScenarioBatch     Scenario = "batch"
)

// Config holds all parameters for a demo run.
type Config struct {
	Scenario Scenario
	Suite    string // kyber suite name, e.g. "Ed25519".
	Runs     uint64 // Number of independent proof runs (batch scenario).
	Cores    int    // Number of cores for pkg/batch's parallel verification.

	NrBits uint // Parsed from -bits; the range scenario sizes its proofs from Lower/Upper and does not read it.
	Lower  int64
	Upper  int64

	Seed     string // Seed for a deterministic RandomStream.
	LogLevel log.LogLevel
}

// NewConfig creates a new Config by parsing command-line flags.
func NewConfig() *Config {
	scenario := flag.String("scenario", "dlrep", "Demo scenario to run (dlrep, and, or, range, fiatshamir, batch).")
	suite := flag.String("suite", "Ed25519", "kyber suite to use.")
	runs := flag.Uint64("runs", 8, "Number of independent proof runs for the batch scenario.")
	cores := flag.Int("cores", 0, "Number of CPU cores for batch verification (0 for all).")
	nrBits := flag.Uint("bits", 8, "Bit width (not read by the range scenario, which derives it from -lower/-upper).")
	lower := flag.Int64("lower", 0, "Lower bound (inclusive) for the range scenario.")
	upper := flag.Int64("upper", 256, "Upper bound (exclusive) for the range scenario.")
	seed := flag.String("seed", "sigmazk", "Seed for the deterministic RandomStream.")
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, error).")
	flag.Parse()

	setLogLevel(*logLevel)

	config := &Config{
		Scenario: Scenario(*scenario),
		Suite:    *suite,
		Runs:     *runs,
		Cores:    getCores(*cores),
		NrBits:   *nrBits,
		Lower:    *lower,
		Upper:    *upper,
		Seed:     *seed,
	}
	log.Debug("Config: %s", config)
	return config
}

// String returns a string representation of the Config instance.
func (c *Config) String() string {
	return fmt.Sprintf("Config%+v", *c)
}

func getCores(cores int) int {
	if cores <= 0 {
		return runtime.NumCPU()
	}
	return cores
}

// setLogLevel sets the global log level to one of "trace", "debug", "info",
// or "error". Defaults to "info" on invalid input.
func setLogLevel(logLevel string) {
	switch logLevel {
	case "trace":
		log.SetLevel(log.LevelTrace)
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "info":
		log.SetLevel(log.LevelInfo)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.Info("Unknown log level '%s', defaulting to 'info'", logLevel)
		log.SetLevel(log.LevelInfo)
	}
}
