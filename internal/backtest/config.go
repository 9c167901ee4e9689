package backtest

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// Config holds the strategy parameters. Thresholds are data, not constants,
// so the same engine can run strategy variants.
type Config struct {
	// RSIPeriod is the lookback window of the RSI column.
	RSIPeriod int `yaml:"rsi_period" validate:"required,min=1"`
	// RSIThreshold is the oversold level the entry condition requires the
	// latest RSI to be strictly below.
	RSIThreshold float64 `yaml:"rsi_threshold" validate:"required,gt=0,lt=100"`
	// FastPeriod is the window of the faster moving average.
	FastPeriod int `yaml:"fast_period" validate:"required,min=1"`
	// SlowPeriod is the window of the slower moving average. It must exceed
	// FastPeriod for the crossover to mean anything.
	SlowPeriod int `yaml:"slow_period" validate:"required,gtfield=FastPeriod"`
	// HoldingDays is the fixed horizon between entry and exit, in trading days.
	HoldingDays int `yaml:"holding_days" validate:"required,min=1"`
}

// DefaultConfig returns the standard strategy parameters: RSI(14) below 30
// with a 20/50-day crossover and a 5-day hold.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:    14,
		RSIThreshold: 30,
		FastPeriod:   20,
		SlowPeriod:   50,
		HoldingDays:  5,
	}
}

// LoadConfig reads strategy parameters from a YAML file, filling in defaults
// for omitted fields.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeBacktestConfigError, err, "failed to read config file %s", path)
	}

	return ParseConfig(string(content))
}

// ParseConfig parses strategy parameters from YAML content, filling in
// defaults for omitted fields.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse strategy config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the parameters against their constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	return nil
}

// minBars is the smallest cleaned series the simulator can trade on: one bar
// of signal history, an entry bar, and the holding window.
func (c Config) minBars() int {
	return c.HoldingDays + 2
}
