package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig holds the tunable parameters of the scoring engine. Base-score
// branch rules are fixed policy and live in code; everything an approval desk
// might retune per region (multiplier tiers, tier boundaries, overrides,
// approver role names) is configurable here. Zero values are filled from the
// engine defaults, so a partial config file only overrides what it names.
type EngineConfig struct {
	// MultiplierTiers maps ACV ranges to score multipliers. Tiers must be
	// sorted by ascending UpTo; a final tier with UpTo=0 is unbounded.
	MultiplierTiers []MultiplierTier `yaml:"multiplier_tiers" mapstructure:"multiplier_tiers"`

	// Tier boundaries, inclusive on the lower tier.
	LowTierMax    float64 `yaml:"low_tier_max" mapstructure:"low_tier_max"`
	MediumTierMax float64 `yaml:"medium_tier_max" mapstructure:"medium_tier_max"`

	// Override values.
	NonStandardFloor float64 `yaml:"non_standard_floor" mapstructure:"non_standard_floor"`
	BreakClauseScore float64 `yaml:"break_clause_score" mapstructure:"break_clause_score"`

	Approvers ApproverRoles `yaml:"approvers" mapstructure:"approvers"`
}

// MultiplierTier is one step of the ACV multiplier function. UpTo is the
// inclusive upper bound in dollars; 0 means no upper bound.
type MultiplierTier struct {
	UpTo       int64   `yaml:"up_to" mapstructure:"up_to"`
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`
}

// ApproverRoles names the approver roles referenced by the routing rules.
type ApproverRoles struct {
	SalesOps     string `yaml:"sales_ops" mapstructure:"sales_ops"`
	RevOps       string `yaml:"rev_ops" mapstructure:"rev_ops"`
	Finance      string `yaml:"finance" mapstructure:"finance"`
	Legal        string `yaml:"legal" mapstructure:"legal"`
	DeliveryLead string `yaml:"delivery_lead" mapstructure:"delivery_lead"`
	CSM          string `yaml:"csm" mapstructure:"csm"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ORS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
