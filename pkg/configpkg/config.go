// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	LedgerBaseURL string        `mapstructure:"LEDGER_BASE_URL"`
	LedgerTimeout time.Duration `mapstructure:"LEDGER_TIMEOUT"`
	PartyA        string        `mapstructure:"PARTY_A"`
	PartyB        string        `mapstructure:"PARTY_B"`
	Environement  string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("LEDGER_TIMEOUT", 30*time.Second)
	viper.SetDefault("PARTY_A", "Aさん")
	viper.SetDefault("PARTY_B", "Bさん")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
