package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ShopperConfig drives the terminal shopper. Flags override these values.
type ShopperConfig struct {
	APIURL   string `envconfig:"SAREE_SHOPPER_API_URL" default:"http://localhost:8080"`
	DataDir  string `envconfig:"SAREE_SHOPPER_DATA_DIR" default:".pariney"`
	Email    string `envconfig:"SAREE_SHOPPER_EMAIL"`
	Password string `envconfig:"SAREE_SHOPPER_PASSWORD"`
	Token    string `envconfig:"SAREE_SHOPPER_TOKEN"`
	LogLevel string `envconfig:"SAREE_LOG_LEVEL" default:"warn"`
}

func LoadShopper() (*ShopperConfig, error) {
	var cfg ShopperConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing shopper config: %w", err)
	}
	return &cfg, nil
}
