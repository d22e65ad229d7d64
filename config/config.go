package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	OctaveDevBaseURL  = "https://dev.octavehq.com/api/v2"
	OctaveProdBaseURL = "https://app.octavehq.com/api/v2"
)

var Config Configuration

type Configuration struct {
	Mode   string `mapstructure:"mode"`
	OpenAI struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"openai"`
	Octave struct {
		APIKey           string `mapstructure:"api_key"`
		BaseURL          string `mapstructure:"base_url"`
		EnrichCompanyOID string `mapstructure:"enrich_company_oid"`
		EnrichPersonOID  string `mapstructure:"enrich_person_oid"`
		SequenceOID      string `mapstructure:"sequence_oid"`
	} `mapstructure:"octave"`
	Server struct {
		Port    string `mapstructure:"port"`
		MCPPort string `mapstructure:"mcp_port"`
	} `mapstructure:"server"`
}

// OctaveBaseURL resolves the enrichment API host from the explicit override
// or the dev/prod mode.
func (c Configuration) OctaveBaseURL() string {
	if c.Octave.BaseURL != "" {
		return c.Octave.BaseURL
	}
	if c.Mode == "prod" {
		return OctaveProdBaseURL
	}
	return OctaveDevBaseURL
}

func LoadConfig(mode string) error {
	viper.SetConfigName(mode)     // name of config file (without extension)
	viper.SetConfigType("yaml")   // required if config file doesn't have an extension
	viper.AddConfigPath("config") // look for config in the working directory

	viper.AutomaticEnv() // override config file with environment variables

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := viper.Unmarshal(&Config); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if Config.Mode == "" {
		Config.Mode = mode
	}

	return nil
}
