package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries the settings shared by the tokconvert and unkcheck binaries.
// Every field has a default, so both tools run without arguments.
type Config struct {
	Model     string `mapstructure:"model"`
	OutputDir string `mapstructure:"output_dir"`
	Text      string `mapstructure:"text"`
	ModelPath string `mapstructure:"model_path"`
	CacheDir  string `mapstructure:"cache_dir"`
	AuthToken string `mapstructure:"auth_token"`
	Normalize bool   `mapstructure:"normalize"`
	LogLevel  string `mapstructure:"log_level"`
	LogFile   string `mapstructure:"log_file"`
}

const (
	// DefaultConvertModel is the tokenizer/model pair the conversion tool
	// targets when no --model flag is given.
	DefaultConvertModel = "google/muril-base-cased"

	// DefaultConvertText is the Hindi smoke-test sentence encoded after the
	// fast tokenizer round-trips through disk.
	DefaultConvertText = "यह एक परीक्षण वाक्य है।"

	// DefaultOutputDir is where the serialized fast tokenizer lands.
	DefaultOutputDir = "./muril-fast-tokenizer"
)

// LoadConvert parses configuration for the tokconvert binary.
func LoadConvert() (*Config, error) {
	viper.SetDefault("model", DefaultConvertModel)
	viper.SetDefault("output_dir", DefaultOutputDir)
	viper.SetDefault("text", DefaultConvertText)
	setCommonDefaults()

	flagSet := pflag.NewFlagSet("tokconvert", pflag.ContinueOnError)
	configFile := flagSet.StringP("config", "c", "", "Path to config file")
	flagSet.StringP("model", "m", "", "Pretrained model identifier")
	flagSet.StringP("output-dir", "o", "", "Directory to save the fast tokenizer into")
	flagSet.StringP("text", "t", "", "Sample text for the encode/forward smoke test")
	flagSet.String("model-path", "", "Path to a local ONNX encoder (resolved from the hub when empty)")
	bindCommonFlags(flagSet)
	helpFlag := flagSet.BoolP("help", "h", false, "Show help message")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *helpFlag {
		fmt.Fprintf(os.Stderr, "Usage: tokconvert [options]\n\nOptions:\n")
		flagSet.PrintDefaults()
		os.Exit(0)
	}

	for key, flag := range map[string]string{
		"model":      "model",
		"output_dir": "output-dir",
		"text":       "text",
		"model_path": "model-path",
	} {
		if err := viper.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return nil, err
		}
	}
	if err := bindCommonKeys(flagSet); err != nil {
		return nil, err
	}

	return finish("tokconvert", *configFile)
}

// LoadVerify parses configuration for the unkcheck binary.
func LoadVerify() (*Config, error) {
	setCommonDefaults()

	flagSet := pflag.NewFlagSet("unkcheck", pflag.ContinueOnError)
	configFile := flagSet.StringP("config", "c", "", "Path to config file")
	flagSet.Bool("normalize", false, "Apply NFC normalization to sample texts before encoding")
	bindCommonFlags(flagSet)
	helpFlag := flagSet.BoolP("help", "h", false, "Show help message")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *helpFlag {
		fmt.Fprintf(os.Stderr, "Usage: unkcheck [options]\n\nOptions:\n")
		flagSet.PrintDefaults()
		os.Exit(0)
	}

	if err := viper.BindPFlag("normalize", flagSet.Lookup("normalize")); err != nil {
		return nil, err
	}
	if err := bindCommonKeys(flagSet); err != nil {
		return nil, err
	}

	return finish("unkcheck", *configFile)
}

func setCommonDefaults() {
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("auth_token", "")
	viper.SetDefault("normalize", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")
}

func bindCommonFlags(flagSet *pflag.FlagSet) {
	flagSet.String("cache-dir", "", "Directory for downloaded pretrained artifacts")
	flagSet.String("auth-token", "", "Hub access token for gated repositories")
	flagSet.StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	flagSet.String("log-file", "", "Log file path")
}

func bindCommonKeys(flagSet *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"cache_dir":  "cache-dir",
		"auth_token": "auth-token",
		"log_level":  "log-level",
		"log_file":   "log-file",
	} {
		if err := viper.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func finish(name, configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(name + ".cfg")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("configs")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "unkcheck"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvPrefix("UNKCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
