package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/contactsim/internal/logging"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CONTACTSIM"

	cfgKeyPageSize  = "page_size"
	cfgKeyBatchSize = "batch_size"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	PageSize  int
	BatchSize int
	DataDir   string
	Logging   logging.Config
}

func defaultSettings() settings {
	return settings{
		PageSize:  types.DefaultPageSize,
		BatchSize: types.DefaultBatchSize,
		Logging:   logging.DefaultConfig,
	}
}

// loadSettings reads config.yaml from configDir using Viper. CONTACTSIM_*
// environment variables override file values. A missing config.yaml is not
// an error.
func loadSettings(configDir string) (settings, error) {
	defaults := defaultSettings()

	v := viper.New()
	v.SetDefault(cfgKeyPageSize, defaults.PageSize)
	v.SetDefault(cfgKeyBatchSize, defaults.BatchSize)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyLogLevel, defaults.Logging.Level)
	v.SetDefault(cfgKeyLogFormat, defaults.Logging.Format)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, sysError{fmt.Errorf("read config: %w", err)}
		}
	}

	s := settings{
		PageSize:  v.GetInt(cfgKeyPageSize),
		BatchSize: v.GetInt(cfgKeyBatchSize),
		DataDir:   v.GetString(cfgKeyDataDir),
		Logging: logging.Config{
			Level:  v.GetString(cfgKeyLogLevel),
			Format: v.GetString(cfgKeyLogFormat),
		},
	}
	if s.PageSize <= 0 {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyPageSize, types.ErrPageSizeInvalid)
	}
	if s.BatchSize <= 0 {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyBatchSize, types.ErrBatchSizeInvalid)
	}
	return s, nil
}
