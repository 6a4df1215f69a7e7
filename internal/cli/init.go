package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	PageSize  int    `yaml:"page_size"`
	BatchSize int    `yaml:"batch_size"`
	DataDir   string `yaml:"data_dir,omitempty"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and transcript store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return sysError{fmt.Errorf("create config directory: %w", err)}
			}
			configPath := filepath.Join(a.configDir, configFileExt)
			if err := writeConfigIfMissing(configPath, a.settings, a.dataDir); err != nil {
				return sysError{fmt.Errorf("write config: %w", err)}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return sysError{fmt.Errorf("close transcript store: %w", err)}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "contactsim initialized (config: %s)\n", configPath)
			return nil
		},
	}
}

// writeConfigIfMissing creates config.yaml from s unless the file exists.
func writeConfigIfMissing(path string, s settings, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if dataDir == "" {
		dataDir = s.DataDir
	}
	cfg := configFile{
		PageSize:  s.PageSize,
		BatchSize: s.BatchSize,
		DataDir:   dataDir,
		LogLevel:  s.Logging.Level,
		LogFormat: s.Logging.Format,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
