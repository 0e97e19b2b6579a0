package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type starterConfig struct {
	Telegram struct {
		BotToken    string `yaml:"bot_token"`
		AdminID     int64  `yaml:"admin_id"`
		PollTimeout int    `yaml:"poll_timeout"`
	} `yaml:"telegram"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Catalog struct {
		DuplicatePolicy string `yaml:"duplicate_policy"`
	} `yaml:"catalog"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Healthcheck struct {
		Listen string `yaml:"listen"`
	} `yaml:"healthcheck"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			dir = filepath.Clean(dir)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists: %s", cfgPath)
			}

			var cfg starterConfig
			cfg.Telegram.BotToken = "REPLACE_ME"
			cfg.Telegram.AdminID = 0
			cfg.Telegram.PollTimeout = 60
			cfg.Storage.Path = "file_storage.json"
			cfg.Catalog.DuplicatePolicy = "allow"
			cfg.Logging.Level = "info"
			cfg.Logging.Format = "text"
			cfg.Healthcheck.Listen = ""

			body, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, body, 0o600); err != nil {
				return err
			}

			fmt.Printf("initialized %s\n", cfgPath)
			return nil
		},
	}
}
