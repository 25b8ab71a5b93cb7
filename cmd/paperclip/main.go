// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperclip CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperclip/internal/observability"
	"github.com/pdiddy/paperclip/internal/secrets"
	"github.com/pdiddy/paperclip/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is the resolved configuration: defaults, then config file,
	// then PAPERCLIP_* environment, then .secrets/ for unset credentials.
	appConfig types.Config

	// logger is built from appConfig.Log once configuration is loaded.
	logger zerolog.Logger
)

// rootCmd is the base command for the paperclip CLI.
var rootCmd = &cobra.Command{
	Use:   "paperclip",
	Short: "Detect article metadata on a page and submit it to a library",
	Long: `paperclip extracts the title, authors, and abstract of a scholarly article
from its web page. It looks for a DOI or PMID on the page and asks Crossref
and PubMed first, then scrapes the page itself for anything still missing.

The reviewed record can be submitted to a library service, and the serve
command exposes both operations to a browser extension over local HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = observability.NewLogger(cfg.Log)

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		s.Apply(&appConfig)
		if len(s) > 0 {
			logger.Debug().Strs("keys", s.Keys()).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperclip.yaml or ~/.config/paperclip/paperclip.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error, off")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperclip")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperclip"))
		}
	}

	viper.SetEnvPrefix("PAPERCLIP")
	viper.SetEnvKeyReplacer(envKeyReplacer())
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// envKeyReplacer maps nested keys such as pubmed.api_key to
// PAPERCLIP_PUBMED_API_KEY.
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// setDefaults registers every configuration key so that environment
// variables are honoured by Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("crossref.base_url", d.Crossref.BaseURL)
	v.SetDefault("crossref.mailto", d.Crossref.Mailto)
	v.SetDefault("pubmed.base_url", d.PubMed.BaseURL)
	v.SetDefault("pubmed.api_key", d.PubMed.APIKey)
	v.SetDefault("pubmed.rate_limit", d.PubMed.RateLimit)
	v.SetDefault("pubmed.burst", d.PubMed.Burst)
	v.SetDefault("library.endpoint", d.Library.Endpoint)
	v.SetDefault("library.frontend_url", d.Library.FrontendURL)
	v.SetDefault("library.token", d.Library.Token)
	v.SetDefault("library.submission_type", d.Library.SubmissionType)
	v.SetDefault("library.community_name", d.Library.CommunityName)
	v.SetDefault("browser.remote_url", d.Browser.RemoteURL)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.stealth", d.Browser.Stealth)
	v.SetDefault("browser.navigate_timeout", d.Browser.NavigateTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
}

// loadConfig unmarshals the viper state over the defaults.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
