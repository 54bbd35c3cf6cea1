package commands

import (
	"github.com/loykin/pagesbadge/cmd/pagesbadge/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree around v. Flags are bound to v so that
// flag > env > config file > default.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "pagesbadge",
		Short:         "Serve Shields.io badges for Cloudflare Pages deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	root.PersistentFlags().String("log-level", v.GetString("logging.level"), "log level: error, warn, info, debug")
	root.PersistentFlags().String("log-format", v.GetString("logging.format"), "log format: text, json, color")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newServeCmd(v))
	root.AddCommand(newResolveCmd(v))
	root.AddCommand(newConfigCmd(v))
	return root
}

// loadConfig decodes v, installs the configured logger and optionally validates.
func loadConfig(v *viper.Viper, validate bool) (*config.Config, error) {
	cfg, err := config.Load(v, v.GetString("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.SetupLogging(); err != nil {
		return nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
