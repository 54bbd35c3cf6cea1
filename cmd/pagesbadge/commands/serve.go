package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/internal/resolve"
	"github.com/loykin/pagesbadge/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the badge HTTP endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, true)
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			resolver := resolve.NewResolver(cloudflare.NewClient(cfg.ClientOptions()))
			return server.New(resolver, cfg.ServerOptions()).Run(ctx)
		},
	}
	cmd.Flags().String("addr", v.GetString("server.addr"), "listen address")
	cmd.Flags().Bool("metrics", v.GetBool("server.metrics"), "expose Prometheus metrics on /metrics")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("server.metrics", cmd.Flags().Lookup("metrics"))
	return cmd
}
