package commands

import (
	"fmt"

	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/internal/resolve"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StatusError is returned when a badge resolves to an error status, so the
// process exits non-zero after printing the badge.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("badge resolved with status %d: %s", e.StatusCode, e.Message)
}

func newResolveCmd(v *viper.Viper) *cobra.Command {
	var q resolve.Query
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one badge and print its JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, true)
			if err != nil {
				return err
			}
			resolver := resolve.NewResolver(cloudflare.NewClient(cfg.ClientOptions()))
			res := resolver.Resolve(cmd.Context(), q)
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(res.Badge.JSON())); err != nil {
				return err
			}
			if res.StatusCode >= 400 {
				return &StatusError{StatusCode: res.StatusCode, Message: res.Badge.Message}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.ProjectName, "project", "", "Pages project name")
	cmd.Flags().StringVar(&q.Branch, "branch", "", "only consider deployments of this branch")
	cmd.Flags().BoolVar(&q.ShowEnvironment, "show-env", false, "label the badge with the deployment environment")
	return cmd
}
