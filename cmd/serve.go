package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-cards/cmd/config"
	"github.com/mattsolo1/grove-cards/internal/server"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

func NewServeCmd(env *Env) *cobra.Command {
	var (
		addr    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card view as a JSON API",
		Long: `Serve the vault's cards over HTTP.

Endpoints:
  GET  /health
  GET  /api/cards?folder=&q=
  GET  /api/search?q=&limit=&folder=
  POST /api/notes            {"folder": "..."}
  GET  /api/settings
  PUT  /api/settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.Open()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = viper.GetString("server.addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !noWatch && s.Index != nil {
				changes, err := env.Vault.Watch(ctx, vault.DefaultDebounce)
				if err != nil {
					env.Logger.WithError(err).Warn("vault watcher unavailable, index will not follow changes")
				} else {
					go func() {
						for change := range changes {
							s.Refresh(ctx, change)
						}
					}()
				}
			}

			srv := server.New(server.Config{
				Addr:         addr,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				Debug:        env.Logger.IsLevelEnabled(logrus.DebugLevel),
			}, s, config.ViperSettings{}, env.Logger)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reindex changed notes")

	return cmd
}
