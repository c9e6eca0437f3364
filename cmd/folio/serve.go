package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adityajain1310/folio/internal/config"
	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/adityajain1310/folio/internal/logging"
	"github.com/adityajain1310/folio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var (
		port     int
		host     string
		genToken bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio to remote viewers and collect contact messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.Server.AuthToken == "" && genToken {
				t, err := config.GenerateToken()
				if err != nil {
					return err
				}
				cfg.Server.AuthToken = t
				fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", t)
			}
			return serve(cmd, cfg, log)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&host, "host", "", "override listen host")
	cmd.Flags().BoolVar(&genToken, "generate-token", false, "require a fresh random token when none is configured")
	return cmd
}

func serve(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) error {
	data, err := content.LoadOrDefault(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	var store server.MessageStore
	if cfg.Inbox.Path != "" {
		ib, err := inbox.Open(cfg.Inbox.Path)
		if err != nil {
			return err
		}
		defer ib.Close()
		store = ib
		log.Info("inbox open", zap.String("path", ib.Path()))
	}

	b := server.NewBroadcaster(*data, cfg.Server.MaxConnections, log)
	srv := server.New(cfg.Server, b, store, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	if cfg.Content.Path != "" && cfg.Content.Watch {
		w := server.NewWatcher(cfg.Content.Path, b.Publish, log)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}
	return g.Wait()
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a random auth token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := config.GenerateToken()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t)
			return err
		},
	}
}
