package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/adityajain1310/folio/internal/app"
	"github.com/adityajain1310/folio/internal/client"
	"github.com/adityajain1310/folio/internal/config"
	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/adityajain1310/folio/internal/logging"
	"github.com/adityajain1310/folio/internal/prefs"
	"github.com/adityajain1310/folio/internal/server"
	"github.com/adityajain1310/folio/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultStaticWidth = 100

var (
	configPath  string
	contentPath string
	token       string

	wsURL     string
	themeName string
	static    bool
)

// Execute runs the folio command line.
func Execute() error {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "A personal portfolio in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "folio.yaml", "path to config file")
	pf.StringVar(&contentPath, "content", "", "portfolio YAML file (default: built-in portfolio)")
	pf.StringVar(&token, "token", "", "shared auth token")

	root.Flags().StringVar(&wsURL, "url", "", "WebSocket URL of a folio server, e.g. ws://127.0.0.1:8080/ws")
	root.Flags().StringVar(&themeName, "theme", "", "dark or light; saved as your preference")
	root.Flags().BoolVar(&static, "static", false, "print the page once instead of running the TUI")

	root.AddCommand(serveCmd(), inboxCmd(), tokenCmd())
	return root.Execute()
}

// loadConfig layers defaults, the config file, the environment and flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.Content.Path = contentPath
	}
	if flags.Changed("token") {
		cfg.Server.AuthToken = token
		cfg.Client.Token = token
	}
	if f := flags.Lookup("url"); f != nil && f.Changed {
		cfg.Client.URL = wsURL
	}
	if f := flags.Lookup("theme"); f != nil && f.Changed {
		cfg.Client.Theme = themeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := content.LoadOrDefault(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	if static || !term.IsTerminal(int(os.Stdout.Fd())) {
		mode, _ := theme.ParseMode(cfg.Client.Theme)
		out := app.RenderStatic(cfg, *data, theme.New(mode), staticWidth(), nil)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}

	log, err := logging.ForTUI(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	store := prefs.NewStore("")
	if cmd.Flags().Changed("theme") {
		if err := store.Save(&prefs.Prefs{Theme: cfg.Client.Theme}); err != nil {
			log.Warn("save theme preference", zap.Error(err))
		}
	}

	opts := app.Options{Prefs: store, Log: log}
	if cfg.Client.URL != "" {
		base, err := client.DeriveHTTPBase(cfg.Client.URL)
		if err != nil {
			return err
		}
		opts.WS = client.NewWSClient(cfg.Client.URL, cfg.Client.Token, log)
		opts.Sender = client.NewHTTPClient(base, cfg.Client.Token)
		log.Info("remote content", zap.String("url", cfg.Client.URL))
	} else if cfg.Inbox.Path != "" {
		ib, err := inbox.Open(cfg.Inbox.Path)
		if err != nil {
			log.Warn("local inbox unavailable", zap.Error(err))
		} else {
			defer ib.Close()
			opts.Sender = app.StoreSender{Store: ib}
		}
	}

	p := tea.NewProgram(app.New(cfg, *data, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if cfg.Client.URL == "" && cfg.Content.Path != "" && cfg.Content.Watch {
		w := server.NewWatcher(cfg.Content.Path, func(pf content.Portfolio) {
			p.Send(client.ContentMsg{Portfolio: pf})
		}, log)
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Warn("content watcher stopped", zap.Error(err))
			}
		}()
	}

	_, err = p.Run()
	return err
}

// staticWidth prefers the terminal width, then $COLUMNS.
func staticWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultStaticWidth
}
