package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/miosa/storefront/app"
	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/client"
	"github.com/miosa/storefront/config"
	"github.com/miosa/storefront/logging"
	"github.com/miosa/storefront/msg"
)

var version = "dev"

// demo catalog shown when no catalog is configured.
const (
	demoCategories = 8
	demoItems      = 24
	demoSeed       = 1
)

// cli holds the global flags and what PersistentPreRunE builds from them.
type cli struct {
	verbose     bool
	profile     string
	catalogPath string
	catalogURL  string
	theme       string
	watch       bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Browse a product catalog in the terminal",
		Long: `storefront renders a catalog of categories and item cards as one
scrolling page. Only the categories and cards near the viewport are drawn;
everything else keeps its space as a placeholder.

Run without arguments to open the catalog from the config, --catalog or
--url. Without any of them a generated demo catalog is shown.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.browse(cmd.Context())
		},
	}

	home, _ := os.UserHomeDir()
	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&c.profile, "profile", filepath.Join(home, ".storefront"), "Profile directory holding config.yaml and logs")
	root.Flags().StringVarP(&c.catalogPath, "catalog", "c", "", "Catalog file (YAML or JSON)")
	root.Flags().StringVar(&c.catalogURL, "url", "", "Catalog service base URL")
	root.Flags().StringVar(&c.theme, "theme", "", "Color theme (dark, light, catppuccin)")
	root.Flags().BoolVarP(&c.watch, "watch", "w", false, "Reload the catalog file when it changes")

	root.AddCommand(newMockCmd(c), newLayoutCmd(c), newConfigCmd(c))
	return root
}

// setup loads the config, applies flags that were set explicitly and builds
// the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.profile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath = c.catalogPath
		cfg.CatalogURL = ""
	}
	if flags.Changed("url") {
		cfg.CatalogURL = c.catalogURL
	}
	if flags.Changed("theme") {
		cfg.Theme = c.theme
	}
	if flags.Changed("watch") {
		cfg.Watch = c.watch
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.Logging, c.verbose)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// source returns the catalog loader for the configuration and a label for
// the header.
func (c *cli) source() (app.Loader, *client.Client, string) {
	switch {
	case c.cfg.CatalogURL != "":
		cl := client.New(c.cfg.CatalogURL)
		if c.cfg.CatalogAuth != "" {
			cl.SetToken(c.cfg.CatalogAuth)
		}
		return cl.FetchCatalog, cl, c.cfg.CatalogURL
	case c.cfg.CatalogPath != "":
		path := c.cfg.CatalogPath
		return func(context.Context) (*catalog.Catalog, error) {
			return catalog.Load(path)
		}, nil, path
	default:
		return func(context.Context) (*catalog.Catalog, error) {
			return catalog.Mock(demoCategories, demoItems, demoSeed), nil
		}, nil, "demo"
	}
}

// browse runs the terminal UI and, with --watch, the catalog file watcher.
// Either one stopping stops the other.
func (c *cli) browse(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loader, cl, src := c.source()
	c.logger.Info("starting storefront",
		zap.String("version", version),
		zap.String("source", src),
		zap.String("theme", c.cfg.Theme))

	m := app.New(app.Options{
		Config:  c.cfg,
		Logger:  c.logger,
		Loader:  loader,
		Source:  src,
		Version: version,
		Client:  cl,
	})

	// In bubbletea v2, alt screen and mouse mode are set on the View
	// returned by the model, not as program options.
	p := tea.NewProgram(m, tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		go p.Send(app.ProgramReady{Program: p})
		final, err := p.Run()
		teardown(final)
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("terminal ui: %w", err)
		}
		return nil
	})

	if c.cfg.Watch && c.cfg.CatalogPath != "" && c.cfg.CatalogURL == "" {
		w, err := catalog.NewWatcher(c.cfg.CatalogPath, func(cat *catalog.Catalog, err error) {
			p.Send(msg.CatalogReloaded{Catalog: cat, Err: err})
		}, catalog.WithWatchLogger(c.logger))
		if err != nil {
			c.logger.Warn("catalog watcher disabled", zap.Error(err))
		} else {
			g.Go(func() error { return w.Run(gctx) })
		}
	}

	return g.Wait()
}

// teardown disposes the controllers of the model the program ended with.
// The quit key already did this; an interrupt or a cancelled context did not.
func teardown(final tea.Model) {
	if m, ok := final.(app.Model); ok {
		m.Dispose()
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}
