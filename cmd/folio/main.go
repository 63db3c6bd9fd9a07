package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eringen/folio"
	"github.com/eringen/folio/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cli struct {
	v       *viper.Viper
	cfgFile string
	debug   bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	root := &cobra.Command{
		Use:           "folio",
		Short:         "folio - a Markdown blog engine",
		Long:          "folio renders Markdown posts with YAML front matter into a blog,\neither as a static site (build) or over HTTP (serve).",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	pf.BoolVar(&c.debug, "debug", false, "verbose logging")
	pf.String("content", "content", "content directory (posts/ and footer/)")
	pf.String("static", "public", "static assets directory")
	pf.String("database", "data/folio.db", "SQLite content index")
	_ = c.v.BindPFlag("content_dir", pf.Lookup("content"))
	_ = c.v.BindPFlag("static_dir", pf.Lookup("static"))
	_ = c.v.BindPFlag("database_path", pf.Lookup("database"))

	root.AddCommand(c.buildCmd(), c.serveCmd(), versionCmd())
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	v := c.v
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("cache_ttl", "5m")

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger, err := folio.NewLogger(c.debug)
	if err != nil {
		return err
	}
	c.logger = logger

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Debug("no config file, using flags and environment")
	} else {
		logger.Info("using config file", zap.String("path", v.ConfigFileUsed()))
	}
	return nil
}

// siteConfig maps viper keys onto folio.SiteConfig. FOLIO_DISQUS_NAME sets
// the comments shortname.
func (c *cli) siteConfig() folio.SiteConfig {
	v := c.v
	return folio.SiteConfig{
		Name:            v.GetString("name"),
		URL:             v.GetString("url"),
		Description:     v.GetString("description"),
		Author:          v.GetString("author"),
		Addr:            v.GetString("addr"),
		DatabasePath:    v.GetString("database_path"),
		ContentDir:      v.GetString("content_dir"),
		StaticDir:       v.GetString("static_dir"),
		OutputDir:       v.GetString("output_dir"),
		DisqusShortname: v.GetString("disqus_name"),
		AdminPassword:   v.GetString("admin_password"),
		SessionSecret:   v.GetString("session_secret"),
		CookieSecure:    v.GetBool("cookie_secure"),
		PostCacheTTL:    v.GetDuration("cache_ttl"),
		Watch:           v.GetBool("watch"),
	}
}

func (c *cli) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.siteConfig()
			store, err := folio.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			b := folio.NewBuilder(cfg, store, views.Funcs(), c.logger)
			stats, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Built %d posts, %d files into %s\n", stats.Posts, stats.Files, b.Config.OutputDir)
			return nil
		},
	}
	cmd.Flags().String("out", "dist", "output directory")
	_ = c.v.BindPFlag("output_dir", cmd.Flags().Lookup("out"))
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := folio.New(c.siteConfig(), views.Funcs(), folio.WithLogger(c.logger))
			defer app.Close()
			return app.Start(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":3000", "listen address")
	cmd.Flags().Bool("watch", false, "reload content when files change")
	_ = c.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("folio %s\n", version)
		},
	}
}
