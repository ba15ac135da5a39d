package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AphilSantos/magic-portfolio/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "magic-portfolio",
	Short: "A static portfolio and blog site generator",
	Long: `magic-portfolio takes Markdown/MDX content with YAML front matter,
builds an ordered index of posts and projects, and renders a static site:
detail pages, tag-filtered and paginated listings, a home page, an RSS feed
and a sitemap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogger(); err != nil {
			return err
		}
		return initializeConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initLogger() error {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	l, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l.Sugar()
	return nil
}

func initializeConfig() error {
	v := viper.New()

	v.SetDefault("siteTitle", "My Portfolio")
	v.SetDefault("siteDescription", "")
	v.SetDefault("author", "")
	v.SetDefault("baseURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("postsPerPage", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			logger.Debug("no config file found, using defaults and environment")
		} else {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debugw("using config file", "path", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return appConfig.Validate()
}
