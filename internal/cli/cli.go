package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/swipefish/swipecard/pkg/buildinfo"
	"github.com/swipefish/swipecard/pkg/cache"
	"github.com/swipefish/swipecard/pkg/config"
	"github.com/swipefish/swipecard/pkg/observability"
	"github.com/swipefish/swipecard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "swipecard"

	// configFile is picked up from the working directory when --config is unset.
	configFile = appName + ".toml"

	// configEnv names a profile file to use when --config is unset.
	configEnv = "SWIPECARD_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.SetLogLevel(level)
	return c
}

// SetLogLevel updates the logger's level. At debug level every card and
// cache event is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := logHooks{logger: c.Logger}
		observability.SetCardHooks(hooks)
		observability.SetCacheHooks(hooks)
		return
	}
	observability.Reset()
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Swipecard composes swipe cards from illustrations and a CSV",
		Long: `Swipecard lays out a title, an illustration and a wrapped tagline on a
fixed portrait template for every numbered illustration it finds, taking the
text from a CSV file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache entries are scoped
// by profile name.
func (c *CLI) newRunner(noCache bool, profile string) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), profile+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/swipecard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Profiles
// =============================================================================

// profileFlags selects a card profile.
type profileFlags struct {
	profile string
	config  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "card profile (default from config, else roles)")
	f.registerConfig(cmd)
}

func (f *profileFlags) registerConfig(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "profile file (default $"+configEnv+" or ./"+configFile+")")
}

// load reads the profile configuration. Without an explicit path it falls
// back to the environment, then to ./swipecard.toml, then to the built-ins.
func (f *profileFlags) load() (*config.Config, string, error) {
	path := f.config
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		if _, err := os.Stat(configFile); err == nil {
			path = configFile
		}
	}
	if path == "" {
		return config.Builtin(), "", nil
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// resolve returns the selected profile.
func (f *profileFlags) resolve() (config.Profile, error) {
	cfg, _, err := f.load()
	if err != nil {
		return config.Profile{}, err
	}
	return cfg.Profile(f.profile)
}
