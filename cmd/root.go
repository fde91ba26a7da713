package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is where links point until the user configures their own
// hosted copy of the valentine page.
const DefaultBaseURL = "https://valentine.example.com/"

// DefaultAddr is the listen address for the link API.
const DefaultAddr = ":8080"

// Command selects what the binary does.
type Command string

const (
	CommandBuild   Command = "build"
	CommandOpen    Command = "open"
	CommandHistory Command = "history"
	CommandServe   Command = "serve"
	CommandVersion Command = "version"
)

// Config holds CLI configuration.
type Config struct {
	Command   Command
	Target    string // link or token for CommandOpen
	ConfigDir string
	DBPath    string
	BaseURL   string
	Images    bool
	Debug     bool
	Addr      string
	Version   string
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:], version)
}

func parse(fs *flag.FlagSet, args []string, version string) (*Config, error) {
	config := &Config{Version: version}

	// Load .env files first so env-based defaults work with flag parsing.
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	fs.StringVar(&config.DBPath, "db", "", "Path to SQLite link history (default: ~/.valentine/valentine.db)")
	fs.StringVar(&config.BaseURL, "base-url", "", "Public URL of the hosted valentine page (or set VALENTINE_BASE_URL)")
	fs.BoolVar(&config.Images, "images", envBool("VALENTINE_IMAGES"), "Download theme images and render them as ASCII art")
	fs.BoolVar(&config.Debug, "debug", envBool("VALENTINE_DEBUG"), "Write debug logs to ~/.valentine/debug.log")
	fs.StringVar(&config.Addr, "addr", envOr("VALENTINE_ADDR", DefaultAddr), "Listen address for `serve`")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  valentine [flags]                 build a valentine link")
		fmt.Fprintln(out, "  valentine [flags] open <link>     open a valentine from a link or token")
		fmt.Fprintln(out, "  valentine [flags] history         browse links you created")
		fmt.Fprintln(out, "  valentine [flags] serve           run the link API")
		fmt.Fprintln(out, "  valentine version")
		fmt.Fprintln(out, "\nFlags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := config.setCommand(fs.Args()); err != nil {
		return nil, err
	}
	if config.Command == CommandVersion {
		return config, nil
	}

	if config.BaseURL == "" {
		config.BaseURL = os.Getenv("VALENTINE_BASE_URL")
	}

	// Set default DB path if not specified
	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		config.ConfigDir = filepath.Join(home, ".valentine")
		if err := os.MkdirAll(config.ConfigDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(config.ConfigDir, "valentine.db")
	} else {
		config.ConfigDir = filepath.Dir(config.DBPath)
	}

	settings, err := loadOnboardingSettings(config.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}

	if config.Command.onboards() && shouldRunOnboarding(settings) {
		settings, err = runOnboarding(config.ConfigDir, config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = settings.BaseURL
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if !flagSet(fs, "images") && os.Getenv("VALENTINE_IMAGES") == "" {
		config.Images = settings.Images
	}

	return config, nil
}

// onboards reports whether the command may stop for the first-run
// questions. The API server and the viewer never need the base URL prompt.
func (c Command) onboards() bool {
	return c == CommandBuild || c == CommandHistory
}

func (c *Config) setCommand(args []string) error {
	if len(args) == 0 {
		c.Command = CommandBuild
		return nil
	}

	switch Command(args[0]) {
	case CommandBuild, CommandHistory, CommandServe, CommandVersion:
		c.Command = Command(args[0])
	case CommandOpen:
		if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
			return fmt.Errorf("open needs a link or token")
		}
		c.Command = CommandOpen
		c.Target = args[1]
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
