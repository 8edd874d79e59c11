package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/slipbox/internal/platform"
	"github.com/aretw0/slipbox/pkg/adapters/fs"
	"github.com/aretw0/slipbox/pkg/core"
	"github.com/aretw0/slipbox/pkg/render"
)

var (
	cfgFile   string
	directory string
	findRoot  bool
	verbose   bool

	// cfg is rebuilt by initConfig on every execution.
	cfg = viper.New()
	// configErr holds what initConfig could not apply; it is logged once
	// the logger exists.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "slipbox",
	Short: "Query a directory of id-tagged plain-text notes",
	Long: `slipbox reads a folder of notes in which the first line carries an id
tag ("id: abc") and any later tag is a reference to another note.

It lists the notes, resolves ids, and shows which notes a note points to
and which notes point back at it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		if used := cfg.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		if configErr != nil {
			logger.Warn("failed to load settings", "error", configErr)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is <dir>/.slipbox/config.yaml)")
	flags.StringVarP(&directory, "directory", "d", "", "slip-box directory (default is the working directory)")
	flags.BoolVar(&findRoot, "root", false, "search upward for the slip-box root (.slipbox or .git)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringSliceP("pattern", "p", nil, "glob selecting note files (repeatable, default *.md,*.txt)")
	flags.BoolP("recursive", "r", false, "include notes in subdirectories")
	flags.Bool("gitignore", false, "skip files matched by the root .gitignore")
	flags.Bool("strict", false, "fail when two notes declare the same id")
	flags.StringP("format", "f", "", fmt.Sprintf("output format %v", render.Formats))
}

// initConfig resolves settings from, in increasing priority: defaults, the
// slip-box config file, SLIPBOX_* environment variables and flags.
func initConfig() {
	cfg = viper.New()
	configErr = nil

	defaults := platform.DefaultSettings()
	cfg.SetDefault("patterns", defaults.Patterns)
	cfg.SetDefault("recursive", defaults.Recursive)
	cfg.SetDefault("gitignore", defaults.Gitignore)
	cfg.SetDefault("strict", defaults.Strict)
	cfg.SetDefault("format", defaults.Format)

	flags := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		"patterns":  "pattern",
		"recursive": "recursive",
		"gitignore": "gitignore",
		"strict":    "strict",
		"format":    "format",
	} {
		if err := cfg.BindPFlag(key, flags.Lookup(flag)); err != nil {
			configErr = errors.Join(configErr, fmt.Errorf("failed to bind flag %s: %w", flag, err))
		}
	}

	cfg.SetEnvPrefix("slipbox")
	cfg.AutomaticEnv()

	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else if root, err := baseDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(root, fs.DefaultSystemDir))
		cfg.SetConfigName("config")
		cfg.SetConfigType("yaml")
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = errors.Join(configErr, fmt.Errorf("failed to read config: %w", err))
		}
	}
}

// baseDir returns the slip-box directory selected by --directory and --root.
func baseDir() (string, error) {
	dir := directory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	if !findRoot {
		return dir, nil
	}
	return platform.FindRoot(dir, fs.DefaultSystemDir)
}

func settings() platform.Settings {
	return platform.Settings{
		Patterns:  cfg.GetStringSlice("patterns"),
		Recursive: cfg.GetBool("recursive"),
		Gitignore: cfg.GetBool("gitignore"),
		Strict:    cfg.GetBool("strict"),
		Format:    cfg.GetString("format"),
	}
}

func outputFormat() (render.Format, error) {
	return render.ParseFormat(settings().Format)
}

// newService builds the query service for the selected slip-box.
func newService() (*core.Service, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}

	s := settings()
	svc, err := platform.New(dir,
		platform.WithPatterns(s.Patterns...),
		platform.WithRecursive(s.Recursive),
		platform.WithGitignore(s.Gitignore),
		platform.WithStrictIDs(s.Strict),
		platform.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open slip-box: %w", err)
	}
	return svc, nil
}
