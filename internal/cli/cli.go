package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirchsolutions/sirchweb/internal/client"
	"github.com/sirchsolutions/sirchweb/internal/form"
	"github.com/sirchsolutions/sirchweb/internal/logging"
)

const (
	defaultServer    = "http://localhost:8080"
	configDirName    = ".sirchctl"
	draftFileName    = "drafts.db"
	logFileName      = "client.log"
	envServer        = "SIRCH_SERVER"
	envConfigDir     = "SIRCH_CONFIG_DIR"
	interactiveDelay = 120 * time.Millisecond
)

// Options control where a command tree writes and whether it animates
type Options struct {
	Out         io.Writer
	Err         io.Writer
	Interactive bool
}

type app struct {
	opts      Options
	server    string
	timeout   time.Duration
	configDir string
	draftPath string
	noDraft   bool
	logger    *logging.Logger
}

// NewRootCommand builds the sirchctl command tree
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "sirchctl",
		Short: "SIRCH SOLUTIONS KE CLI - contact the team from your terminal",
		Long: `sirchctl sends contact messages and early access signups to the
SIRCH SOLUTIONS KE website API. Unsent contact form input is kept as a
draft for one hour so an interrupted message can be finished later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Close()
			}
		},
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.server, "server", envOr(envServer, defaultServer), "API base URL")
	flags.DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "Request timeout")
	flags.StringVar(&a.configDir, "config-dir", os.Getenv(envConfigDir), "Directory for drafts and logs (default: ~/.sirchctl)")
	flags.StringVar(&a.draftPath, "draft-db", "", "Draft database file (default: <config-dir>/drafts.db)")
	flags.BoolVar(&a.noDraft, "no-draft", false, "Do not save or restore contact form drafts")

	rootCmd.AddCommand(a.newContactCommand())
	rootCmd.AddCommand(a.newEarlyAccessCommand())
	rootCmd.AddCommand(a.newDraftCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

// Execute runs sirchctl against the process arguments
func Execute() {
	rootCmd := NewRootCommand(Options{Interactive: true})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	if a.configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		a.configDir = filepath.Join(homeDir, configDirName)
	}
	if a.draftPath == "" {
		a.draftPath = filepath.Join(a.configDir, draftFileName)
	}

	// Diagnostics go to the log file only; the terminal gets results
	logger, err := logging.NewLogger(&logging.Config{
		Level:      logging.LevelInfo,
		File:       filepath.Join(a.configDir, logFileName),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		Console:    io.Discard,
	})
	if err != nil {
		logger = logging.NewConsoleLogger(io.Discard, logging.LevelInfo)
	}
	a.logger = logger
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.server, a.timeout)
}

// openDraftCache returns nil when drafts are disabled or unavailable
func (a *app) openDraftCache() (*form.SQLiteDraftCache, error) {
	if a.noDraft {
		return nil, nil
	}
	return form.OpenSQLiteDraftCache(a.draftPath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
