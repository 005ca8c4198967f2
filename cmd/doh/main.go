package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studiowebux/doh/internal/browser"
	"github.com/studiowebux/doh/internal/config"
	"github.com/studiowebux/doh/internal/history"
	"github.com/studiowebux/doh/internal/keybinds"
	"github.com/studiowebux/doh/internal/logging"
	"github.com/studiowebux/doh/internal/picker"
	"github.com/studiowebux/doh/internal/rfsapi"
	"github.com/studiowebux/doh/internal/term"
	"github.com/studiowebux/doh/internal/types"
	"github.com/studiowebux/doh/internal/version"
)

var (
	flagConfigDir  string
	flagDebug      bool
	flagNoProgress bool
	flagInsecure   bool

	historyLimit int
	historyHost  string
	historyClear bool

	keybindsInit bool
	keybindsKey  string
)

var errNotTerminal = errors.New("doh needs an interactive terminal")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doh <URL>",
	Short: "Browse servers speaking the raw filesystem API",
	Long: `doh lists a raw filesystem API server one screen at a time.

Text files are paged, other files are downloaded. Uploads and deletes are
offered when the server permits writes.

Keys (listing):
  Up/Down, PgUp/PgDn, Home/End   move the selection
  Enter/Right                    open the selected entry
  Left                           go to the parent directory
  d                              download the selected file
  u                              upload a local file here
  Delete                         delete the selected entry
  /                              jump to an entry by name
  c                              copy the selected location
  r                              reload
  Esc/q                          quit

Run 'doh keybinds' to list the active bindings.

Examples:
  doh localhost:8000              # http:// is assumed
  doh https://files.example.com/pub/
  doh --debug 127.0.0.1:8000      # log to ~/.doh/doh.log`,
	Version:      version.Version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd.Context(), args[0])
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent downloads, uploads and deletes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		defer logging.Sync()

		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		out := cmd.OutOrStdout()
		if historyClear {
			if err := mgr.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Transfer history cleared")
			return nil
		}

		return writeHistory(out, mgr, historyLimit, historyHost)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "List the active key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		defer logging.Sync()

		out := cmd.OutOrStdout()
		if keybindsInit {
			if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", config.KeybindsFile)
			return nil
		}

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}
		if keybindsKey != "" {
			describeKey(out, registry, keybindsKey)
			return nil
		}
		writeBindings(out, registry)
		return nil
	},
}

// writeHistory prints the most recent transfers, optionally for one host
func writeHistory(out io.Writer, mgr *history.Manager, limit int, host string) error {
	var entries []types.Transfer
	var err error
	if host != "" {
		entries, err = mgr.RecentForHost(host, limit)
	} else {
		entries, err = mgr.Recent(limit)
	}
	if err != nil {
		return err
	}

	total, err := mgr.GetCount()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, history.Render(entries))
	fmt.Fprintf(out, "Showing %d of %d transfers\n", len(entries), total)
	return nil
}

// writeBindings lists every action bound in each context with its keys
func writeBindings(out io.Writer, registry *keybinds.Registry) {
	for _, context := range keybinds.Contexts() {
		fmt.Fprintf(out, "[%s]\n", context)
		var last keybinds.Action
		for _, b := range registry.ListBindings(context) {
			if b.Action == last {
				continue
			}
			last = b.Action
			fmt.Fprintf(out, "  %-22s %s\n", registry.GetBindingString(context, b.Action), keybinds.GetActionInfo(b.Action).Description)
		}
	}
}

// describeKey prints what key does in each context
func describeKey(out io.Writer, registry *keybinds.Registry, key string) {
	for _, context := range keybinds.Contexts() {
		if !registry.HasBinding(context, key) {
			fmt.Fprintf(out, "[%s] %s is unbound\n", context, key)
			continue
		}
		action, _ := registry.Match(context, key)
		fmt.Fprintf(out, "[%s] %s: %s\n", context, key, keybinds.GetActionInfo(action).Description)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Configuration directory (default ~/.doh)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to doh.log in the configuration directory")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Do not draw a progress bar while downloading")
	rootCmd.Flags().BoolVarP(&flagInsecure, "insecure", "k", false, "Skip TLS certificate verification")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "Number of entries to show")
	historyCmd.Flags().StringVar(&historyHost, "host", "", "Only show transfers to this host")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the whole history")

	keybindsCmd.Flags().BoolVar(&keybindsInit, "init", false, "Write the default bindings to keybinds.json for editing")
	keybindsCmd.Flags().StringVar(&keybindsKey, "key", "", "Show what a single key does in each context")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// setup prepares the configuration directory, loads the settings and
// starts logging
func setup() (config.Settings, error) {
	var err error
	if flagConfigDir != "" {
		dir, expandErr := config.ExpandHome(flagConfigDir)
		if expandErr != nil {
			return config.Settings{}, expandErr
		}
		err = config.InitializeAt(dir)
	} else {
		err = config.Initialize()
	}
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		return config.Settings{}, err
	}

	logCfg := logging.Config{Level: settings.LogLevel}
	if flagDebug {
		logCfg.Level = "debug"
	}
	if logCfg.Level != "" {
		logCfg.OutputPath = config.LogFile
	}
	if err := logging.Init(logCfg); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return settings, nil
}

func runBrowser(ctx context.Context, raw string) error {
	settings, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	start, err := parseLocation(raw)
	if err != nil {
		return err
	}

	client, err := rfsapi.New(rfsapi.Config{
		Timeout:            settings.Timeout,
		InsecureSkipVerify: settings.InsecureSkipVerify || flagInsecure,
		CAFile:             settings.CAFile,
	})
	if err != nil {
		return err
	}

	bindings, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	var recorder browser.Recorder
	if settings.History {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			logging.Warn("transfer history disabled", logging.Err(err))
		} else {
			defer mgr.Close()
			recorder = mgr
		}
	}

	pickers := picker.New(os.Stdin, os.Stdout)
	if settings.DownloadDir != "" {
		pickers = pickers.WithDir(settings.DownloadDir)
	}

	var style string
	if settings.Highlight {
		style = settings.HighlightStyle
	}

	console := term.NewConsole(os.Stdin, os.Stdout)
	if err := checkTerminal(console); err != nil {
		return err
	}
	nav, err := browser.New(browser.Config{
		Client:         client,
		Terminal:       console,
		Pickers:        pickers,
		Keys:           console,
		Bindings:       bindings,
		History:        recorder,
		Output:         console.Writer(),
		Size:           console.Size,
		ProgressBar:    settings.ProgressBar && !flagNoProgress,
		TabWidth:       settings.TabWidth,
		HighlightStyle: style,
	})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = nav.Run(ctx, start)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// checkTerminal refuses to browse when input or output is redirected
func checkTerminal(t interface{ IsTerminal() bool }) error {
	if !t.IsTerminal() {
		return errNotTerminal
	}
	return nil
}

// parseLocation turns the command line argument into a location,
// assuming http:// when no scheme is given
func parseLocation(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return u, nil
}
