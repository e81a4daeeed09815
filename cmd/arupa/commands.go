package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/arupa/internal/config"
	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/falling"
	"github.com/verte-zerg/arupa/internal/httpserver"
	"github.com/verte-zerg/arupa/internal/logging"
	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/speech"
	"github.com/verte-zerg/arupa/internal/stats"
	"github.com/verte-zerg/arupa/internal/statsui"
	"github.com/verte-zerg/arupa/internal/store"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

const (
	defaultCurveWindow = 5
	defaultRecent      = 10
)

var (
	statsLang        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	dictLang string
	dictList bool

	serveAddr   string
	serveRPS    float64
	serveBurst  int
	serveOrigin string
	serveProxy  bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show results of finished games",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games of each kind")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the score curve")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print text instead of opening the stats browser")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Lang:        strings.ToLower(statsLang),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, defaultRecent)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Validate the dictionary and list its words",
		Args:  cobra.NoArgs,
		RunE:  runDictCmd,
	}
	cmd.Flags().StringVar(&dictLang, "lang", dictionary.DefaultTargetLang, "language of listed words")
	cmd.Flags().BoolVar(&dictList, "list", false, "print every word of --lang")
	return cmd
}

func runDictCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	loader := dictionaryLoader(cmd, fileCfg)
	dict, err := loadDictionary(cmd.Context(), loader)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	lang := strings.ToLower(dictLang)
	if dictList {
		for _, word := range dict.Words(lang) {
			if _, err := fmt.Fprintln(out, word); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}
	field := dict.FieldFor(lang)
	candidates := wordguess.Candidates(dict, field, wordguess.DefaultMinLen, wordguess.DefaultMaxLen)
	lines := []string{
		fmt.Sprintf("Source: %s", loader.Source),
		fmt.Sprintf("Languages: %s -> %s", dict.SourceLang, dict.TargetLang),
		fmt.Sprintf("Entries: %d", dict.Len()),
		fmt.Sprintf("Skipped: %d", dict.Skipped),
		fmt.Sprintf("Wordle targets (%s, %d-%d letters): %d", lang, wordguess.DefaultMinLen, wordguess.DefaultMaxLen, len(candidates)),
		fmt.Sprintf("Falling words (%s): %d", lang, falling.NewDeck(dict.Words(lang), nil).Len()),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish the dictionary over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", httpserver.DefaultAddr, "listen address")
	cmd.Flags().Float64Var(&serveRPS, "rps", httpserver.DefaultRPS, "requests per second per client")
	cmd.Flags().IntVar(&serveBurst, "burst", httpserver.DefaultBurst, "burst size per client")
	cmd.Flags().StringVar(&serveOrigin, "origin", "*", "allowed CORS origin")
	cmd.Flags().BoolVar(&serveProxy, "trust-proxy", false, "use X-Forwarded-For for client addresses")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	level := globalLogLevel
	applyStringConfig(cmd, "log-level", &level, fileCfg.Log.Level)
	logger, err := logging.Console(os.Stderr, level)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyFloatConfig(cmd, "rps", &serveRPS, fileCfg.Serve.RPS)
	applyIntConfig(cmd, "burst", &serveBurst, fileCfg.Serve.Burst)
	if fileCfg.Serve.TrustProxy != nil && !cmd.Flags().Changed("trust-proxy") {
		serveProxy = *fileCfg.Serve.TrustProxy
	}

	dict, err := loadDictionary(cmd.Context(), dictionaryLoader(cmd, fileCfg))
	if err != nil {
		return err
	}
	srv, err := httpserver.New(dict, httpserver.Options{
		RPS:        serveRPS,
		Burst:      serveBurst,
		Origin:     serveOrigin,
		TrustProxy: serveProxy,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpSrv := srv.HTTPServer(serveAddr)
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", serveAddr).Int("entries", dict.Len()).Msg("serving dictionary")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	def := falling.DefaultConfig()
	return fmt.Sprintf(`# arupa configuration
# Uncomment a value to enable it. CLI flags override config values.

[wordle]
# lang = %q               # Language of the target word
# min-len = %d             # Minimum word length
# max-len = %d             # Maximum word length

[falling]
# lang = %q               # Language of the falling words
# lives = %d               # Starting lives
# min-speed = %.1f        # Slowest fall speed (px/s)
# max-speed = %.1f        # Fastest fall speed (px/s)
# spacing = %.1f          # Distance between letters (px)
# collector-step = %.1f   # Collector movement per frame (px)

[dictionary]
# source = "embedded"      # File path, http(s) URL or "embedded"
# source-lang = %q        # Tag of the translation field
# target-lang = %q        # Tag of the game field

[tts]
# enabled = true
# url = "http://localhost:8000"   # Or ARUPA_TTS_URL
# voice = %q
# timeout = "20s"

[log]
# level = "info"           # Or ARUPA_LOG_LEVEL
# path = %q

[serve]
# addr = %q
# rps = %.1f
# burst = %d
# trust-proxy = false      # Only behind a reverse proxy
`,
		dictionary.DefaultTargetLang,
		wordguess.DefaultMinLen,
		wordguess.DefaultMaxLen,
		dictionary.DefaultTargetLang,
		def.Lives,
		def.MinSpeed,
		def.MaxSpeed,
		def.Spacing,
		def.CollectorStep,
		dictionary.DefaultSourceLang,
		dictionary.DefaultTargetLang,
		speech.DefaultVoice,
		config.DefaultLogPath(),
		httpserver.DefaultAddr,
		httpserver.DefaultRPS,
		httpserver.DefaultBurst,
	)
}
