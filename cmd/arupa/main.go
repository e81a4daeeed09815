// Package main provides the CLI entrypoint for arupa.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/arupa/internal/audio"
	"github.com/verte-zerg/arupa/internal/config"
	"github.com/verte-zerg/arupa/internal/dictionary"
	"github.com/verte-zerg/arupa/internal/falling"
	"github.com/verte-zerg/arupa/internal/logging"
	"github.com/verte-zerg/arupa/internal/speech"
	"github.com/verte-zerg/arupa/internal/store"
	"github.com/verte-zerg/arupa/internal/tui"
	"github.com/verte-zerg/arupa/internal/wordguess"
)

const (
	envTTSURL   = "ARUPA_TTS_URL"
	envLogLevel = "ARUPA_LOG_LEVEL"
)

var (
	globalDict     string
	globalLogLevel string
	globalTTSURL   string
	globalNoTTS    bool

	wordleLang   string
	wordleMinLen int
	wordleMaxLen int

	tuxLang          string
	tuxLives         int
	tuxMinSpeed      float64
	tuxMaxSpeed      float64
	tuxSpacing       float64
	tuxCollectorStep float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arupa",
		Short:         "Aymara word games in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, tui.ScreenMenu)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalDict, "dict", "", "dictionary source: file path, http(s) URL or \"embedded\"")
	pf.StringVar(&globalLogLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&globalTTSURL, "tts-url", "", "text-to-speech service base URL")
	pf.BoolVar(&globalNoTTS, "no-tts", false, "disable text-to-speech")

	rootCmd.AddCommand(newWordleCmd())
	rootCmd.AddCommand(newTuxCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newWordleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordle",
		Short: "Guess the word in five attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, tui.ScreenWordle)
		},
	}
	cmd.Flags().StringVar(&wordleLang, "lang", dictionary.DefaultTargetLang, "language of the target word")
	cmd.Flags().IntVar(&wordleMinLen, "min-len", wordguess.DefaultMinLen, "minimum word length")
	cmd.Flags().IntVar(&wordleMaxLen, "max-len", wordguess.DefaultMaxLen, "maximum word length")
	return cmd
}

func newTuxCmd() *cobra.Command {
	def := falling.DefaultConfig()
	cmd := &cobra.Command{
		Use:     "tux",
		Aliases: []string{"falling"},
		Short:   "Type the falling words to feed the penguin",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, tui.ScreenFalling)
		},
	}
	cmd.Flags().StringVar(&tuxLang, "lang", dictionary.DefaultTargetLang, "language of the falling words")
	cmd.Flags().IntVar(&tuxLives, "lives", def.Lives, "starting lives")
	cmd.Flags().Float64Var(&tuxMinSpeed, "min-speed", def.MinSpeed, "slowest fall speed (px/s)")
	cmd.Flags().Float64Var(&tuxMaxSpeed, "max-speed", def.MaxSpeed, "fastest fall speed (px/s)")
	cmd.Flags().Float64Var(&tuxSpacing, "spacing", def.Spacing, "distance between letters (px)")
	cmd.Flags().Float64Var(&tuxCollectorStep, "collector-step", def.CollectorStep, "collector movement per frame (px)")
	return cmd
}

// runtime bundles what every command shares after startup.
type runtime struct {
	file   config.FileConfig
	logger zerolog.Logger
	closer io.Closer
}

func (rt *runtime) Close() {
	if rt.closer == nil {
		return
	}
	if cerr := rt.closer.Close(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
}

// setup loads .env and the config file and opens the log file.
func setup(cmd *cobra.Command) (*runtime, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}

	level := globalLogLevel
	applyStringConfig(cmd, "log-level", &level, fileCfg.Log.Level)
	path := config.DefaultLogPath()
	if fileCfg.Log.Path != nil && *fileCfg.Log.Path != "" {
		path = *fileCfg.Log.Path
	}
	logger, closer, err := logging.OpenFile(path, level)
	if err != nil {
		return nil, err
	}
	return &runtime{file: fileCfg, logger: logger, closer: closer}, nil
}

// loadFileConfig reads .env and the config file; environment values win
// over the file.
func loadFileConfig() (config.FileConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logErrf("failed to read .env: %v\n", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fileCfg, fmt.Errorf("failed to load config: %w", err)
	}
	applyEnv(envLogLevel, &fileCfg.Log.Level)
	applyEnv(envTTSURL, &fileCfg.TTS.URL)
	return fileCfg, nil
}

func applyEnv(name string, target **string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*target = &v
	}
}

func runGame(cmd *cobra.Command, start tui.Screen) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	wordleCfg, err := wordleConfig(cmd, rt.file)
	if err != nil {
		return err
	}
	fallingCfg, lang, err := fallingConfig(cmd, rt.file)
	if err != nil {
		return err
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

	announcer, player, err := newAnnouncer(cmd, rt)
	if err != nil {
		return err
	}
	if player != nil {
		defer player.Close()
	}

	opts := tui.Options{
		Loader:      dictionaryLoader(cmd, rt.file),
		Wordle:      wordleCfg,
		Falling:     fallingCfg,
		FallingLang: lang,
		Saver:       st,
		Logger:      rt.logger,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		Start:       start,
	}
	if announcer != nil {
		opts.Announcer = announcer
	}
	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if announcer != nil {
		announcer.Wait()
	}
	return nil
}

func wordleConfig(cmd *cobra.Command, fileCfg config.FileConfig) (wordguess.Config, error) {
	lang, minLen, maxLen := wordleLang, wordleMinLen, wordleMaxLen
	applyStringConfig(cmd, "lang", &lang, fileCfg.Wordle.Lang)
	applyIntConfig(cmd, "min-len", &minLen, fileCfg.Wordle.MinLen)
	applyIntConfig(cmd, "max-len", &maxLen, fileCfg.Wordle.MaxLen)
	cfg := wordguess.Config{Lang: strings.ToLower(lang), MinLen: minLen, MaxLen: maxLen}
	if cfg.MinLen <= 0 {
		return cfg, fmt.Errorf("--min-len must be > 0")
	}
	if cfg.MaxLen < cfg.MinLen {
		return cfg, fmt.Errorf("--max-len must be >= --min-len")
	}
	return cfg, nil
}

func fallingConfig(cmd *cobra.Command, fileCfg config.FileConfig) (falling.Config, string, error) {
	cfg := falling.DefaultConfig()
	lang := tuxLang
	cfg.Lives, cfg.MinSpeed, cfg.MaxSpeed = tuxLives, tuxMinSpeed, tuxMaxSpeed
	cfg.Spacing, cfg.CollectorStep = tuxSpacing, tuxCollectorStep
	applyStringConfig(cmd, "lang", &lang, fileCfg.Falling.Lang)
	applyIntConfig(cmd, "lives", &cfg.Lives, fileCfg.Falling.Lives)
	applyFloatConfig(cmd, "min-speed", &cfg.MinSpeed, fileCfg.Falling.MinSpeed)
	applyFloatConfig(cmd, "max-speed", &cfg.MaxSpeed, fileCfg.Falling.MaxSpeed)
	applyFloatConfig(cmd, "spacing", &cfg.Spacing, fileCfg.Falling.Spacing)
	applyFloatConfig(cmd, "collector-step", &cfg.CollectorStep, fileCfg.Falling.CollectorStep)
	switch {
	case cfg.Lives <= 0:
		return cfg, "", fmt.Errorf("--lives must be > 0")
	case cfg.MinSpeed <= 0 || cfg.MaxSpeed < cfg.MinSpeed:
		return cfg, "", fmt.Errorf("speeds must satisfy 0 < --min-speed <= --max-speed")
	case cfg.Spacing <= 0:
		return cfg, "", fmt.Errorf("--spacing must be > 0")
	case cfg.CollectorStep <= 0:
		return cfg, "", fmt.Errorf("--collector-step must be > 0")
	}
	return cfg, strings.ToLower(lang), nil
}

// dictionaryLoader resolves the source: flag, then config, then a user file
// in the config directory, then the embedded copy.
func dictionaryLoader(cmd *cobra.Command, fileCfg config.FileConfig) dictionary.Loader {
	source := globalDict
	applyStringConfig(cmd, "dict", &source, fileCfg.Dictionary.Source)
	if source == "" {
		source = dictionary.SourceEmbedded
		if _, err := os.Stat(config.DefaultDictionaryPath()); err == nil {
			source = config.DefaultDictionaryPath()
		}
	}
	loader := dictionary.Loader{Source: source}
	if fileCfg.Dictionary.SourceLang != nil {
		loader.SourceLang = *fileCfg.Dictionary.SourceLang
	}
	if fileCfg.Dictionary.TargetLang != nil {
		loader.TargetLang = *fileCfg.Dictionary.TargetLang
	}
	return loader
}

// newAnnouncer returns nil when speech is disabled or no service is set.
func newAnnouncer(cmd *cobra.Command, rt *runtime) (*speech.Announcer, *audio.Player, error) {
	tts := rt.file.TTS
	url := globalTTSURL
	applyStringConfig(cmd, "tts-url", &url, tts.URL)
	enabled := !globalNoTTS
	if tts.Enabled != nil && !cmd.Flags().Changed("no-tts") {
		enabled = *tts.Enabled
	}
	if !enabled || strings.TrimSpace(url) == "" {
		return nil, nil, nil
	}
	timeout := speech.DefaultTimeout
	if tts.Timeout != nil && *tts.Timeout != "" {
		parsed, err := time.ParseDuration(*tts.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tts timeout: %w", err)
		}
		timeout = parsed
	}
	client := &speech.Client{BaseURL: url, HTTP: &http.Client{Timeout: timeout}}
	if tts.Voice != nil {
		client.Voice = *tts.Voice
	}
	player := audio.NewPlayer()
	logger := rt.logger.With().Str("component", "speech").Logger()
	logger.Info().Str("endpoint", client.Endpoint()).Msg("tts enabled")
	return speech.NewAnnouncer(client, player, timeout, logger), player, nil
}

func loadDictionary(ctx context.Context, loader dictionary.Loader) (dictionary.Dictionary, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	dict, err := loader.Load(ctx)
	if err != nil {
		return dict, fmt.Errorf("failed to load dictionary from %s: %w", loader.Source, err)
	}
	return dict, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
