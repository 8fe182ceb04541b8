// Command uxaudit serves the page usability audit API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/pseuD0sgnf/my-ux-audit/gemini"
	"github.com/pseuD0sgnf/my-ux-audit/goquery"
	uxhttp "github.com/pseuD0sgnf/my-ux-audit/http"
	"github.com/pseuD0sgnf/my-ux-audit/ollama"
	"github.com/pseuD0sgnf/my-ux-audit/openai"
	uxslog "github.com/pseuD0sgnf/my-ux-audit/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI describes the command-line and environment configuration.
type CLI struct {
	Addr     string `help:"Listen address." default:":8787" env:"UXAUDIT_ADDR"`
	LogLevel string `help:"Log level." default:"info" enum:"debug,info,warn,error" env:"UXAUDIT_LOG_LEVEL"`

	FetchTimeout time.Duration `help:"Target page fetch timeout." default:"10s"`

	OllamaURL   string `help:"Ollama base URL." default:"http://localhost:11434" env:"OLLAMA_URL"`
	OllamaModel string `help:"Default local model." default:"llama3.1:8b" env:"OLLAMA_MODEL"`

	OpenAIURL   string `name:"openai-url" help:"Chat-completions base URL." default:"https://api.openai.com" env:"OPENAI_BASE_URL"`
	OpenAIKey   string `name:"openai-key" help:"Default chat-completions API key." env:"OPENAI_API_KEY"`
	OpenAIModel string `name:"openai-model" help:"Default chat model." default:"gpt-4o-mini" env:"OPENAI_MODEL"`

	GeminiURL   string `help:"Content-generation base URL." default:"https://generativelanguage.googleapis.com" env:"GEMINI_BASE_URL"`
	GeminiKey   string `help:"Default content-generation API key." env:"GEMINI_API_KEY"`
	GeminiModel string `help:"Default content model." default:"gemini-2.5-flash" env:"GEMINI_MODEL"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("uxaudit"),
		kong.Description("Serve the page usability audit API"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.LogLevel)

	// Wire dependencies: real implementations wrapped in logging
	// decorators, keyed by the request's provider discriminator.
	fetcher := uxslog.NewFetcher(uxhttp.NewFetcher(uxhttp.WithTimeout(cli.FetchTimeout)), logger)

	streamers := map[uxaudit.Provider]uxaudit.Streamer{
		uxaudit.ProviderLocal: uxslog.NewStreamer(ollama.NewStreamer(
			ollama.WithBaseURL(cli.OllamaURL),
			ollama.WithModel(cli.OllamaModel),
		), "local", logger),
		uxaudit.ProviderChat: uxslog.NewStreamer(openai.NewStreamer(
			openai.WithBaseURL(cli.OpenAIURL),
			openai.WithKey(cli.OpenAIKey),
			openai.WithModel(cli.OpenAIModel),
		), "chat", logger),
		uxaudit.ProviderContent: uxslog.NewStreamer(gemini.NewStreamer(
			gemini.WithBaseURL(cli.GeminiURL),
			gemini.WithKey(cli.GeminiKey),
			gemini.WithModel(cli.GeminiModel),
		), "content", logger),
	}

	handler := &uxhttp.AuditHandler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Streamers: streamers,
		Logger:    logger,
	}

	server := uxhttp.NewServer(cli.Addr, handler, logger)

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
