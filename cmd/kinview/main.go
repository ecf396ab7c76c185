package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/kinview/kinview/pkg/config"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/output"
	"github.com/kinview/kinview/pkg/store"
	"github.com/kinview/kinview/pkg/watcher"
	"github.com/kinview/kinview/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("kinview", pflag.ExitOnError)
	flags.String("data", "family.json", "Path to the family data file")
	flags.Bool("web", false, "Start the web server instead of printing a report")
	flags.Int("port", 8080, "Port for the web server (only used with --web)")
	flags.Bool("watch", false, "Reload the data file when it changes (only used with --web)")
	flags.Bool("open", true, "Open the browser when the server starts")
	flags.String("root", "", "Root person ID for the generational layout")
	flags.String("verbosity", "", "Log level: debug, info, warn, error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	applyVerbosity(cfg.Verbosity)

	if cfg.WebMode {
		runWeb(cfg)
		return
	}

	family, err := store.Load(cfg.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	g := graph.Assemble(family.People, family.Assertions)
	output.PrintFamilyReport(family.Name, g)
}

func applyVerbosity(verbosity string) {
	switch verbosity {
	case "debug":
		logging.SetLevel(slog.LevelDebug)
	case "warn":
		logging.SetLevel(slog.LevelWarn)
	case "error":
		logging.SetLevel(slog.LevelError)
	case "", "info":
		logging.SetLevel(slog.LevelInfo)
	default:
		fmt.Fprintf(os.Stderr, "Unknown verbosity %q, using info\n", verbosity)
	}
}

func runWeb(cfg *config.Config) {
	server := web.NewServer(cfg)
	server.PublishStatus("loading", "Loading family data...")

	// Load in the background so the page can connect immediately and follow
	// progress over SSE.
	go func() {
		if err := loadAndServe(cfg, server); err != nil {
			logging.Error("initial load failed", "error", err)
			server.PublishStatus("error", err.Error())
		}
	}()

	if cfg.Watch {
		go watchData(cfg, server)
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser(url)
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("web server failed", "error", err)
	}
}

func loadAndServe(cfg *config.Config, server *web.Server) error {
	family, err := store.Load(cfg.DataFile)
	if err != nil {
		return err
	}
	server.PublishStatus("assembling", "Assembling family graph...")
	server.SetFamily(family)
	server.PublishStatus("ready", "Family graph ready")
	return nil
}

func watchData(cfg *config.Config, server *web.Server) {
	ctx := context.Background()

	fw, err := watcher.NewFileWatcher(cfg.DataFile)
	if err != nil {
		logging.Warn("could not watch data file", "error", err)
		return
	}
	if err := fw.Start(ctx); err != nil {
		logging.Warn("could not start watcher", "error", err)
		return
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 300*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for range debouncer.Events() {
		logging.Info("data file changed, reloading", "path", cfg.DataFile)
		server.PublishStatus("loading", "Reloading family data...")
		if err := loadAndServe(cfg, server); err != nil {
			logging.Warn("reload failed, keeping previous graph", "error", err)
			server.PublishStatus("error", err.Error())
		}
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logging.Debug("could not open browser", "error", err)
	}
}
