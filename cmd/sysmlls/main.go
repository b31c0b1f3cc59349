package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"sysmlkit/pkg/db"
	"sysmlkit/pkg/diagnostics"
	"sysmlkit/pkg/engine"
	"sysmlkit/pkg/ids"
	mcpserver "sysmlkit/pkg/mcp"
	"sysmlkit/pkg/mcplog"
	"sysmlkit/pkg/scanner"
	"sysmlkit/pkg/token"
	"sysmlkit/pkg/util"
	"sysmlkit/pkg/watch"
)

const version = "0.1.0-dev"

// initLogging builds the process-wide slog.Logger from SYSMLLS_LOG_LEVEL/
// SYSMLLS_LOG_FORMAT and installs it as the default, which watch.Options
// falls back to whenever a caller doesn't supply its own logger.
func initLogging() {
	cfg := util.DefaultLoggerConfig()
	cfg.Output = os.Stderr
	if lvl := os.Getenv("SYSMLLS_LOG_LEVEL"); lvl != "" {
		cfg.Level = util.LogLevel(lvl)
	}
	if format := os.Getenv("SYSMLLS_LOG_FORMAT"); format != "" {
		cfg.Format = util.LogFormat(format)
	}
	util.SetDefault(util.NewLogger(cfg))
}

func main() {
	initLogging()
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "parse":
		runParse(args)
	case "symbols":
		runSymbols(args)
	case "check":
		runCheck(args)
	case "serve":
		runServe(args)
	case "watch":
		runWatch(args)
	case "version":
		fmt.Printf("sysmlls %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: sysmlls <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  parse <file>     Parse a file and print syntax errors")
	fmt.Println("  symbols <path>   List symbols in a file or workspace directory")
	fmt.Println("  check <path>     Run diagnostics over a file or workspace directory")
	fmt.Println("  serve            Start the MCP server on stdin/stdout")
	fmt.Println("  watch <dir>      Watch a workspace directory for changes")
	fmt.Println("  version          Print version")
	fmt.Println("  help             Show this help message")
}

func dialectFor(path string) token.Dialect {
	if filepath.Ext(path) == ".kerml" {
		return token.DialectKerML
	}
	return token.DialectSysML
}

func newEngine() *engine.Engine {
	cfg := db.DefaultConfig()
	if pc, err := loadProjectConfig(); err == nil {
		if pc != nil && pc.MaxCachedFiles > 0 {
			cfg.MaxCachedFiles = pc.MaxCachedFiles
		}
		eng := engine.New(cfg)
		eng.SetStdlibActive(pc.stdlibActive())
		return eng
	}
	return engine.New(cfg)
}

// loadedFile pairs a loaded file's path with the FileId the engine
// assigned it.
type loadedFile struct {
	Path string
	File ids.FileId
}

// loadWorkspace inserts every source file under path into eng, or path
// itself if it names a single file.
func loadWorkspace(eng *engine.Engine, path string) ([]loadedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		file := eng.InsertFile(path, string(data), dialectFor(path))
		return []loadedFile{{Path: path, File: file}}, nil
	}

	loaded, stats, err := scanner.Scan(path, scanner.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if stats.FilesFailed > 0 {
		for _, ferr := range stats.Errors {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", ferr.FilePath, ferr.Error)
		}
	}
	files := make([]loadedFile, 0, len(loaded))
	for _, lf := range loaded {
		file := eng.InsertFile(lf.Path, lf.Text, dialectFor(lf.Path))
		files = append(files, loadedFile{Path: lf.Path, File: file})
	}
	return files, nil
}

func runParse(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: sysmlls parse <file>")
		os.Exit(1)
	}
	eng := newEngine()
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	file := eng.InsertFile(args[0], string(data), dialectFor(args[0]))
	errs := eng.Snapshot().ParseErrors(file)
	if len(errs) == 0 {
		fmt.Println("ok")
		return
	}
	for _, e := range errs {
		fmt.Printf("%s:%d: %s\n", args[0], e.Range.Start, e.Message)
	}
	os.Exit(1)
}

func runSymbols(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: sysmlls symbols <path>")
		os.Exit(1)
	}
	eng := newEngine()
	if _, err := loadWorkspace(eng, args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, s := range eng.Snapshot().WorkspaceSymbols("") {
		fmt.Printf("%s\t%s\t%s\n", s.Kind, s.FullyQualifiedName, s.Name)
	}
}

func runCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: sysmlls check <path>")
		os.Exit(1)
	}
	eng := newEngine()
	files, err := loadWorkspace(eng, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	snap := eng.Snapshot()
	hasError := false
	for _, lf := range files {
		for _, d := range snap.Diagnostics(lf.File) {
			fmt.Printf("%s: %s: %s\n", d.Severity, lf.Path, d.Message)
			if d.Severity == diagnostics.SeverityError {
				hasError = true
			}
		}
	}
	if hasError {
		os.Exit(1)
	}
}

func runServe(args []string) {
	eng := newEngine()

	var logger *mcplog.Logger
	if logPath := os.Getenv("SYSMLLS_MCP_LOG"); logPath != "" {
		l, err := mcplog.NewLogger(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open MCP log: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}

	srv := mcpserver.NewServer(eng, logger)
	slog.Info("starting MCP server", "transport", "stdio")
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func runWatch(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: sysmlls watch <dir>")
		os.Exit(1)
	}
	eng := newEngine()

	options := watch.Options{}
	if pc, err := loadProjectConfig(); err == nil && pc != nil {
		options.Include = pc.Include
		options.IgnorePatterns = pc.Exclude
		options.DebounceMs = pc.WatchDebounce
	}

	w, err := watch.New(eng, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := w.Start(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	slog.Info("watching workspace", "root", args[0], "debounce_ms", options.DebounceMs)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	_ = w.Stop()
	slog.Info("watch stopped")
}
