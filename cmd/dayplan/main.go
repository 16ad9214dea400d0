package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dayplan/internal/config"
	"dayplan/internal/storage"
	"dayplan/internal/store"
	"dayplan/internal/task"
	"dayplan/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := makeLogger(cfg.LogLevel, logFile)

	if err := run(cfg, log); err != nil {
		log.Error("dayplan failed", "error", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	var seed []task.Task
	if cfg.SeedDemo {
		seed = task.Demo()
	}
	tasks, err := store.New(seed, store.WithLogger(log))
	if err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	log.Info("session started", "tasks", tasks.Len())

	if err := ui.Run(tasks, cfg, log); err != nil {
		return err
	}

	if cfg.ExportPath == "" {
		return nil
	}
	return export(cfg.ExportPath, tasks.Tasks(), log)
}

func export(path string, tasks []task.Task, log *slog.Logger) error {
	archive, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open export %s: %w", path, err)
	}
	defer archive.Close()
	if err := archive.SaveSnapshot(tasks); err != nil {
		return fmt.Errorf("export session: %w", err)
	}
	log.Info("session exported", "path", path, "tasks", len(tasks))
	return nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func makeLogger(levelStr string, f *os.File) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
}
