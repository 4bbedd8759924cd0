package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/agent"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/ipc"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/replay"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/rules"
)

func main() {
	var (
		tuningPath = flag.String("tuning", "", "YAML tuning file (defaults built in)")
		logDir     = flag.String("log-dir", ".", "directory for bot-<player>.log")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		replayDir  = flag.String("replay-dir", "", "write a zstd turn replay here when set")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	// stdout carries the game protocol; log to stderr until the player id is known.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	seed := time.Now().Unix()
	if flag.NArg() > 0 {
		v, err := strconv.ParseInt(flag.Arg(0), 10, 64)
		if err != nil {
			slog.Error("invalid seed argument", "arg", flag.Arg(0), "error", err)
			os.Exit(2)
		}
		seed = v
	}

	opts := options{
		tuningPath: *tuningPath,
		logDir:     *logDir,
		replayDir:  *replayDir,
		level:      level,
		seed:       seed,
	}
	if err := run(os.Stdin, os.Stdout, opts); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

type options struct {
	tuningPath string
	logDir     string
	replayDir  string
	level      slog.Level
	seed       int64
}

// run plays one match over in/out. Once the per-player log file is open, a
// fatal error is written there before the file closes and logging falls back
// to stderr.
func run(in io.Reader, out io.Writer, opts options) (err error) {
	tuning := rules.DefaultTuning()
	if opts.tuningPath != "" {
		t, err := rules.LoadTuning(opts.tuningPath)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		tuning = t
	}
	engine, err := rules.NewEngine(tuning)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := agent.New(ipc.NewSession(in, out), engine)
	g, err := a.Init()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(opts.logDir, fmt.Sprintf("bot-%d.log", g.MyID)),
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: opts.level})))
	defer func() {
		if err != nil {
			slog.Error("bot stopped", "player", g.MyID, "turn", g.Turn, "error", err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.level})))
		_ = logFile.Close()
	}()

	slog.Info("starting bot",
		"name", tuning.BotName,
		"player", g.MyID,
		"seed", opts.seed,
		"gameSeed", g.Constants.GameSeed,
		"spawnRule", tuning.SpawnRule,
	)

	if opts.replayDir != "" {
		w, err := replay.Create(opts.replayDir, fmt.Sprintf("game-%d-p%d", g.Constants.GameSeed, g.MyID))
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				slog.Warn("close replay", "error", err)
			}
		}()
		err = w.WriteHeader(replay.Header{
			Bot:       tuning.BotName,
			PlayerID:  g.MyID,
			Seed:      opts.seed,
			Width:     g.Map.Width,
			Height:    g.Map.Height,
			Constants: g.Constants,
			Tuning:    engine.Tuning(),
		})
		if err != nil {
			return fmt.Errorf("write replay header: %w", err)
		}
		a.Recorder = w
	}

	if err := a.Ready(); err != nil {
		return err
	}
	return a.Run(ctx)
}
