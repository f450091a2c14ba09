package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/reoring/archival"
	"github.com/reoring/archival/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "convert":
		convertCmd(os.Args[2:])
	case "save":
		saveCmd(os.Args[2:])
	case "inspect":
		inspectCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `archival CLI

Usage:
  archival convert -in a.json -out a.yaml
  archival save    -in scene.json -out scene.msgpack
  archival save    -sample -out scene.json
  archival inspect -in scene.json [-frames N] [-watch]

Every subcommand accepts -config archival.toml.
Formats follow the file extension: .json, .yaml/.yml, .msgpack/.mp.`)
}

// env is what every subcommand needs after flag parsing.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func setup(fs *flag.FlagSet, args []string) env {
	var cfgPath, level string
	fs.StringVar(&cfgPath, "config", "", "TOML config file")
	fs.StringVar(&level, "log-level", "", "log level: debug, info, warn, error")
	_ = fs.Parse(args)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	if level != "" {
		cfg.Logging.Level = level
	}
	log, err := cfg.NewLogger()
	if err != nil {
		fatalf("%v", err)
	}
	archival.SetLogger(log)
	return env{cfg: cfg, log: log}
}

func (e env) close() {
	_ = e.log.Sync()
	archival.UseDefaultLogger()
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var in, out string
	fs.StringVar(&in, "in", "", "input file (.json or .yaml)")
	fs.StringVar(&out, "out", "", "output file (.json or .yaml)")
	e := setup(fs, args)
	defer e.close()
	if in == "" || out == "" {
		fs.Usage()
		os.Exit(2)
	}
	if err := convertFile(e.cfg, in, out); err != nil {
		fatalf("convert: %v", err)
	}
	e.log.Info("converted", zap.String("in", in), zap.String("out", out))
}

func saveCmd(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	var in, out string
	var sample bool
	fs.StringVar(&in, "in", "", "input scene (.json, .yaml or .msgpack)")
	fs.StringVar(&out, "out", "", "output scene (.json, .yaml or .msgpack)")
	fs.BoolVar(&sample, "sample", false, "write the built-in sample scene instead of reading -in")
	e := setup(fs, args)
	defer e.close()
	if out == "" || (in == "") == !sample {
		fs.Usage()
		os.Exit(2)
	}
	if err := saveFile(e, in, out, sample); err != nil {
		fatalf("save: %v", err)
	}
	e.log.Info("saved", zap.String("out", out))
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var in string
	var frames int
	var watching bool
	fs.StringVar(&in, "in", "", "input scene (.json, .yaml or .msgpack)")
	fs.IntVar(&frames, "frames", 0, "frames to draw per render (default from config)")
	fs.BoolVar(&watching, "watch", false, "re-render whenever the input changes")
	e := setup(fs, args)
	defer e.close()
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}
	if frames > 0 {
		e.cfg.Inspect.Frames = frames
	}

	if err := inspectFile(e, in, os.Stdout); err != nil {
		fatalf("inspect: %v", err)
	}
	if !watching {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := watch(ctx, e.log, in, e.cfg.Inspect.Debounce.Duration(), func() {
		if err := inspectFile(e, in, os.Stdout); err != nil {
			e.log.Warn("re-render failed", zap.String("path", in), zap.Error(err))
		}
	})
	if err != nil {
		fatalf("watch: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
