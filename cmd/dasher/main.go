// Command dasher runs the headless endless runner for a number of frames and
// optionally records every frame to a replay file.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/akmonengine/quill/internal/config"
	"github.com/akmonengine/quill/internal/game"
	"github.com/akmonengine/quill/internal/replay"
)

type options struct {
	configPath string
	frames     int
	dt         float64
	seed       uint64
	replayPath string
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML tuning file, the default tuning when empty")
	flag.IntVar(&opts.frames, "frames", 60*60, "number of frames to simulate")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "duration of a frame, in seconds")
	flag.Uint64Var(&opts.seed, "seed", 1, "seed of the obstacle and coin generator")
	flag.StringVar(&opts.replayPath, "replay", "", "file receiving the msgpack replay, none when empty")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "dasher:", err)
		os.Exit(1)
	}
}

func run(opts options) (err error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(opts.logLevel))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.frames < 0 || !(opts.dt > 0) {
		return errors.New("frames must not be negative and dt must be positive")
	}

	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	state, err := game.New(cfg, opts.seed, logger)
	if err != nil {
		return err
	}
	defer state.Close()

	var recorder *replay.Recorder
	if opts.replayPath != "" {
		file, err := os.Create(opts.replayPath)
		if err != nil {
			return fmt.Errorf("creating replay: %w", err)
		}
		writer := bufio.NewWriter(file)
		defer func() {
			if flushErr := writer.Flush(); flushErr != nil && err == nil {
				err = fmt.Errorf("writing replay: %w", flushErr)
			}
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing replay: %w", closeErr)
			}
		}()
		recorder = replay.NewRecorder(writer)
	}

	for range opts.frames {
		if state.Finished() {
			break
		}
		state.Step(opts.dt)

		if recorder != nil {
			if err := recorder.Record(state.Elapsed(), state.Scene().Bodies()); err != nil {
				return err
			}
		}
	}

	logger.Info("run over",
		"elapsed", state.Elapsed(),
		"attempts", state.Attempts(),
		"coins", state.Coins(),
		"level", state.Level(),
		"finished", state.Finished(),
	)

	return nil
}
