package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
	"github.com/spf13/cobra"

	"github.com/roasbeef/actorkit/internal/actor"
	"github.com/roasbeef/actorkit/internal/build"
	"github.com/roasbeef/actorkit/internal/config"
	"github.com/roasbeef/actorkit/internal/runtimeapp"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Gateway actor tree to completion",
	Long: `run loads the config document, wires the channel logger, builds a
worker-pool Core around the Gateway example application, and blocks until
a Stop (Ctrl-C or SIGTERM) has fully propagated through the tree.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	doc, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	workers := dispatchers
	if workers <= 0 {
		if env := os.Getenv("ACTORKITD_DISPATCHERS"); env != "" {
			workers = config.MustAtoi(env, 0)
		}
	}
	if workers <= 0 {
		workers, _ = config.GetValue[int](doc, "core.numberOfDispatchers", ".")
	}
	if workers <= 0 {
		workers = 4
	}

	logger, rotator, err := buildLogger(doc)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	if rotator != nil {
		defer rotator.Close()
	}
	build.Init(logger)

	actorLog := build.UseLogger("actor")
	coreLog := build.UseLogger("core")
	msgTxLog := build.UseLogger("msg_tx")
	msgRxLog := build.UseLogger("msg_rx")
	msgTxLog.Debugf("msg_tx channel ready")
	msgRxLog.Debugf("msg_rx channel ready")

	actorLog.Infof("actorkitd starting, dispatchers=%d", workers)

	onError := func(code actor.ErrorCode, msg string) {
		coreLog.Errorf("fatal [code=%d]: %s", code, msg)
		os.Exit(int(code))
	}

	core := actor.NewCore(workers, onError)
	gwCfg := runtimeapp.DefaultGatewayConfig()
	actor.Init[runtimeapp.Gateway](core, runtimeapp.NewGateway(core.Env(), gwCfg))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		coreLog.Infof("received signal %s, stopping", sig)
		core.Stop()
	}()

	core.Run()

	coreLog.Infof("actorkitd stopped cleanly")
	return nil
}

// buildLogger constructs the console (+ optional rotating file) handler
// fan-out and wraps it in a btclog/v2 Logger, mirroring
// cmd/substrated/main.go's dual-stream wiring.
func buildLogger(doc *config.Document) (btclogv2.Logger, *build.RotatingLogWriter, error) {
	var handlers []btclogv2.Handler
	handlers = append(handlers, btclogv2.NewDefaultHandler(os.Stderr))

	var rotator *build.RotatingLogWriter
	if logDir != "" {
		rotator = build.NewRotatingLogWriter()
		err := rotator.InitLogRotator(&build.LogRotatorConfig{
			LogDir:         logDir,
			MaxLogFiles:    maxLogFiles,
			MaxLogFileSize: maxLogFileSize,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init log rotator: %w", err)
		}
		handlers = append(handlers, btclogv2.NewDefaultHandler(rotator))
	}

	combined := build.NewHandlerSet(handlers...)

	level, _ := config.GetValue[string](doc, "logging.client.level", ".")
	combined.SetLevel(levelFromString(level))

	return btclogv2.NewSLogger(combined), rotator, nil
}

// levelFromString maps the logging.client.level config value (spec §6:
// error/warning/info/debug/trace) onto btclog's level constants, falling
// back to LevelInfo for anything unrecognized.
func levelFromString(s string) btclog.Level {
	switch s {
	case "trace":
		return btclog.LevelTrace
	case "debug":
		return btclog.LevelDebug
	case "warning", "warn":
		return btclog.LevelWarn
	case "error":
		return btclog.LevelError
	case "critical":
		return btclog.LevelCritical
	case "off":
		return btclog.LevelOff
	default:
		return btclog.LevelInfo
	}
}
