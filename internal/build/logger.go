package build

import (
	"io"

	btclog "github.com/btcsuite/btclog/v2"
)

// rootLogger backs every UseLogger call until Init installs the real one.
// Defaulting it to a handler writing to io.Discard (rather than leaving it
// nil) means a subsystem that logs before cmd/actorkitd's startup wiring
// runs just produces no output, instead of panicking on a nil interface.
var rootLogger btclog.Logger = btclog.NewSLogger(btclog.NewDefaultHandler(io.Discard))

// Init installs logger as the root every UseLogger call derives its
// subsystem-tagged copy from. Called once by cmd/actorkitd at startup,
// after the console/file HandlerSet has been built.
func Init(logger btclog.Logger) {
	rootLogger = logger
}

// UseLogger returns a copy of the root logger tagged with subsystem, e.g.
// UseLogger("core") for internal/actor's fatal-error path or UseLogger("net")
// for the broadcast network's drop/overflow warnings.
func UseLogger(subsystem string) btclog.Logger {
	return rootLogger.WithPrefix(subsystem)
}
