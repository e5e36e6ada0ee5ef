package runtimeapp

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/roasbeef/actorkit/internal/actor"
)

// soloSlot marks the single Driver/Responder pair that runs the
// high-volume exchange of spec.md §8 scenario 2, kept separate from the
// parallel pool's poolSlot0..7 so the two scenarios' messages never
// share a TypeID.
type soloSlot struct{}

// GatewayConfig controls how many parallel ping-pong pairs Gateway
// builds (spec.md §8 scenario 3) and how many round trips each pair and
// the solo pair (scenario 2) run before reporting done.
type GatewayConfig struct {
	// PoolSize is the number of parallel Driver/Responder pairs to
	// build, clamped to [1, 8] (see messages.go's poolSlot family).
	PoolSize int

	// PoolExchanges is the number of Ping/Pong round trips each pool
	// pair runs before publishing Done.
	PoolExchanges int

	// SoloExchanges is the number of round trips the dedicated solo
	// pair runs; spec.md §8 scenario 2 specifies 50000.
	SoloExchanges int

	// OnAllDone, if set, is called exactly once, after the solo pair
	// and every pool pair have reported Done, just before Gateway
	// publishes Stop. Tests use this to assert completion counts.
	OnAllDone fn.Option[func()]
}

// DefaultGatewayConfig mirrors spec.md §8 scenarios 2 and 3 directly: one
// solo pair running 50000 exchanges, four pool pairs (matching the
// default dispatcher count) running 10000 each.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		PoolSize:      4,
		PoolExchanges: 10000,
		SoloExchanges: 50000,
	}
}

// Gateway is the application's root actor. It has no behavior of its own
// beyond being the attachment point for children — grounded directly on
// original_source's GwSystemRoot — but here it also owns the pool of
// Driver/Responder pairs and the Supervisor/Worker tree that exercise
// every core operation end-to-end (see SPEC_FULL.md §7).
type Gateway struct {
	base *actor.Actor
}

// NewGateway returns a Factory Core.Init/actor.New can build a root
// actor from.
func NewGateway(env *actor.Environment, cfg GatewayConfig) actor.Factory[Gateway] {
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 1
	}
	if cfg.PoolSize > 8 {
		cfg.PoolSize = 8
	}

	return func(base *actor.Actor) Gateway {
		// +1 for the solo pair alongside the PoolSize parallel pairs.
		// markDone is invoked from each pool's own Driver, which runs
		// on its own mailbox concurrently with every other pool's, so
		// the shared countdown needs an atomic, not a plain int.
		var remaining atomic.Int64
		remaining.Store(int64(cfg.PoolSize + 1))

		markDone := func() {
			if remaining.Add(-1) != 0 {
				return
			}
			cfg.OnAllDone.UnwrapOr(func() {})()
			actor.Publish(base, actor.Stop{})
		}

		actor.NewChild[Driver[soloSlot]](base, env, "solo-driver-"+shortUUID(),
			newDriver[soloSlot](DriverArgs[soloSlot]{Target: cfg.SoloExchanges, OnDone: markDone}))
		actor.NewChild[Responder[soloSlot]](base, env, "solo-responder-"+shortUUID(), newResponder[soloSlot])

		addPoolPair[poolSlot0](base, env, 0, cfg, markDone)
		addPoolPair[poolSlot1](base, env, 1, cfg, markDone)
		addPoolPair[poolSlot2](base, env, 2, cfg, markDone)
		addPoolPair[poolSlot3](base, env, 3, cfg, markDone)
		addPoolPair[poolSlot4](base, env, 4, cfg, markDone)
		addPoolPair[poolSlot5](base, env, 5, cfg, markDone)
		addPoolPair[poolSlot6](base, env, 6, cfg, markDone)
		addPoolPair[poolSlot7](base, env, 7, cfg, markDone)

		actor.NewChild[Supervisor[middleSlotA, leafSlotA1, leafSlotA2, leafSlotA3]](
			base, env, "middle-a-"+shortUUID(), newSupervisor[middleSlotA, leafSlotA1, leafSlotA2, leafSlotA3](env))
		actor.NewChild[Supervisor[middleSlotB, leafSlotB1, leafSlotB2, leafSlotB3]](
			base, env, "middle-b-"+shortUUID(), newSupervisor[middleSlotB, leafSlotB1, leafSlotB2, leafSlotB3](env))

		return Gateway{base: base}
	}
}

// addPoolPair builds one parallel Driver[P]/Responder[P] pair if idx
// falls within cfg.PoolSize, a no-op otherwise. Marker types can't be
// selected by a runtime index, so NewGateway unrolls all eight slots and
// addPoolPair decides per-call whether that slot is actually wired.
func addPoolPair[P any](base *actor.Actor, env *actor.Environment, idx int, cfg GatewayConfig, onDone func()) {
	if idx >= cfg.PoolSize {
		return
	}
	actor.NewChild[Driver[P]](base, env, poolChildName(idx, "driver"),
		newDriver[P](DriverArgs[P]{Target: cfg.PoolExchanges, OnDone: onDone}))
	actor.NewChild[Responder[P]](base, env, poolChildName(idx, "responder"), newResponder[P])
}

// poolChildName suffixes role with idx and a short uuid so that repeated
// runs never collide on actor name, matching the disambiguation
// convention the teacher applies to its own registry entries.
func poolChildName(idx int, role string) string {
	return "pool-" + string(rune('0'+idx)) + "-" + role + "-" + shortUUID()
}

func shortUUID() string {
	return uuid.NewString()[:8]
}
