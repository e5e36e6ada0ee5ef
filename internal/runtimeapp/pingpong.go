package runtimeapp

import "github.com/roasbeef/actorkit/internal/actor"

// Responder[P] has no state of its own: it listens for Ping[P] and
// echoes back Pong[P] with N incremented by one. Grounded on spec.md §8
// scenario 2, "Responder listens for Ping(n) and publishes Pong(n+1)".
type Responder[P any] struct {
	base *actor.Actor
}

func newResponder[P any](base *actor.Actor) Responder[P] {
	actor.Listen(base, func(p Ping[P]) {
		actor.Publish(base, Pong[P]{N: p.N + 1})
	})
	return Responder[P]{base: base}
}

// Driver[P] drives one side of a Ping[P]/Pong[P] exchange: it fires the
// opening Ping[P] once it reaches STARTED, counts replies, and keeps the
// exchange going until target round trips have completed, at which point
// it publishes Done[P] exactly once. Grounded on spec.md §8 scenarios 2
// ("Root publishes Ping(0) on StartCnf<Root> ... until n == 50000") and 3
// (the same loop run N times in parallel with disjoint types).
type Driver[P any] struct {
	base   *actor.Actor
	target int
	onDone func()
}

// DriverArgs carries the per-pool configuration NewChild's Factory
// signature can't express directly (Factory takes only the base Actor).
type DriverArgs[P any] struct {
	Target int
	OnDone func()
}

func newDriver[P any](args DriverArgs[P]) actor.Factory[Driver[P]] {
	return func(base *actor.Actor) Driver[P] {
		d := Driver[P]{base: base, target: args.Target, onDone: args.OnDone}

		base.OnStarted(func() {
			actor.Publish(base, Ping[P]{N: 0})
		})

		actor.Listen(base, func(p Pong[P]) {
			if p.N >= d.target {
				if d.onDone != nil {
					d.onDone()
				}
				actor.Publish(base, Done[P]{})
				return
			}
			actor.Publish(base, Ping[P]{N: p.N})
		})

		return d
	}
}
