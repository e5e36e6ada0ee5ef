// Package runtimeapp is a small application actor tree exercising the
// runtime kernel in internal/actor end-to-end: a Gateway root fans out to
// a pool of Responder children (spec.md §8 scenario 3, "parallel
// ping-pong") and to a two-level Supervisor/Worker tree (scenario 4,
// "two-level tree"), while a single Responder instance exercises the
// high-volume scenario 2 exchange.
package runtimeapp

import (
	"fmt"

	"github.com/roasbeef/actorkit/internal/actor"
)

// Ping[P] is published by a Responder[P]'s counterpart to kick off one
// exchange; the parent echoes it back incremented by one in Pong[P]. P is
// a zero-sized marker type, one per pool slot, so that scenario 3's N
// disjoint responder/receiver pairs get N disjoint TypeIDs on the shared
// Network and cannot cross-deliver: this is the Go stand-in for the
// original's per-actor-type template instantiation, since Go generics
// have no value-level type parameter to key a single generic message off
// a runtime pool index.
type Ping[P any] struct {
	actor.BaseMessage
	N int
}

func (Ping[P]) MessageType() string { return fmt.Sprintf("Ping<%T>", *new(P)) }

// Pong[P] is the Responder[P]'s reply to a Ping[P].
type Pong[P any] struct {
	actor.BaseMessage
	N int
}

func (Pong[P]) MessageType() string { return fmt.Sprintf("Pong<%T>", *new(P)) }

// Done[P] is published once by pool member P when it reaches its
// exchange target, so the Gateway can count how many of the N pairs in
// scenario 3 have finished before it publishes Stop.
type Done[P any] struct {
	actor.BaseMessage
}

func (Done[P]) MessageType() string { return fmt.Sprintf("Done<%T>", *new(P)) }

// poolSlot0 .. poolSlot7 are the marker types instantiating Ping/Pong/Done
// above. Eight slots comfortably covers the default dispatcher count (4)
// and every scenario in spec.md §8; NewGateway clamps PoolSize to len(poolSlots).
type (
	poolSlot0 struct{}
	poolSlot1 struct{}
	poolSlot2 struct{}
	poolSlot3 struct{}
	poolSlot4 struct{}
	poolSlot5 struct{}
	poolSlot6 struct{}
	poolSlot7 struct{}
)
