package runtimeapp

import (
	"github.com/google/uuid"

	"github.com/roasbeef/actorkit/internal/actor"
)

// Worker[W] has no behavior beyond existing, grounded on spec.md §8
// scenario 4 ("Worker has no behaviour"). W is a per-leaf marker type:
// since Network routes purely by TypeID, every leaf across the whole
// tree needs its own instantiation or siblings (and cousins under a
// different Supervisor) would observe each other's confirmations.
type Worker[W any] struct {
	base *actor.Actor
}

func newWorker[W any](base *actor.Actor) Worker[W] {
	return Worker[W]{base: base}
}

// Supervisor[S, W1, W2, W3] owns exactly three Worker children, one per
// leaf marker type. Grounded on spec.md §8 scenario 4's two-level tree:
// "Root with two Middle children, each with three Leaf children."
type Supervisor[S, W1, W2, W3 any] struct {
	base    *actor.Actor
	workers []*actor.Actor
}

func newSupervisor[S, W1, W2, W3 any](env *actor.Environment) actor.Factory[Supervisor[S, W1, W2, W3]] {
	return func(base *actor.Actor) Supervisor[S, W1, W2, W3] {
		_, w1 := actor.NewChild[Worker[W1]](base, env, "worker-1-"+uuid.NewString()[:8], newWorker[W1])
		_, w2 := actor.NewChild[Worker[W2]](base, env, "worker-2-"+uuid.NewString()[:8], newWorker[W2])
		_, w3 := actor.NewChild[Worker[W3]](base, env, "worker-3-"+uuid.NewString()[:8], newWorker[W3])

		return Supervisor[S, W1, W2, W3]{
			base:    base,
			workers: []*actor.Actor{w1, w2, w3},
		}
	}
}

// Tree position markers for scenario 4's two Middle / six Leaf tree.
type (
	middleSlotA struct{}
	middleSlotB struct{}

	leafSlotA1 struct{}
	leafSlotA2 struct{}
	leafSlotA3 struct{}
	leafSlotB1 struct{}
	leafSlotB2 struct{}
	leafSlotB3 struct{}
)
