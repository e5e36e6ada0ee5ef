package actor

// Environment is the set of collaborators every actor needs to reach the
// rest of the runtime: the shared Network to publish/listen on, the
// shared Scheduler its mailbox is drained on, and the fatal error
// callback. One Environment is built by Core and threaded through every
// New/NewChild call in a process.
type Environment struct {
	network   *Network
	scheduler *Scheduler
	onError   OnError
}

// NewEnvironment builds an Environment around a fresh Network and
// Scheduler with workers dispatcher goroutines.
func NewEnvironment(workers int, onError OnError) *Environment {
	if onError == nil {
		onError = DefaultOnError
	}
	return &Environment{
		network:   NewNetwork(onError),
		scheduler: NewScheduler(workers, onError),
		onError:   onError,
	}
}

// Factory builds the user-defined behavior value of actor type A, given
// the base Actor it is attached to. The base Actor is already wired into
// the environment and usable with Publish/Listen/NewChild by the time
// Factory is called; it is not yet CTOR_FINISHED, so any Listen call
// made inside Factory is buffered and replayed automatically.
type Factory[A any] func(base *Actor) A

// New constructs an actor of type A in env under name, and wraps it with
// the lifecycle protocol: once Factory returns, the actor is promoted to
// CTOR_FINISHED, its buffered Listen calls are replayed, and it starts
// listening for StartReq[A]/StopReq[A] from whatever parent later calls
// NewChild[A] on it (or, for a root actor, from Core).
//
// This is the composition-based analogue of the C++ ActorLifeCycle<TActor>
// mix-in: rather than TActor inheriting lifecycle plumbing, the lifecycle
// plumbing here wraps a plain Actor and hands the caller back both the
// behavior value and the Actor to drive it with.
func New[A any](env *Environment, name string, factory Factory[A]) (A, *Actor) {
	base := newActor(name, env.network, env.scheduler, env.onError)
	value := factory(base)

	base.publishPrivStartCnf = func() { Publish(base, privStartCnf[A]{}) }
	base.publishPrivStopCnf = func() { Publish(base, privStopCnf[A]{}) }
	base.publishPubStartCnf = func() { Publish(base, StartCnf[A]{}) }
	base.publishPubStopCnf = func() { Publish(base, StopCnf[A]{}) }
	base.startCnfTypeID = startCnfType[A]()
	base.stopCnfTypeID = stopCnfType[A]()

	base.setState(StateCtorFinished)
	base.replayDelayedListens()

	Listen(base, func(StartReq[A]) {
		base.forEachChild(func(c *childLink) { c.publishStartReq() })
		if base.childCount() == 0 {
			base.finishStart()
		}
	})

	Listen(base, func(StopReq[A]) {
		base.forEachChild(func(c *childLink) { c.publishStopReq() })
		if base.childCount() == 0 {
			base.finishStop()
		}
	})

	return value, base
}

// NewChild constructs a child actor of type C beneath parent and wires
// the parent side of the confirm protocol: once every child of parent
// (this one included) has sent its privStartCnf, parent finishes its own
// start; symmetrically for stop. The child is otherwise an independent
// actor built exactly as New would build it standalone.
func NewChild[C any](parent *Actor, env *Environment, name string, factory Factory[C]) (C, *Actor) {
	value, child := New[C](env, name, factory)

	parent.addChild(name,
		func() { Publish(child, StartReq[C]{}) },
		func() { Publish(child, StopReq[C]{}) },
	)

	Listen(parent, func(privStartCnf[C]) {
		if parent.noteChildStartCnf() {
			parent.finishStart()
		}
	})
	Listen(parent, func(privStopCnf[C]) {
		if parent.noteChildStopCnf() {
			parent.finishStop()
		}
	})

	return value, child
}
