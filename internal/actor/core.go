package actor

import "sync"

// Core is the top-level orchestrator: it owns the Environment (Network +
// Scheduler), builds the root actor, and runs the process's single
// start/stop cycle. Grounded directly on core.cpp/core.hpp: Init wires
// the public Stop listener and the root's private stop confirmation,
// Run starts the scheduler, waits for it to go idle before injecting the
// root StartReq (so any construction-time activity has already drained),
// then blocks until the whole tree has confirmed it stopped.
type Core struct {
	env  *Environment
	root *Actor

	sendStartReq func()

	mu      sync.Mutex
	cond    *sync.Cond
	running bool
}

// NewCore builds a Core with workers dispatcher goroutines in its
// Scheduler.
func NewCore(workers int, onError OnError) *Core {
	c := &Core{env: NewEnvironment(workers, onError)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Env returns the Environment every New/NewChild call in this process
// must be given.
func (c *Core) Env() *Environment {
	return c.env
}

// Init builds the root actor of type A using factory and wires Core's
// global Stop handling to it. Must be called exactly once, before Run.
func Init[A any](c *Core, factory Factory[A]) (A, *Actor) {
	value, root := New[A](c.env, "root", factory)
	c.root = root

	c.sendStartReq = func() { Publish(root, StartReq[A]{}) }

	Listen(root, func(Stop) {
		Publish(root, StopReq[A]{})
	})
	Listen(root, func(privStopCnf[A]) {
		c.mu.Lock()
		c.running = false
		c.cond.Broadcast()
		c.mu.Unlock()
	})

	return value, root
}

// Run starts the scheduler, lets it drain any construction-time activity,
// injects the root's StartReq, then blocks until a Stop has fully
// propagated through the tree before stopping the scheduler. It returns
// once shutdown is complete.
func (c *Core) Run() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()

	c.env.scheduler.Start()
	c.env.scheduler.WaitForIdle()

	c.sendStartReq()

	c.mu.Lock()
	for c.running {
		c.cond.Wait()
	}
	c.mu.Unlock()

	c.env.scheduler.Stop()
}

// Stop publishes the global Stop message, asking the whole tree to shut
// down in an orderly fashion. Safe to call from any goroutine, e.g. a
// signal handler.
func (c *Core) Stop() {
	Publish(c.root, Stop{})
}
