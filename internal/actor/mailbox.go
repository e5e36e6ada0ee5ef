package actor

import (
	"math"
	"sync"
)

// localSub is one locally-registered callback for a message type.
type localSub struct {
	handle Handle
	cb     func(Message)
}

// mailbox is the per-actor Port: a command queue (subscribe/unsubscribe
// intents) and an event queue (delivered messages), each drained by a
// single worker at a time, with commands always fully drained before any
// event on a given consume cycle. At most one outstanding self-schedule
// onto the Scheduler is ever in flight, tracked by scheduled.
//
// Two independent mutexes guard this type: queueMu for the command/event
// deques and the scheduled flag, registryMu for the local callback
// registry. A command closure that needs to touch the registry acquires
// registryMu without holding queueMu, since it runs after queueMu has
// already been released by drainCommands.
type mailbox struct {
	network *Network

	// scheduleFn enqueues fn onto the owning actor's worker pool. In the
	// C++ original this is a two-hop schedule (Port onto Actor, Actor
	// onto Priority) guarded by a constructor/destructor lock that exists
	// to protect manual object lifetime; Go's garbage collector removes
	// that hazard; so the schedule here goes straight to the Scheduler.
	scheduleFn func(func())

	queueMu   sync.Mutex
	commands  []func()
	events    []func()
	scheduled bool

	registryMu sync.Mutex
	registry   map[TypeID][]localSub
	netHandles map[TypeID]Handle
}

func newMailbox(network *Network, scheduleFn func(func())) *mailbox {
	return &mailbox{
		network:    network,
		scheduleFn: scheduleFn,
		registry:   make(map[TypeID][]localSub),
		netHandles: make(map[TypeID]Handle),
	}
}

// Listen registers cb to run, on this mailbox's owning actor, whenever a
// message of type id is delivered. h is allocated by the caller (Actor
// owns the handle namespace) so it can be handed back immediately even
// though the registration itself happens asynchronously as a command.
func (mb *mailbox) Listen(h Handle, id TypeID, cb func(Message)) {
	mb.pushCommand(func() {
		mb.registryMu.Lock()
		_, had := mb.registry[id]
		mb.registry[id] = append(mb.registry[id], localSub{handle: h, cb: cb})
		mb.registryMu.Unlock()

		if !had {
			nh := mb.network.Subscribe(id, func(msg Message) {
				mb.pushEvent(func() { mb.dispatch(id, msg) })
			})
			mb.registryMu.Lock()
			mb.netHandles[id] = nh
			mb.registryMu.Unlock()
		}
	})
}

// Unlisten removes a previously-registered callback. Unsubscribing an
// unknown handle is a no-op, not fatal.
func (mb *mailbox) Unlisten(id TypeID, h Handle) {
	mb.pushCommand(func() {
		mb.registryMu.Lock()
		subs := mb.registry[id]
		for i, s := range subs {
			if s.handle == h {
				mb.registry[id] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		empty := len(mb.registry[id]) == 0
		var nh Handle
		if empty {
			nh = mb.netHandles[id]
			delete(mb.netHandles, id)
			delete(mb.registry, id)
		}
		mb.registryMu.Unlock()

		if empty {
			mb.network.Unsubscribe(id, nh)
		}
	})
}

func (mb *mailbox) dispatch(id TypeID, msg Message) {
	mb.registryMu.Lock()
	subs := make([]localSub, len(mb.registry[id]))
	copy(subs, mb.registry[id])
	mb.registryMu.Unlock()

	for _, s := range subs {
		s.cb(msg)
	}
}

func (mb *mailbox) pushCommand(cmd func()) {
	mb.queueMu.Lock()
	mb.commands = append(mb.commands, cmd)
	claimed := mb.claimScheduleLocked()
	mb.queueMu.Unlock()
	if claimed {
		mb.scheduleFn(func() { mb.consume(math.MaxInt) })
	}
}

func (mb *mailbox) pushEvent(ev func()) {
	mb.queueMu.Lock()
	mb.events = append(mb.events, ev)
	claimed := mb.claimScheduleLocked()
	mb.queueMu.Unlock()
	if claimed {
		mb.scheduleFn(func() { mb.consume(math.MaxInt) })
	}
}

// claimScheduleLocked must be called with queueMu held. It reports
// whether the caller has just become responsible for invoking
// scheduleFn exactly once; scheduleFn itself is always invoked after
// queueMu is released, since a synchronous scheduleFn (as used in
// tests) calling back into consume while queueMu is still held would
// self-deadlock on the non-reentrant mutex.
func (mb *mailbox) claimScheduleLocked() bool {
	if mb.scheduled {
		return false
	}
	mb.scheduled = true
	return true
}

// consume redrains every pending command, then pops and runs exactly one
// queued event, repeating until either the event queue is empty or max
// events have run. Mirrors port.cpp's
// `while (processCommandsAndGetQueuedEventsCount() > 0 && consumed < max)`
// line for line, so a command an event just pushed (e.g. an Unlisten
// triggered by the event ahead of it) takes effect before the next event
// in the same batch is dispatched, not just on the next schedule cycle.
func (mb *mailbox) consume(max int) {
	consumed := 0
	for consumed < max {
		mb.drainCommands()

		mb.queueMu.Lock()
		if len(mb.events) == 0 {
			mb.queueMu.Unlock()
			break
		}
		ev := mb.events[0]
		mb.events = mb.events[1:]
		mb.queueMu.Unlock()

		ev()
		consumed++
	}

	mb.queueMu.Lock()
	mb.scheduled = false
	claimed := false
	if len(mb.commands) > 0 || len(mb.events) > 0 {
		claimed = mb.claimScheduleLocked()
	}
	mb.queueMu.Unlock()
	if claimed {
		mb.scheduleFn(func() { mb.consume(math.MaxInt) })
	}
}

func (mb *mailbox) drainCommands() {
	for {
		mb.queueMu.Lock()
		if len(mb.commands) == 0 {
			mb.queueMu.Unlock()
			return
		}
		cmd := mb.commands[0]
		mb.commands = mb.commands[1:]
		mb.queueMu.Unlock()

		cmd()
	}
}
