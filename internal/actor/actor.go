package actor

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ActorState is the lifecycle state machine every Actor moves through,
// strictly in this order and driven only by lifecycle messages:
// INIT -> CTOR_FINISHED -> STARTED -> STOPPED.
type ActorState int

const (
	StateInit ActorState = iota
	StateCtorFinished
	StateStarted
	StateStopped
)

func (s ActorState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateCtorFinished:
		return "CTOR_FINISHED"
	case StateStarted:
		return "STARTED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// lifecycleMessage is implemented only by Stop and by every instantiation
// of the StartReq/StopReq/privStartCnf/privStopCnf/StartCnf/StopCnf
// family. Publish lets these through regardless of actor state, since
// they drive the state machine itself; every other message requires the
// publishing actor to be STARTED.
type lifecycleMessage interface {
	isLifecycleMessage()
}

// childLink is what a parent keeps per child: just enough to forward a
// start or stop request without knowing the child's concrete type. This
// is the Go analogue of the C++ type-erased ChildContainer.
type childLink struct {
	name            string
	publishStartReq func()
	publishStopReq  func()
}

// Actor is the runtime unit of the actor tree. It owns a mailbox bridged
// into the Network, an explicit state machine, and the bookkeeping the
// generic lifecycle wrapper in lifecycle.go uses to fan StartReq/StopReq
// out to children and fan their confirmations back up.
type Actor struct {
	Name string

	network   *Network
	scheduler *Scheduler
	mailbox   *mailbox
	onError   OnError

	mu    sync.Mutex
	state ActorState

	delayedListens []func()

	children   map[string]*childLink
	childOrder []string
	startCnfs  int
	stopCnfs   int

	startCnfTypeID TypeID
	stopCnfTypeID  TypeID

	publicStartCallbacks []func()
	publicStopCallbacks  []func()

	publishPrivStartCnf func()
	publishPrivStopCnf  func()
	publishPubStartCnf  func()
	publishPubStopCnf   func()

	nextHandle atomic.Uint64
}

func newActor(name string, network *Network, scheduler *Scheduler, onError OnError) *Actor {
	return &Actor{
		Name:      name,
		network:   network,
		scheduler: scheduler,
		onError:   onError,
		mailbox:   newMailbox(network, scheduler.Schedule),
		state:     StateInit,
		children:  make(map[string]*childLink),
	}
}

// State returns the actor's current lifecycle state.
func (a *Actor) State() ActorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Actor) setState(s ActorState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Actor) allocHandle() Handle {
	return Handle(a.nextHandle.Add(1))
}

// Publish sends msg to every listener registered anywhere in the tree
// for type M. Publishing a non-lifecycle message while the actor is not
// STARTED is an invariant violation.
func Publish[M Message](a *Actor, msg M) {
	if _, ok := any(msg).(lifecycleMessage); !ok {
		if st := a.State(); st != StateStarted {
			a.onError(ErrCodeInvariantViolation, fmt.Sprintf(
				"actor %q: Publish<%s> while not STARTED (state=%s)",
				a.Name, msg.MessageType(), st))
			return
		}
	}
	a.network.Publish(typeIDOf[M](), msg)
}

// Listen registers cb to run on this actor whenever a message of type M
// is published anywhere in the tree. Calls made before the actor has
// finished construction (state INIT) are buffered and replayed, in
// order, once the lifecycle wrapper promotes it to CTOR_FINISHED.
func Listen[M Message](a *Actor, cb func(M)) Handle {
	id := typeIDOf[M]()
	h := a.allocHandle()
	wrapped := func(m Message) { cb(m.(M)) }

	a.mu.Lock()
	if a.state == StateInit {
		a.delayedListens = append(a.delayedListens, func() {
			a.mailbox.Listen(h, id, wrapped)
		})
		a.mu.Unlock()
		return h
	}
	a.mu.Unlock()

	a.mailbox.Listen(h, id, wrapped)
	return h
}

// Unlisten removes a registration previously returned by Listen.
func Unlisten[M Message](a *Actor, h Handle) {
	a.mailbox.Unlisten(typeIDOf[M](), h)
}

// replayDelayedListens installs every buffered Listen call, in the order
// it was made, then clears the buffer. Called once by the lifecycle
// wrapper immediately after it sets state to CTOR_FINISHED.
func (a *Actor) replayDelayedListens() {
	a.mu.Lock()
	pending := a.delayedListens
	a.delayedListens = nil
	a.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// addChild registers a child under name so that a future StartReq/StopReq
// fan-out (installed by the lifecycle wrapper) reaches it too. Adding a
// child with a name already in use is an invariant violation.
func (a *Actor) addChild(name string, publishStartReq, publishStopReq func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.children[name]; exists {
		a.onError(ErrCodeInvariantViolation, fmt.Sprintf(
			"actor %q: duplicate child name %q", a.Name, name))
		return
	}
	a.children[name] = &childLink{name: name, publishStartReq: publishStartReq, publishStopReq: publishStopReq}
	a.childOrder = append(a.childOrder, name)
}

func (a *Actor) childCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.children)
}

func (a *Actor) forEachChild(fn func(*childLink)) {
	a.mu.Lock()
	links := make([]*childLink, 0, len(a.childOrder))
	for _, name := range a.childOrder {
		links = append(links, a.children[name])
	}
	a.mu.Unlock()

	for _, c := range links {
		fn(c)
	}
}

// noteChildStartCnf records that one more child finished starting, and
// reports whether that was the last one expected.
func (a *Actor) noteChildStartCnf() (last bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startCnfs++
	if a.startCnfs == len(a.children) {
		a.startCnfs = 0
		return true
	}
	return false
}

// noteChildStopCnf is the stop analogue of noteChildStartCnf.
func (a *Actor) noteChildStopCnf() (last bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopCnfs++
	if a.stopCnfs == len(a.children) {
		a.stopCnfs = 0
		return true
	}
	return false
}

// OnStarted registers cb to run synchronously, as part of this actor
// completing its own start transition, before the public StartCnf is
// broadcast. This is the explicit-method stand-in for listening to an
// actor's own StartCnf: since Go's generics make an actor's own TypeID
// available immediately (no constructor-ordering problem to work
// around), there's no need to route "my own confirm" through the
// network and back.
func (a *Actor) OnStarted(cb func()) {
	a.mu.Lock()
	a.publicStartCallbacks = append(a.publicStartCallbacks, cb)
	a.mu.Unlock()
}

// OnStopped is the stop analogue of OnStarted.
func (a *Actor) OnStopped(cb func()) {
	a.mu.Lock()
	a.publicStopCallbacks = append(a.publicStopCallbacks, cb)
	a.mu.Unlock()
}

// finishStart runs the public-callbacks-then-confirm sequence for an
// actor with no (remaining) unconfirmed children: STARTED is set first,
// then every OnStarted callback runs, then the public StartCnf is
// broadcast, then the private confirm reaches the parent. Public before
// private is an explicitly preserved ordering.
func (a *Actor) finishStart() {
	a.setState(StateStarted)

	a.mu.Lock()
	cbs := append([]func(){}, a.publicStartCallbacks...)
	a.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}

	a.publishPubStartCnf()
	a.publishPrivStartCnf()
}

// finishStop is the stop analogue of finishStart: callbacks run before
// the STOPPED transition, matching the source's stop ordering exactly
// (which differs from the start ordering on purpose).
func (a *Actor) finishStop() {
	a.mu.Lock()
	cbs := append([]func(){}, a.publicStopCallbacks...)
	a.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}

	a.setState(StateStopped)

	a.publishPubStopCnf()
	a.publishPrivStopCnf()
}
