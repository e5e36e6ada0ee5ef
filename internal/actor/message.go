package actor

import "fmt"

// Message is the sealed interface every value passed through Publish must
// implement. Embedding BaseMessage satisfies the marker method; user
// messages only need to supply MessageType.
type Message interface {
	// messageMarker is unexported so Message can only be implemented by
	// embedding BaseMessage, mirroring the sealed-interface convention
	// used throughout this codebase's message types.
	messageMarker()

	// MessageType returns a human-readable name for logging, independent
	// of the TypeID used for routing.
	MessageType() string
}

// BaseMessage is embedded by every concrete message type to satisfy
// Message. It carries no state of its own.
type BaseMessage struct{}

func (BaseMessage) messageMarker() {}

// MessageType is overridden by embedders that want a friendlier name; the
// default falls back to the Go type name via fmt, which is good enough
// for the lifecycle messages below where NAME is derived mechanically.
func (BaseMessage) MessageType() string {
	return "BaseMessage"
}

// Stop is published by a user to request an orderly shutdown of the
// actor tree rooted at Core. Core listens for it and forwards a
// StopReq[Root] to the root actor.
type Stop struct {
	BaseMessage
}

func (Stop) MessageType() string { return "Stop" }

// isLifecycleMessage lets Publish's state gate (see actor.go) allow this
// message through regardless of the publishing actor's current state.
func (Stop) isLifecycleMessage() {}

// The four lifecycle messages below are parameterized over the actor
// type A they concern, exactly like the C++ StartReq<ActorT> /
// StopReq<ActorT> / confirm template family. Each instantiation gets its
// own TypeID via typeIDOf, so StartReq[Responder] and StartReq[Worker]
// never collide on the network.

// StartReq[A] is sent by a parent to a child of type A to request it
// (and transitively its own children) start.
type StartReq[A any] struct {
	BaseMessage
}

func (StartReq[A]) MessageType() string {
	return fmt.Sprintf("StartReq<%T>", *new(A))
}

func (StartReq[A]) isLifecycleMessage() {}

// StopReq[A] is the stop analogue of StartReq[A].
type StopReq[A any] struct {
	BaseMessage
}

func (StopReq[A]) MessageType() string {
	return fmt.Sprintf("StopReq<%T>", *new(A))
}

func (StopReq[A]) isLifecycleMessage() {}

// privStartCnf[A] is sent by a child of type A back to its parent once
// the child and all of its own descendants have finished starting.
type privStartCnf[A any] struct {
	BaseMessage
}

func (privStartCnf[A]) MessageType() string {
	return fmt.Sprintf("PrivStartCnf<%T>", *new(A))
}

func (privStartCnf[A]) isLifecycleMessage() {}

// privStopCnf[A] is the stop analogue of privStartCnf[A].
type privStopCnf[A any] struct {
	BaseMessage
}

func (privStopCnf[A]) MessageType() string {
	return fmt.Sprintf("PrivStopCnf<%T>", *new(A))
}

func (privStopCnf[A]) isLifecycleMessage() {}

// StartCnf[A] is the public confirmation that an actor of type A (and
// its whole subtree) has started. Unlike privStartCnf[A], any actor may
// listen for it, not just the parent.
type StartCnf[A any] struct {
	BaseMessage
}

func (StartCnf[A]) MessageType() string {
	return fmt.Sprintf("StartCnf<%T>", *new(A))
}

func (StartCnf[A]) isLifecycleMessage() {}

// StopCnf[A] is the public confirmation analogue of StartCnf[A].
type StopCnf[A any] struct {
	BaseMessage
}

func (StopCnf[A]) MessageType() string {
	return fmt.Sprintf("StopCnf<%T>", *new(A))
}

func (StopCnf[A]) isLifecycleMessage() {}

// Lifecycle TypeID accessors. These exist so actor.go and lifecycle.go
// never call typeIDOf directly against a lifecycle message type, keeping
// the naming convention for the message catalogue in one place.

func startReqType[A any]() TypeID      { return typeIDOf[StartReq[A]]() }
func stopReqType[A any]() TypeID       { return typeIDOf[StopReq[A]]() }
func privStartCnfType[A any]() TypeID  { return typeIDOf[privStartCnf[A]]() }
func privStopCnfType[A any]() TypeID   { return typeIDOf[privStopCnf[A]]() }
func startCnfType[A any]() TypeID      { return typeIDOf[StartCnf[A]]() }
func stopCnfType[A any]() TypeID       { return typeIDOf[StopCnf[A]]() }
