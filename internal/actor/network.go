package actor

import "sync"

// Handle identifies a single subscription returned by Network.Subscribe,
// used to Unsubscribe later.
type Handle uint64

type subscriber struct {
	handle   Handle
	callback func(Message)
}

// Network is the type-keyed broadcast registry every mailbox bridges
// into on first local subscription for a given message type. Publish
// holds networkMu for the whole fan-out, exactly like Network::publish
// in the original: callbacks must not re-enter the network (they should
// only enqueue into their own mailbox and return), since the lock is
// still held while they run.
type Network struct {
	onError OnError

	mu          sync.RWMutex
	subscribers map[TypeID][]subscriber
	nextHandle  Handle
}

// NewNetwork builds an empty Network.
func NewNetwork(onError OnError) *Network {
	if onError == nil {
		onError = DefaultOnError
	}
	return &Network{
		onError:     onError,
		subscribers: make(map[TypeID][]subscriber),
	}
}

// Subscribe registers callback to be invoked synchronously, under the
// network lock, whenever a message of type id is Published. It returns a
// Handle that Unsubscribe accepts to remove the registration.
func (n *Network) Subscribe(id TypeID, callback func(Message)) Handle {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextHandle++
	h := n.nextHandle
	n.subscribers[id] = append(n.subscribers[id], subscriber{handle: h, callback: callback})
	return h
}

// Unsubscribe removes a subscription previously returned by Subscribe.
// Unsubscribing an unknown handle is logged, not fatal, mirroring the
// "no-op conditions" error category.
func (n *Network) Unsubscribe(id TypeID, h Handle) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := n.subscribers[id]
	for i, s := range subs {
		if s.handle == h {
			n.subscribers[id] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers msg synchronously to every subscriber registered for
// msg's TypeID, while holding the network lock for the whole fan-out.
// Publishing a message with no subscribers is a no-op, not fatal.
func (n *Network) Publish(id TypeID, msg Message) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, s := range n.subscribers[id] {
		s.callback(msg)
	}
}
