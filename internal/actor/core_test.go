package actor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// leafRoot is a root actor with no children and no behavior beyond
// existing; exercises core scenario 1 (empty tree start/stop).
type leafRoot struct {
	base *Actor
}

func newLeafRoot(base *Actor) leafRoot {
	return leafRoot{base: base}
}

func runCoreWithTimeout(t *testing.T, c *Core) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Core.Run never returned")
	}
}

func TestCoreEmptyTreeStartsAndStops(t *testing.T) {
	t.Parallel()

	c := NewCore(2, DefaultOnError)
	_, root := Init[leafRoot](c, newLeafRoot)

	var started, stopped atomic.Bool
	root.OnStarted(func() { started.Store(true) })
	root.OnStopped(func() { stopped.Store(true) })

	go func() {
		time.Sleep(50 * time.Millisecond)
		c.Stop()
	}()

	runCoreWithTimeout(t, c)

	require.True(t, started.Load())
	require.True(t, stopped.Load())
	require.Equal(t, StateStopped, root.State())
}

// leafNode[M] has no behavior of its own; M is a zero-sized marker type
// distinguishing one tree position from another. Since the Network
// routes StartReq/StopReq/privStartCnf/privStopCnf purely by TypeID
// (there is no instance targeting anywhere in the runtime, only type
// identity), two siblings built from the literal same Go type would
// share a single TypeID and each would observe every sibling's
// confirmation, not just its own — so any two children meant to be
// independently addressable must be distinct instantiations, exactly
// like the generic message catalogue in message.go. leafSlotA..E below
// play that role for this test's five children.
type leafNode[M any] struct{ base *Actor }

func newLeafNode[M any](base *Actor) leafNode[M] { return leafNode[M]{base: base} }

type (
	leafSlotA struct{}
	leafSlotB struct{}
	leafSlotC struct{}
	leafSlotD struct{}
	leafSlotE struct{}
)

type treeRoot struct {
	base *Actor
}

func TestCoreTwoLevelTreeConfirmCounts(t *testing.T) {
	t.Parallel()

	const n = 5
	c := NewCore(4, DefaultOnError)

	var startedCount, stoppedCount atomic.Int64

	trackChild := func(base *Actor) {
		base.OnStarted(func() { startedCount.Add(1) })
		base.OnStopped(func() { stoppedCount.Add(1) })
	}

	_, root := Init[treeRoot](c, func(base *Actor) treeRoot {
		_, a := NewChild[leafNode[leafSlotA]](base, c.Env(), "child-a", newLeafNode[leafSlotA])
		_, b := NewChild[leafNode[leafSlotB]](base, c.Env(), "child-b", newLeafNode[leafSlotB])
		_, cc := NewChild[leafNode[leafSlotC]](base, c.Env(), "child-c", newLeafNode[leafSlotC])
		_, d := NewChild[leafNode[leafSlotD]](base, c.Env(), "child-d", newLeafNode[leafSlotD])
		_, e := NewChild[leafNode[leafSlotE]](base, c.Env(), "child-e", newLeafNode[leafSlotE])
		for _, childBase := range []*Actor{a, b, cc, d, e} {
			trackChild(childBase)
		}
		return treeRoot{base: base}
	})

	var rootStarted, rootStopped atomic.Bool
	root.OnStarted(func() { rootStarted.Store(true) })
	root.OnStopped(func() { rootStopped.Store(true) })

	go func() {
		time.Sleep(100 * time.Millisecond)
		c.Stop()
	}()

	runCoreWithTimeout(t, c)

	require.True(t, rootStarted.Load())
	require.True(t, rootStopped.Load())
	require.EqualValues(t, n, startedCount.Load())
	require.EqualValues(t, n, stoppedCount.Load())
}

func TestPublishNonLifecycleMessageBeforeStartedIsFatal(t *testing.T) {
	t.Parallel()

	var code ErrorCode
	onErr := func(c ErrorCode, m string) { code = c }

	env := NewEnvironment(1, onErr)
	_, base := New[leafRoot](env, "solo", newLeafRoot)

	// base is only CTOR_FINISHED here, never started.
	Publish(base, netTestMsg{val: 1})

	require.Equal(t, ErrCodeInvariantViolation, code)
}

func TestListenDuringConstructionIsBufferedAndReplayed(t *testing.T) {
	t.Parallel()

	env := NewEnvironment(1, DefaultOnError)

	var sawOwnStartReq atomic.Bool
	factory := func(base *Actor) leafRoot {
		// Called while base.State() == StateInit; this Listen call must
		// be buffered, not dropped or executed against a half-built
		// mailbox.
		Listen(base, func(StartReq[leafRoot]) {
			sawOwnStartReq.Store(true)
		})
		return leafRoot{base: base}
	}

	_, base := New[leafRoot](env, "solo", factory)

	env.scheduler.Start()
	defer env.scheduler.Stop()
	env.scheduler.WaitForIdle()

	Publish(base, StartReq[leafRoot]{})

	require.Eventually(t, sawOwnStartReq.Load, time.Second, time.Millisecond)
}
