package runtimeapp

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"

	"github.com/roasbeef/actorkit/internal/actor"
)

func runCoreWithTimeout(t *testing.T, c *actor.Core, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("Core.Run never returned")
	}
}

// TestGatewayFullRun exercises spec.md §8 scenarios 2 (solo 50000
// exchanges), 3 (N parallel pool pairs) and 4 (two-level tree) all at
// once, since Gateway wires all three under one root: every pool pair
// and the solo pair must report Done exactly once, and Core.Run must
// return once Gateway publishes Stop after the last one does.
func TestGatewayFullRun(t *testing.T) {
	t.Parallel()

	cfg := GatewayConfig{
		PoolSize:      4,
		PoolExchanges: 2000,
		SoloExchanges: 5000,
	}

	var doneCalls atomic.Int64
	cfg.OnAllDone = fn.Some(func() { doneCalls.Add(1) })

	c := actor.NewCore(8, actor.DefaultOnError)
	_, root := actor.Init[Gateway](c, NewGateway(c.Env(), cfg))

	var rootStopped atomic.Bool
	root.OnStopped(func() { rootStopped.Store(true) })

	runCoreWithTimeout(t, c, 30*time.Second)

	require.EqualValues(t, 1, doneCalls.Load())
	require.True(t, rootStopped.Load())
	require.Equal(t, actor.StateStopped, root.State())
}

// pongCounter has no behavior beyond counting every Pong[soloSlot]
// broadcast on the shared Network; it never receives a StartReq/StopReq
// of its own, since Listen registers on the mailbox as soon as the
// actor reaches CTOR_FINISHED regardless of lifecycle state.
type pongCounter struct{}

// TestSoloExchangeCountIsExact guards against the off-by-factor-of-two
// bug where both Responder and Driver incremented N: spec.md §8
// scenario 2 requires exactly SoloExchanges Ping/Pong round trips, not
// half that many. A standalone monitor actor attached to the same
// Environment counts every Pong[soloSlot] the Network broadcasts, which
// must land on exactly SoloExchanges once Gateway's solo pair reports
// Done.
func TestSoloExchangeCountIsExact(t *testing.T) {
	t.Parallel()

	const target = 200

	cfg := GatewayConfig{
		PoolSize:      1,
		PoolExchanges: 50,
		SoloExchanges: target,
	}

	var doneCalls atomic.Int64
	cfg.OnAllDone = fn.Some(func() { doneCalls.Add(1) })

	c := actor.NewCore(8, actor.DefaultOnError)

	var pongCount atomic.Int64
	actor.New[pongCounter](c.Env(), "solo-pong-counter", func(base *actor.Actor) pongCounter {
		actor.Listen(base, func(Pong[soloSlot]) { pongCount.Add(1) })
		return pongCounter{}
	})

	actor.Init[Gateway](c, NewGateway(c.Env(), cfg))

	runCoreWithTimeout(t, c, 30*time.Second)

	require.EqualValues(t, 1, doneCalls.Load())
	require.EqualValues(t, target, pongCount.Load())
}

// TestGatewayClampsPoolSize checks the documented clamp to [1, 8]
// instead of silently overrunning the poolSlot0..7 marker family or
// building a zero-pair pool.
func TestGatewayClampsPoolSize(t *testing.T) {
	t.Parallel()

	cfg := GatewayConfig{
		PoolSize:      0,
		PoolExchanges: 10,
		SoloExchanges: 10,
	}

	var doneCalls atomic.Int64
	cfg.OnAllDone = fn.Some(func() { doneCalls.Add(1) })

	c := actor.NewCore(4, actor.DefaultOnError)
	actor.Init[Gateway](c, NewGateway(c.Env(), cfg))

	runCoreWithTimeout(t, c, 10*time.Second)

	require.EqualValues(t, 1, doneCalls.Load())
}

// TestSupervisorTreeConfirmCounts isolates scenario 4: a Supervisor with
// three Worker children, started and stopped standalone, must produce
// exactly one StartCnf/StopCnf fan-in per level with no cross-delivery
// between the two leaf families exercised elsewhere by Gateway.
func TestSupervisorTreeConfirmCounts(t *testing.T) {
	t.Parallel()

	c := actor.NewCore(4, actor.DefaultOnError)

	var workerStarted, workerStopped atomic.Int64
	_, root := actor.Init[Supervisor[middleSlotA, leafSlotA1, leafSlotA2, leafSlotA3]](
		c, func(base *actor.Actor) Supervisor[middleSlotA, leafSlotA1, leafSlotA2, leafSlotA3] {
			sup := newSupervisor[middleSlotA, leafSlotA1, leafSlotA2, leafSlotA3](c.Env())(base)
			for _, w := range sup.workers {
				w.OnStarted(func() { workerStarted.Add(1) })
				w.OnStopped(func() { workerStopped.Add(1) })
			}
			return sup
		})

	var rootStarted, rootStopped atomic.Bool
	root.OnStarted(func() { rootStarted.Store(true) })
	root.OnStopped(func() { rootStopped.Store(true) })

	go func() {
		time.Sleep(50 * time.Millisecond)
		c.Stop()
	}()

	runCoreWithTimeout(t, c, 5*time.Second)

	require.True(t, rootStarted.Load())
	require.True(t, rootStopped.Load())
	require.EqualValues(t, 3, workerStarted.Load())
	require.EqualValues(t, 3, workerStopped.Load())
}
