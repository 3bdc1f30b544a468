package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppName(t *testing.T) string {
	return fmt.Sprintf("ticktock-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("ticktock")
	assert.Equal(t, port, portFromName("ticktock"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSecondInstanceIsRejected(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestActivateReachesRunningInstance(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	activated := make(chan struct{}, 1)
	guard.Serve(func() { activated <- struct{}{} })

	require.NoError(t, Activate(name))
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("activation was not delivered")
	}
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
