package notebook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var calls []string
	bus.OnTrustChanged(func(trusted bool) { calls = append(calls, "first") })
	bus.OnTrustChanged(func(trusted bool) { calls = append(calls, "second") })

	bus.EmitTrustChanged(true)

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBusKeepsEventKindsApart(t *testing.T) {
	bus := NewBus()
	var listed, created int
	bus.OnCheckpointsListed(func([]Checkpoint) { listed++ })
	bus.OnCheckpointCreated(func([]Checkpoint) { created++ })

	bus.EmitCheckpointsListed(nil)
	bus.EmitCheckpointsListed(nil)
	bus.EmitCheckpointCreated(nil)

	assert.Equal(t, 2, listed)
	assert.Equal(t, 1, created)
}

func TestBusCopiesPayloadPerHandler(t *testing.T) {
	bus := NewBus()
	var seen []Checkpoint
	bus.OnCheckpointsListed(func(cps []Checkpoint) {
		cps[0].ID = "mutated"
	})
	bus.OnCheckpointsListed(func(cps []Checkpoint) {
		seen = cps
	})
	original := []Checkpoint{{ID: "a", LastModified: time.Unix(0, 0)}}

	bus.EmitCheckpointsListed(original)

	require.Len(t, seen, 1)
	assert.Equal(t, "a", seen[0].ID)
	assert.Equal(t, "a", original[0].ID)
}

func TestBusIgnoresNilHandlers(t *testing.T) {
	bus := NewBus()
	bus.OnTrustChanged(nil)
	assert.NotPanics(t, func() { bus.EmitTrustChanged(false) })
}
