package dispatcher

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/notebook-menubar/internal/backend"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
	"github.com/atomicstack/notebook-menubar/internal/state"
)

type fakeRestorer struct {
	restored []notebook.Checkpoint
}

func (r *fakeRestorer) RestoreCheckpointDialog(cp notebook.Checkpoint) {
	r.restored = append(r.restored, cp)
}

var fixedStamp = time.Date(1986, time.September, 4, 20, 33, 0, 0, time.UTC)

func newSync(t *testing.T, locale string) (*Synchronizer, state.TrustStore, state.CheckpointStore, *fakeRestorer) {
	t.Helper()
	trust := state.NewTrustStore()
	checkpoints := state.NewCheckpointStore()
	restorer := &fakeRestorer{}
	s := New(trust, checkpoints, restorer, Options{
		Locale:   locale,
		Location: time.UTC,
	})
	return s, trust, checkpoints, restorer
}

func TestNewRendersEmptyList(t *testing.T) {
	_, _, checkpoints, _ := newSync(t, "")
	entries := checkpoints.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "No checkpoints", entries[0].Label)
	assert.True(t, entries[0].Disabled)
	assert.Nil(t, entries[0].Activate)
}

func TestTrustChangedRendersEntry(t *testing.T) {
	s, trust, _, _ := newSync(t, "")

	s.OnTrustChanged(true)
	assert.Equal(t, menu.TrustEntry{Label: "Trusted Notebook", Disabled: true}, trust.Entry())

	s.OnTrustChanged(false)
	assert.Equal(t, menu.TrustEntry{Label: "Trust Notebook"}, trust.Entry())
}

func TestTrustChangedTwiceIsIdempotent(t *testing.T) {
	s, trust, _, _ := newSync(t, "")

	s.OnTrustChanged(true)
	first := trust.Entry()
	s.OnTrustChanged(true)

	assert.Equal(t, first, trust.Entry())
	assert.Equal(t, menu.TrustEntry{Label: "Trusted Notebook", Disabled: true}, trust.Entry())
}

func TestSamePayloadRendersSameEntries(t *testing.T) {
	s, _, checkpoints, _ := newSync(t, "en-US")
	cps := []notebook.Checkpoint{
		{ID: "a", LastModified: time.Date(2024, time.January, 1, 11, 57, 0, 0, time.UTC)},
		{ID: "b", LastModified: time.Date(2023, time.December, 31, 8, 0, 0, 0, time.UTC)},
	}

	s.OnCheckpointsUpdated(cps)
	first := renderedEntries(checkpoints.Entries())
	time.Sleep(10 * time.Millisecond)
	s.OnCheckpointsUpdated(cps)
	second := renderedEntries(checkpoints.Entries())

	assert.Equal(t, first, second)
	assert.Equal(t, "Monday, January 1, 2024 11:57 AM", checkpoints.Entries()[0].Label)
}

func renderedEntries(entries []menu.CheckpointEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID+"|"+e.Action+"|"+e.Label)
	}
	return out
}

func TestCheckpointsRenderInModelOrder(t *testing.T) {
	s, _, checkpoints, restorer := newSync(t, "en-US")
	cps := []notebook.Checkpoint{
		{ID: "newest", LastModified: time.Date(1986, time.September, 4, 20, 30, 0, 0, time.UTC)},
		{ID: "older", LastModified: time.Date(1986, time.September, 3, 9, 5, 0, 0, time.UTC)},
	}

	s.OnCheckpointsUpdated(cps)

	entries := checkpoints.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Thursday, September 4, 1986 8:30 PM", entries[0].Label)
	assert.Equal(t, "restore-checkpoint:newest", entries[0].Action)
	assert.Equal(t, "older", entries[1].ID)
	assert.False(t, entries[0].Disabled)

	entries[1].Activate()
	require.Len(t, restorer.restored, 1)
	assert.Equal(t, cps[1], restorer.restored[0])
}

func TestCheckpointsReplaceWholesale(t *testing.T) {
	s, _, checkpoints, _ := newSync(t, "")
	s.OnCheckpointsUpdated([]notebook.Checkpoint{{ID: "a", LastModified: fixedStamp}})
	s.OnCheckpointsUpdated([]notebook.Checkpoint{{ID: "b", LastModified: fixedStamp}, {ID: "c", LastModified: fixedStamp}})

	entries := checkpoints.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)

	s.OnCheckpointsUpdated([]notebook.Checkpoint{})
	entries = checkpoints.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "No checkpoints", entries[0].Label)
}

func TestLocalizedLabel(t *testing.T) {
	s, _, checkpoints, _ := newSync(t, "de_DE.UTF-8")
	s.OnCheckpointsUpdated([]notebook.Checkpoint{{ID: "a", LastModified: time.Date(1986, time.September, 4, 20, 30, 0, 0, time.UTC)}})

	label := checkpoints.Entries()[0].Label
	assert.Contains(t, label, "Donnerstag")
	assert.Contains(t, label, "20:30")
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	f := formatForLocale("xx-not-a-locale")
	assert.Equal(t, formatForLocale(""), f)
}

func TestSubscribeFollowsBus(t *testing.T) {
	s, trust, checkpoints, _ := newSync(t, "")
	bus := notebook.NewBus()
	s.Subscribe(bus)

	bus.EmitTrustChanged(true)
	bus.EmitCheckpointCreated([]notebook.Checkpoint{{ID: "x", LastModified: fixedStamp}})

	assert.True(t, trust.Entry().Disabled)
	assert.Equal(t, "x", checkpoints.Entries()[0].ID)

	bus.EmitCheckpointsListed(nil)
	assert.Equal(t, "No checkpoints", checkpoints.Entries()[0].Label)
}

func TestHandleBackendEvents(t *testing.T) {
	s, trust, checkpoints, _ := newSync(t, "")

	res := s.Handle(backend.Event{Kind: backend.KindTrust, Trusted: true})
	assert.Equal(t, Result{TrustUpdated: true}, res)
	assert.True(t, trust.Entry().Disabled)

	res = s.Handle(backend.Event{Kind: backend.KindCheckpointsListed, Checkpoints: []notebook.Checkpoint{{ID: "a", LastModified: fixedStamp}}})
	assert.Equal(t, Result{CheckpointsUpdated: true}, res)
	assert.Equal(t, "a", checkpoints.Entries()[0].ID)

	res = s.Handle(backend.Event{Kind: backend.KindCheckpointsListed, Err: errors.New("offline")})
	assert.Equal(t, Result{}, res)
	assert.Equal(t, "a", checkpoints.Entries()[0].ID)
}
