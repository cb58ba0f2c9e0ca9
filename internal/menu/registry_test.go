package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRunsHandlerOnceThenReselects(t *testing.T) {
	f := newFixture()
	r := NewRegistry(f.doc, f.dialog)
	require.NoError(t, r.Register("ping", func(string) { f.rec.record("ping") }))

	r.Dispatch("ping")

	assert.Equal(t, []string{"ping", "select"}, f.rec.Calls())
	assert.Equal(t, 2, f.doc.selected)
}

func TestDispatchUnknownIsSilent(t *testing.T) {
	f := newFixture()
	r := NewRegistry(f.doc, f.dialog)

	assert.NotPanics(t, func() { r.Dispatch("no-such-action") })
	assert.NotPanics(t, func() { r.Dispatch("") })
	assert.Empty(t, f.rec.Calls())
}

func TestRegisterLastWins(t *testing.T) {
	f := newFixture()
	r := NewRegistry(nil, nil)
	require.NoError(t, r.Register("x", func(string) { f.rec.record("first") }))
	require.NoError(t, r.Register("x", func(string) { f.rec.record("second") }))

	r.Dispatch("x")

	assert.Equal(t, []string{"second"}, f.rec.Calls())
}

func TestRegisterAfterSeal(t *testing.T) {
	r := NewRegistry(nil, nil)
	require.NoError(t, r.Register("x", func(string) {}))
	r.Seal()

	err := r.Register("y", func(string) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSealed))
	assert.False(t, r.Has("y"))
	assert.True(t, r.Sealed())
}

func TestDispatchPassesArgument(t *testing.T) {
	r := NewRegistry(nil, nil)
	var got []string
	require.NoError(t, r.Register(ActionRestoreCheckpoint, func(arg string) { got = append(got, arg) }))

	r.Dispatch("restore-checkpoint:cp:with:colons")
	r.Dispatch("restore-checkpoint")

	assert.Equal(t, []string{"cp:with:colons", ""}, got)
}

func TestDispatchRecoversPanics(t *testing.T) {
	f := newFixture()
	r := NewRegistry(f.doc, f.dialog)
	require.NoError(t, r.Register("explode", func(string) { panic("kaboom") }))

	assert.NotPanics(t, func() { r.Dispatch("explode") })

	modals := f.dialog.Modals()
	require.Len(t, modals, 1)
	assert.Equal(t, "Action Failed", modals[0].Title)
	assert.Contains(t, modals[0].Body, "kaboom")
	assert.Equal(t, []string{"modal", "select"}, f.rec.Calls())
}

func TestIDsFollowVocabularyOrder(t *testing.T) {
	r := NewRegistry(nil, nil)
	for _, id := range []string{"extra", ActionExit, ActionNew} {
		require.NoError(t, r.Register(id, func(string) {}))
	}
	assert.Equal(t, []string{ActionNew, ActionExit, "extra"}, r.IDs())
}

func TestSplitAction(t *testing.T) {
	cases := []struct {
		in, id, arg string
	}{
		{"new", "new", ""},
		{"restore-checkpoint:abc", "restore-checkpoint", "abc"},
		{"restore-checkpoint:a:b", "restore-checkpoint", "a:b"},
		{"", "", ""},
	}
	for _, tc := range cases {
		id, arg := SplitAction(tc.in)
		if id != tc.id || arg != tc.arg {
			t.Fatalf("SplitAction(%q) = %q, %q; want %q, %q", tc.in, id, arg, tc.id, tc.arg)
		}
	}
}
