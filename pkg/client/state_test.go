package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestState(t *testing.T) *State {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	state, err := OpenState(path)
	require.NoError(t, err)
	t.Cleanup(func() { state.Close() })
	return state
}

func TestStateConfigRoundTrip(t *testing.T) {
	state := openTestState(t)

	val, err := state.GetConfig("missing")
	require.NoError(t, err)
	require.Empty(t, val, "missing key should read as empty")

	require.NoError(t, state.SetConfig("theme", "dark"))
	val, err = state.GetConfig("theme")
	require.NoError(t, err)
	require.Equal(t, "dark", val)

	// Replace, not duplicate
	require.NoError(t, state.SetConfig("theme", "light"))
	val, _ = state.GetConfig("theme")
	require.Equal(t, "light", val)
}

func TestStateLastNickname(t *testing.T) {
	state := openTestState(t)

	require.Empty(t, state.GetLastNickname())
	require.NoError(t, state.SetLastNickname("selfie"))
	require.Equal(t, "selfie", state.GetLastNickname())
}

func TestStateReadState(t *testing.T) {
	state := openTestState(t)

	at, msgID, err := state.GetReadState("general")
	require.NoError(t, err)
	require.Zero(t, at)
	require.Empty(t, msgID)

	require.NoError(t, state.UpdateReadState("general", 1750000000, "msg-abc"))
	at, msgID, err = state.GetReadState("general")
	require.NoError(t, err)
	require.Equal(t, int64(1750000000), at)
	require.Equal(t, "msg-abc", msgID)

	// Empty message id stores as NULL and reads back empty
	require.NoError(t, state.UpdateReadState("general", 1750000100, ""))
	at, msgID, err = state.GetReadState("general")
	require.NoError(t, err)
	require.Equal(t, int64(1750000100), at)
	require.Empty(t, msgID)

	// Channels are independent
	at, _, err = state.GetReadState("random")
	require.NoError(t, err)
	require.Zero(t, at, "other channels should be untouched")
}

func TestStateFirstRun(t *testing.T) {
	state := openTestState(t)

	require.True(t, state.GetFirstRun(), "fresh state should report first run")
	require.NoError(t, state.SetFirstRunComplete())
	require.False(t, state.GetFirstRun())
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	state, err := OpenState(path)
	require.NoError(t, err)
	require.NoError(t, state.SetLastNickname("keeper"))
	require.NoError(t, state.Close())

	state, err = OpenState(path)
	require.NoError(t, err)
	defer state.Close()
	require.Equal(t, "keeper", state.GetLastNickname())
}
