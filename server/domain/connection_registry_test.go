package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRegistry(t *testing.T) {
	r := NewConnectionRegistry()
	r.Register("c1", "alice")
	r.Register("c2", "bob")
	r.Register("c3", "carol")
	require.NoError(t, r.SetRoom("c1", "general"))
	require.NoError(t, r.SetRoom("c2", "random"))
	require.NoError(t, r.SetRoom("c3", "general"))

	users := r.UsersInRoom("general")
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
	assert.Equal(t, []string{"c1", "c3"}, r.IDsInRoom("general"))
	assert.Empty(t, r.UsersInRoom("nowhere"))

	renamed := r.Register("c1", "alicia")
	assert.Equal(t, "general", renamed.Room)
	assert.Equal(t, []string{"c1", "c2", "c3"}, r.IDs())

	conn, err := r.Unregister("c2")
	require.NoError(t, err)
	assert.Equal(t, "random", conn.Room)
	assert.Equal(t, 2, r.Len())

	_, err = r.Unregister("c2")
	assert.ErrorIs(t, err, ErrUnknownConnection)
	_, err = r.Get("c2")
	assert.ErrorIs(t, err, ErrUnknownConnection)
	assert.ErrorIs(t, r.SetRoom("c2", "general"), ErrUnknownConnection)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, UserInfo{ID: "c1", Username: "alicia", CurrentRoom: "general"}, all[0])
}
