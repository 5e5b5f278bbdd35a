package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfagnish/usuarios-api/internal/users"
)

func TestHub_PublishFansOut(t *testing.T) {
	h := NewHub()
	_, a := h.Subscribe()
	_, b := h.Subscribe()
	require.Equal(t, 2, h.Subscribers())

	e := New(UserCreated, users.User{ID: 5, Name: "Carlos"})
	assert.Equal(t, 2, h.Publish(e))

	assert.Equal(t, e, <-a)
	assert.Equal(t, e, <-b)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	h.Unsubscribe(id)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers())

	// Unknown and repeated ids are ignored.
	h.Unsubscribe(id)
	h.Unsubscribe(uuid.New())
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	h := NewHub()
	_, ch := h.Subscribe()

	for i := 0; i < subscriberBuffer; i++ {
		require.Equal(t, 1, h.Publish(New(UserUpdated, users.User{ID: i})))
	}
	assert.Equal(t, 0, h.Publish(New(UserUpdated, users.User{ID: 99})))
	assert.Len(t, ch, subscriberBuffer)
}

func TestNew_AssignsDistinctIDs(t *testing.T) {
	u := users.User{ID: 1, Name: "Juan"}
	a := New(UserDeleted, u)
	b := New(UserDeleted, u)

	assert.NotEqual(t, a.ID, b.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.Equal(t, UserDeleted, a.Type)
	assert.False(t, a.Time.IsZero())
}
