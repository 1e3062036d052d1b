package flow_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sci-platform/riskform/flow"
	"github.com/sci-platform/riskform/model"
)

func manyUsers(n int) []model.User {
	users := make([]model.User, n)
	for i := range users {
		users[i] = model.User{
			ID:    i + 1,
			Name:  fmt.Sprintf("User %02d", i+1),
			Email: fmt.Sprintf("user%02d@sci.example", i+1),
			State: model.UserActive,
		}
	}
	return users
}

func TestUserTableFilter(t *testing.T) {
	table := flow.NewUserTable([]model.User{
		{ID: 1, Name: "Ana", Email: "ana@sci.example"},
		{ID: 2, Name: "Bruno", Email: "bruno@sci.example"},
		{ID: 3, Name: "Carla", Email: "carla.ana@sci.example"},
	})

	table.SetFilter("ANA")
	filtered := table.Filtered()
	require.Len(t, filtered, 2) // matches name and email
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 3, filtered[1].ID)

	table.SetFilter("nobody")
	assert.Empty(t, table.Filtered())
}

func TestUserTablePagination(t *testing.T) {
	table := flow.NewUserTable(manyUsers(45))

	assert.Equal(t, 3, table.TotalPages())
	assert.Len(t, table.PageUsers(), 20)

	require.True(t, table.GoToPage(2))
	page := table.PageUsers()
	require.Len(t, page, 5)
	assert.Equal(t, 41, page[0].ID)

	// out-of-range targets are ignored, the page stays put
	for _, target := range []int{-1, 3, 9} {
		assert.False(t, table.GoToPage(target))
		assert.Equal(t, 2, table.Page())
	}
	assert.Len(t, table.PageUsers(), 5)
}

func TestUserTableDeactivationConfirmation(t *testing.T) {
	users := manyUsers(2)
	table := flow.NewUserTable(users)

	// activation applies at once, no confirmation step
	state, immediate := table.Toggle(users[0], true)
	assert.True(t, immediate)
	assert.Equal(t, model.UserActive, state)
	assert.Nil(t, table.PendingDeactivation())

	// deactivation is held until confirmed
	state, immediate = table.Toggle(users[1], false)
	assert.False(t, immediate)
	assert.Equal(t, model.UserInactive, state)
	require.NotNil(t, table.PendingDeactivation())
	assert.Equal(t, users[1].ID, table.PendingDeactivation().ID)

	confirmed, ok := table.ConfirmDeactivation()
	require.True(t, ok)
	assert.Equal(t, users[1].ID, confirmed.ID)
	assert.Nil(t, table.PendingDeactivation())

	_, ok = table.ConfirmDeactivation()
	assert.False(t, ok)

	table.Toggle(users[1], false)
	table.CancelDeactivation()
	assert.Nil(t, table.PendingDeactivation())
}
