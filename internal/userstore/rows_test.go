package userstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
	"hrassistant/internal/userstore"
)

func TestParseLayout(t *testing.T) {
	l, err := userstore.ParseLayout([]string{"Username", "Password", "Remaining Leaves", "Grade"})
	require.NoError(t, err)
	require.Equal(t, 0, l.Username)
	require.Equal(t, 1, l.Password)
	require.Equal(t, 2, l.RemainingLeaves)
	require.Equal(t, 3, l.Grade)

	// grade is optional
	l, err = userstore.ParseLayout([]string{"remaining_leaves", "username", "password"})
	require.NoError(t, err)
	require.Equal(t, 0, l.RemainingLeaves)
	require.Equal(t, -1, l.Grade)

	_, err = userstore.ParseLayout([]string{"username", "grade"})
	require.ErrorIs(t, err, domain.ErrParse)
}

func TestParseUsers(t *testing.T) {
	rows := [][]string{
		{"Username", "Password", "Remaining Leaves", "Grade"},
		{"Alice", "1234", "10.5", "L2"},
		{"", "", "", ""},
		{"Bob", "42", "3", ""},
	}
	users, err := userstore.ParseUsers(rows)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.Equal(t, "Alice", users[0].Username)
	require.Equal(t, 1234, users[0].Password)
	require.Equal(t, 10.5, users[0].RemainingLeaves)
	require.Equal(t, "L2", users[0].Grade)
	require.Equal(t, 2, users[0].Row)

	// blank rows are skipped but sheet row numbers keep counting
	require.Equal(t, "Bob", users[1].Username)
	require.Equal(t, 4, users[1].Row)
}

func TestParseUsersBadValues(t *testing.T) {
	_, err := userstore.ParseUsers([][]string{
		{"username", "password", "remaining_leaves"},
		{"alice", "not-a-number", "10"},
	})
	require.ErrorIs(t, err, domain.ErrParse)

	_, err = userstore.ParseUsers([][]string{
		{"username", "password", "remaining_leaves"},
		{"alice", "1234", "lots"},
	})
	require.ErrorIs(t, err, domain.ErrParse)

	_, err = userstore.ParseUsers(nil)
	require.ErrorIs(t, err, domain.ErrParse)
}

func TestFindByUsername(t *testing.T) {
	users := []domain.User{
		{Username: "Alice"},
		{Username: "Bob"},
	}
	u, err := userstore.FindByUsername(users, "ALICE")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Username)

	_, err = userstore.FindByUsername(users, "carol")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
