package leave_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
	"hrassistant/internal/leave"
	"hrassistant/internal/userstore/memory"
)

func TestValidateOrderAndMessages(t *testing.T) {
	svc := leave.NewService(memory.NewStore(), 0.5, 30)

	tests := []struct {
		name      string
		days      float64
		remaining float64
		wantMsg   string
	}{
		{"negative", -1, 10, "leave days must be positive"},
		{"zero", 0, 10, "leave days must be positive"},
		{"below minimum", 0.1, 10, "minimum leave is 0.5 day"},
		{"above maximum", 40, 10, "maximum leave is 30 days"},
		{"insufficient balance", 10, 5, "not enough remaining leaves"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.days, tt.remaining)
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrValidation)
			require.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	svc := leave.NewService(memory.NewStore(), 0.5, 30)

	// exactly the remaining balance is allowed
	require.NoError(t, svc.Validate(5, 5))
	require.NoError(t, svc.Validate(0.5, 10))
	require.NoError(t, svc.Validate(30, 30))

	err := svc.Validate(5.01, 5)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "not enough remaining leaves", err.Error())
}

func TestApplyDecrementsAndRecordsHistory(t *testing.T) {
	store := memory.NewStore(domain.User{Username: "Alice", Password: 1234, RemainingLeaves: 10, Grade: "L2"})
	svc := leave.NewService(store, 0.5, 30)

	remaining, err := svc.Apply(context.Background(), "alice", 2.5)
	require.NoError(t, err)
	require.Equal(t, 7.5, remaining)

	user, err := store.FindUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, 7.5, user.RemainingLeaves)

	history := store.History()
	require.Len(t, history, 1)
	require.Equal(t, "Alice", history[0].Username)
	require.Equal(t, 2.5, history[0].Days)
	require.Equal(t, leave.StatusPending, history[0].Status)
	require.False(t, history[0].Date.IsZero())
}

func TestApplyRejectionLeavesStoreUntouched(t *testing.T) {
	store := memory.NewStore(domain.User{Username: "bob", Password: 1, RemainingLeaves: 3})
	svc := leave.NewService(store, 0.5, 30)

	_, err := svc.Apply(context.Background(), "bob", 5)
	require.ErrorIs(t, err, domain.ErrValidation)

	user, err := store.FindUser(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, 3.0, user.RemainingLeaves)
	require.Empty(t, store.History())
}

func TestApplyUnknownUser(t *testing.T) {
	svc := leave.NewService(memory.NewStore(), 0.5, 30)

	_, err := svc.Apply(context.Background(), "nobody", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
