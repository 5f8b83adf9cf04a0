package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
)

func TestUserListNestsComplaints(t *testing.T) {
	users := &mockUserRepo{}
	complaints := &mockComplaintRepo{}
	users.On("List", mock.Anything).Return([]domain.User{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"}}, nil)
	complaints.On("ListByUsers", mock.Anything, []int64{1, 2}).Return([]domain.Complaint{
		{ID: 10, UserID: 1}, {ID: 11, UserID: 1},
	}, nil)

	got, err := NewUserService(users, complaints, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Complaints, 2)
	assert.NotNil(t, got[1].Complaints)
	assert.Empty(t, got[1].Complaints)
}

func TestUserListEmptySkipsComplaintLookup(t *testing.T) {
	users := &mockUserRepo{}
	complaints := &mockComplaintRepo{}
	users.On("List", mock.Anything).Return([]domain.User{}, nil)

	got, err := NewUserService(users, complaints, nil).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
	complaints.AssertNotCalled(t, "ListByUsers", mock.Anything, mock.Anything)
}

func TestUserListFailure(t *testing.T) {
	users := &mockUserRepo{}
	users.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewUserService(users, &mockComplaintRepo{}, nil).List(context.Background())
	requireDomainError(t, err, http.StatusInternalServerError, "Failed to fetch users")
}

func TestUserCreate(t *testing.T) {
	users := &mockUserRepo{}
	dispatcher := &recordingDispatcher{}
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ana@example.com" && u.Name == "Ana"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 3
	}).Return(nil)

	got, err := NewUserService(users, &mockComplaintRepo{}, dispatcher).Create(context.Background(), UserCreateInput{Name: "Ana", Email: " Ana@Example.com "})

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	require.Len(t, dispatcher.published(), 1)
	assert.Equal(t, events.EventUserCreated, dispatcher.published()[0].Type)
}

func TestUserCreateValidationAndFailure(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockComplaintRepo{}, nil)
	_, err := svc.Create(context.Background(), UserCreateInput{Email: "a@b.c"})
	requireDomainError(t, err, http.StatusBadRequest, "name is required")
	_, err = svc.Create(context.Background(), UserCreateInput{Name: "A", Email: "nope"})
	requireDomainError(t, err, http.StatusBadRequest, "a valid email is required")

	users := &mockUserRepo{}
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate email"))
	_, err = NewUserService(users, &mockComplaintRepo{}, nil).Create(context.Background(), UserCreateInput{Name: "A", Email: "a@b.c"})
	requireDomainError(t, err, http.StatusInternalServerError, "Failed to create user")
}
