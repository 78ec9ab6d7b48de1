package hr_test

import (
	"context"
	"testing"

	"go-workforce/internal/account"
	"go-workforce/internal/hr"
	hrerrors "go-workforce/internal/hr/errors"
	hrMock "go-workforce/internal/hr/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHRService(t *testing.T) (hr.Service, *hrMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := hrMock.NewMockRepository(ctrl)
	return hr.NewService(repo), repo
}

func TestNewProfile_Defaults(t *testing.T) {
	p := hr.NewProfile(uuid.New(), hr.ProfileFields{Phone: " 555-0101 "})

	assert.Equal(t, "Human Resources", p.Department)
	assert.Equal(t, "HR Manager", p.Position)
	assert.Equal(t, "555-0101", p.Phone)
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestHRService_GetOwnProfile(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, repo := setupHRService(t)
		p := hr.NewProfile(accountID, hr.ProfileFields{})
		p.Account = &account.Account{ID: accountID, Name: "Rita", Email: "rita@example.com"}
		repo.EXPECT().FindByAccountID(ctx, accountID.String()).Return(p, nil)

		res, err := svc.GetOwnProfile(ctx, accountID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Rita", res.Name)
		assert.Equal(t, "rita@example.com", res.Email)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := setupHRService(t)
		repo.EXPECT().FindByAccountID(ctx, accountID.String()).Return(nil, hrerrors.ErrHRProfileNotFound)

		_, err := svc.GetOwnProfile(ctx, accountID.String())

		assert.ErrorIs(t, err, hrerrors.ErrHRProfileNotFound)
	})
}

func TestHRService_UpdateOwnProfile(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	svc, repo := setupHRService(t)

	p := hr.NewProfile(accountID, hr.ProfileFields{Phone: "1"})
	repo.EXPECT().FindByAccountID(ctx, accountID.String()).Return(p, nil)
	repo.EXPECT().Update(ctx, p).Return(nil)

	res, err := svc.UpdateOwnProfile(ctx, accountID.String(), hr.UpdateProfileRequest{Position: "People Partner"})

	assert.NoError(t, err)
	assert.Equal(t, "People Partner", res.Position)
	assert.Equal(t, "Human Resources", res.Department)
	assert.Equal(t, "1", res.Phone)
}
