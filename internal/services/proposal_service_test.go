package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newProposalService(t *testing.T) (*services.ProposalService, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	svc := services.NewProposalService(
		repository.NewProposalRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	return svc, fx
}

func validProposalInput(client *models.User) services.ProposalInput {
	amount := decimal.NewFromInt(2500)
	return services.ProposalInput{
		Title:      "Q2 maintenance retainer",
		Content:    "Monthly support and small fixes",
		ClientID:   client.ID.String(),
		Amount:     &amount,
		Status:     "draft",
		ValidUntil: "2026-04-30",
	}
}

func TestProposalCreateRecordsActorAsCreator(t *testing.T) {
	svc, fx := newProposalService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	created, err := svc.Create(ctx, testutil.Actor(pm), validProposalInput(client))
	require.NoError(t, err)
	assert.Equal(t, pm.ID, created.CreatedBy)
	assert.Equal(t, client.ID, created.ClientID)
	require.NotNil(t, created.ValidUntil)
	assert.Equal(t, "2026-04-30", created.ValidUntil.Format("2006-01-02"))
}

func TestProposalUpdatePreservesCreator(t *testing.T) {
	svc, fx := newProposalService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	created, err := svc.Create(ctx, testutil.Actor(pm), validProposalInput(client))
	require.NoError(t, err)

	in := validProposalInput(client)
	in.Status = "sent"
	updated, err := svc.Update(ctx, testutil.Actor(admin), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalSent, updated.Status)
	assert.Equal(t, pm.ID, updated.CreatedBy)
}

func TestProposalValidation(t *testing.T) {
	svc, fx := newProposalService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)

	_, err := svc.Create(ctx, testutil.Actor(pm), services.ProposalInput{})
	fields := requireValidationError(t, err)
	assert.Equal(t, "Proposal title is required.", fields["title"])
	assert.Equal(t, "Proposal content is required.", fields["content"])
	assert.Equal(t, "Please select a client.", fields["client_id"])
	assert.Equal(t, "Amount is required.", fields["amount"])
	assert.Equal(t, "Proposal status is required.", fields["status"])
}

func TestProposalWriteForbiddenForFreelancer(t *testing.T) {
	svc, fx := newProposalService(t)
	ctx := context.Background()

	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	_, err := svc.Create(ctx, testutil.Actor(freelancer), validProposalInput(freelancer))
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestProposalListVisibility(t *testing.T) {
	svc, fx := newProposalService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	_, err := svc.Create(ctx, testutil.Actor(pm), validProposalInput(freelancer))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testutil.Actor(admin), validProposalInput(admin))
	require.NoError(t, err)

	all, meta, err := svc.List(ctx, testutil.Actor(admin), 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), meta.Total)

	createdByPM, _, err := svc.List(ctx, testutil.Actor(pm), 1)
	require.NoError(t, err)
	require.Len(t, createdByPM, 1)
	assert.Equal(t, pm.ID, createdByPM[0].CreatedBy)

	addressed, _, err := svc.List(ctx, testutil.Actor(freelancer), 1)
	require.NoError(t, err)
	require.Len(t, addressed, 1)
	assert.Equal(t, freelancer.ID, addressed[0].ClientID)
}
