package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/testutil"
)

func newInvoiceService(t *testing.T) (*services.InvoiceService, *gormFixture) {
	t.Helper()
	db := testutil.NewDB(t)
	fx := &gormFixture{db: db}
	svc := services.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	return svc, fx
}

func validInvoiceInput(client *models.User, number string) services.InvoiceInput {
	amount := decimal.NewFromInt(1000)
	tax := decimal.NewFromInt(190)
	total := decimal.NewFromInt(1190)
	return services.InvoiceInput{
		InvoiceNumber: number,
		ClientID:      client.ID.String(),
		Amount:        &amount,
		TaxAmount:     &tax,
		TotalAmount:   &total,
		Status:        "draft",
		DueDate:       "2026-03-01",
	}
}

func TestInvoiceCreateAndGet(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	created, err := svc.Create(ctx, testutil.Actor(pm), validInvoiceInput(client, "INV-2026-001"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", created.InvoiceNumber)
	assert.Equal(t, pm.ID, created.CreatedBy)
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(1190)))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestInvoiceDuplicateNumber(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	_, err := svc.Create(ctx, testutil.Actor(pm), validInvoiceInput(client, "INV-2026-001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, testutil.Actor(pm), validInvoiceInput(client, "INV-2026-001"))
	fields := requireValidationError(t, err)
	assert.Equal(t, "Invoice number is already in use.", fields["invoice_number"])
}

func TestInvoiceUpdateKeepsOwnNumber(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	created, err := svc.Create(ctx, testutil.Actor(pm), validInvoiceInput(client, "INV-2026-001"))
	require.NoError(t, err)

	// Re-submitting the unchanged number must not trip the uniqueness check.
	in := validInvoiceInput(client, "INV-2026-001")
	in.Status = "sent"
	updated, err := svc.Update(ctx, testutil.Actor(pm), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, updated.Status)
}

func TestInvoiceTotalMustMatch(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	in := validInvoiceInput(client, "INV-2026-002")
	wrong := decimal.NewFromInt(999)
	in.TotalAmount = &wrong

	_, err := svc.Create(ctx, testutil.Actor(pm), in)
	fields := requireValidationError(t, err)
	assert.Equal(t, "Total amount must equal amount plus tax.", fields["total_amount"])
}

func TestInvoiceValidation(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(ctx, testutil.Actor(pm), services.InvoiceInput{})
		fields := requireValidationError(t, err)
		assert.Equal(t, "Invoice number is required.", fields["invoice_number"])
		assert.Equal(t, "Please select a client.", fields["client_id"])
		assert.Equal(t, "Amount is required.", fields["amount"])
		assert.Equal(t, "Total amount is required.", fields["total_amount"])
		assert.Equal(t, "This field is required.", fields["due_date"])
	})

	t.Run("unknown project", func(t *testing.T) {
		in := validInvoiceInput(client, "INV-2026-003")
		in.ProjectID = uuid.NewString()
		_, err := svc.Create(ctx, testutil.Actor(pm), in)
		fields := requireValidationError(t, err)
		assert.Equal(t, "Selected project is not valid.", fields["project_id"])
	})
}

func TestInvoiceProjectClearedWhenProjectDeleted(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	client := testutil.SeedUser(t, fx.db, models.RoleFreelancer)
	project := testutil.SeedProject(t, fx.db, client, pm)

	in := validInvoiceInput(client, "INV-2026-004")
	in.ProjectID = project.ID.String()
	created, err := svc.Create(ctx, testutil.Actor(pm), in)
	require.NoError(t, err)
	require.NotNil(t, created.ProjectID)

	require.NoError(t, fx.db.Delete(&models.Project{}, "id = ?", project.ID).Error)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProjectID)
}

func TestInvoiceListVisibility(t *testing.T) {
	svc, fx := newInvoiceService(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, fx.db, models.RoleAdmin)
	pm := testutil.SeedUser(t, fx.db, models.RoleProjectManager)
	freelancer := testutil.SeedUser(t, fx.db, models.RoleFreelancer)

	_, err := svc.Create(ctx, testutil.Actor(pm), validInvoiceInput(freelancer, "INV-A"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testutil.Actor(admin), validInvoiceInput(admin, "INV-B"))
	require.NoError(t, err)

	all, _, err := svc.List(ctx, testutil.Actor(admin), 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	createdByPM, _, err := svc.List(ctx, testutil.Actor(pm), 1)
	require.NoError(t, err)
	require.Len(t, createdByPM, 1)
	assert.Equal(t, "INV-A", createdByPM[0].InvoiceNumber)

	billedToFreelancer, _, err := svc.List(ctx, testutil.Actor(freelancer), 1)
	require.NoError(t, err)
	require.Len(t, billedToFreelancer, 1)
	assert.Equal(t, "INV-A", billedToFreelancer[0].InvoiceNumber)
}
