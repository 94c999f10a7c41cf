package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelanceflow/internal/services"
)

// gormFixture bundles the test database so service constructors and direct
// row assertions share one handle.
type gormFixture struct {
	db *gorm.DB
}

// requireValidationError asserts err is a ValidationError and returns its
// field map.
func requireValidationError(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*services.ValidationError)
	require.True(t, ok, "expected *services.ValidationError, got %T: %v", err, err)
	return ve.Fields
}
