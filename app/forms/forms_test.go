package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupForm(t *testing.T) {
	f := SignupForm{Email: " Jane@Example.com ", Username: "jane", Password: "longenough", PasswordConfirm: "longenough"}
	require.NoError(t, f.Validate())
	assert.Equal(t, "jane@example.com", f.Email)

	f.PasswordConfirm = "different!"
	verrs, ok := AsValidationErrors(f.Validate())
	require.True(t, ok)
	assert.Equal(t, "does not match", verrs["password_confirm"])
}

func TestPropertyFormCounty(t *testing.T) {
	f := PropertyForm{Address: "1 Main St", City: "Towson", ZipCode: "21204", County: "baltimore county", PropertyType: "TOWNHOUSE"}
	require.NoError(t, f.Validate())
	assert.Equal(t, "MD", f.State)

	f.County = "Fairfax County"
	verrs, _ := AsValidationErrors(f.Validate())
	assert.Equal(t, "must be a Maryland county", verrs["county"])
}

func TestTenantForm(t *testing.T) {
	f := TenantForm{PropertyID: "p1", TenantNames: []string{" Ann ", ""}, RentAmount: "1450.00", LeaseStartDate: "2024-01-01", LeaseEndDate: "2024-12-31"}
	require.NoError(t, f.Validate())

	tenant := f.ToModel("l1")
	assert.Equal(t, []string{"Ann"}, tenant.TenantNames)
	assert.Equal(t, int64(145000), tenant.RentAmount)
	assert.Equal(t, "l1", tenant.LandlordID)

	back := TenantFormFromModel(tenant)
	assert.Equal(t, "1450.00", back.RentAmount)
	assert.Equal(t, "2024-12-31", back.LeaseEndDate)
}

func TestTenantFormRequiresName(t *testing.T) {
	f := TenantForm{PropertyID: "p1", TenantNames: []string{"  "}, RentAmount: "10", IsSubsidized: true}
	verrs, ok := AsValidationErrors(f.Validate())
	require.True(t, ok)
	assert.Contains(t, verrs, "tenant_names")
	assert.Equal(t, "is required", verrs["subsidy_type"])
}

func TestProfileUpdateFormOnlySuppliedColumns(t *testing.T) {
	name := "New Name"
	f := ProfileUpdateForm{FullName: &name}
	require.NoError(t, f.Validate())
	assert.Equal(t, map[string]any{"full_name": "New Name"}, f.Updates())

	role := "superuser"
	f.Role = &role
	assert.Error(t, f.Validate())
}

func TestDeleteConfirmationForm(t *testing.T) {
	f := DeleteConfirmationForm{Confirmation: "DELETE jdoe"}
	assert.NoError(t, f.Validate("jdoe"))

	f.Confirmation = "DELETE jdoe2"
	verrs, ok := AsValidationErrors(f.Validate("jdoe"))
	require.True(t, ok)
	assert.Equal(t, "must be exactly DELETE jdoe", verrs["confirmation"])
}
