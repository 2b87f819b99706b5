package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

func TestAdminMayDoEverything(t *testing.T) {
	for action := range permissions {
		assert.True(t, Can(roles.Admin, action), "admin denied %s", action)
	}
}

func TestFinanceIsLimitedToBillingViews(t *testing.T) {
	allowed := map[Action]bool{
		ActionViewBilling: true,
		ActionViewRevenue: true,
	}

	for action := range permissions {
		assert.Equal(t, allowed[action], Can(roles.Finance, action), "finance on %s", action)
	}
}

func TestOperationsCannotTouchBillingOrUsers(t *testing.T) {
	denied := []Action{
		ActionViewBilling,
		ActionViewRevenue,
		ActionBillingOverride,
		ActionManageUsers,
		ActionViewAuditLog,
		ActionDeleteAsset,
	}

	for _, action := range denied {
		assert.False(t, Can(roles.Operations, action), "operations allowed %s", action)
	}

	assert.True(t, Can(roles.Operations, ActionAssignToClient))
	assert.True(t, Can(roles.Operations, ActionSendForRepair))
}

func TestUnknownActionIsDenied(t *testing.T) {
	assert.False(t, Can(roles.Admin, Action("launch_rocket")))

	err := Check(roles.Admin, Action("launch_rocket"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Access Denied")
}

func TestCheckReturnsDeniedError(t *testing.T) {
	err := Check(roles.Finance, ActionAssignToClient)
	assert.Error(t, err)

	denied, ok := err.(*DeniedError)
	assert.True(t, ok)
	assert.Equal(t, ActionAssignToClient, denied.Action)
	assert.Equal(t, roles.Finance, denied.Role)
	assert.Contains(t, err.Error(), "Access Denied")
	assert.Contains(t, err.Error(), "Admin, Operations")
}

func TestActionForStatus(t *testing.T) {
	tests := []struct {
		target lifecycle.Status
		want   Action
	}{
		{lifecycle.StatusWithClient, ActionAssignToClient},
		{lifecycle.StatusReturnedFromClient, ActionReceiveReturn},
		{lifecycle.StatusWithVendorRepair, ActionSendForRepair},
		{lifecycle.StatusInStockWorking, ActionMarkRepaired},
		{lifecycle.StatusInOfficeTesting, ActionChangeStatus},
		{lifecycle.StatusSold, ActionChangeStatus},
		{lifecycle.StatusDisposed, ActionChangeStatus},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ActionForStatus(tt.target))
	}
}

func TestPermittedActionsMatchesCan(t *testing.T) {
	for _, role := range roles.All() {
		permitted := PermittedActions(role)
		seen := map[Action]bool{}
		for _, action := range permitted {
			seen[action] = true
			assert.True(t, Can(role, action))
		}
		for action := range permissions {
			if Can(role, action) {
				assert.True(t, seen[action], "%s missing from PermittedActions(%s)", action, role)
			}
		}
	}
}
