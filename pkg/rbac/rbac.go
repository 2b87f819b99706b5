package rbac

import (
	"fmt"
	"strings"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

// Action names every operation gated by the RBAC table.
type Action string

const (
	ActionAssignToClient  Action = "assign_to_client"
	ActionReceiveReturn   Action = "receive_return"
	ActionSendForRepair   Action = "send_for_repair"
	ActionMarkRepaired    Action = "mark_repaired"
	ActionChangeStatus    Action = "change_status"
	ActionCreateAsset     Action = "create_asset"
	ActionEditAsset       Action = "edit_asset"
	ActionDeleteAsset     Action = "delete_asset"
	ActionLogIssue        Action = "log_issue"
	ActionCreateRepair    Action = "create_repair"
	ActionManageClients   Action = "manage_clients"
	ActionViewBilling     Action = "view_billing"
	ActionViewRevenue     Action = "view_revenue"
	ActionBillingOverride Action = "billing_override"
	ActionViewSLA         Action = "view_sla"
	ActionManageUsers     Action = "manage_users"
	ActionViewAuditLog    Action = "view_audit_log"
)

// permissions is the static (action -> allowed roles) table. It is
// independent of the transition table: an action can be transition-valid
// and still denied here.
var permissions = map[Action][]roles.Role{
	ActionAssignToClient:  {roles.Admin, roles.Operations},
	ActionReceiveReturn:   {roles.Admin, roles.Operations},
	ActionSendForRepair:   {roles.Admin, roles.Operations},
	ActionMarkRepaired:    {roles.Admin, roles.Operations},
	ActionChangeStatus:    {roles.Admin, roles.Operations},
	ActionCreateAsset:     {roles.Admin, roles.Operations},
	ActionEditAsset:       {roles.Admin, roles.Operations},
	ActionDeleteAsset:     {roles.Admin},
	ActionLogIssue:        {roles.Admin, roles.Operations},
	ActionCreateRepair:    {roles.Admin, roles.Operations},
	ActionManageClients:   {roles.Admin, roles.Operations},
	ActionViewBilling:     {roles.Admin, roles.Finance},
	ActionViewRevenue:     {roles.Admin, roles.Finance},
	ActionBillingOverride: {roles.Admin},
	ActionViewSLA:         {roles.Admin, roles.Operations},
	ActionManageUsers:     {roles.Admin},
	ActionViewAuditLog:    {roles.Admin},
}

var displayNames = map[Action]string{
	ActionAssignToClient:  "Assign Asset to Client",
	ActionReceiveReturn:   "Process Asset Return",
	ActionSendForRepair:   "Send Asset for Repair",
	ActionMarkRepaired:    "Mark Asset as Repaired",
	ActionChangeStatus:    "Change Asset Status",
	ActionCreateAsset:     "Create New Asset",
	ActionEditAsset:       "Edit Asset",
	ActionDeleteAsset:     "Delete Asset",
	ActionLogIssue:        "Log Issue",
	ActionCreateRepair:    "Create Repair Record",
	ActionManageClients:   "Manage Clients",
	ActionViewBilling:     "View Billing Information",
	ActionViewRevenue:     "View Revenue Data",
	ActionBillingOverride: "Override Billing",
	ActionViewSLA:         "View SLA Status",
	ActionManageUsers:     "Manage Users",
	ActionViewAuditLog:    "View Audit Log",
}

// DeniedError is a policy rejection, an expected and recoverable outcome.
// It is never used for infrastructure failures.
type DeniedError struct {
	Action Action
	Role   roles.Role
}

func (e *DeniedError) Error() string {
	name, ok := displayNames[e.Action]
	if !ok {
		return fmt.Sprintf("Access Denied: Unknown action '%s'. Please contact an administrator.", e.Action)
	}

	allowed := permissions[e.Action]
	allowedNames := make([]string, len(allowed))
	for i, r := range allowed {
		allowedNames[i] = r.DisplayName()
	}
	return fmt.Sprintf("Access Denied: %s is not permitted for your role (%s). This action requires: %s.",
		name, e.Role.DisplayName(), strings.Join(allowedNames, ", "))
}

func (a Action) DisplayName() string {
	if name, ok := displayNames[a]; ok {
		return name
	}
	return string(a)
}

// Can reports whether role may perform action. Unknown actions are denied.
func Can(role roles.Role, action Action) bool {
	allowed, ok := permissions[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Check returns a *DeniedError when role may not perform action, nil
// otherwise. Callers must run this gate before the transition validator on
// every mutating operation.
func Check(role roles.Role, action Action) error {
	if Can(role, action) {
		return nil
	}
	return &DeniedError{Action: action, Role: role}
}

// PermittedActions lists every action the role may perform.
func PermittedActions(role roles.Role) []Action {
	var permitted []Action
	for action := range permissions {
		if Can(role, action) {
			permitted = append(permitted, action)
		}
	}
	return permitted
}

// statusActions maps a requested target status to the action checked against
// the RBAC table for that transition.
var statusActions = map[lifecycle.Status]Action{
	lifecycle.StatusWithClient:         ActionAssignToClient,
	lifecycle.StatusReturnedFromClient: ActionReceiveReturn,
	lifecycle.StatusWithVendorRepair:   ActionSendForRepair,
	lifecycle.StatusInStockWorking:     ActionMarkRepaired,
	lifecycle.StatusInOfficeTesting:    ActionChangeStatus,
	lifecycle.StatusSold:               ActionChangeStatus,
	lifecycle.StatusDisposed:           ActionChangeStatus,
}

// ActionForStatus resolves which action a transition into target requires.
func ActionForStatus(target lifecycle.Status) Action {
	if action, ok := statusActions[target]; ok {
		return action
	}
	return ActionChangeStatus
}
