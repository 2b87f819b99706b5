package auditlog

// Severity levels for audit classification.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Action types recorded in the audit trail.
const (
	ActionStateChange       = "STATE_CHANGE"
	ActionAccessDenied      = "ACCESS_DENIED"
	ActionAssetCreated      = "ASSET_CREATED"
	ActionAssetDeleted      = "ASSET_DELETED"
	ActionAssetAssigned     = "ASSET_ASSIGNED"
	ActionAssetReturned     = "ASSET_RETURNED"
	ActionAssignmentCreated = "ASSIGNMENT_CREATED"
	ActionRepairCreated     = "REPAIR_CREATED"
	ActionRepairCompleted   = "REPAIR_COMPLETED"
	ActionBillingOverride   = "BILLING_OVERRIDE"
	ActionIssueCreated      = "ISSUE_CREATED"
	ActionClientCreated     = "CLIENT_CREATED"
	ActionClientUpdated     = "CLIENT_UPDATED"
)

// Audit categories.
const (
	CategoryAsset      = "asset"
	CategoryAssignment = "assignment"
	CategorySecurity   = "security"
	CategoryClient     = "client"
	CategoryBilling    = "billing"
	CategoryUser       = "user"
)

// ActionClass is the static severity and billing-impact classification of an
// action type.
type ActionClass struct {
	Severity      string
	BillingImpact bool
}

var actionClasses = map[string]ActionClass{
	ActionAssetAssigned:     {Severity: SeverityHigh, BillingImpact: true},
	ActionAssetReturned:     {Severity: SeverityHigh, BillingImpact: true},
	ActionRepairCreated:     {Severity: SeverityMedium, BillingImpact: true},
	ActionRepairCompleted:   {Severity: SeverityMedium, BillingImpact: true},
	ActionBillingOverride:   {Severity: SeverityCritical, BillingImpact: true},
	ActionAssetCreated:      {Severity: SeverityMedium, BillingImpact: false},
	ActionAssetDeleted:      {Severity: SeverityCritical, BillingImpact: false},
	ActionStateChange:       {Severity: SeverityMedium, BillingImpact: true},
	ActionAccessDenied:      {Severity: SeverityCritical, BillingImpact: false},
	ActionAssignmentCreated: {Severity: SeverityHigh, BillingImpact: true},
	ActionIssueCreated:      {Severity: SeverityLow, BillingImpact: false},
	ActionClientCreated:     {Severity: SeverityLow, BillingImpact: false},
	ActionClientUpdated:     {Severity: SeverityLow, BillingImpact: false},
}

// Classify returns the severity classification for an action type. Unknown
// actions default to low severity without billing impact.
func Classify(actionType string) ActionClass {
	if class, ok := actionClasses[actionType]; ok {
		return class
	}
	return ActionClass{Severity: SeverityLow, BillingImpact: false}
}

// IsCritical reports whether a severity keeps an entry exempt from session
// view pruning.
func IsCritical(severity string) bool {
	return severity == SeverityHigh || severity == SeverityCritical
}
