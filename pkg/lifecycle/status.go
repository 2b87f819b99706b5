package lifecycle

import "fmt"

// Status is the lifecycle state of an asset. The set of statuses is closed;
// any other value stored in the database is treated as data corruption.
type Status string

const (
	StatusInStockWorking     Status = "IN_STOCK_WORKING"
	StatusWithClient         Status = "WITH_CLIENT"
	StatusReturnedFromClient Status = "RETURNED_FROM_CLIENT"
	StatusInOfficeTesting    Status = "IN_OFFICE_TESTING"
	StatusWithVendorRepair   Status = "WITH_VENDOR_REPAIR"
	StatusSold               Status = "SOLD"
	StatusDisposed           Status = "DISPOSED"
)

var displayNames = map[Status]string{
	StatusInStockWorking:     "In Stock (Working)",
	StatusWithClient:         "With Client",
	StatusReturnedFromClient: "Returned from Client",
	StatusInOfficeTesting:    "In Office Testing",
	StatusWithVendorRepair:   "With Vendor (Repair)",
	StatusSold:               "Sold",
	StatusDisposed:           "Disposed",
}

// initialStatuses restricts which statuses an asset may be created in.
// Terminal and mid-lifecycle states are not valid starting points.
var initialStatuses = []Status{
	StatusInStockWorking,
	StatusWithClient,
}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	_, ok := displayNames[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// DisplayName returns the human-readable name used in user-facing messages.
func (s Status) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

func Statuses() []Status {
	return []Status{
		StatusInStockWorking,
		StatusWithClient,
		StatusReturnedFromClient,
		StatusInOfficeTesting,
		StatusWithVendorRepair,
		StatusSold,
		StatusDisposed,
	}
}

// IsValidInitial reports whether an asset may be created directly in s.
func (s Status) IsValidInitial() bool {
	for _, allowed := range initialStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

func InitialStatuses() []Status {
	out := make([]Status, len(initialStatuses))
	copy(out, initialStatuses)
	return out
}
