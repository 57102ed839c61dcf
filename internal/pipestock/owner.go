package pipestock

// Owner identifies who holds a stock line: the central godown or one manager.
// The zero value is the godown, so forgetting to set an owner never silently
// attributes stock to a manager.
type Owner struct {
	managerID string
}

// Godown is the central, unassigned stock pool shared across all managers.
var Godown = Owner{}

// ManagerOwner returns the owner for a specific manager.
func ManagerOwner(managerID string) Owner {
	return Owner{managerID: managerID}
}

// IsGodown reports whether this owner is the central godown.
func (o Owner) IsGodown() bool {
	return o.managerID == ""
}

// ManagerID returns the owning manager's ID, or false for godown stock.
func (o Owner) ManagerID() (string, bool) {
	if o.managerID == "" {
		return "", false
	}
	return o.managerID, true
}

func (o Owner) String() string {
	if o.managerID == "" {
		return "godown"
	}
	return "manager:" + o.managerID
}
