package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always ordered newest first.
type QueryOrdersModel struct {
	Ids               []string `json:"ids,omitempty"`
	Statuses          []Status `json:"statuses,omitempty"`
	ExcludeStatuses   []Status `json:"excludeStatuses,omitempty"`
	AssignedDriverIds []string `json:"assignedDriverIds,omitempty"`
	// OnlySettled keeps orders that are paid or paid in cash.
	OnlySettled bool `json:"onlySettled,omitempty"`
	Limit       int  `json:"limit,omitempty"`
	Offset      int  `json:"offset,omitempty"`
}
