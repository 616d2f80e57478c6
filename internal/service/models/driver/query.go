package driver

// QueryDriversModel represents filter parameters for listing drivers.
type QueryDriversModel struct {
	Ids            []string `json:"ids,omitempty"`
	IncludeOffline bool     `json:"includeOffline,omitempty"`
}
