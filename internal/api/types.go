package api

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse summarizes the server's database.
type InfoResponse struct {
	DBPath        string         `json:"db_path,omitempty"`
	SchemaVersion int            `json:"schema_version"`
	TotalLists    int            `json:"total_lists"`
	TotalItems    int            `json:"total_items"`
	TotalTags     int            `json:"total_tags"`
	ItemCounts    map[string]int `json:"item_counts"`
}
