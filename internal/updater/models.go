package updater

// UpdateStats summarizes the last safe-list update run, persisted as JSON
type UpdateStats struct {
	LastUpdate     string   `json:"last_update"`
	TotalCodes     int      `json:"total_codes"`
	NewCodes       int      `json:"new_codes"`
	SourcesChecked int      `json:"sources_checked"`
	Errors         []string `json:"errors,omitempty"`
}
