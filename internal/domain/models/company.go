package models

// CompanyRecord is the directory entry for one symbol. Created on first
// successful resolution, updated only to fill fields that were empty or held
// a placeholder logo, never deleted by the pipeline.
type CompanyRecord struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// SuggestionEntry is one typeahead candidate. Ephemeral.
type SuggestionEntry struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
}
