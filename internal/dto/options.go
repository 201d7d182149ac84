package dto

// Option is one dropdown entry: the display label and the value sent back in filters.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionsResponse carries the option lists for the dashboard filter dropdowns.
type OptionsResponse struct {
	Accounts        []Option `json:"accounts"`
	Labels          []Option `json:"labels"`
	CountryCodes    []Option `json:"countryCodes"`
	Currencies      []Option `json:"currencies"`
	DefaultCurrency string   `json:"defaultCurrency"`
}
