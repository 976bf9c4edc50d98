package model

// Stats holds per-category record counts for one user's dashboard.
// Personal is 0 or 1: the personal info record is a per-user singleton.
type Stats struct {
	Personal  int `json:"personal"`
	Travel    int `json:"travel"`
	Flights   int `json:"flights"`
	Employers int `json:"employers"`
	Education int `json:"education"`
	Addresses int `json:"addresses"`
}
