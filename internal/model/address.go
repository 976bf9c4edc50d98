package model

// Address is a residence history entry. A nil ToDate means the user
// still lives there. Entries list most-recent-first by FromDate.
type Address struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	State    *string `json:"state"`
	Country  string  `json:"country"`
	FromDate Date    `json:"from_date"`
	ToDate   *Date   `json:"to_date"`
}

// AddressPatch is the partial-update shape for Address.
type AddressPatch struct {
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Country  *string `json:"country"`
	FromDate *Date   `json:"from_date"`
	ToDate   *Date   `json:"to_date"`
}

// Apply overwrites the fields supplied in the patch.
func (a *Address) Apply(patch AddressPatch) {
	if patch.Address != nil {
		a.Address = *patch.Address
	}
	if patch.City != nil {
		a.City = *patch.City
	}
	if patch.State != nil {
		a.State = patch.State
	}
	if patch.Country != nil {
		a.Country = *patch.Country
	}
	if patch.FromDate != nil {
		a.FromDate = *patch.FromDate
	}
	if patch.ToDate != nil {
		a.ToDate = patch.ToDate
	}
}
