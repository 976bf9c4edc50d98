package model

// TravelHistory is a single trip entry: when and where, with free-form
// notes. Entries list most-recent-first by Date.
type TravelHistory struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        Date    `json:"date"`
	Destination string  `json:"destination"`
	Notes       *string `json:"notes"`
}

// TravelHistoryPatch is the partial-update shape for TravelHistory.
type TravelHistoryPatch struct {
	Date        *Date   `json:"date"`
	Destination *string `json:"destination"`
	Notes       *string `json:"notes"`
}

// Apply overwrites the fields supplied in the patch.
func (t *TravelHistory) Apply(patch TravelHistoryPatch) {
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.Destination != nil {
		t.Destination = *patch.Destination
	}
	if patch.Notes != nil {
		t.Notes = patch.Notes
	}
}
