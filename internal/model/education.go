package model

// Education is a study history entry. A nil EndDate means the programme
// is ongoing. Entries list most-recent-first by StartDate.
type Education struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   Date   `json:"start_date"`
	EndDate     *Date  `json:"end_date"`
}

// EducationPatch is the partial-update shape for Education.
type EducationPatch struct {
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
}

// Apply overwrites the fields supplied in the patch.
func (e *Education) Apply(patch EducationPatch) {
	if patch.Institution != nil {
		e.Institution = *patch.Institution
	}
	if patch.Degree != nil {
		e.Degree = *patch.Degree
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = patch.EndDate
	}
}
