package model

// Employer is an employment history entry. A nil EndDate means the job
// is current. Entries list most-recent-first by StartDate.
type Employer struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	CompanyName string  `json:"company_name"`
	Role        string  `json:"role"`
	StartDate   Date    `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Notes       *string `json:"notes"`
}

// EmployerPatch is the partial-update shape for Employer.
type EmployerPatch struct {
	CompanyName *string `json:"company_name"`
	Role        *string `json:"role"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Notes       *string `json:"notes"`
}

// Apply overwrites the fields supplied in the patch.
func (e *Employer) Apply(patch EmployerPatch) {
	if patch.CompanyName != nil {
		e.CompanyName = *patch.CompanyName
	}
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = patch.EndDate
	}
	if patch.Notes != nil {
		e.Notes = patch.Notes
	}
}
