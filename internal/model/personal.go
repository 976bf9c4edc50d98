package model

// PersonalInfo is the singleton per-user identity record.
//
// Every field is optional: a user may record only a passport number,
// only a date of birth, or nothing at all. Optional fields across the
// record types are pointers: nil means "not recorded", which the API
// renders as null and the export encoders render as an empty cell.
type PersonalInfo struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	FullName       *string `json:"full_name"`
	PassportNumber *string `json:"passport_number"`
	DOB            *Date   `json:"dob"`
}

// PersonalInfoPatch is the partial-update shape for PersonalInfo.
//
// Patch structs are the closed union behind PUT handlers: a nil field
// means "leave unchanged", a non-nil field overwrites. Decoding a JSON
// body straight into one of these gives partial-update semantics without
// untyped maps, since absent keys simply stay nil.
type PersonalInfoPatch struct {
	FullName       *string `json:"full_name"`
	PassportNumber *string `json:"passport_number"`
	DOB            *Date   `json:"dob"`
}

// Apply overwrites the fields supplied in the patch. Both storage
// backends call this, so partial-update behaviour cannot diverge
// between them.
func (p *PersonalInfo) Apply(patch PersonalInfoPatch) {
	if patch.FullName != nil {
		p.FullName = patch.FullName
	}
	if patch.PassportNumber != nil {
		p.PassportNumber = patch.PassportNumber
	}
	if patch.DOB != nil {
		p.DOB = patch.DOB
	}
}
