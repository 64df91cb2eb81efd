package onboarding

// ProfileUpdate is the row update written to the profile table.
// PhoneNumber comes from the identity provider and is omitted when the provider has none.
type ProfileUpdate struct {
	Name                string  `json:"name"`
	FamilyName          string  `json:"family_name"`
	VillageNeighborhood string  `json:"village_neighborhood"`
	PhoneNumber         *string `json:"phone_number,omitempty"`
	Email               string  `json:"email"`
	Onboarded           bool    `json:"onboarded"`
}

func NewProfileUpdate(form Form, phoneNumber *string) ProfileUpdate {
	return ProfileUpdate{
		Name:                form.GivenName,
		FamilyName:          form.FamilyName,
		VillageNeighborhood: form.VillageNeighborhood,
		PhoneNumber:         phoneNumber,
		Email:               form.Email,
		Onboarded:           true,
	}
}
