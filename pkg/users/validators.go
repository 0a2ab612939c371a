package users

// UpdateProfilePayload is the payload for patching the profile. Changing
// the password requires the current one.
type UpdateProfilePayload struct {
	Name            *string `json:"name" mod:"trim" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" mod:"trim" validate:"omitempty,email,max=254"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=72"`
	CurrentPassword *string `json:"current_password" validate:"required_with=Password"`
}

// DeleteAccountPayload is the payload for deleting the account.
type DeleteAccountPayload struct {
	Password string `json:"password" validate:"required"`
}
