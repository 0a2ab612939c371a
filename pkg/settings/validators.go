package settings

// UpdatePreferencesPayload is the payload for patching preferences.
type UpdatePreferencesPayload struct {
	Theme    *string `json:"theme" mod:"trim" validate:"omitempty,oneof=light dark sepia"`
	ViewMode *string `json:"view_mode" mod:"trim" validate:"omitempty,oneof=grid list"`
}
