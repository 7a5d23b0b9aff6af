package toggle_slot

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Start string `json:"start"` // "11:00" или "11:00 AM"
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	Date    string `json:"date"`
	Start   string `json:"start"`
	Blocked bool   `json:"blocked"`
}
