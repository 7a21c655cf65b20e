package models

// User is the signed-in member. It only lives inside a session.
type User struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	LineID  string `json:"lineId,omitempty"`
}
