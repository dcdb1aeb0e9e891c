package domain

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatLog is a single conversation turn. Role is expected to be "user" or
// "model" but is not validated here.
type ChatLog struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
