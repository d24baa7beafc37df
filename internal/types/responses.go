package types

type UserResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Plan             string `json:"plan"`
	FirstViewEnabled bool   `json:"first_view_enabled"`
}

type WorkspaceResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	OwnerID uint   `json:"owner_id"`
}

type FolderResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	VideoCount int64  `json:"video_count"`
}
