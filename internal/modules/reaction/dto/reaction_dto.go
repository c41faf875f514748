package dto

type ToggleReactionRequest struct {
	ReactionType string `json:"reactionType" binding:"required,max=20"`
}

type ToggleReactionResponse struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}
