package dto

type MarkResponseRequest struct {
	ResponseType string `json:"response_type"`
}
