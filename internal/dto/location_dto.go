package dto

type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type LocationResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
