package handler

// --- Request / Response types ---

// Pointer fields distinguish an absent key from an empty string.

type loginRequest struct {
	Name     *string `json:"name" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type createComplaintRequest struct {
	Title       *string `json:"title" validate:"required,max=100"`
	Description *string `json:"description" validate:"required"`
}

type createComplaintResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Title length is checked by the service so that existence and ownership
// are decided first.
type updateComplaintRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type complaintResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type messageResponse struct {
	Message string `json:"message"`
}
