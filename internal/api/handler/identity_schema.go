package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token       string          `json:"token"`
	Profile     profileResponse `json:"profile"`
	DefaultView string          `json:"default_view"`
}

type loginEntryResponse struct {
	Message string `json:"message"`
	Next    string `json:"next,omitempty"`
}

type provisionRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"     validate:"omitempty,oneof=ADMIN MANAGER SALES ATTENDANT INVESTOR"`
}

// provisionResponse deliberately carries the identifier and role only; the
// secret and its hash never leave the service.
type provisionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

type meResponse struct {
	ProfileID    string   `json:"profile_id"`
	Role         string   `json:"role"`
	DefaultView  string   `json:"default_view"`
	Capabilities []string `json:"capabilities"`
}

type viewResponse struct {
	View string `json:"view"`
}
