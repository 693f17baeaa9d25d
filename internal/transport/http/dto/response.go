package dto

// -------- Accounts --------

type RegisteredUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type RegisterResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	User      RegisteredUser `json:"user"`
	EmailSent bool           `json:"emailSent"`
	// EmailError is null when the verification email went out.
	EmailError *string `json:"emailError"`
}

type LoginUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	IsVerified bool   `json:"isVerified"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// -------- Google stubs --------

type GoogleUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type GoogleResponse struct {
	Success bool       `json:"success"`
	Role    string     `json:"role"`
	User    GoogleUser `json:"user"`
}

// -------- Diagnostics --------

type LookupUser struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	ID         string `json:"id"`
}

type LookupResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Email   string      `json:"email,omitempty"`
	User    *LookupUser `json:"user,omitempty"`
}

// -------- Misc --------

type ContactResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Port      string `json:"port"`
}

type ReadyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type NotFoundResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Path    string `json:"path"`
	Method  string `json:"method"`
}
