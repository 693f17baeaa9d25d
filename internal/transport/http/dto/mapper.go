package dto

import (
	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

func ToRegisterResponse(res account.RegisterResult) RegisterResponse {
	a := res.Account
	out := RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		User: RegisteredUser{
			ID:         a.ID,
			Name:       a.Name,
			Email:      a.Email,
			Role:       a.Role,
			IsVerified: a.IsVerified,
		},
		EmailSent: res.EmailSent,
	}
	if !res.EmailSent && res.EmailError != "" {
		msg := res.EmailError
		out.EmailError = &msg
	}
	return out
}

func ToLoginResponse(a domain.Account) LoginResponse {
	return LoginResponse{
		Success: true,
		Message: "Login successful",
		User: LoginUser{
			ID:         a.ID,
			Email:      a.Email,
			Role:       a.Role,
			Name:       a.Name,
			IsVerified: a.IsVerified,
		},
	}
}

func ToGoogleResponse(g account.GoogleResult) GoogleResponse {
	return GoogleResponse{
		Success: true,
		Role:    g.Role,
		User:    GoogleUser{Email: g.Email, Name: g.Name, Role: g.Role},
	}
}

// ToLookupResponse echoes the requested email back when nothing matched.
func ToLookupResponse(email string, a domain.Account, found bool) LookupResponse {
	if !found {
		return LookupResponse{Success: false, Message: "User not found", Email: email}
	}
	return LookupResponse{
		Success: true,
		Message: "User found",
		User: &LookupUser{
			Email:      a.Email,
			Name:       a.Name,
			Role:       a.Role,
			IsVerified: a.IsVerified,
			ID:         a.ID,
		},
	}
}
