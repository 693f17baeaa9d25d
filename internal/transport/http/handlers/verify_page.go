package http_handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

type pageAccount struct {
	Name  string
	Email string
	Role  string
}

type verifyPageData struct {
	Title      string
	Heading    string
	Message    string
	Success    bool
	Origin     string
	ButtonText string
	// RedirectSeconds > 0 adds an automatic return to Origin.
	RedirectSeconds int
	Account         *pageAccount
}

func (d verifyPageData) RedirectMillis() int { return d.RedirectSeconds * 1000 }

var verifyPageTmpl = template.Must(template.New("verify").Parse(verifyPageTemplate))

// VerifyEmail handles GET /api/auth/verify?email=...
// The link is opened from an email client, so every outcome is an HTML page.
func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	res, err := h.svc.VerifyEmail(r.Context(), email)
	if err != nil {
		h.renderVerifyFailure(w, r, err)
		return
	}

	switch res.Status {
	case account.VerifyAlreadyVerified:
		h.renderVerifyPage(w, http.StatusOK, verifyPageData{
			Title:           "Email Already Verified",
			Heading:         "✅ Email Already Verified",
			Message:         "Your email address has already been verified successfully.",
			Success:         true,
			ButtonText:      "Go to Website",
			RedirectSeconds: 3,
		})
	default:
		logger.WithCtx(r.Context()).Info().Str("account_id", res.Account.ID).Msg("email_verified")
		h.renderVerifyPage(w, http.StatusOK, verifyPageData{
			Title:   "Email Verified Successfully!",
			Heading: "🎉 Email Verified Successfully!",
			Message: "Congratulations! Your email address has been verified successfully. " +
				"You can now log in to your account and access all features.",
			Success:         true,
			ButtonText:      "Continue to Website",
			RedirectSeconds: 5,
			Account: &pageAccount{
				Name:  res.Account.Name,
				Email: res.Account.Email,
				Role:  res.Account.Role,
			},
		})
	}
}

func (h *AccountHandler) renderVerifyFailure(w http.ResponseWriter, r *http.Request, err error) {
	data := verifyPageData{ButtonText: "Go to Website"}
	status := response.StatusOf(err)

	switch {
	case domain.Is(err, "missing_field"):
		data.Title, data.Message = "Verification Failed", "Email parameter is required."
	case domain.Is(err, "invalid_field"):
		data.Title, data.Message = "Verification Failed", "Invalid email format."
	case domain.Is(err, "user_not_found"):
		data.Title, data.Message = "User Not Found", "No account found with this email address."
	default:
		logger.WithCtx(r.Context()).Error().Err(err).Msg("verify_failed")
		status = http.StatusInternalServerError
		data.Title, data.Message = "Verification Error", "An error occurred during verification. Please try again later."
	}
	data.Heading = "❌ " + data.Title

	h.renderVerifyPage(w, status, data)
}

func (h *AccountHandler) renderVerifyPage(w http.ResponseWriter, status int, data verifyPageData) {
	data.Origin = h.frontendOrigin

	var buf bytes.Buffer
	if err := verifyPageTmpl.Execute(&buf, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	response.HTML(w, status, buf.Bytes())
}

const verifyPageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; padding: 50px; background: #f5f5f5; }
    .container { background: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); max-width: 500px; margin: 0 auto; }
    .error { color: #d32f2f; font-size: 18px; margin-bottom: 20px; }
    .success { color: #388e3c; font-size: 18px; margin-bottom: 20px; }
    .user-info { background: #f8f9fa; padding: 15px; border-radius: 8px; margin: 20px 0; }
    .btn { background: #1976d2; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block; margin-top: 20px; }
    .auto-redirect { color: #666; font-size: 14px; margin-top: 20px; }
  </style>
  {{- if gt .RedirectSeconds 0}}
  <script>
    setTimeout(function() { window.location.href = {{.Origin}}; }, {{.RedirectMillis}});
  </script>
  {{- end}}
</head>
<body>
  <div class="container">
    <div class="{{if .Success}}success{{else}}error{{end}}">{{.Heading}}</div>
    <p>{{.Message}}</p>
    {{- with .Account}}
    <div class="user-info">
      <strong>Account Details:</strong><br>
      Name: {{.Name}}<br>
      Email: {{.Email}}<br>
      Role: {{.Role}}
    </div>
    {{- end}}
    <a href="{{.Origin}}" class="btn">{{.ButtonText}}</a>
    {{- if gt .RedirectSeconds 0}}
    <div class="auto-redirect">Redirecting to website in {{.RedirectSeconds}} seconds...</div>
    {{- end}}
  </div>
</body>
</html>
`
