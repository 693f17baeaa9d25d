package account

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return domain.IsValidEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		return domain.IsValidRole(fl.Field().String())
	})
}

// checkFields validates in, then reports the first failure in the fixed order
// required > email format > role, using the flow's own messages.
func checkFields(in any, missingMsg, invalidEmailMsg string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrInternal(err)
	}

	var emailErr, roleErr error
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return domain.ErrMissingFields(missingMsg)
		case "account_email":
			if emailErr == nil {
				emailErr = domain.ErrInvalidEmail(invalidEmailMsg)
			}
		case "account_role":
			if roleErr == nil {
				roleErr = domain.ErrInvalidRole(fmt.Sprint(fe.Value()))
			}
		}
	}
	if emailErr != nil {
		return emailErr
	}
	if roleErr != nil {
		return roleErr
	}
	return domain.ErrInternal(err)
}

func (s *Service) checkPassword(password string) error {
	if err := validate.Var(password, fmt.Sprintf("min=%d", s.minPasswordLength)); err != nil {
		return domain.ErrPasswordTooShort(s.minPasswordLength)
	}
	return nil
}
