package commands

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

var validate = validator.New()

// validateCommand checks struct tags on cmd and reports the first failure as
// a *shared.ValidationError
func validateCommand(cmd interface{}) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return shared.NewValidationError(e.Field(), fmt.Sprintf("failed %s=%s (value: %v)", e.Tag(), e.Param(), e.Value()))
	}
	return err
}
