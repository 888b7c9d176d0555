// internal/workers/data-access/learn-alias/validation.go
package learnalias

import (
	stderrors "errors"
	"fmt"
	"strings"

	"sales-workers/internal/common/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewAliasValidationFailedError("missing input")
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return errors.NewAliasValidationFailedError(strings.Join(msgs, "; "))
		}
		return errors.NewAliasValidationFailedError(err.Error())
	}
	return nil
}
