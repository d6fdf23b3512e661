package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps every rejected rating or weight set.
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateRoleInput checks that all six ratings are within 1..5.
// CalculateRoleScore itself does not range-check.
func ValidateRoleInput(in RoleScoreInput) error {
	return check(in)
}

// Validate checks that every weight is within [0,1].
func (w Weights) Validate() error {
	return check(w)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be %s %s (got %v)", fe.Field(), bound(fe.Tag()), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func bound(tag string) string {
	switch tag {
	case "min", "gte":
		return ">="
	case "max", "lte":
		return "<="
	default:
		return tag
	}
}
