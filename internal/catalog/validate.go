// AngelaMos | 2026
// validate.go

package catalog

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with one tag per value set, so request
// DTOs can write `validate:"required,priority"` instead of repeating oneof
// lists that drift from the catalog.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	register := func(tag string, valid func(string) bool) {
		//nolint:errcheck // tags are static and non-empty
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}

	register("role", func(s string) bool { return Role(s).Valid() })
	register("priority", func(s string) bool { return Priority(s).Valid() })
	register("activity_type", func(s string) bool { return ActivityType(s).Valid() })
	register("target_status", func(s string) bool { return TargetDateStatus(s).Valid() })
	register("environment", func(s string) bool { return Environment(s).Valid() })
	register("deployment_status", func(s string) bool { return DeploymentStatus(s).Valid() })

	//nolint:errcheck // static tag
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
