package validator

import (
	"regexp"
	"strings"

	domainTour "tour-booking-api/internal/domain/tour"
	domainUser "tour-booking-api/internal/domain/user"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Registration only fails for an empty tag or nil func; a failure here
	// is a programming error, not a runtime condition.
	if err := validate.RegisterValidation("user_role", validateUserRole); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("difficulty", validateDifficulty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("tour_name", validateTourName); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return domainUser.Role(fl.Field().String()).Valid()
}

func validateDifficulty(fl validator.FieldLevel) bool {
	return domainTour.Difficulty(fl.Field().String()).Valid()
}

var tourNamePattern = regexp.MustCompile(`^[A-Za-z ]+$`)

// Tour names are letters and spaces only.
func validateTourName(fl validator.FieldLevel) bool {
	return tourNamePattern.MatchString(fl.Field().String())
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}
