package api

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a bound request struct against its validation tags and
// returns a readable message for the first group of failures.
func Validate(req interface{}) (string, bool) {
	err := validate.Struct(req)
	if err == nil {
		return "", true
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request", false
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fe.Field()+" is too short")
		case "max":
			msgs = append(msgs, fe.Field()+" is too long")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		case "datetime":
			msgs = append(msgs, fe.Field()+" must be in YYYY-MM-DD format")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; "), false
}
