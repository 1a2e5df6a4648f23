package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// ussdPattern matches a structurally valid USSD dial string, e.g. *901# or *123*1#
var ussdPattern = regexp.MustCompile(`^\*[\d*#A-Za-z]+#?$`)

// RegisterRules adds the domain validation tags to a validator instance
func RegisterRules(v *validator.Validate) {
	_ = v.RegisterValidation("ussd_code", func(fl validator.FieldLevel) bool {
		return ussdPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("report_status", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "pending", "verified", "rejected":
			return true
		}
		return false
	})
}

// RegisterGinRules registers the domain rules with gin's binding validator
// so request structs can use them in binding tags
func RegisterGinRules() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterRules(v)
	}
}

// Get returns the shared validator with domain rules registered
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		RegisterRules(validate)
	})
	return validate
}

// ValidateStruct validates a struct and converts errors to a ValidationError
func ValidateStruct(s interface{}) error {
	if err := Get().Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}

// IsUSSDCode reports whether s looks like a USSD dial string
func IsUSSDCode(s string) bool {
	return ussdPattern.MatchString(s)
}
