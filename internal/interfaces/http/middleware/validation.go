package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// docNumberPattern matches document numbers of the form PREFIX + digits,
// e.g. LR000042 or INV77. The prefix is optional so digits-only entry works.
var docNumberPattern = regexp.MustCompile(`^[A-Z]{0,10}[0-9]{1,12}$`)

// SetupValidator registers custom validation tags on gin's binding validator.
// Call once at startup before any request is served.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// Report field names from json/form tags so error messages match the
	// wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	return v.RegisterValidation("docnumber", func(fl validator.FieldLevel) bool {
		return docNumberPattern.MatchString(fl.Field().String())
	})
}
