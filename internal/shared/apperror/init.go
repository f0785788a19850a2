package apperror

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var mobileNumberRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// Init wires the shared validation rules into gin's default validator.
// Must run once before the first request is bound.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report fields by their json name (e.g. `json:"mobile_number"`)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileNumberRe.MatchString(fl.Field().String())
	})
}
