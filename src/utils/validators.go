package utils

import (
	"dropzone/src/types"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var slugFieldValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

var clockTimeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	_, err := types.ParseClockTime(fl.Field().String())
	return err == nil
}

var productTypeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return types.ProductType(fl.Field().String()).IsValid()
}

// RegisterValidators installs the custom tags on gin's validator and makes
// field errors report JSON names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("slugfield", slugFieldValidatorFunc)
	v.RegisterValidation("clocktime", clockTimeValidatorFunc)
	v.RegisterValidation("producttype", productTypeValidatorFunc)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "slugfield":
		return `Enter a valid "slug" consisting of letters, numbers, underscores or hyphens.`
	case "producttype":
		return fmt.Sprintf(`"%v" is not a valid choice.`, fe.Value())
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "clocktime":
		return "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."
	}
	return "Invalid value."
}

// validate runs the binding tags of obj and converts failures to FieldErrors.
func validate(obj any) error {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), validationMessage(fe))
	}
	return fields.Err()
}

// checkDecimal mirrors a DECIMAL(maxDigits, places) column.
func checkDecimal(d decimal.Decimal, maxDigits int, places int) string {
	coef := new(big.Int).Abs(d.Coefficient()).String()
	exp := int(d.Exponent())
	var digits, decimals int
	if exp >= 0 {
		digits = len(coef)
		if coef != "0" {
			digits += exp
		}
	} else {
		decimals = -exp
		digits = len(coef)
		if decimals > digits {
			digits = decimals
		}
	}
	whole := digits - decimals
	switch {
	case digits > maxDigits:
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits)
	case decimals > places:
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", places)
	case whole > maxDigits-places:
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxDigits-places)
	}
	return ""
}
