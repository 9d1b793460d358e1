// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("cpf", validateCPF)
	validate.RegisterValidation("cnpj", validateCNPJ)
	validate.RegisterValidation("cep", validateCEP)
	validate.RegisterValidation("car_year", validateCarYear)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

func validateCPF(fl validator.FieldLevel) bool {
	cpf := fl.Field().String()
	if len(cpf) != 11 || !digitsOnly.MatchString(cpf) {
		return false
	}

	// Reject sequences like 00000000000
	if strings.Count(cpf, string(cpf[0])) == 11 {
		return false
	}

	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(cpf[i]-'0') * (pos + 1 - i)
		}
		digit := (sum * 10) % 11
		if digit == 10 {
			digit = 0
		}
		if digit != int(cpf[pos]-'0') {
			return false
		}
	}

	return true
}

func validateCNPJ(fl validator.FieldLevel) bool {
	cnpj := fl.Field().String()
	if len(cnpj) != 14 || !digitsOnly.MatchString(cnpj) {
		return false
	}

	if strings.Count(cnpj, string(cnpj[0])) == 14 {
		return false
	}

	weights := [][]int{
		{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
		{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
	}

	for w, pos := range []int{12, 13} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(cnpj[i]-'0') * weights[w][i]
		}
		digit := sum % 11
		if digit < 2 {
			digit = 0
		} else {
			digit = 11 - digit
		}
		if digit != int(cnpj[pos]-'0') {
			return false
		}
	}

	return true
}

func validateCEP(fl validator.FieldLevel) bool {
	cep := fl.Field().String()
	return len(cep) == 8 && digitsOnly.MatchString(cep)
}

func validateCarYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	// Model years run one ahead of the calendar
	return year >= 1900 && year <= time.Now().Year()+1
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "cpf":
		return "Invalid CPF"
	case "cnpj":
		return "Invalid CNPJ"
	case "cep":
		return "Invalid CEP"
	case "car_year":
		return "Invalid model year"
	default:
		return e.Field() + " is invalid"
	}
}
