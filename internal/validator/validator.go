// Package validator holds the record rules shared by every write path: the
// pure checks run by the services and the custom tags registered with Gin's
// binding engine so malformed requests are rejected before they reach them.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Gangulr/finace/internal/models"
)

// MaxAmount is the largest accepted amount. Summaries add many amounts
// together, so the ceiling sits far below the int64 range.
const MaxAmount int64 = 1_000_000_000_000

// DateLayout is the only accepted date format. ISO dates compare
// lexically in chronological order, which the date rules rely on.
const DateLayout = "2006-01-02"

// Kind identifies which rule a value broke.
type Kind string

const (
	KindMissingField       Kind = "MissingField"
	KindNotANumber         Kind = "NotANumber"
	KindNotPositiveInteger Kind = "NotPositiveInteger"
	KindAmountTooLarge     Kind = "AmountTooLarge"
	KindPastDate           Kind = "PastDate"
	KindEndBeforeStart     Kind = "EndBeforeStart"
	KindInvalidDate        Kind = "InvalidDate"
	KindInvalidOption      Kind = "InvalidOption"
	KindInvalidInput       Kind = "InvalidInput"
)

// ValidationError is returned by every rule in this package.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newError(kind Kind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// Fields maps a record's json field names to their submitted values.
type Fields map[string]string

var labels = map[string]string{
	"userId":        "User",
	"amount":        "Amount",
	"category":      "Category",
	"paymentMethod": "Payment method",
	"source":        "Source",
	"startDate":     "Start date",
	"endDate":       "End date",
	"dateSpent":     "Date spent",
	"dateReceived":  "Date received",
	"email":         "Email",
	"username":      "Username",
	"password":      "Password",
}

// Label returns the human-readable name of a field.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

var (
	amountPattern = regexp.MustCompile(`^[1-9]\d*$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// ValidateAmount accepts a positive integer up to MaxAmount written as plain
// digits with no sign, decimal point or leading zero, and returns its value.
func ValidateAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, newError(KindMissingField, "amount", "Amount is required")
	}
	if !digitsPattern.MatchString(s) {
		return 0, newError(KindNotANumber, "amount", "Amount must be a number")
	}
	if !amountPattern.MatchString(s) {
		return 0, newError(KindNotPositiveInteger, "amount", "Amount must be a positive integer")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n > MaxAmount {
		return 0, newError(KindAmountTooLarge, "amount", "Amount must not exceed "+strconv.FormatInt(MaxAmount, 10))
	}
	return n, nil
}

// ValidateDate checks that value is a real calendar date in YYYY-MM-DD form.
func ValidateDate(field, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return newError(KindInvalidDate, field, Label(field)+" must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateDateNotPast rejects a date strictly before the reference date.
func ValidateDateNotPast(field, date, reference string) error {
	if err := ValidateDate(field, date); err != nil {
		return err
	}
	if date < reference {
		return newError(KindPastDate, field, Label(field)+" cannot be in the past.")
	}
	return nil
}

// ValidateDateRange rejects an end date before the start date.
func ValidateDateRange(start, end string) error {
	if end < start {
		return newError(KindEndBeforeStart, "endDate", "End date cannot be before start date.")
	}
	return nil
}

// ValidateRequired reports the first named field that is empty after trimming.
func ValidateRequired(record Fields, names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(record[name]) == "" {
			return newError(KindMissingField, name, Label(name)+" is required.")
		}
	}
	return nil
}

// ValidateOption checks that value is one of allowed.
func ValidateOption(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return newError(KindInvalidOption, field,
		fmt.Sprintf("%s must be one of: %s", Label(field), strings.Join(allowed, ", ")))
}

// ValidatePassword requires at least eight letters or digits including at
// least one of each.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// Today returns the reference date for now in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Register registers all custom validators with the Gin binding engine and
// reports field errors by their json names.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
		_ = v.RegisterValidation("budget_category", oneOf(models.BudgetCategories))
		_ = v.RegisterValidation("expense_category", oneOf(models.ExpenseCategories))
		_ = v.RegisterValidation("income_category", oneOf(models.IncomeCategories))
		_ = v.RegisterValidation("payment_method", oneOf(models.PaymentMethods))
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("password", validatePasswordTag)
	}
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ValidateOption("", fl.Field().String(), allowed) == nil
	}
}

func validateISODate(fl validator.FieldLevel) bool {
	return ValidateDate("", fl.Field().String()) == nil
}

func validatePasswordTag(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

// FromBinding converts a Gin binding failure into a ValidationError whose
// Kind matches the rule the field broke.
func FromBinding(err error) *ValidationError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return newError(KindInvalidInput, "", Describe(err))
	}
	fe := errs[0]
	kind := KindInvalidInput
	switch fe.Tag() {
	case "required":
		kind = KindMissingField
	case "budget_category", "expense_category", "income_category", "payment_method":
		kind = KindInvalidOption
	case "iso_date":
		kind = KindInvalidDate
	}
	return newError(kind, fe.Field(), Describe(err))
}

// Describe turns a binding failure into a message a form can show as is.
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request body"
	}
	fe := errs[0]
	field := fe.Field()
	label := Label(field)

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "budget_category":
		return ValidateOption(field, "", models.BudgetCategories).Error()
	case "expense_category":
		return ValidateOption(field, "", models.ExpenseCategories).Error()
	case "income_category":
		return ValidateOption(field, "", models.IncomeCategories).Error()
	case "payment_method":
		return ValidateOption(field, "", models.PaymentMethods).Error()
	case "iso_date":
		return ValidateDate(field, "").Error()
	case "password":
		return "Password must be at least 8 characters long and contain at least one letter and one number"
	}
	return fmt.Sprintf("%s is invalid", label)
}
