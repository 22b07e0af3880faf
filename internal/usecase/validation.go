package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/pipewise/pipewise/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validationFailure folds field errors into a single DomainError for the
// HTTP layer.
func validationFailure(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CompanyName) == "" {
		errors = append(errors, ValidationError{"company_name", "is required"})
	} else if len(input.CompanyName) > 255 {
		errors = append(errors, ValidationError{"company_name", "must not exceed 255 characters"})
	}

	if strings.TrimSpace(input.ContactPerson) == "" {
		errors = append(errors, ValidationError{"contact_person", "is required"})
	} else if len(input.ContactPerson) > 255 {
		errors = append(errors, ValidationError{"contact_person", "must not exceed 255 characters"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Source) == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	} else if !entity.IsValidSource(strings.ToUpper(input.Source)) {
		errors = append(errors, ValidationError{"source", "is not a known source channel"})
	}

	if strings.TrimSpace(input.OwnerID) == "" {
		errors = append(errors, ValidationError{"owner_id", "is required"})
	}

	if input.BudgetCents < 0 {
		errors = append(errors, ValidationError{"budget_cents", "must not be negative"})
	}

	return errors
}

func ValidateRecordActivityInput(input RecordActivityInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errors = append(errors, ValidationError{"lead_id", "is required"})
	}
	if !entity.IsValidActivityKind(strings.ToUpper(input.Kind)) {
		errors = append(errors, ValidationError{"kind", "must be CALL, EMAIL, MEETING or NOTE"})
	}
	if strings.TrimSpace(input.Body) == "" {
		errors = append(errors, ValidationError{"body", "is required"})
	} else if len(input.Body) > 4000 {
		errors = append(errors, ValidationError{"body", "must not exceed 4000 characters"})
	}
	if strings.TrimSpace(input.ActorID) == "" {
		errors = append(errors, ValidationError{"actor_id", "is required"})
	}

	return errors
}

func ValidateCreateTaskInput(input CreateTaskInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errors = append(errors, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{"title", "is required"})
	} else if len(input.Title) > 255 {
		errors = append(errors, ValidationError{"title", "must not exceed 255 characters"})
	}
	if input.DueAt.IsZero() {
		errors = append(errors, ValidationError{"due_at", "is required"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}
