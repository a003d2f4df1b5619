package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type registerForm struct {
	Name          string `validate:"required"`
	Email         string `validate:"required,email"`
	Password      string `validate:"required"`
	Qualification string `validate:"required"`
	DOB           string `validate:"required,datetime=2006-01-02"`
}

type subjectForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

type chapterForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

type quizForm struct {
	Name     string `validate:"required"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Duration int    `validate:"required,gt=0"`
	Remarks  string `validate:"required"`
}

type questionForm struct {
	Text          string `validate:"required"`
	Option1       string `validate:"required"`
	Option2       string `validate:"required"`
	Option3       string `validate:"required"`
	Option4       string `validate:"required"`
	CorrectOption string `validate:"required"`
}

// validateForm runs the struct validators and maps the first failure to a
// message ID. Empty string means the form is valid.
func (h *Handler) validateForm(form any) string {
	err := h.validate.Struct(form)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "AllFieldsRequired"
	}
	switch verrs[0].Tag() {
	case "datetime":
		return "InvalidDateFormat"
	case "email":
		return "InvalidEmail"
	case "gt":
		return "InvalidDuration"
	default:
		return "AllFieldsRequired"
	}
}
