package quiz

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Request payloads. Question payloads carry an optional id: present means
// "update this question in place", absent means "create a new one".

type QuizInput struct {
	Name            string          `json:"name" validate:"required,min=3,max=250"`
	ScheduleDate    time.Time       `json:"schedule_date" validate:"required"`
	EndDate         time.Time       `json:"end_date" validate:"required"`
	Description     string          `json:"description"`
	TimePerQuestion int             `json:"time_per_question" validate:"gte=0"`
	Questions       []QuestionInput `json:"questions" validate:"dive"`
}

// QuizUpdateInput carries only the scalar fields the caller wants changed.
type QuizUpdateInput struct {
	Name            *string         `json:"name" validate:"omitempty,min=3,max=250"`
	ScheduleDate    *time.Time      `json:"schedule_date"`
	EndDate         *time.Time      `json:"end_date"`
	Description     *string         `json:"description"`
	TimePerQuestion *int            `json:"time_per_question" validate:"omitempty,gte=1"`
	Questions       []QuestionInput `json:"questions" validate:"omitempty,dive"`
}

type QuestionInput struct {
	Slug   string `json:"id" validate:"omitempty,uuid4"`
	Text   string `json:"question_text" validate:"required"`
	Img    string `json:"question_img"`
	Type   string `json:"question_type" validate:"required,oneof=mcq open_text"`
	Answer string `json:"answer" validate:"required"`
}

type AnswerInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct-tag validation and converts the first failure
// into a field-scoped domain error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return Validation(fieldPath(fe), messageFor(fe))
	}
	return Validation("", err.Error())
}

// fieldPath strips the root struct name from the namespace, leaving e.g.
// "questions[0].answer".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "uuid4":
		return "must be a valid slug"
	default:
		return "invalid value"
	}
}
