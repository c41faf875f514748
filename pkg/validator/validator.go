package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens binding errors into the first failing
// rule's message followed by the rest, matching the API's 400 payloads.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a valid hex color code.", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long.", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s cannot exceed %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":          "Username",
		"Email":             "Email",
		"Password":          "Password",
		"UsernameColor":     "Username color",
		"CommentText":       "Comment text",
		"ParentCommentID":   "Parent comment ID",
		"ReactionType":      "Reaction type",
		"LastReadChapterID": "Chapter ID",
		"LastReadScrollY":   "Scroll position",
		"Title":             "Title",
		"Content":           "Content",
		"ChapterNumber":     "Chapter number",
		"Segments":          "Segments",
		"SegmentIndex":      "Segment index",
		"SegmentType":       "Segment type",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
