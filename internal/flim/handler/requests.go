package handler

import (
	"context"
	"fmt"
	"unicode/utf8"

	"flims/internal/flim/models"
	"flims/pkg/platform/sentinel"
	"flims/pkg/platform/validation"
)

// Title bounds. The maximum only appears in the message unless the handler
// was built WithTitleMaxEnforced.
const (
	TitleMinLength = 3
	TitleMaxLength = 20
)

func titleMessage(value any) string {
	return fmt.Sprintf("The title must be between %d and %d characters long but received length %d",
		TitleMinLength, TitleMaxLength, utf8.RuneCountInString(validation.StringValue(value)))
}

// idMessage keeps the wording existing clients match on.
func idMessage(value any) string {
	return fmt.Sprintf("The id of %s is not exists", validation.FormatValue(value))
}

func (h *Handler) titleRule() validation.Validator {
	limit := 0
	if h.enforceTitleMax {
		limit = TitleMaxLength
	}
	return validation.Length(models.FieldTitle, TitleMinLength, limit, titleMessage)
}

func (h *Handler) idExistsRule() validation.Validator {
	return validation.Custom(models.FieldID, func(ctx context.Context, value any) error {
		id, ok := validation.IntValue(value)
		if !ok {
			return sentinel.ErrNotFound
		}
		return h.flims.Exists(ctx, id)
	}, idMessage)
}
