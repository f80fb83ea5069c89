package utils

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/itchan-dev/msgboard/shared/errors"
)

const maxBoardNameLength = 64

// BoardNameValidator accepts names usable as a single url path segment.
type BoardNameValidator struct{}

func (e *BoardNameValidator) Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return &errors.ErrorWithStatusCode{Message: "Board name is empty", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(name) > maxBoardNameLength {
		return &errors.ErrorWithStatusCode{Message: "Board name is too long", StatusCode: http.StatusBadRequest}
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) || unicode.IsSpace(r) {
			return &errors.ErrorWithStatusCode{Message: "Board name contains invalid characters", StatusCode: http.StatusBadRequest}
		}
	}
	return nil
}

type MessageValidator struct {
	MaxLength int
}

func (e *MessageValidator) Text(text string) error {
	if utf8.RuneCountInString(text) > e.MaxLength {
		return &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: http.StatusBadRequest}
	}
	if strings.TrimSpace(text) == "" {
		return &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Validator combines both checks for the board service.
type Validator struct {
	BoardNameValidator
	MessageValidator
}

func New(maxTextLength int) *Validator {
	return &Validator{MessageValidator: MessageValidator{MaxLength: maxTextLength}}
}
