package utils

import (
	"strings"
	"testing"

	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/stretchr/testify/assert"
)

func TestBoardName(t *testing.T) {
	v := New(10)
	tests := []struct {
		name    string
		input   string
		isValid bool
	}{
		{"simple", "general", true},
		{"unicode", "доска", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"slash", "a/b", false},
		{"space", "a b", false},
		{"too long", strings.Repeat("a", maxBoardNameLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Name(tt.input)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				var withCode *errors.ErrorWithStatusCode
				assert.ErrorAs(t, err, &withCode)
				assert.Equal(t, 400, withCode.StatusCode)
			}
		})
	}
}

func TestText(t *testing.T) {
	v := New(5)
	assert.NoError(t, v.Text("hello"))
	assert.NoError(t, v.Text("привет"[:10]), "length counts runes, not bytes")
	assert.Error(t, v.Text("hello!"))
	assert.Error(t, v.Text(""))
	assert.Error(t, v.Text(" \n "))
}
