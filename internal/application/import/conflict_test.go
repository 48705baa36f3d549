package importapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictMode_IsValid(t *testing.T) {
	tests := []struct {
		mode  ConflictMode
		valid bool
	}{
		{ConflictModeSkip, true},
		{ConflictModeUpdate, true},
		{ConflictModeFail, true},
		{ConflictMode("merge"), false},
		{ConflictMode(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.mode.IsValid())
		})
	}
}
