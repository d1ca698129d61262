package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"12", false},
		{"-3", false},
		{"", true},
		{"abc", true},
		{"1 OR 1=1", true},
		{strings.Repeat("9", 19), true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, ValidateID(tt.id))
			} else {
				assert.NoError(t, ValidateID(tt.id))
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery(""))
	assert.NoError(t, ValidateQuery("Bratislava hl.st."))
	assert.NoError(t, ValidateQuery("Os 1001"))
	assert.Error(t, ValidateQuery("<script>"))
	assert.Error(t, ValidateQuery("x'; DROP TABLE stops; --"))
	assert.Error(t, ValidateQuery(strings.Repeat("a", 201)))
}

func TestValidateAndSanitizeQuery(t *testing.T) {
	got, err := ValidateAndSanitizeQuery("  Žilina  ")
	assert.NoError(t, err)
	assert.Equal(t, "Žilina", got)

	_, err = ValidateAndSanitizeQuery("<b>Žilina</b>")
	assert.Error(t, err)
}

func TestValidateLocationParams(t *testing.T) {
	assert.Empty(t, ValidateLocationParams(48.1, 17.1))

	errs := ValidateLocationParams(91, -181)
	assert.Contains(t, errs, "lat")
	assert.Contains(t, errs, "lon")
}

func TestValidatePointer(t *testing.T) {
	assert.NoError(t, ValidatePointer(-1))
	assert.NoError(t, ValidatePointer(0.3))
	assert.Error(t, ValidatePointer(1.01))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Poprad-Tatry", SanitizeInput(" <i>Poprad-Tatry</i> "))
}
