package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatEnglish(t *testing.T) {
	f := NewFormatter("en")

	tests := []struct {
		name      string
		value     float64
		precision int
		expected  string
	}{
		{"whole number", 1.0, 5, "1.00000"},
		{"negative", -122.654321, 6, "-122.654321"},
		{"latitude", 45.123456, 6, "45.123456"},
		{"rounds", 2.0000049, 5, "2.00000"},
		{"zero", 0, 5, "0.00000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(tt.value, tt.precision))
		})
	}
}

func TestFormatGroupsThousands(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "25,899.96875", f.Format(25899.96875, 5))
}

func TestFormatGermanDecimalSeparator(t *testing.T) {
	f := NewFormatter("de")
	assert.Equal(t, "1,50000", f.Format(1.5, 5))
}

func TestNewFormatterFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, language.English, NewFormatter("").Language())
	assert.Equal(t, language.English, NewFormatter("not a language!").Language())
}

func TestSetLanguageSwitchesFormatting(t *testing.T) {
	f := NewFormatter("en")
	f.SetLanguage("de")
	assert.Equal(t, language.German, f.Language())
	assert.Equal(t, "1,50000", f.Format(1.5, 5))

	f.SetLanguage("")
	assert.Equal(t, "1.50000", f.Format(1.5, 5))
}
