// Package locale formats numbers with the grouping and decimal separators of
// a CLDR language.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for a single language
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a formatter for the BCP 47 language name. An empty or
// unparseable name falls back to English.
func NewFormatter(lang string) *Formatter {
	f := &Formatter{}
	f.SetLanguage(lang)
	return f
}

// SetLanguage switches the formatter to lang, with the same fallback as
// NewFormatter.
func (f *Formatter) SetLanguage(lang string) {
	tag := language.English
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	f.tag = tag
	f.printer = message.NewPrinter(tag)
}

// Language returns the language tag the formatter uses.
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Format renders v rounded to exactly precision fractional digits.
func (f *Formatter) Format(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(precision)))
}
