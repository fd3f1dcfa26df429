package calendar

// =============================================================================
// LOCALE - Month and weekday name tables
// =============================================================================

// Locale supplies the display names the renderer needs. It is a plain
// lookup; no locale negotiation happens anywhere in the core. MonthNames is
// indexed 1..12, index 0 stays empty. DayAbbrs is indexed by weekday number
// (0=Monday).
type Locale struct {
	Code       string
	MonthNames [13]string
	DayAbbrs   [7]string
}

var English = Locale{
	Code: "en",
	MonthNames: [13]string{
		"",
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	DayAbbrs: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

var German = Locale{
	Code: "de",
	MonthNames: [13]string{
		"",
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	},
	DayAbbrs: [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"},
}

// LocaleByCode returns the named locale, falling back to English for
// unknown codes.
func LocaleByCode(code string) (Locale, bool) {
	switch code {
	case "en", "":
		return English, true
	case "de":
		return German, true
	}
	return English, false
}

// MonthNumber resolves a month name to its 1..12 number. The lookup is
// exact; callers normalize case and whitespace themselves.
func (l Locale) MonthNumber(name string) (int, bool) {
	for m := 1; m <= 12; m++ {
		if l.MonthNames[m] == name {
			return m, true
		}
	}
	return 0, false
}
