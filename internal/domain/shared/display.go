package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName turns an enum code like "DISPLAY_TABLE_BOY" into "Display Table Boy"
func DisplayName(code string) string {
	if code == "" {
		return ""
	}
	// Casers are stateful, one per call
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(code, "_", " ")))
}
