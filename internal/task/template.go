package task

import "strings"

// Render substitutes named placeholders of the form {name} into template.
// Every occurrence of a bound placeholder is replaced; unbound placeholders
// are left verbatim. Callers that want a placeholder blanked must bind it
// to the empty string explicitly.
func Render(template string, bindings map[string]string) string {
	out := template
	for name, value := range bindings {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}
