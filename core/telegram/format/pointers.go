package format

import "time"

// DerefString safely dereferences a *string and returns a default value if nil.
func DerefString(s *string, defaultVal string) string {
	if s != nil {
		return *s
	}
	return defaultVal
}

// DerefTime safely dereferences a *time.Time and formats it with the given
// layout, returning a default value if nil.
func DerefTime(t *time.Time, layout, defaultVal string) string {
	if t != nil {
		return t.Format(layout)
	}
	return defaultVal
}
