package assignment

import "strings"

// Filter returns the assignments of `list` matching both `status` and `search`, in `list` order.
// `search` is matched case-insensitively against the title, course and description; blank matches everything.
func Filter(list []Assignment, status StatusFilter, search string) []Assignment {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]Assignment, 0, len(list))
	for _, a := range list {
		if !status.Match(a.Status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Course), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		filtered = append(filtered, a.Clone())
	}
	return filtered
}
