package script

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// validateDocument performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateDocument(doc *document) error {
	var errs []string

	stepIDs := make(map[string]bool, len(doc.Steps))
	for i, st := range doc.Steps {
		prefix := fmt.Sprintf("step %d (%q)", i, st.ID)

		if stepIDs[st.ID] {
			errs = append(errs, fmt.Sprintf("duplicate step ID: %q", st.ID))
		}
		stepIDs[st.ID] = true

		if len(st.Choices) == 0 {
			errs = append(errs, fmt.Sprintf("%s: has no choices", prefix))
		}
		if len(st.DefaultConfirmation) == 0 {
			errs = append(errs, fmt.Sprintf("%s: default confirmation is empty", prefix))
		}

		optionIDs := make(map[string]bool, len(st.Choices))
		letters := make(map[string]bool, len(st.Choices))
		for _, c := range st.Choices {
			if optionIDs[c.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option ID %q", prefix, c.ID))
			}
			optionIDs[c.ID] = true
			if letters[c.Letter] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option letter %q", prefix, c.Letter))
			}
			letters[c.Letter] = true
		}

		for _, id := range slices.Sorted(maps.Keys(st.Confirmations)) {
			if !optionIDs[id] {
				errs = append(errs, fmt.Sprintf("%s: confirmation for nonexistent option %q", prefix, id))
			}
			if len(st.Confirmations[id]) == 0 {
				errs = append(errs, fmt.Sprintf("%s: confirmation for %q is empty", prefix, id))
			}
		}

		for j, ref := range st.References {
			if ref.Title == "" || ref.URL == "" {
				errs = append(errs, fmt.Sprintf("%s: reference %d needs title and url", prefix, j))
			}
		}
	}

	if len(doc.Steps) == 0 {
		errs = append(errs, "script has no steps")
	}
	if doc.FinalPrompt == "" {
		errs = append(errs, "final prompt is empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("script validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
