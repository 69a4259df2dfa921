package dialogue

import (
	"errors"
	"sort"

	"compliance-bot/internal/intake"
)

// FillForm applies one direct-form submission to the store: every field
// is validated and written independently, in catalog order, with no
// per-turn sequencing. Fields that fail validation leave their records
// unchanged and are reported together; valid fields are always kept.
func FillForm(store *intake.Store, answers map[int]string) error {
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var errs []error
	for _, id := range ids {
		if err := store.SetAnswer(id, answers[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
