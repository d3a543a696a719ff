// internal/domain/models/draft.go
package models

import "errors"

// SelectionCount is the number of personality categories every registration
// must answer, one pick per category.
const SelectionCount = 5

// Validation errors raised by OnboardingDraft.Validate. They are checked
// before any network call is made.
var (
	ErrDraftCredentials = errors.New("email and password are required")
	ErrDraftIdentity    = errors.New("name and gender are required")
	ErrDraftSelections  = errors.New("all five personality categories must be answered")
)

// Selection is one personality pick: which category, which option, and the
// 1-based rank assigned by the category's position in the wizard.
type Selection struct {
	CategoryCode string `json:"categoryCode"`
	OptionLabel  string `json:"optionLabel"`
	Rank         int    `json:"rank"`
}

// OnboardingDraft accumulates the answers of the onboarding wizard. It is
// the single source of truth for the flow and is persisted to a browser
// cookie on every mutation so a reload resumes the same step.
type OnboardingDraft struct {
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Name       string      `json:"name"`
	Gender     string      `json:"gender"` // localized label as entered
	AvatarURL  string      `json:"avatarUrl,omitempty"`
	Selections []Selection `json:"selections"`
}

// SetSelection records the pick for one category, replacing any earlier pick
// for the same category. Rank follows the category's wizard position.
func (d *OnboardingDraft) SetSelection(s Selection) {
	for i := range d.Selections {
		if d.Selections[i].CategoryCode == s.CategoryCode {
			d.Selections[i] = s
			return
		}
	}
	d.Selections = append(d.Selections, s)
}

// SelectionFor returns the pick for a category, if one has been made.
func (d *OnboardingDraft) SelectionFor(categoryCode string) (Selection, bool) {
	for _, s := range d.Selections {
		if s.CategoryCode == categoryCode {
			return s, true
		}
	}
	return Selection{}, false
}

// Validate enforces the registration invariant: credentials, identity, and
// exactly one pick per category.
func (d *OnboardingDraft) Validate() error {
	if d.Email == "" || d.Password == "" {
		return ErrDraftCredentials
	}
	if d.Name == "" || d.Gender == "" {
		return ErrDraftIdentity
	}
	if len(d.Selections) != SelectionCount {
		return ErrDraftSelections
	}
	return nil
}
