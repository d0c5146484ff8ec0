//nolint:all
package model

import (
	"fmt"
	"regexp"
	"time"
)

// idShortPattern constrains human-readable identifiers, 1-100 chars.
var idShortPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const maxIdShortLength = 100

// ValidateIdShort checks the idShort pattern and length constraint.
func ValidateIdShort(idShort string) error {
	if idShort == "" {
		return fmt.Errorf("idShort must not be empty")
	}
	if len(idShort) > maxIdShortLength {
		return fmt.Errorf("idShort exceeds %d characters", maxIdShortLength)
	}
	if !idShortPattern.MatchString(idShort) {
		return fmt.Errorf("idShort %q does not match pattern [a-zA-Z0-9_-]+", idShort)
	}
	return nil
}

// Shell is the top-level container for one product's passport data.
// The canonical identifier is assigned at creation and never changes;
// ownership is strictly Shell -> Submodel -> Element, a tree.
type Shell struct {
	ID string `json:"id"`

	//nolint:all
	IdShort string `json:"idShort"`

	Created time.Time `json:"created"`

	Modified time.Time `json:"modified"`

	Submodels []Submodel `json:"submodels"`
}

// Submodel returns the contained submodel with the given idShort.
func (s *Shell) Submodel(idShort string) (*Submodel, bool) {
	for i := range s.Submodels {
		if s.Submodels[i].IdShort == idShort {
			return &s.Submodels[i], true
		}
	}
	return nil, false
}

// SubmodelIdShorts lists contained submodel names in precedence order.
func (s *Shell) SubmodelIdShorts() []string {
	out := make([]string, len(s.Submodels))
	for i, sm := range s.Submodels {
		out[i] = sm.IdShort
	}
	return out
}

// Clone returns a deep copy that shares no state with the receiver, so a
// stored Shell can be handed out without exposing internal state.
func (s *Shell) Clone() *Shell {
	out := *s
	out.Submodels = make([]Submodel, len(s.Submodels))
	for i, sm := range s.Submodels {
		out.Submodels[i] = sm.Clone()
	}
	return &out
}

// Touch advances the modified timestamp, never moving it backwards.
func (s *Shell) Touch(now time.Time) {
	if now.After(s.Modified) {
		s.Modified = now
	}
}

// AssertShellRequired checks if the required fields are not zero-ed
func AssertShellRequired(obj Shell) error {
	if obj.ID == "" {
		return fmt.Errorf("shell id must not be empty")
	}
	if err := ValidateIdShort(obj.IdShort); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(obj.Submodels))
	for _, sm := range obj.Submodels {
		if err := AssertSubmodelRequired(sm); err != nil {
			return err
		}
		if _, dup := seen[sm.IdShort]; dup {
			return fmt.Errorf("duplicate submodel idShort %q", sm.IdShort)
		}
		seen[sm.IdShort] = struct{}{}
	}
	if obj.Modified.Before(obj.Created) {
		return fmt.Errorf("modified timestamp precedes created")
	}
	return nil
}
