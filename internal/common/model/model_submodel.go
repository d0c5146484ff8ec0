//nolint:all
package model

import "fmt"

// Submodel idShort vocabulary. A Shell may additionally carry extension
// submodels with free-form idShorts.
const (
	SubmodelNameplate           = "Nameplate"
	SubmodelTechnicalData       = "TechnicalData"
	SubmodelMaterialComposition = "MaterialComposition"
	SubmodelCircularityData     = "CircularityData"
)

// DefaultSubmodelIdShorts is the skeleton every new Shell is seeded with,
// in precedence order.
var DefaultSubmodelIdShorts = []string{
	SubmodelNameplate,
	SubmodelTechnicalData,
	SubmodelMaterialComposition,
	SubmodelCircularityData,
}

// DefaultSemanticIDs maps the domain submodels onto their standard
// definitions. Values are opaque here (see SemanticReference).
var DefaultSemanticIDs = map[string]SemanticReference{
	SubmodelNameplate:           "https://admin-shell.io/idta/Submodel/Nameplate/2/0",
	SubmodelTechnicalData:       "https://admin-shell.io/ZVEI/TechnicalData/Submodel/1/2",
	SubmodelMaterialComposition: "0173-1#01-AHF578#001",
	SubmodelCircularityData:     "https://admin-shell.io/idta/Submodel/CircularityData/1/0",
}

// Submodel is a named, semantically typed section of a Shell.
type Submodel struct {
	ID string `json:"id"`

	//nolint:all
	IdShort string `json:"idShort"`

	SemanticID SemanticReference `json:"semanticId,omitempty"`

	Elements []SubmodelElement `json:"elements"`
}

// Element returns the element with the given idShort, if present.
func (s *Submodel) Element(idShort string) (*SubmodelElement, bool) {
	for i := range s.Elements {
		if s.Elements[i].IdShort == idShort {
			return &s.Elements[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy that shares no state with the receiver.
func (s Submodel) Clone() Submodel {
	out := s
	out.Elements = make([]SubmodelElement, len(s.Elements))
	for i, e := range s.Elements {
		out.Elements[i] = e.Clone()
	}
	return out
}

// AssertSubmodelRequired checks if the required fields are not zero-ed
func AssertSubmodelRequired(obj Submodel) error {
	if err := ValidateIdShort(obj.IdShort); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(obj.Elements))
	for _, el := range obj.Elements {
		if err := AssertSubmodelElementRequired(el); err != nil {
			return err
		}
		if _, dup := seen[el.IdShort]; dup {
			return fmt.Errorf("duplicate element idShort %q", el.IdShort)
		}
		seen[el.IdShort] = struct{}{}
	}
	return nil
}

// AssertSubmodelConstraints checks if the values respect the defined
// constraints, normalizing element values against their declared types.
func AssertSubmodelConstraints(obj *Submodel) error {
	if err := AssertSubmodelRequired(*obj); err != nil {
		return err
	}
	for i := range obj.Elements {
		if err := AssertSubmodelElementConstraints(&obj.Elements[i]); err != nil {
			return err
		}
	}
	return nil
}
