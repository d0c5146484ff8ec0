//nolint:all
package model

// SubmodelElement is a single typed data point inside a Submodel.
type SubmodelElement struct {
	//nolint:all
	IdShort string `json:"idShort"`

	ValueType ValueType `json:"valueType"`

	Value any `json:"value"`

	SemanticID SemanticReference `json:"semanticId,omitempty"`
}

// Clone returns an independent copy. Values are scalars after
// normalization, so a field copy is sufficient.
func (e SubmodelElement) Clone() SubmodelElement {
	return e
}

// AssertSubmodelElementRequired checks if the required fields are not zero-ed
func AssertSubmodelElementRequired(obj SubmodelElement) error {
	if err := ValidateIdShort(obj.IdShort); err != nil {
		return err
	}
	if _, err := ParseValueType(string(obj.ValueType)); err != nil {
		return err
	}
	return nil
}

// AssertSubmodelElementConstraints checks if the values respect the defined
// constraints, normalizing the value against the declared type.
func AssertSubmodelElementConstraints(obj *SubmodelElement) error {
	if err := AssertSubmodelElementRequired(*obj); err != nil {
		return err
	}
	normalized, err := obj.ValueType.Normalize(obj.Value)
	if err != nil {
		return err
	}
	obj.Value = normalized
	return nil
}
