//nolint:all
package model

import "time"

// ShellSummary is the listing wire shape. ID carries the transport token,
// not the canonical identifier.
type ShellSummary struct {
	ID string `json:"id"`

	//nolint:all
	IdShort string `json:"idShort"`

	Created time.Time `json:"created"`

	Modified time.Time `json:"modified"`
}

// ShellView is the role-filtered shell detail wire shape. Submodels lists
// exactly the submodel idShorts visible to the requester role.
type ShellView struct {
	ID string `json:"id"`

	//nolint:all
	IdShort string `json:"idShort"`

	Created time.Time `json:"created"`

	Modified time.Time `json:"modified"`

	Submodels []string `json:"submodels"`
}

// ShellCreateRequest is the creation payload. The nameplate fields are
// optional; when present they seed the Nameplate submodel.
type ShellCreateRequest struct {
	//nolint:all
	IdShort string `json:"idShort"`

	ManufacturerName string `json:"manufacturerName,omitempty"`

	ProductDesignation string `json:"productDesignation,omitempty"`

	YearOfConstruction string `json:"yearOfConstruction,omitempty"`
}
