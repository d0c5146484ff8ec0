//nolint:all
package model

// SemanticReference is an opaque identifier into an external standards
// dictionary (an ECLASS IRDI or an IEC CDD / IDTA IRI). It is carried for
// lookup and display only and is never dereferenced by this system.
type SemanticReference string
