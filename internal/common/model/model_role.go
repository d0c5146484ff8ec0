//nolint:all
package model

import "strings"

// Role is a fixed category of requester governing which submodels are
// visible. An unrecognized role is treated as least-privileged.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleRecycler     Role = "recycler"
	RoleConsumer     Role = "consumer"
	RoleAnonymous    Role = "anonymous"
)

// ParseRole maps a claim string onto a Role. Anything outside the known
// set collapses to RoleAnonymous, never to a broader role.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleManufacturer:
		return RoleManufacturer
	case RoleRecycler:
		return RoleRecycler
	case RoleConsumer:
		return RoleConsumer
	}
	return RoleAnonymous
}
