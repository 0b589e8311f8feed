package chameleon

import (
	"fmt"
	"strings"
)

// Role names one of the colors FindKeyColors produces.
type Role int

const (
	Background1 Role = iota
	Foreground1
	Background2
	Foreground2
	Average
	Light1
	Light2
	Light3
	Light4
	Dark1
	Dark2
	Dark3
	Dark4

	// RoleCount is the number of roles.
	RoleCount
)

var roleNames = [RoleCount]string{
	Background1: "Background1",
	Foreground1: "Foreground1",
	Background2: "Background2",
	Foreground2: "Foreground2",
	Average:     "Average",
	Light1:      "Light1",
	Light2:      "Light2",
	Light3:      "Light3",
	Light4:      "Light4",
	Dark1:       "Dark1",
	Dark2:       "Dark2",
	Dark3:       "Dark3",
	Dark4:       "Dark4",
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, RoleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) String() string {
	if r < 0 || r >= RoleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole looks up a role by name, ignoring case. "Luminance" is
// accepted as an alias for Average.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "Luminance") {
		return Average, nil
	}
	for i, n := range roleNames {
		if strings.EqualFold(name, n) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color role %q", name)
}

// slot resolves a role to its store index, falling back to the average
// slot for roles that were never assigned.
func (e *Engine) slot(role Role) int {
	if role < 0 || role >= RoleCount {
		return averageSlot
	}
	i := e.roles[role]
	if i == unsetSlot {
		return averageSlot
	}
	return i
}

// Color returns the color picked for role as 0xFFRRGGBB. Channels are
// truncated, not rounded. Roles that were never assigned report the
// average color.
func (e *Engine) Color(role Role) uint32 {
	return packBucket(&e.store.buckets[e.slot(role)])
}

// Luminance returns the BT.601 luma (0..1) of the color picked for role,
// with the same fallback as Color.
func (e *Engine) Luminance(role Role) float32 {
	return e.store.buckets[e.slot(role)].Y
}

// BucketColor returns the averaged color of the bucket pixel falls into,
// as 0xFFRRGGBB. Mapping every pixel of an image through it shows the
// image as the engine sees it.
func (e *Engine) BucketColor(pixel uint32) uint32 {
	e.normalize()
	return packBucket(&e.store.buckets[Quantize(pixel)])
}

func packBucket(c *ColorBucket) uint32 {
	return 0xFF000000 |
		uint32(c.R*255)<<16 |
		uint32(c.G*255)<<8 |
		uint32(c.B*255)
}
