package voxel

// Facing is one of the six axis-aligned block faces.
type Facing uint8

const (
	North Facing = iota // -Z
	East                // +X
	South               // +Z
	West                // -X
	Up                  // +Y
	Down                // -Y
)

// AllFacings lists the faces in index order.
var AllFacings = [6]Facing{North, East, South, West, Up, Down}

var facingNormals = [6]BlockPos{
	North: {Z: -1},
	East:  {X: 1},
	South: {Z: 1},
	West:  {X: -1},
	Up:    {Y: 1},
	Down:  {Y: -1},
}

var facingNames = [6]string{"north", "east", "south", "west", "up", "down"}

// Normal returns the unit offset pointing out of the face.
func (f Facing) Normal() BlockPos {
	return facingNormals[f]
}

// Opposite returns the face pointing the other way.
func (f Facing) Opposite() Facing {
	switch f {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	case Up:
		return Down
	default:
		return Up
	}
}

// IsHorizontal reports whether the face lies in the XZ plane.
func (f Facing) IsHorizontal() bool {
	return f <= West
}

func (f Facing) String() string {
	if int(f) < len(facingNames) {
		return facingNames[f]
	}
	return "invalid"
}
