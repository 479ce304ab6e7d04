package world

// Block is the kind of block occupying a cell.
type Block uint8

const (
	Air Block = iota
	Stone
	Dirt
	Grass
	Brick
)

// Solid returns true for every block that stops a ray.
func (b Block) Solid() bool {
	return b != Air
}

// String ...
func (b Block) String() string {
	switch b {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Dirt:
		return "dirt"
	case Grass:
		return "grass"
	case Brick:
		return "brick"
	}
	return "unknown"
}
