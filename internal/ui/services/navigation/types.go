package navigation

// NoSelection is the cursor value when nothing is highlighted
const NoSelection = -1

// State holds all navigation-related state.
// Cursor is always within [NoSelection, Length-1].
type State struct {
	Cursor         int
	Length         int
	ViewportOffset int
	ViewportHeight int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionHome Direction = "home"
	DirectionEnd  Direction = "end"
)
