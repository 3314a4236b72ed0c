package board

import "fmt"

// Move is a candidate drop into a column, weighted by the number of
// four-in-a-row threats it would create for the mover.
type Move struct {
	Col    int
	Weight int
}

func (m Move) String() string {
	return fmt.Sprintf("%v(w=%v)", m.Col, m.Weight)
}
