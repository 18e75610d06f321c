package lattice

import "fmt"

// AlreadyOccupiedError is returned by Attach on a site that is already part of the aggregate
type AlreadyOccupiedError struct {
	X, Y  int
	Order int // order of the existing occupant
}

func (e *AlreadyOccupiedError) Error() string {
	return fmt.Sprintf("lattice: site (%d,%d) already occupied by order %d", e.X, e.Y, e.Order)
}

// OutOfBoundsError is returned by Attach outside the grid
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("lattice: site (%d,%d) outside %dx%d", e.X, e.Y, e.Width, e.Height)
}
