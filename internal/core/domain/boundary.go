package domain

// BoundaryLevel is the heading hierarchy level of a boundary.
type BoundaryLevel string

// Heading levels, from most to least significant.
const (
	LevelTop BoundaryLevel = "H1"
	LevelMid BoundaryLevel = "H2"
	LevelSub BoundaryLevel = "H3"
)

// Boundary marks a detected heading position within a document.
// Boundaries delimit Sections: each Section spans from one boundary
// to the next. They are totally ordered by (Page, Offset).
type Boundary struct {
	// Level is the heading hierarchy level.
	Level BoundaryLevel

	// Heading is the heading line text.
	Heading string

	// Page is the 1-based page number the heading appears on.
	Page int

	// Offset is the byte offset of the heading within the page text.
	Offset int
}
