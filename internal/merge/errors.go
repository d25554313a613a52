package merge

import "errors"

// Validation failures surfaced to the user. Their text is shown verbatim.
var (
	ErrSelectTwoToCreate = errors.New("You should select exactly 2 lists to create a new list.")
	ErrEmptyMerge        = errors.New("The new list must have at least one item before updating.")
	ErrSelectTwoToCommit = errors.New("Please select exactly 2 lists before updating.")
)

// Load failures.
var (
	ErrDuplicateList = errors.New("duplicate list number")
)
