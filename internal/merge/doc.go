// Package merge implements the list selection and merge state machine.
//
// A [Machine] starts in [Loading] and moves to [Ready] once lists arrive or to [Failed] when loading fails.
// While Ready, the user picks two lists with a [Selection], requests a pending merge (the "new list"),
// moves items between the selected lists and the pending merge, then commits or cancels.
//
// No operation returns an error: validation failures are kept on the machine ([Machine.Err], [Machine.Message])
// and cleared by the next successful transition. Rendering layers read state through [Machine.Snapshot].
//
// Items moved out of the pending merge go back according to a [MoveBackPolicy]:
//   - [Origin] returns an item to the list it was taken from while that list is still selected
//   - [Positional] sends it to the first or second selected list, whatever its origin
package merge
