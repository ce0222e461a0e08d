// Package rename applies planned rename commands to disk.
//
// Commands run strictly in plan order and the first failure stops the run.
// Moves that already happened are left in place. A failure on the second
// half of a case-only pair leaves the entry under its temporary name and is
// reported as TEMP_RENAME_STRANDED.
package rename
