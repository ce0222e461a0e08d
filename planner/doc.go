// Package planner turns scan results into an ordered sequence of rename
// commands that can run one after another without path collisions.
//
// Order: directories before files, directories shallowest first, files
// deepest first. Because every directory is renamed before any entry below
// it is addressed, a command's source is the item's path with its renamed
// ancestors already substituted (the parent of NewPath plus the original
// base name).
//
// Case-only renames (source and destination equal under case folding) are
// split into two back-to-back commands through a temporary name, since a
// direct rename can silently no-op on case-insensitive filesystems.
package planner
