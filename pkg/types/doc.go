// Package types defines the Todo entity, the Filter view selector, the Slot
// persistence interface, the Config used to open a slot, and the standard
// error values shared by the todos packages.
package types
