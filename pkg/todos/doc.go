// Package todos implements the todo-list state manager.
//
// A Store owns an ordered collection of todos (newest first) and the active
// view filter. Every mutation that changes the collection is followed by a
// best-effort save of the whole collection to a persistence slot under a
// fixed key. Persistence never fails an operation: unreadable snapshots load
// as an empty list and failed writes are logged and dropped, leaving the
// in-memory state authoritative.
//
// Lifecycle:
//
//	store := todos.New(slot, todos.WithLogger(logger))
//	store.Load()
//	defer store.Close()
//
//	store.Add("Buy milk")
//	store.SetFilter(types.FilterActive)
//	for _, t := range store.Visible() { ... }
//
// Saves are gated on Load: until Load has run, mutations stay in memory so a
// blank startup state can never overwrite a previously saved snapshot.
package todos
