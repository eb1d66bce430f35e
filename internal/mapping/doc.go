// Package mapping builds, persists, and inverts the numeric-ID to event-name
// table that drives the renamer.
//
// Build walks a directory of Wwise event exports and collects every
// MediaPathName/DebugName pair; Save writes the table as one sorted JSON object
// (wem_mapping.json) atomically; Load reads it back. Invert produces the
// name-to-ID lookup used by the reverse rename and reports names claimed by more
// than one ID, since only one of them can be recovered.
package mapping
