// Package rename applies a media mapping to a directory of .wem files.
//
// Forward runs turn numeric-ID names into event names ("unobfuscate"); reverse
// runs restore the numeric IDs ("obfuscate"). Files are copied by default or
// moved on request, and every run returns a Result listing what was renamed,
// skipped, or refused.
package rename
