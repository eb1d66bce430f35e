// Package analysis inventories a tree of named .wem files.
//
// Every file is assigned to one or more category buckets by testing its name
// against an ordered prefix list, and file names found at several relative
// paths are flagged as duplicates. The resulting Report keeps category and
// file order stable through JSON encoding so that the spreadsheet export lists
// sheets in the same order the analyzer produced them.
package analysis
