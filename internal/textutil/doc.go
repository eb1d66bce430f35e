// Package textutil provides name sanitization shared by the renamer and the
// workbook writers.
//
// File names drop filesystem-unsafe characters; worksheet names follow the
// spreadsheet format's rules (31 characters, no `\ / : ? * [ ]`, no leading or
// trailing apostrophe) and are made unique case-insensitively within a
// workbook.
package textutil
