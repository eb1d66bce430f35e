// Package report writes spreadsheet workbooks.
//
// Workbook wraps excelize with the sheet conventions shared by every export:
// sanitized unique sheet names, a bold frozen header row, fixed column widths,
// and optional wrapped columns. Exporter turns an analysis report into one
// sheet per category plus a duplicates summary.
package report
