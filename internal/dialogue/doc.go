// Package dialogue handles the localized dialogue exports that accompany
// external media assets.
//
// Organizer copies dialogue exports into the folder layout given by each
// asset's ObjectPath. Extractor collects the subtitle text for selected
// languages and WriteWorkbook lays it out one sheet per sub-section.
package dialogue
