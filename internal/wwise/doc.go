// Package wwise decodes the JSON exports written by the asset-extraction tool
// for the game's Wwise audio data.
//
// An export file is a JSON array of objects. Event exports carry
// EventCookedData.EventLanguageMap[].Value.Media[] entries that pair a
// numeric-ID media path with the DebugName of the source recording. Dialogue
// exports are PSExternalMediaAsset objects whose Properties hold an ObjectPath
// and LocalisedDialogueData. Only the fields wemtool consumes are modelled;
// everything else is ignored so newer tool versions keep decoding.
package wwise
