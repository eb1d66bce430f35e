// Package language normalizes the language names used as dialogue keys.
//
// Game exports key localized dialogue by display name ("English", "German").
// Users may type those names in any case or use ISO 639 codes instead; every
// form resolves to the same canonical display name.
package language
