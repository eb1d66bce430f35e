// Package testsupport holds fixture writers shared by package tests: synthetic
// Wwise exports, placeholder .wem files, and per-test configurations.
package testsupport
