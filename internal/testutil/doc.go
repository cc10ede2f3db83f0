// Package testutil holds deterministic signals and assertions shared by the
// package tests.
package testutil
