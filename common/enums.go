// Package common keeps enums shared between configuration and the tweak
// engine, separated so that configuration does not depend on engine packages.
package common

//go:generate go tool go-enum --marshal --names --values

// Text alignment reader setting, rendered lower case into CSS.
// ENUM(left, right, center, justify)
type TextAlign int

// How elements carrying several class tokens are offered for selection.
// ENUM(first, all)
type ClassPolicy int

// Where per-document ledgers are kept.
// ENUM(file, database)
type StoreBackend int
