// Package types implements the CEL value algebra: the closed set of
// runtime value variants, their operator traits, type descriptors, and
// the adapter/registry machinery that converts host-native Go data and
// registered message types into values.
//
// Errors and unknowns are values in the same algebra. Operators never
// panic and never return Go errors; they return an *Err or Unknown
// value which propagates through enclosing expressions.
package types
