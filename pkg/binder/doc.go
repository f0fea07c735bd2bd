// Package binder fills request structs from HTTP form bodies and router path
// parameters using struct tags.
//
// Binders share the signature func(*http.Request, any) error so they can be
// chained with handler.WithBinders. A binder that finds nothing to read
// returns ErrBinderNotApplicable and is skipped.
//
// Supported field types are string, the integer kinds, bool (checkbox values
// such as "on" are accepted), pointers to those, and slices for multi-value
// inputs.
package binder
