// Package validator provides tag-based struct validation for client-side
// forms.
//
// Validation errors are a UI concern: the presentation layer runs them
// before invoking a store operation, and a failed form never produces a
// network call or a store state change.
//
//	creds := session.Credentials{Identifier: username, Secret: password}
//	if err := creds.Validate(); err != nil {
//		// render field errors, do not call Login
//	}
//
// Rules live in a registry keyed by name; Register adds custom ones.
package validator
