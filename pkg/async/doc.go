// Package async provides small future helpers for running store operations
// off the caller's event loop.
//
// Store operations in this SDK are plain blocking functions taking a
// context. A UI layer that must stay responsive wraps them:
//
//	f := async.Exec(ctx, func(ctx context.Context) error {
//		return sessions.Login(ctx, creds)
//	})
//
//	// later, e.g. on the next frame
//	if f.IsComplete() {
//		if _, err := f.Await(); err != nil {
//			// render the error state
//		}
//	}
//
// IsComplete doubles as the busy flag that guards against duplicate
// submission of the same action.
package async
