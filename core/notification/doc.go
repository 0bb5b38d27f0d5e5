// Package notification provides the transient message channel between SDK
// stores and the presentation layer.
//
// Stores never return UI strings from their methods; success and failure
// of background reconciliation surfaces here instead, and the UI drains
// the channel into whatever toast component it uses:
//
//	notifier := notification.New()
//	defer notifier.Close()
//
//	go func() {
//		for msg := range notifier.Notifications() {
//			showToast(msg.Level, msg.Title, msg.Message)
//		}
//	}()
//
// Publishing never blocks: when the buffer fills, the oldest pending
// notification is dropped. A toast the user never saw is preferable to a
// stalled mutation.
package notification
