// Package dashboard composes the SDK into a ready-to-use application
// container: API client, session store, proxy collection store,
// preferences and the notification channel, configured from environment
// variables and sharing one durable storage backend.
//
//	app, err := dashboard.New(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	if err := app.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	if app.Sessions.IsAuthenticated() {
//		_ = app.Proxies.Refresh(ctx)
//	}
//
// Storage is a local JSON file by default; set REDIS_URL to share session
// state between displays.
package dashboard
