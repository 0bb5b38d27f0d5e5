// Package prefs persists per-device display preferences.
//
// The dashboard keeps exactly one preference today, the display currency,
// stored under a fixed key in the same durable storage the session token
// uses. Reads never fail: a missing or corrupt value falls back to BTC.
package prefs
