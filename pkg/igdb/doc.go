// Package igdb searches the IGDB game database directly with Twitch
// client credentials. It is an alternative to the backend's
// /games/igdb/search endpoint when the web layer holds its own IGDB
// credentials.
package igdb
