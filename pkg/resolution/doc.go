// Package resolution reconciles the local game catalog with an external
// game metadata service.
//
// A Session searches the catalog first and queries the external service
// only when the catalog has nothing for the query, so a result set always
// comes from exactly one source. Matching a candidate to a video creates
// the game in the catalog when it came from the external service, then
// binds it:
//
//	session := resolution.NewSession(client)
//	if err := session.SearchGames(ctx, "hollow knight"); err != nil {
//	    return err
//	}
//	snap := session.Snapshot()
//	pick := snap.Results.Games[0]
//	err := session.MatchGameToVideo(ctx, pick, videoID, snap.Results.FromLocal())
package resolution
