// Package api is a typed client for the backend REST API.
//
// Every response is wrapped in an envelope:
//
//	{"data": ..., "meta": {"total": 120, "limit": 20, "offset": 0}}
//
// Every failure is an *Error whose Kind tells transport failures, non-2xx
// statuses and undecodable bodies apart. Error() returns the message meant
// for users: the backend's "error" field when present.
//
//	client := api.NewClient("http://localhost:3000/api")
//	games, err := client.ListGames(ctx, api.ListParams{Search: "zelda", Limit: 50})
package api
