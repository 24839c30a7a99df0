package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"
	"zeedzad/web/pkg/notify"
	"zeedzad/web/pkg/resolution"

	"github.com/spf13/cobra"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Search, match and inspect games",
}

var gamesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the local catalog, then the external service",
	Long: `Search for games by name.

The local catalog is searched first. The external metadata service is only
consulted when nothing local matches; each result line is tagged with the
source it came from.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGamesSearch,
}

var matchFlags struct {
	name     string
	url      string
	external bool
}

var gamesMatchCmd = &cobra.Command{
	Use:   "match <video-id> <game-id>",
	Short: "Bind a game to a video",
	Long: `Bind a game to a video.

With --external the game is created in the local catalog first (using
--name and --url) and the id the catalog returns is bound.

Examples:
  # Bind a game already in the catalog
  zeedzad games match 3f2a9c 7

  # Bind a game found on the external service
  zeedzad games match 3f2a9c 1942 --name "The Witcher 3" --external`,
	Args: cobra.ExactArgs(2),
	RunE: runGamesMatch,
}

var gamesListFlags struct {
	search string
	offset int
	limit  int
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games in the local catalog",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var gamesGetCmd = &cobra.Command{
	Use:   "get <game-id>",
	Short: "Show one game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesGet,
}

func init() {
	rootCmd.AddCommand(gamesCmd)
	gamesCmd.AddCommand(gamesSearchCmd, gamesMatchCmd, gamesListCmd, gamesGetCmd)

	gamesMatchCmd.Flags().StringVar(&matchFlags.name, "name", "", "game name (required with --external)")
	gamesMatchCmd.Flags().StringVar(&matchFlags.url, "url", "", "game page URL")
	gamesMatchCmd.Flags().BoolVar(&matchFlags.external, "external", false, "the game comes from the external service and must be created first")

	gamesListCmd.Flags().StringVarP(&gamesListFlags.search, "search", "s", "", "filter by name")
	gamesListCmd.Flags().IntVar(&gamesListFlags.offset, "offset", 0, "result offset")
	gamesListCmd.Flags().IntVar(&gamesListFlags.limit, "limit", 0, "page size (backend default when 0)")
}

func runGamesSearch(cmd *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	session, err := env.newSession()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if err := session.SearchGames(cmd.Context(), query); err != nil {
		return cli.NewCommandError("games search", err)
	}

	return printResult(cmd, searchOutcome{session.Snapshot()})
}

func runGamesMatch(cmd *cobra.Command, args []string) error {
	videoID := args[0]
	gameID, err := parseGameID(args[1])
	if err != nil {
		return err
	}
	if matchFlags.external && strings.TrimSpace(matchFlags.name) == "" {
		return cli.NewConfigError("name", "--name is required with --external")
	}

	env, err := newClientEnv()
	if err != nil {
		return err
	}
	session, err := env.newSession()
	if err != nil {
		return err
	}

	toasts := notify.NewStoreFromConfig(&env.cfg.Notifications,
		notify.WithLogger(env.logger.With("component", "notify")),
	)
	defer toasts.Clear()

	candidate := resolution.Candidate{ID: gameID, Name: matchFlags.name, URL: matchFlags.url}
	matchErr := session.MatchGameToVideo(cmd.Context(), candidate, videoID, !matchFlags.external)
	if matchErr != nil {
		toasts.Error(session.Snapshot().Error, notify.WithTitle("Match failed"))
	} else {
		toasts.Success(fmt.Sprintf("Game %d matched to video %s", gameID, videoID))
	}

	if err := printResult(cmd, toastList(toasts.List())); err != nil {
		return err
	}
	if matchErr != nil {
		return cli.NewCommandError("games match", matchErr)
	}
	return nil
}

func runGamesList(cmd *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}

	resp, err := env.client.ListGames(cmd.Context(), api.ListParams{
		Offset: gamesListFlags.offset,
		Limit:  gamesListFlags.limit,
		Search: gamesListFlags.search,
	})
	if err != nil {
		return cli.NewCommandError("games list", err)
	}
	return printResult(cmd, gameList{Games: resp.Data, Meta: resp.Meta})
}

func runGamesGet(cmd *cobra.Command, args []string) error {
	id, err := parseGameID(args[0])
	if err != nil {
		return err
	}

	env, err := newClientEnv()
	if err != nil {
		return err
	}

	game, err := env.client.GetGame(cmd.Context(), id)
	if api.IsStatus(err, http.StatusNotFound) {
		return cli.NewCommandError("games get", fmt.Errorf("game %d not found", id))
	}
	if err != nil {
		return cli.NewCommandError("games get", err)
	}
	return printResult(cmd, gameDetail{game})
}

func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.NewConfigError("game-id", fmt.Sprintf("%q is not a positive integer", s))
	}
	return id, nil
}
