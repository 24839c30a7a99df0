package main

import (
	"fmt"
	"net/http"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"

	"github.com/spf13/cobra"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List, inspect and sync videos",
}

var videosListFlags struct {
	search string
	offset int
	limit  int
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List synced videos",
	Args:  cobra.NoArgs,
	RunE:  runVideosList,
}

var videosGetCmd = &cobra.Command{
	Use:   "get <video-id>",
	Short: "Show one video and its bound game",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosGet,
}

var videosSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync videos from the configured YouTube channel",
	Args:  cobra.NoArgs,
	RunE:  runVideosSync,
}

func init() {
	rootCmd.AddCommand(videosCmd)
	videosCmd.AddCommand(videosListCmd, videosGetCmd, videosSyncCmd)

	videosListCmd.Flags().StringVarP(&videosListFlags.search, "search", "s", "", "filter by title")
	videosListCmd.Flags().IntVar(&videosListFlags.offset, "offset", 0, "result offset")
	videosListCmd.Flags().IntVar(&videosListFlags.limit, "limit", 0, "page size (backend default when 0)")
}

func runVideosList(cmd *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}

	resp, err := env.client.ListVideos(cmd.Context(), api.ListParams{
		Offset: videosListFlags.offset,
		Limit:  videosListFlags.limit,
		Search: videosListFlags.search,
	})
	if err != nil {
		return cli.NewCommandError("videos list", err)
	}
	return printResult(cmd, videoList{Videos: resp.Data, Meta: resp.Meta})
}

func runVideosGet(cmd *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}

	video, err := env.client.GetVideo(cmd.Context(), args[0])
	if api.IsStatus(err, http.StatusNotFound) {
		return cli.NewCommandError("videos get", fmt.Errorf("video %q not found", args[0]))
	}
	if err != nil {
		return cli.NewCommandError("videos get", err)
	}
	return printResult(cmd, videoDetail{video})
}

func runVideosSync(cmd *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}

	result, err := env.client.SyncVideos(cmd.Context())
	if err != nil {
		return cli.NewCommandError("videos sync", err)
	}
	return printResult(cmd, syncSummary{result})
}
