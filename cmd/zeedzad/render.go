package main

import (
	"fmt"
	"strconv"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"
	"zeedzad/web/pkg/notify"
	"zeedzad/web/pkg/resolution"
)

// Text renderings of command results. JSON output uses the wrapped values'
// own tags.

type gameList struct {
	Games []api.Game `json:"data"`
	Meta  *api.Meta  `json:"meta,omitempty"`
}

func (l gameList) Table() cli.Table {
	t := cli.Table{Headers: []string{"ID", "NAME", "URL", "ADDED"}}
	for _, g := range l.Games {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(g.ID, 10), g.Name, orDash(g.URL), cli.Ago(g.CreatedAt)})
	}
	if l.Meta != nil {
		t.Rows = append(t.Rows, []string{"", fmt.Sprintf("(%s of %s)", cli.Count(len(l.Games)), cli.Count(int(l.Meta.Total))), "", ""})
	}
	return t
}

type videoList struct {
	Videos []api.Video `json:"data"`
	Meta   *api.Meta   `json:"meta,omitempty"`
}

func (l videoList) Table() cli.Table {
	t := cli.Table{Headers: []string{"ID", "TITLE", "GAME", "PUBLISHED"}}
	for _, v := range l.Videos {
		t.Rows = append(t.Rows, []string{v.ID, v.Title, gameName(v.Game), cli.Ago(v.PublishedAt)})
	}
	if l.Meta != nil {
		t.Rows = append(t.Rows, []string{"", fmt.Sprintf("(%s of %s)", cli.Count(len(l.Videos)), cli.Count(int(l.Meta.Total))), "", ""})
	}
	return t
}

type videoDetail struct {
	*api.Video
}

func (v videoDetail) Table() cli.Table {
	return cli.Table{Rows: [][]string{
		{"ID:", v.ID},
		{"YouTube ID:", v.YoutubeID},
		{"Title:", v.Title},
		{"Channel:", deref(v.ChannelTitle)},
		{"Published:", cli.Ago(v.PublishedAt)},
		{"Game:", gameName(v.Game)},
	}}
}

type gameDetail struct {
	*api.Game
}

func (g gameDetail) Table() cli.Table {
	return cli.Table{Rows: [][]string{
		{"ID:", strconv.FormatInt(g.ID, 10)},
		{"Name:", g.Name},
		{"URL:", orDash(g.URL)},
		{"Added:", cli.Ago(g.CreatedAt)},
	}}
}

type syncSummary struct {
	*api.SyncResult
}

func (s syncSummary) Table() cli.Table {
	return cli.Table{Rows: [][]string{
		{"Added:", cli.Count(s.Added)},
		{"Skipped:", cli.Count(s.Skipped)},
		{"Errors:", cli.Count(s.Errors)},
		{"Total:", cli.Count(s.Total)},
	}}
}

type searchOutcome struct {
	resolution.Snapshot
}

func (s searchOutcome) Table() cli.Table {
	t := cli.Table{Headers: []string{"SOURCE", "ID", "NAME", "URL"}}
	for _, c := range s.Results.Games {
		t.Rows = append(t.Rows, []string{string(s.Results.Source), strconv.FormatInt(c.ID, 10), c.Name, orDash(c.URL)})
	}
	if len(s.Results.Games) == 0 {
		t.Rows = append(t.Rows, []string{string(s.Results.Source), "-", "no games found", ""})
	}
	return t
}

type toastList []notify.Toast

func (l toastList) Table() cli.Table {
	var t cli.Table
	for _, n := range l {
		msg := n.Message
		if n.Title != "" {
			msg = n.Title + ": " + msg
		}
		t.Rows = append(t.Rows, []string{"[" + string(n.Kind) + "]", msg})
	}
	return t
}

func gameName(g *api.Game) string {
	if g == nil {
		return "-"
	}
	return g.Name
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
