// Package cli implements the console commands over the catalog store:
// argument parsing, validation and output formatting. It holds no state
// of its own; the store is the sole source of truth.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fred1268/go-clap/clap"

	"github.com/imrenagi/go-video-catalog/catalog"
)

// Args are the flags shared by all commands.
type Args struct {
	Title       string `clap:"--title,-t"`
	Description string `clap:"--description,-d"`
	Uploader    string `clap:"--uploader,-u"`
	Tags        string `clap:"--tags"`
	ID          int    `clap:"--id"`
	Query       string `clap:"--query,-q"`
	Demo        bool   `clap:"--demo"`
}

// ParseArgs splits argv into a leading command word and its flags.
func ParseArgs(argv []string) (string, *Args, error) {
	cmd := ""
	if len(argv) > 0 && !strings.HasPrefix(argv[0], "-") {
		cmd = argv[0]
		argv = argv[1:]
	}
	args := &Args{Uploader: "anonymous"}
	if _, err := clap.Parse(argv, args); err != nil {
		return "", nil, fmt.Errorf("parse arguments: %w", err)
	}
	return cmd, args, nil
}

// SplitTags turns a comma separated tag string into trimmed, non-empty
// tokens, preserving order and duplicates.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Upload registers new video metadata. Exit code 2 means a validation
// failure, 1 a store failure, 0 success.
func Upload(store *catalog.Store, args *Args, out io.Writer) int {
	if args.Title == "" {
		fmt.Fprintln(out, "Error: --title is required for upload")
		return 2
	}
	v, err := store.Add(args.Title, args.Description, args.Uploader, SplitTags(args.Tags))
	if err != nil {
		fmt.Fprintf(out, "Error: could not save video: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Uploaded video: id=%d title='%s' uploader='%s'\n", v.ID, v.Title, v.Uploader)
	return 0
}

// List prints the whole catalog as an aligned table.
func List(store *catalog.Store, out io.Writer) int {
	videos := store.List()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos uploaded yet.")
		return 0
	}
	fmt.Fprintf(out, "%d video(s):\n", len(videos))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, v := range videos {
		fmt.Fprintf(tw, "[%d]\t%s\t(by %s)\ttags: %s\tuploaded: %s\n",
			v.ID, v.Title, v.Uploader, tagsOrDash(v.Tags), v.UploadedAt)
	}
	tw.Flush()
	return 0
}

// View prints one record as indented JSON, using the persisted field names.
func View(store *catalog.Store, args *Args, out io.Writer) int {
	if args.ID == 0 {
		fmt.Fprintln(out, "Error: --id is required for view")
		return 2
	}
	v, found := store.Get(args.ID)
	if !found {
		fmt.Fprintf(out, "Video id=%d not found\n", args.ID)
		return 1
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "Error: could not render video: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, string(b))
	return 0
}

// Delete removes one record by id.
func Delete(store *catalog.Store, args *Args, out io.Writer) int {
	if args.ID == 0 {
		fmt.Fprintln(out, "Error: --id is required for delete")
		return 2
	}
	deleted, err := store.Delete(args.ID)
	if err != nil {
		fmt.Fprintf(out, "Error: could not save catalog: %v\n", err)
		return 1
	}
	if !deleted {
		fmt.Fprintf(out, "Video id=%d not found\n", args.ID)
		return 1
	}
	fmt.Fprintf(out, "Deleted video id=%d\n", args.ID)
	return 0
}

// Search prints the records matching the query.
func Search(store *catalog.Store, args *Args, out io.Writer) int {
	if args.Query == "" {
		fmt.Fprintln(out, "Error: --query is required for search")
		return 2
	}
	results := store.Search(args.Query)
	if len(results) == 0 {
		fmt.Fprintln(out, "No results")
		return 0
	}
	fmt.Fprintf(out, "%d result(s):\n", len(results))
	for _, v := range results {
		fmt.Fprintf(out, "[%d] %s by %s\n", v.ID, v.Title, v.Uploader)
	}
	return 0
}

func tagsOrDash(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
