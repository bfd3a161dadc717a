package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/imrenagi/go-video-catalog/catalog"
)

// Demo wipes the backing file and runs a scripted walkthrough: three
// uploads, a listing, a search, a detail view, a delete and a final
// listing.
func Demo(path string, out io.Writer) int {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(out, "Error: could not reset %s: %v\n", path, err)
		return 1
	}
	store := catalog.NewStore(path)

	fmt.Fprintln(out, "Running demo: uploading 3 videos, listing, searching, viewing, deleting")
	uploads := []*Args{
		{Title: "My First Vlog", Description: "Hello world vlog", Uploader: "alice", Tags: "vlog,intro"},
		{Title: "Python Tutorial", Description: "Learn Python in 10 minutes", Uploader: "bob", Tags: "python,programming"},
		{Title: "Relaxing Music", Description: "Lo-fi beats", Uploader: "carol", Tags: "music,lofi"},
	}
	for _, u := range uploads {
		if code := Upload(store, u, out); code != 0 {
			return code
		}
	}

	fmt.Fprintln(out)
	List(store, out)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Search for 'python':")
	Search(store, &Args{Query: "python"}, out)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "View id=2:")
	View(store, &Args{ID: 2}, out)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Delete id=1:")
	Delete(store, &Args{ID: 1}, out)

	fmt.Fprintln(out)
	List(store, out)
	return 0
}
