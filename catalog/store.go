package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kjk/common/atomicfile"
)

// Store owns an ordered collection of videos and mirrors it to a JSON file
// after every mutation. The file is rewritten whole each time; no handle is
// held open between operations. Single-process usage only: two processes
// sharing one backing file will silently overwrite each other.
type Store struct {
	mu     sync.Mutex
	path   string
	videos []Video
}

// NewStore loads the catalog at path. A missing, unreadable or malformed
// file yields an empty store rather than an error, so the catalog stays
// usable even when the backing file is damaged.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		videos: load(path),
	}
}

func load(path string) []Video {
	f, err := os.Open(path)
	if err != nil {
		return []Video{}
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var videos []Video
	if err := dec.Decode(&videos); err != nil {
		return []Video{}
	}
	if videos == nil {
		videos = []Video{}
	}
	return videos
}

// save rewrites the whole backing file. The write goes through a temp file
// and a rename so a failed save never clobbers the previous good state.
// Callers must hold s.mu.
func (s *Store) save() error {
	f, err := atomicfile.New(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.RemoveIfNotClosed()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.videos); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// NextID returns one more than the highest id present, or 1 for an empty
// store. Ids are never reused after a delete within a loaded lifetime.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID()
}

func (s *Store) nextID() int {
	max := 0
	for _, v := range s.videos {
		if v.ID > max {
			max = v.ID
		}
	}
	return max + 1
}

// Add appends a new video with a fresh id and the current UTC time, then
// persists the catalog. The store performs no input validation; callers
// reject empty titles before getting here. A save error means the mutation
// was not durably recorded and is returned as-is.
func (s *Store) Add(title, description, uploader string, tags []string) (Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tags == nil {
		tags = []string{}
	}
	v := Video{
		ID:          s.nextID(),
		Title:       title,
		Description: description,
		Uploader:    uploader,
		Tags:        tags,
		UploadedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	s.videos = append(s.videos, v)
	if err := s.save(); err != nil {
		return Video{}, err
	}
	return v, nil
}

// List returns a copy of the catalog in insertion order. Mutating the
// returned slice does not affect the store.
func (s *Store) List() []Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Video, len(s.videos))
	copy(out, s.videos)
	return out
}

// Get returns the video with the given id.
func (s *Store) Get(id int) (Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}

// Delete removes the video with the given id and reports whether anything
// was removed. An unsuccessful delete performs no I/O.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Video, 0, len(s.videos))
	for _, v := range s.videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(s.videos) {
		return false, nil
	}
	s.videos = kept
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Search returns the videos whose title, description or any tag contains
// query, case-insensitively, in insertion order. The empty query matches
// every video. Search never touches the backing file.
func (s *Store) Search(query string) []Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	out := []Video{}
	for _, v := range s.videos {
		if matches(v, q) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v Video, q string) bool {
	if strings.Contains(strings.ToLower(v.Title), q) ||
		strings.Contains(strings.ToLower(v.Description), q) {
		return true
	}
	for _, t := range v.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
