package catalog

// Video is one catalog entry: metadata about an uploaded video. The video
// content itself is never stored, only its description. UploadedAt is fixed
// when the entry is created (UTC, RFC3339 with a trailing Z) and is carried
// as an opaque string from then on.
type Video struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Uploader    string   `json:"uploader"`
	Tags        []string `json:"tags"`
	UploadedAt  string   `json:"uploaded_at"`
}
