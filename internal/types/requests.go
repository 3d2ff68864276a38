package types

// ------------------------------
// Request / Form Types
// ------------------------------

// UploadAsset describes a local media file selected for upload.
// A nil *UploadAsset passed to upload operations is a no-op, not an error.
type UploadAsset struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	URI      string `json:"uri"`
}

// CreatePostForm holds everything needed to publish a new video post.
// Both assets are uploaded before the post document is created.
type CreatePostForm struct {
	Title     string
	Prompt    string
	CreatorID string
	Thumbnail *UploadAsset
	Video     *UploadAsset
}

// SaveResult reports the outcome of a save operation. AlreadySaved is the
// idempotent no-op case, distinct from a fresh creation but not an error.
type SaveResult struct {
	Relation     *SavedRelation
	AlreadySaved bool
}
