package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Account is the authentication identity held by the session service.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserProfile is the profile document paired one-to-one with an Account.
type UserProfile struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// VideoPost is a published video document. Posts are created once and never
// updated; deletion is an explicit operation.
type VideoPost struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Prompt       string    `json:"prompt"`
	CreatorID    string    `json:"creatorId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SavedRelation is the join document for "user bookmarked video".
// At most one relation should exist per (UserID, VideoID) pair; the backend
// does not enforce that, the bookmark manager does.
type SavedRelation struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	VideoID string `json:"videoId"`
}

// Session is the ephemeral credential returned by sign-in. Only the secret is
// retained client-side; the session itself lives on the remote service.
type Session struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Secret    string `json:"secret"`
}

// StoredFile is the file service's record for an uploaded blob.
type StoredFile struct {
	ID       string `json:"id"`
	BucketID string `json:"bucketId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}
