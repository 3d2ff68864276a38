package client

import "github.com/astra-video/astra-client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	Account       = types.Account
	UserProfile   = types.UserProfile
	VideoPost     = types.VideoPost
	SavedRelation = types.SavedRelation
	Session       = types.Session
	StoredFile    = types.StoredFile

	// Forms and results
	UploadAsset    = types.UploadAsset
	CreatePostForm = types.CreatePostForm
	SaveResult     = types.SaveResult
)
