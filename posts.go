package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/astra-video/astra-client/internal/api"
	"github.com/astra-video/astra-client/internal/types"
)

// latestPostsLimit bounds the trending rail. Design constant, not
// configurable.
const latestPostsLimit = 7

// ListAllPosts returns every video post, newest first.
func (c *Client) ListAllPosts(ctx context.Context) ([]VideoPost, error) {
	list, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID,
		api.OrderDesc("createdAt"))
	if err != nil {
		return nil, mapRemoteError("list posts", err)
	}
	return decodePosts(list.Documents)
}

// ListLatestPosts returns the 7 most recent posts, newest first. Used for
// the trending rail.
func (c *Client) ListLatestPosts(ctx context.Context) ([]VideoPost, error) {
	list, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID,
		api.OrderDesc("createdAt"), api.Limit(latestPostsLimit))
	if err != nil {
		return nil, mapRemoteError("list latest posts", err)
	}
	return decodePosts(list.Documents)
}

// SearchPosts returns posts whose title matches query under the backend's
// text-search semantics. No matches is an empty slice, not an error.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]VideoPost, error) {
	list, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID,
		api.Search("title", query))
	if err != nil {
		return nil, mapRemoteError("search posts", err)
	}
	return decodePosts(list.Documents)
}

// ListPostsByCreator returns the posts owned by creatorID, newest first.
func (c *Client) ListPostsByCreator(ctx context.Context, creatorID string) ([]VideoPost, error) {
	if err := types.ValidateIDPresent(creatorID, "creatorId"); err != nil {
		return nil, fmt.Errorf("list posts by creator: %w", err)
	}
	list, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID,
		api.OrderDesc("createdAt"), api.Equal("creatorId", creatorID))
	if err != nil {
		return nil, mapRemoteError("list posts by creator", err)
	}
	return decodePosts(list.Documents)
}

// CreatePost uploads the form's thumbnail and video in parallel, then
// creates the post document referencing the resolved URLs. If either upload
// fails the document is never created; there is no partial post.
func (c *Client) CreatePost(ctx context.Context, form CreatePostForm) (*VideoPost, error) {
	if err := types.ValidateIDPresent(form.CreatorID, "creatorId"); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	var thumbnailURL, videoURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := c.UploadFile(gctx, form.Thumbnail, FileKindImage)
		thumbnailURL = url
		return err
	})
	g.Go(func() error {
		url, err := c.UploadFile(gctx, form.Video, FileKindVideo)
		videoURL = url
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	doc, err := api.CreateDocument(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID,
		uuid.NewString(), map[string]string{
			"title":        form.Title,
			"thumbnailUrl": thumbnailURL,
			"videoUrl":     videoURL,
			"prompt":       form.Prompt,
			"creatorId":    form.CreatorID,
		})
	if err != nil {
		return nil, mapRemoteError("create post", err)
	}
	var post VideoPost
	if err := json.Unmarshal(doc, &post); err != nil {
		return nil, fmt.Errorf("create post: decode document: %w", err)
	}
	return &post, nil
}

// DeletePost deletes the post document. Saved relations referencing the post
// are not cascaded; a later ListSaved by a user who bookmarked it will fail
// on the dangling reference.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := types.ValidateIDPresent(id, "videoId"); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := api.DeleteDocument(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID, id); err != nil {
		return mapRemoteError("delete post", err)
	}
	return nil
}

func decodePosts(raws []json.RawMessage) ([]VideoPost, error) {
	posts := make([]VideoPost, 0, len(raws))
	for _, raw := range raws {
		var p VideoPost
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}
