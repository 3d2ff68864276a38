package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/astra-video/astra-client/internal/api"
	"github.com/astra-video/astra-client/internal/pairqueue"
	"github.com/astra-video/astra-client/internal/types"
)

// The bookmark relation manager enforces "at most one SavedRelation per
// (user, video) pair" over a backend with no uniqueness constraint. Save and
// Unsave are check-then-act sequences, so both run as jobs on the pairqueue
// executor keyed by the pair: writes for the same pair never interleave
// within this process. Cross-process duplicates would still need a backend
// constraint.

func pairKey(userID, videoID string) string { return userID + "/" + videoID }

// Save bookmarks videoID for userID. Saving an already-saved video is an
// idempotent no-op reported via SaveResult.AlreadySaved, not an error.
func (c *Client) Save(ctx context.Context, userID, videoID string) (*SaveResult, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, fmt.Errorf("save video: %w", err)
	}
	if err := types.ValidateIDPresent(videoID, "videoId"); err != nil {
		return nil, fmt.Errorf("save video: %w", err)
	}

	var res *SaveResult
	err := c.runPairJob(ctx, pairKey(userID, videoID), "save video", func(jctx context.Context) error {
		existing, err := api.ListDocuments(jctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.SavesCollectionID,
			api.Equal("userId", userID), api.Equal("videoId", videoID))
		if err != nil {
			savesTotal.WithLabelValues("error").Inc()
			return mapRemoteError("save video", err)
		}
		if existing.Total > 0 {
			savesTotal.WithLabelValues("already_saved").Inc()
			res = &SaveResult{AlreadySaved: true}
			return nil
		}

		doc, err := api.CreateDocument(jctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.SavesCollectionID,
			uuid.NewString(), map[string]string{"userId": userID, "videoId": videoID})
		if err != nil {
			savesTotal.WithLabelValues("error").Inc()
			return mapRemoteError("save video", err)
		}
		var rel SavedRelation
		if err := json.Unmarshal(doc, &rel); err != nil {
			return fmt.Errorf("save video: decode relation: %w", err)
		}
		savesTotal.WithLabelValues("created").Inc()
		res = &SaveResult{Relation: &rel}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Unsave removes the bookmark for (userID, videoID). Fails with ErrNotFound
// when no relation exists. If past races produced duplicate relations, one
// call removes exactly one of them.
func (c *Client) Unsave(ctx context.Context, userID, videoID string) error {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return fmt.Errorf("unsave video: %w", err)
	}
	if err := types.ValidateIDPresent(videoID, "videoId"); err != nil {
		return fmt.Errorf("unsave video: %w", err)
	}

	return c.runPairJob(ctx, pairKey(userID, videoID), "unsave video", func(jctx context.Context) error {
		existing, err := api.ListDocuments(jctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.SavesCollectionID,
			api.Equal("userId", userID), api.Equal("videoId", videoID))
		if err != nil {
			unsavesTotal.WithLabelValues("error").Inc()
			return mapRemoteError("unsave video", err)
		}
		if existing.Total == 0 || len(existing.Documents) == 0 {
			unsavesTotal.WithLabelValues("not_found").Inc()
			return fmt.Errorf("unsave video: no saved video found for this user and video: %w", ErrNotFound)
		}

		var rel SavedRelation
		if err := json.Unmarshal(existing.Documents[0], &rel); err != nil {
			return fmt.Errorf("unsave video: decode relation: %w", err)
		}
		if err := api.DeleteDocument(jctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.SavesCollectionID, rel.ID); err != nil {
			unsavesTotal.WithLabelValues("error").Inc()
			return mapRemoteError("unsave video", err)
		}
		unsavesTotal.WithLabelValues("deleted").Inc()
		return nil
	})
}

// ListSaved returns the posts userID has bookmarked. Zero relations
// short-circuits to an empty slice with no post lookups. Referenced posts
// are fetched individually and in parallel (the backend has no join
// queries); any failed lookup fails the whole call, so a dangling relation
// left by DeletePost surfaces as an error rather than being skipped.
func (c *Client) ListSaved(ctx context.Context, userID string) ([]VideoPost, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}

	relations, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.SavesCollectionID,
		api.Equal("userId", userID))
	if err != nil {
		return nil, mapRemoteError("list saved", err)
	}
	if relations.Total == 0 || len(relations.Documents) == 0 {
		return []VideoPost{}, nil
	}

	videoIDs := make([]string, 0, len(relations.Documents))
	for _, raw := range relations.Documents {
		var rel SavedRelation
		if err := json.Unmarshal(raw, &rel); err != nil {
			return nil, fmt.Errorf("list saved: decode relation: %w", err)
		}
		videoIDs = append(videoIDs, rel.VideoID)
	}

	posts := make([]VideoPost, len(videoIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, videoID := range videoIDs {
		i, videoID := i, videoID
		g.Go(func() error {
			doc, err := api.GetDocument(gctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.VideoCollectionID, videoID)
			if err != nil {
				return mapRemoteError("list saved", err)
			}
			return json.Unmarshal(doc, &posts[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

// runPairJob executes fn on the save executor's shard for key and waits for
// it to finish, returning fn's error.
func (c *Client) runPairJob(ctx context.Context, key, op string, fn func(context.Context) error) error {
	done := make(chan error, 1)
	j := pairqueue.JobFunc(func(jctx context.Context) error {
		err := fn(jctx)
		done <- err
		return err
	})
	if err := c.exec.Submit(ctx, key, j); err != nil {
		return mapQueueError(op, err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
