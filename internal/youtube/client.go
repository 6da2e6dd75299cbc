// Package youtube fetches playlist metadata from the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studytube/backend/internal/retry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

const (
	// PlaceholderThumbnail is used when the API returns no thumbnail
	PlaceholderThumbnail = "/placeholder.svg?height=180&width=320"

	untitledVideo    = "Untitled Video"
	untitledPlaylist = "Untitled Playlist"

	// maxIDsPerCall is the API limit for ids per videos.list call and items per page
	maxIDsPerCall = 50
)

// titles of entries the API keeps in place of removed videos
var unavailableTitles = map[string]bool{
	"Private video": true,
	"Deleted video": true,
}

// Playlist is the normalized metadata of a playlist
type Playlist struct {
	ID        string
	Title     string
	Thumbnail string
	Videos    []Video
}

// Video is a normalized playlist entry; every field is populated
type Video struct {
	ID        string
	Title     string
	Thumbnail string
	Duration  string
	Position  int
}

// Config tunes the client
type Config struct {
	// RequestsPerSecond limits outgoing API calls
	RequestsPerSecond float64
	// Burst is the limiter bucket size
	Burst int
	// MaxPages bounds pagination through playlistItems.list
	MaxPages int
	// Timeout bounds a whole FetchPlaylist call; zero means no limit
	Timeout time.Duration
	// Retry configures retries of individual API calls
	Retry retry.Config
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		Burst:             5,
		MaxPages:          50,
		Retry:             retry.DefaultConfig(),
	}
}

// Client fetches and normalizes playlist metadata
type Client struct {
	service *ytapi.Service
	limiter *rate.Limiter
	cfg     Config
	logger  *zap.Logger
}

// NewClient creates a client authenticated with apiKey
//
// Extra options are applied after the key, so tests can point the client at a local server.
func NewClient(ctx context.Context, apiKey string, cfg Config, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key required")
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}

	service, err := ytapi.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// FetchPlaylist returns the playlist header and its usable videos in playlist order
//
// Private and deleted entries are dropped and positions renumbered from 0. A failed
// duration batch leaves "0:00" for its videos instead of failing the fetch.
func (c *Client) FetchPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if !IsValidPlaylistID(playlistID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlaylistID, playlistID)
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	playlist, err := c.fetchHeader(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	entries, err := c.fetchEntries(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPlaylist, playlistID)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	durations, err := c.fetchDurations(ctx, ids)
	if err != nil {
		return nil, err
	}

	playlist.Videos = make([]Video, len(entries))
	for i, e := range entries {
		e.Position = i
		e.Duration = zeroDuration
		if d, ok := durations[e.ID]; ok {
			e.Duration = d
		}
		playlist.Videos[i] = e
	}

	c.logger.Info("fetched playlist",
		zap.String("playlist_id", playlistID),
		zap.Int("videos", len(playlist.Videos)),
	)
	return playlist, nil
}

// do runs one API call through the rate limiter and the retry policy
func (c *Client) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, c.cfg.Retry, retryable, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return fn(ctx)
	})
}

func (c *Client) fetchHeader(ctx context.Context, playlistID string) (*Playlist, error) {
	var resp *ytapi.PlaylistListResponse
	err := c.do(ctx, func(ctx context.Context) error {
		r, err := c.service.Playlists.List([]string{"snippet"}).
			Id(playlistID).
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch playlist %s: %w", playlistID, classify(err))
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlaylistNotFound, playlistID)
	}

	item := resp.Items[0]
	playlist := &Playlist{
		ID:        playlistID,
		Title:     untitledPlaylist,
		Thumbnail: PlaceholderThumbnail,
	}
	if item.Snippet != nil {
		if t := strings.TrimSpace(item.Snippet.Title); t != "" {
			playlist.Title = t
		}
		playlist.Thumbnail = pickThumbnail(item.Snippet.Thumbnails)
	}
	return playlist, nil
}

// fetchEntries pages through the playlist until the continuation token runs out or MaxPages is hit
func (c *Client) fetchEntries(ctx context.Context, playlistID string) ([]Video, error) {
	var (
		entries   []Video
		seen      = make(map[string]bool)
		pageToken string
		pages     int
		skipped   int
	)

	for pages < c.cfg.MaxPages {
		var resp *ytapi.PlaylistItemListResponse
		token := pageToken
		err := c.do(ctx, func(ctx context.Context) error {
			call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(maxIDsPerCall).
				Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			r, err := call.Do()
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("fetch items of playlist %s (page %d): %w", playlistID, pages+1, classify(err))
		}
		pages++

		for _, item := range resp.Items {
			v, ok := entryFromItem(item)
			if !ok || seen[v.ID] {
				skipped++
				continue
			}
			seen[v.ID] = true
			entries = append(entries, v)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if pageToken != "" {
		c.logger.Warn("playlist truncated at page limit",
			zap.String("playlist_id", playlistID),
			zap.Int("pages", pages),
			zap.Int("videos", len(entries)),
		)
	}
	if skipped > 0 {
		c.logger.Debug("skipped unavailable playlist entries",
			zap.String("playlist_id", playlistID),
			zap.Int("skipped", skipped),
		)
	}

	return entries, nil
}

// entryFromItem normalizes a playlist item, rejecting placeholders for removed videos
func entryFromItem(item *ytapi.PlaylistItem) (Video, bool) {
	if item == nil || item.Snippet == nil {
		return Video{}, false
	}
	if unavailableTitles[item.Snippet.Title] {
		return Video{}, false
	}

	var id string
	if item.Snippet.ResourceId != nil {
		id = item.Snippet.ResourceId.VideoId
	}
	if id == "" && item.ContentDetails != nil {
		id = item.ContentDetails.VideoId
	}
	if id == "" {
		return Video{}, false
	}

	title := strings.TrimSpace(item.Snippet.Title)
	if title == "" {
		title = untitledVideo
	}

	return Video{
		ID:        id,
		Title:     title,
		Thumbnail: pickThumbnail(item.Snippet.Thumbnails),
	}, true
}

// fetchDurations looks up durations in batches of maxIDsPerCall
//
// Only context cancellation aborts; a failed batch is logged and left without durations.
func (c *Client) fetchDurations(ctx context.Context, ids []string) (map[string]string, error) {
	durations := make(map[string]string, len(ids))

	for start := 0; start < len(ids); start += maxIDsPerCall {
		batch := ids[start:min(start+maxIDsPerCall, len(ids))]

		err := c.do(ctx, func(ctx context.Context) error {
			resp, err := c.service.Videos.List([]string{"contentDetails"}).
				Id(batch...).
				Context(ctx).
				Do()
			if err != nil {
				return err
			}
			for _, v := range resp.Items {
				if v.ContentDetails != nil {
					durations[v.Id] = FormatDuration(v.ContentDetails.Duration)
				}
			}
			return nil
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("duration lookup failed, using placeholders",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(classify(err)),
			)
		}
	}

	return durations, nil
}

// pickThumbnail prefers the medium thumbnail, then the default one
func pickThumbnail(t *ytapi.ThumbnailDetails) string {
	if t != nil {
		if t.Medium != nil && t.Medium.Url != "" {
			return t.Medium.Url
		}
		if t.Default != nil && t.Default.Url != "" {
			return t.Default.Url
		}
	}
	return PlaceholderThumbnail
}
