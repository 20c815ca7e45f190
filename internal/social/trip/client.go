// Package trip is the client for the trip service, the owner of all media
// items. It is queried as an oracle: transport failures and 404s both degrade
// to "media does not exist" / "owner unknown" so the service layer never has
// to distinguish an unreachable peer from a missing row.
package trip

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/tenant"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://trip-service:8080"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     log,
	}
}

// mediaResponse is the slice of the trip-service media payload this client
// cares about.
type mediaResponse struct {
	MediaID  int64  `json:"mediaId"`
	Uploader string `json:"uploader"`
}

// MediaExists reports whether the media item is visible to the caller.
// Any failure to ask is reported as false.
func (c *Client) MediaExists(ctx context.Context, mediaID int64, credential string) bool {
	resp, err := c.getMedia(ctx, mediaID, credential)
	if err != nil {
		c.Logger.Warn("trip: media existence check failed",
			zap.Int64("media_id", mediaID), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// MediaOwner returns the external identity of the media uploader, or
// ("", false) when the owner cannot be resolved.
func (c *Client) MediaOwner(ctx context.Context, mediaID int64, credential string) (string, bool) {
	resp, err := c.getMedia(ctx, mediaID, credential)
	if err != nil {
		c.Logger.Warn("trip: media owner lookup failed",
			zap.Int64("media_id", mediaID), zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || resp.StatusCode != http.StatusOK {
		return "", false
	}
	var media mediaResponse
	if err := json.Unmarshal(b, &media); err != nil {
		c.Logger.Warn("trip: media payload decode failed",
			zap.Int64("media_id", mediaID), zap.Error(err))
		return "", false
	}
	owner := strings.TrimSpace(media.Uploader)
	return owner, owner != ""
}

func (c *Client) getMedia(ctx context.Context, mediaID int64, credential string) (*http.Response, error) {
	url := c.BaseURL + "/rest/v1/media/" + strconv.FormatInt(mediaID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	if id, ok := tenant.FromContext(ctx); ok {
		req.Header.Set(tenant.Header, id)
	}
	return c.HTTPClient.Do(req)
}
