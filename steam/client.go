package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/leighmacdonald/steamid/v2/steamid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	baseURL        = "https://api.steampowered.com"
	defaultTimeout = time.Second * 10
)

// Client performs authenticated calls against the Steam Web API. Each call
// returns the decoded response document, or fails with a transport error.
// Validation of the document contents happens in QueryService, not here.
type Client interface {
	ResolveVanityURL(ctx context.Context, name string) (Document, error)
	PlayerSummaries(ctx context.Context, sid steamid.SID64) (Document, error)
	RecentlyPlayedGames(ctx context.Context, sid steamid.SID64, count int) (Document, error)
	OwnedGames(ctx context.Context, sid steamid.SID64) (Document, error)
	AppList(ctx context.Context, lastAppID int64, maxResults int) (Document, error)
}

type webAPI struct {
	key    string
	client *http.Client
}

// NewClient returns a Client backed by the public Web API at
// api.steampowered.com, authenticated with the given key.
func NewClient(key string) Client {
	return &webAPI{
		key:    key,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (w *webAPI) call(ctx context.Context, path string, query url.Values) (Document, error) {
	query.Set("key", w.key)
	query.Set("format", "json")
	u := fmt.Sprintf("%s%s?%s", baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create new request")
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to perform request: %s", path)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Errorf("Failed to close response body: %v", errClose)
		}
	}()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read response body")
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode response body: %s", path)
	}
	return doc, nil
}

func (w *webAPI) ResolveVanityURL(ctx context.Context, name string) (Document, error) {
	return w.call(ctx, "/ISteamUser/ResolveVanityURL/v0001/", url.Values{
		"vanityurl": {name},
	})
}

func (w *webAPI) PlayerSummaries(ctx context.Context, sid steamid.SID64) (Document, error) {
	return w.call(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", url.Values{
		"steamids": {fmt.Sprintf("%d", sid)},
	})
}

func (w *webAPI) RecentlyPlayedGames(ctx context.Context, sid steamid.SID64, count int) (Document, error) {
	return w.call(ctx, "/IPlayerService/GetRecentlyPlayedGames/v0001/", url.Values{
		"steamid": {fmt.Sprintf("%d", sid)},
		"count":   {fmt.Sprintf("%d", count)},
	})
}

func (w *webAPI) OwnedGames(ctx context.Context, sid steamid.SID64) (Document, error) {
	return w.call(ctx, "/IPlayerService/GetOwnedGames/v0001/", url.Values{
		"steamid":                   {fmt.Sprintf("%d", sid)},
		"include_appinfo":           {"1"},
		"include_played_free_games": {"1"},
	})
}

func (w *webAPI) AppList(ctx context.Context, lastAppID int64, maxResults int) (Document, error) {
	return w.call(ctx, "/IStoreService/GetAppList/v1/", url.Values{
		"include_games":    {"1"},
		"include_dlc":      {"0"},
		"include_software": {"0"},
		"include_videos":   {"0"},
		"include_hardware": {"0"},
		"last_appid":       {fmt.Sprintf("%d", lastAppID)},
		"max_results":      {fmt.Sprintf("%d", maxResults)},
	})
}
