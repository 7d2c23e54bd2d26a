package steam

import (
	"context"
	"fmt"
	"strings"

	"github.com/leighmacdonald/steamid/v2/steamid"
	"github.com/pkg/errors"
)

// VisibilityPublic is the communityvisibilitystate value of a public
// profile. Anything else is treated as private.
const VisibilityPublic = 3

// GameRecord is a single game from the catalog, a recently-played list or
// an owned-games list. Name can be empty for catalog entries Steam hasn't
// materialized; callers fall back to displaying the appid.
type GameRecord struct {
	AppID           int64
	Name            string
	Playtime2Weeks  int
	PlaytimeForever int
}

// PlayerSummary is a player's public profile. RealName and GameExtraInfo
// are only populated when the profile exposes them.
type PlayerSummary struct {
	SteamID             string
	PersonaName         string
	ProfileURL          string
	CommunityVisibility int
	RealName            string
	GameExtraInfo       string
}

// Private reports whether the profile is anything other than fully public.
func (p PlayerSummary) Private() bool {
	return p.CommunityVisibility != VisibilityPublic
}

// QueryService implements the typed Steam queries the bot answers with,
// running every response through the document validators.
type QueryService struct {
	client Client
}

func NewQueryService(client Client) *QueryService {
	return &QueryService{client: client}
}

// ResolveUser resolves a vanity profile name to a numeric steamid. A name
// Steam doesn't know surfaces as an UnexpectedValueError on the success
// flag.
func (s *QueryService) ResolveUser(ctx context.Context, name string) (steamid.SID64, error) {
	here := fmt.Sprintf("ResolveVanityURL(%s)", name)
	result, err := s.client.ResolveVanityURL(ctx, name)
	if err != nil {
		return 0, err
	}
	response, err := ResponseFromResult(here, result)
	if err != nil {
		return 0, err
	}
	if err := EnsureValueForKey(here, "success", 1, response); err != nil {
		return 0, err
	}
	v, err := KeyFromDoc(here, "steamid", response)
	if err != nil {
		return 0, err
	}
	sid, err := steamid.SID64FromString(fmt.Sprintf("%v", v))
	if err != nil {
		return 0, errors.Wrapf(err, "%s: invalid steamid", here)
	}
	return sid, nil
}

// Summary fetches a player's profile summary. The summaries endpoint hands
// back an array even for a single id, so the shape is checked down to the
// sole element before anything is read out of it.
func (s *QueryService) Summary(ctx context.Context, sid steamid.SID64) (PlayerSummary, error) {
	here := fmt.Sprintf("GetPlayerSummaries(%d)", sid)
	result, err := s.client.PlayerSummaries(ctx, sid)
	if err != nil {
		return PlayerSummary{}, err
	}
	response, err := ResponseFromResult(here, result)
	if err != nil {
		return PlayerSummary{}, err
	}
	players, err := docList(here, "players", response)
	if err != nil {
		return PlayerSummary{}, err
	}
	if len(players) != 1 {
		return PlayerSummary{}, UnexpectedValueError{
			Where:    here,
			Key:      "players",
			Expected: 1,
			Actual:   len(players),
			Doc:      response,
		}
	}
	player := players[0]
	if len(player) == 0 {
		return PlayerSummary{}, MissingKeyError{Where: here, Key: "players", Doc: response}
	}
	return PlayerSummary{
		SteamID:             docString(player, "steamid"),
		PersonaName:         docString(player, "personaname"),
		ProfileURL:          docString(player, "profileurl"),
		CommunityVisibility: docInt(player, "communityvisibilitystate"),
		RealName:            docString(player, "realname"),
		GameExtraInfo:       docString(player, "gameextrainfo"),
	}, nil
}

// RecentGames fetches everything a player touched in the trailing two week
// window. A player with no recent games yields nil, not an empty list.
func (s *QueryService) RecentGames(ctx context.Context, sid steamid.SID64) ([]GameRecord, error) {
	// 0 means all
	const count = 0
	here := fmt.Sprintf("GetRecentlyPlayedGames(%d, %d)", count, sid)
	result, err := s.client.RecentlyPlayedGames(ctx, sid, count)
	if err != nil {
		return nil, err
	}
	response, err := ResponseFromResult(here, result)
	if err != nil {
		return nil, err
	}
	if docInt(response, "total_count") == 0 {
		return nil, nil
	}
	games, err := docList(here, "games", response)
	if err != nil {
		return nil, err
	}
	return gameRecords(games), nil
}

// OwnedGames fetches every game in a player's library, names included.
func (s *QueryService) OwnedGames(ctx context.Context, sid steamid.SID64) ([]GameRecord, error) {
	here := fmt.Sprintf("GetOwnedGames(%d)", sid)
	result, err := s.client.OwnedGames(ctx, sid)
	if err != nil {
		return nil, err
	}
	response, err := ResponseFromResult(here, result)
	if err != nil {
		return nil, err
	}
	if docInt(response, "game_count") == 0 {
		return nil, nil
	}
	games, err := docList(here, "games", response)
	if err != nil {
		return nil, err
	}
	return gameRecords(games), nil
}

// FullCatalog pages through the entire public game catalog. DLC, software,
// videos and hardware are excluded by the request parameters. The catalog
// endpoint is cursor based: each page reports whether more results remain
// and the appid to resume from.
func (s *QueryService) FullCatalog(ctx context.Context) ([]GameRecord, error) {
	const pageSize = 10000
	var (
		catalog   []GameRecord
		lastAppID int64
	)
	for {
		here := fmt.Sprintf("GetAppList(%d)", lastAppID)
		result, err := s.client.AppList(ctx, lastAppID, pageSize)
		if err != nil {
			return nil, err
		}
		response, err := ResponseFromResult(here, result)
		if err != nil {
			return nil, err
		}
		apps, err := docList(here, "apps", response)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, gameRecords(apps)...)
		if !docBool(response, "have_more_results") {
			return catalog, nil
		}
		next := docInt64(response, "last_appid")
		if next <= lastAppID {
			// A server claiming more results without advancing the cursor
			// would otherwise spin here forever.
			return nil, errors.Errorf("%s: catalog cursor did not advance (%d -> %d)", here, lastAppID, next)
		}
		lastAppID = next
	}
}

// GameNamed returns the first record whose name matches name
// case-insensitively, or ErrGameNotFound.
func GameNamed(games []GameRecord, name string) (GameRecord, error) {
	want := strings.ToLower(name)
	for _, game := range games {
		if strings.ToLower(game.Name) == want {
			return game, nil
		}
	}
	return GameRecord{}, ErrGameNotFound
}

// GameByAppID returns the first record with the given appid, or
// ErrGameNotOwned.
func GameByAppID(games []GameRecord, appID int64) (GameRecord, error) {
	for _, game := range games {
		if game.AppID == appID {
			return game, nil
		}
	}
	return GameRecord{}, ErrGameNotOwned
}

func gameRecords(docs []Document) []GameRecord {
	records := make([]GameRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, GameRecord{
			AppID:           docInt64(doc, "appid"),
			Name:            docString(doc, "name"),
			Playtime2Weeks:  docInt(doc, "playtime_2weeks"),
			PlaytimeForever: docInt(doc, "playtime_forever"),
		})
	}
	return records
}
