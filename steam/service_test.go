package steam

import (
	"context"
	"fmt"
	"testing"

	"github.com/leighmacdonald/steamid/v2/steamid"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resolve  Document
	summary  Document
	recent   Document
	owned    Document
	appPages []Document
	err      error
	calls    []string
}

func (f *fakeClient) ResolveVanityURL(_ context.Context, name string) (Document, error) {
	f.calls = append(f.calls, fmt.Sprintf("ResolveVanityURL(%s)", name))
	return f.resolve, f.err
}

func (f *fakeClient) PlayerSummaries(_ context.Context, sid steamid.SID64) (Document, error) {
	f.calls = append(f.calls, fmt.Sprintf("PlayerSummaries(%d)", sid))
	return f.summary, f.err
}

func (f *fakeClient) RecentlyPlayedGames(_ context.Context, sid steamid.SID64, count int) (Document, error) {
	f.calls = append(f.calls, fmt.Sprintf("RecentlyPlayedGames(%d, %d)", sid, count))
	return f.recent, f.err
}

func (f *fakeClient) OwnedGames(_ context.Context, sid steamid.SID64) (Document, error) {
	f.calls = append(f.calls, fmt.Sprintf("OwnedGames(%d)", sid))
	return f.owned, f.err
}

func (f *fakeClient) AppList(_ context.Context, lastAppID int64, _ int) (Document, error) {
	f.calls = append(f.calls, fmt.Sprintf("AppList(%d)", lastAppID))
	if f.err != nil {
		return nil, f.err
	}
	page := f.appPages[0]
	if len(f.appPages) > 1 {
		f.appPages = f.appPages[1:]
	}
	return page, nil
}

func resolveDoc(sid string) Document {
	return Document{"response": map[string]interface{}{
		"success": float64(1),
		"steamid": sid,
	}}
}

func TestResolveUser(t *testing.T) {
	client := &fakeClient{resolve: resolveDoc("76561197960287930")}
	sid, err := NewQueryService(client).ResolveUser(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, steamid.SID64(76561197960287930), sid)
}

func TestResolveUserBadVanityName(t *testing.T) {
	client := &fakeClient{resolve: Document{"response": map[string]interface{}{
		"success": float64(42),
		"message": "No match",
	}}}
	_, err := NewQueryService(client).ResolveUser(context.Background(), "nobody")
	var unexpected UnexpectedValueError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, "success", unexpected.Key)
	require.Equal(t, 1, unexpected.Expected)
	require.Equal(t, float64(42), unexpected.Actual)
}

func TestResolveUserNoResult(t *testing.T) {
	client := &fakeClient{}
	_, err := NewQueryService(client).ResolveUser(context.Background(), "bob")
	var noResult NoResultError
	require.ErrorAs(t, err, &noResult)
}

func TestSummary(t *testing.T) {
	client := &fakeClient{summary: Document{"response": map[string]interface{}{
		"players": []interface{}{map[string]interface{}{
			"steamid":                  "76561197960287930",
			"personaname":              "Bobby",
			"profileurl":               "https://steamcommunity.com/id/bob/",
			"communityvisibilitystate": float64(3),
			"realname":                 "Bob B",
			"gameextrainfo":            "Half-Life",
		}},
	}}}
	summary, err := NewQueryService(client).Summary(context.Background(), 76561197960287930)
	require.NoError(t, err)
	require.Equal(t, PlayerSummary{
		SteamID:             "76561197960287930",
		PersonaName:         "Bobby",
		ProfileURL:          "https://steamcommunity.com/id/bob/",
		CommunityVisibility: 3,
		RealName:            "Bob B",
		GameExtraInfo:       "Half-Life",
	}, summary)
	require.False(t, summary.Private())
}

func TestSummaryPrivateProfile(t *testing.T) {
	client := &fakeClient{summary: Document{"response": map[string]interface{}{
		"players": []interface{}{map[string]interface{}{
			"steamid":                  "76561197960287930",
			"personaname":              "Bobby",
			"profileurl":               "https://steamcommunity.com/id/bob/",
			"communityvisibilitystate": float64(1),
		}},
	}}}
	summary, err := NewQueryService(client).Summary(context.Background(), 76561197960287930)
	require.NoError(t, err)
	require.True(t, summary.Private())
	require.Empty(t, summary.RealName)
	require.Empty(t, summary.GameExtraInfo)
}

func TestSummaryWrongPlayerCount(t *testing.T) {
	player := map[string]interface{}{"steamid": "1"}
	client := &fakeClient{summary: Document{"response": map[string]interface{}{
		"players": []interface{}{player, player},
	}}}
	_, err := NewQueryService(client).Summary(context.Background(), 1)
	var unexpected UnexpectedValueError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, "players", unexpected.Key)
	require.Equal(t, 1, unexpected.Expected)
	require.Equal(t, 2, unexpected.Actual)
}

func TestSummaryNoPlayers(t *testing.T) {
	client := &fakeClient{summary: Document{"response": map[string]interface{}{
		"players": []interface{}{},
	}}}
	_, err := NewQueryService(client).Summary(context.Background(), 1)
	var missing MissingKeyError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "players", missing.Key)
}

func TestRecentGamesNone(t *testing.T) {
	client := &fakeClient{recent: Document{"response": map[string]interface{}{
		"total_count": float64(0),
	}}}
	games, err := NewQueryService(client).RecentGames(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, games)
}

func TestRecentGames(t *testing.T) {
	client := &fakeClient{recent: Document{"response": map[string]interface{}{
		"total_count": float64(2),
		"games": []interface{}{
			map[string]interface{}{"appid": float64(70), "name": "Half-Life", "playtime_2weeks": float64(30), "playtime_forever": float64(125)},
			map[string]interface{}{"appid": float64(42), "playtime_2weeks": float64(10)},
		},
	}}}
	games, err := NewQueryService(client).RecentGames(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []GameRecord{
		{AppID: 70, Name: "Half-Life", Playtime2Weeks: 30, PlaytimeForever: 125},
		{AppID: 42, Playtime2Weeks: 10},
	}, games)
}

func TestOwnedGames(t *testing.T) {
	client := &fakeClient{owned: Document{"response": map[string]interface{}{
		"game_count": float64(1),
		"games": []interface{}{
			map[string]interface{}{"appid": float64(70), "name": "Half-Life", "playtime_forever": float64(125)},
		},
	}}}
	games, err := NewQueryService(client).OwnedGames(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []GameRecord{{AppID: 70, Name: "Half-Life", PlaytimeForever: 125}}, games)
}

func TestOwnedGamesNone(t *testing.T) {
	client := &fakeClient{owned: Document{"response": map[string]interface{}{
		"game_count": float64(0),
	}}}
	games, err := NewQueryService(client).OwnedGames(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, games)
}

func TestFullCatalogPagination(t *testing.T) {
	client := &fakeClient{appPages: []Document{
		{"response": map[string]interface{}{
			"apps": []interface{}{
				map[string]interface{}{"appid": float64(10), "name": "Counter-Strike"},
				map[string]interface{}{"appid": float64(70), "name": "Half-Life"},
			},
			"have_more_results": true,
			"last_appid":        float64(70),
		}},
		{"response": map[string]interface{}{
			"apps": []interface{}{
				map[string]interface{}{"appid": float64(220), "name": "Half-Life 2"},
			},
		}},
	}}
	catalog, err := NewQueryService(client).FullCatalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, []GameRecord{
		{AppID: 10, Name: "Counter-Strike"},
		{AppID: 70, Name: "Half-Life"},
		{AppID: 220, Name: "Half-Life 2"},
	}, catalog)
	require.Equal(t, []string{"AppList(0)", "AppList(70)"}, client.calls)
}

func TestFullCatalogStuckCursor(t *testing.T) {
	// A server claiming more results without moving the cursor must error
	// out instead of looping forever.
	client := &fakeClient{appPages: []Document{
		{"response": map[string]interface{}{
			"apps": []interface{}{
				map[string]interface{}{"appid": float64(10), "name": "Counter-Strike"},
			},
			"have_more_results": true,
		}},
	}}
	_, err := NewQueryService(client).FullCatalog(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "cursor did not advance")
}

func TestGameNamed(t *testing.T) {
	catalog := []GameRecord{
		{AppID: 10, Name: "Counter-Strike"},
		{AppID: 70, Name: "Half-Life"},
	}
	game, err := GameNamed(catalog, "half-life")
	require.NoError(t, err)
	require.Equal(t, int64(70), game.AppID)

	_, err = GameNamed(catalog, "portal")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameByAppID(t *testing.T) {
	owned := []GameRecord{{AppID: 70, PlaytimeForever: 125}}
	game, err := GameByAppID(owned, 70)
	require.NoError(t, err)
	require.Equal(t, 125, game.PlaytimeForever)

	_, err = GameByAppID(owned, 440)
	require.ErrorIs(t, err, ErrGameNotOwned)
}
