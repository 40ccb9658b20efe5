package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	"github.com/palabianco/basketstats/internal/platform/cache"
	"github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
	"github.com/palabianco/basketstats/internal/usecase"
)

const testAdminToken = "test-admin-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	statRepo := memory.NewStatLineRepository(nil)
	settingsRepo := memory.NewSettingsRepository(memory.SeedSettings())

	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()
	reportCache := cache.NewStore(time.Minute)

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, matchRepo, statRepo, idGen, reportCache, logger),
		usecase.NewRosterService(teamRepo, playerRepo, matchRepo, statRepo, idGen, reportCache, logger),
		usecase.NewScheduleService(matchRepo, teamRepo, statRepo, idGen, reportCache, logger),
		usecase.NewImportService(matchRepo, teamRepo, playerRepo, statRepo, nil, reportCache, logger),
		usecase.NewReportService(leagueRepo, teamRepo, playerRepo, matchRepo, statRepo, reportCache, logger),
		usecase.NewRecomputeService(matchRepo, teamRepo, statRepo, reportCache, logger),
		usecase.NewSettingsService(settingsRepo),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testAdminToken)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestRouterListTeamsSeeded(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items, ok := envelope["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 3)

	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, first["name"])
}

func TestRouterGetMainTeam(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/teams/main", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["isMain"])
	assert.Equal(t, memory.TeamIDMain, data["id"])
}

func TestRouterCreatePlayerConflictOnTakenNumber(t *testing.T) {
	router := newTestRouter(t)

	body := `{"teamId":"` + memory.TeamIDMain + `","number":0,"name":"DOPPIO"}`
	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/players", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ALREADY_EXISTS", errObj["status"])
}

func TestRouterSaveMatchValidation(t *testing.T) {
	router := newTestRouter(t)

	// Same team on both sides is rejected before hitting the store.
	body := `{"leagueId":"` + memory.LeagueIDDR3 + `","homeTeamId":"t1","awayTeamId":"t1"}`
	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_ARGUMENT", errObj["status"])
}

func TestRouterCSVImportPreviewAndCommit(t *testing.T) {
	router := newTestRouter(t)

	header := strings.Repeat("h;", 51) + "h"
	row := func(cells map[int]string) string {
		out := make([]string, 52)
		for i := range out {
			out[i] = "0"
		}
		out[0] = "x"
		for idx, v := range cells {
			out[idx] = v
		}
		return strings.Join(out, ";")
	}

	csv := strings.Join([]string{
		header,
		row(map[int]string{1: "0", 2: "3", 3: "5", 15: "8"}),
		row(map[int]string{1: "998", 15: "65", 45: "20", 46: "15", 47: "15", 48: "15"}),
		row(map[int]string{1: "999", 15: "72", 45: "18", 46: "20", 47: "16", 48: "18"}),
	}, "\n")

	previewBody, err := sonic.MarshalString(map[string]string{"csv": csv})
	require.NoError(t, err)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches/m1/imports/csv", previewBody)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "m1", data["matchId"])
	assert.Equal(t, true, data["hasExplicitScore"])

	previewJSON, err := sonic.MarshalString(data)
	require.NoError(t, err)

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/m1/imports/commit", previewJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/matches/m1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	matchData, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, matchData["isPlayed"])
	assert.Equal(t, float64(65), matchData["homeScore"])
	assert.Equal(t, float64(72), matchData["awayScore"])

	// Box score defaults to the main team's side of the match.
	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/matches/m1/boxscore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	boxData, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, memory.TeamIDMain, boxData["viewTeamId"])
}

func TestRouterRecomputeRequiresAdminToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recompute-scores", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recompute-scores", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "match_count")
}

func TestRouterImageImportWithoutAnalyzer(t *testing.T) {
	router := newTestRouter(t)

	body := `{"imageBase64":"aGVsbG8="}`
	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches/m1/imports/image", body)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNAVAILABLE", errObj["status"])
}
