package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noamlvn/nikudquiz/internal/api"
	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/services"
	"github.com/noamlvn/nikudquiz/internal/testutil"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	audioDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "a.mp3"), []byte("mp3"), 0o644))

	index := audio.Index{
		"אָ": "a.mp3",
		"אַ": "a.mp3",
		"בָ": "a.mp3",
		"בַ": "a.mp3",
	}

	database := testutil.NewTestDB(t)
	catalog := hebrew.Default()

	srv := &api.Server{
		ProfileService: services.NewProfileService(database),
		QuizService:    services.NewQuizService(database, index, nil, catalog, 4, time.Second),
		HistoryDB:      database,
		Catalog:        catalog,
		Index:          index,
		AudioDir:       audioDir,
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, audioDir
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProfile(t *testing.T, ts *httptest.Server, name string) int64 {
	t.Helper()
	resp := postJSON(t, ts.URL+"/profiles", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &profile)
	return profile.ID
}

func createSession(t *testing.T, ts *httptest.Server, profileID int64) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/sessions", map[string]any{
		"profile_id": profileID,
		"filters": map[string]any{
			"vowels":     []string{"kamatz", "patach"},
			"consonants": []string{"א", "ב"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var state struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, resp, &state)
	require.NotEmpty(t, state.SessionID)
	return state.SessionID
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCatalog(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/catalog")
	require.NoError(t, err)

	var catalog hebrew.Catalog
	decodeBody(t, resp, &catalog)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, catalog.Vowels, 9)
}

func TestQuizFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	profileID := createProfile(t, ts, "noa")
	sessionID := createSession(t, ts, profileID)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/round", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var round struct {
		Options []string `json:"options"`
	}
	decodeBody(t, resp, &round)
	require.Len(t, round.Options, 4)

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/answer", map[string]string{"chosen": round.Options[0]})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var answer struct {
		Chosen          string `json:"chosen"`
		CorrectSyllable string `json:"correct_syllable"`
		CooldownMS      int64  `json:"cooldown_ms"`
	}
	decodeBody(t, resp, &answer)
	assert.Equal(t, round.Options[0], answer.Chosen)
	assert.Contains(t, round.Options, answer.CorrectSyllable)
	assert.Equal(t, int64(1000), answer.CooldownMS)

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/end", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ended struct {
		State string `json:"state"`
	}
	decodeBody(t, resp, &ended)
	assert.Equal(t, "ended", ended.State)

	// History was persisted along the way.
	resp, err := http.Get(fmt.Sprintf("%s/profiles/%d/history", ts.URL, profileID))
	require.NoError(t, err)
	var history struct {
		Total   int              `json:"total"`
		Answers []map[string]any `json:"answers"`
	}
	decodeBody(t, resp, &history)
	assert.Equal(t, 1, history.Total)
	require.Len(t, history.Answers, 1)
}

func TestSelectProfile(t *testing.T) {
	ts, _ := newTestServer(t)
	profileID := createProfile(t, ts, "noa")

	resp := postJSON(t, ts.URL+fmt.Sprintf("/profiles/%d/select", profileID), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "nikudquiz_profile" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "profile cookie must be set")
	assert.Equal(t, fmt.Sprintf("%d", profileID), cookie.Value)

	resp = postJSON(t, ts.URL+"/profiles/999/select", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSession_NoVowels(t *testing.T) {
	ts, _ := newTestServer(t)
	profileID := createProfile(t, ts, "noa")

	resp := postJSON(t, ts.URL+"/sessions", map[string]any{
		"profile_id": profileID,
		"filters":    map[string]any{"consonants": []string{"א"}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "NO_VOWELS_SELECTED", body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestCreateSession_ValidationError(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/sessions", map[string]any{
		"filters": map[string]any{"vowels": []string{"kamatz"}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestStartRound_Conflicts(t *testing.T) {
	ts, _ := newTestServer(t)
	profileID := createProfile(t, ts, "noa")
	sessionID := createSession(t, ts, profileID)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/round", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/round", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestAudioEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/audio/" + url.PathEscape("אָ"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), data)

	resp, err = http.Get(ts.URL + "/audio/" + url.PathEscape("קֻ"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/sessions/does-not-exist")
	require.NoError(t, err)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}
