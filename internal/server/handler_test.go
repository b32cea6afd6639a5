package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()

	hub := NewHub(testPartyConfig(), &fakeCatalog{deck: testDeck(7)}, logger.Nop())
	handler := NewHandler(hub, "test", logger.Nop())
	srv := httptest.NewServer(handler.Init())
	t.Cleanup(srv.Close)

	return srv, hub
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeJoin(t *testing.T, resp *http.Response) models.JoinResponse {
	t.Helper()

	var out models.JoinResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func dialWS(t *testing.T, srv *httptest.Server, code, memberID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + code + "?member_id=" + memberID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	return ws
}

func readSnapshot(t *testing.T, ws *websocket.Conn) models.Party {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))

	var p models.Party
	require.NoError(t, ws.ReadJSON(&p))
	return p
}

func TestHandler_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestHandler_CreateParty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/party", models.JoinRequest{Name: "Ann"})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodeJoin(t, resp)
	assert.Len(t, out.Code, codeLength)
	assert.NotEmpty(t, out.MemberID)
}

func TestHandler_CreateParty_EmptyName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/party", models.JoinRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateParty_InvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/party", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_JoinParty_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/party/NOSUCH/join", models.JoinRequest{Name: "Bob"})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var apiErr models.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	assert.Equal(t, "party not found", apiErr.Error)
}

func TestHandler_WS_UnknownParty(t *testing.T) {
	srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/NOSUCH?member_id=x"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_WS_SessionFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	creator := decodeJoin(t, postJSON(t, srv.URL+"/api/party", models.JoinRequest{Name: "Ann"}))
	joiner := decodeJoin(t, postJSON(t, srv.URL+"/api/party/"+creator.Code+"/join", models.JoinRequest{Name: "Bob"}))

	wsAnn := dialWS(t, srv, creator.Code, creator.MemberID)
	wsBob := dialWS(t, srv, joiner.Code, joiner.MemberID)

	// attach pushes the current snapshot immediately
	first := readSnapshot(t, wsAnn)
	assert.Equal(t, models.StatusActive, first.Status)
	assert.Equal(t, []string{"r1", "r2", "r3"}, deckIDs(first.Restaurants))
	assert.Equal(t, 3, first.Total)

	_ = readSnapshot(t, wsBob)

	// request-more fans the next batch out to every member
	require.NoError(t, wsAnn.WriteJSON(models.NewRequestMore()))

	more := readSnapshot(t, wsBob)
	assert.Equal(t, []string{"r4", "r5"}, deckIDs(more.Current))
	assert.Equal(t, 5, more.Total)
	_ = readSnapshot(t, wsAnn)

	// unanimous approval produces a match
	require.NoError(t, wsAnn.WriteJSON(models.NewSwipeRight("r2")))
	_ = readSnapshot(t, wsAnn)
	_ = readSnapshot(t, wsBob)

	require.NoError(t, wsBob.WriteJSON(models.NewSwipeRight("r2")))

	matched := readSnapshot(t, wsAnn)
	assert.Equal(t, models.StatusMatched, matched.Status)
	require.NotNil(t, matched.Match)
	assert.Equal(t, "r2", matched.Match.ID)
}

func TestHandler_WS_QuitClosesConnection(t *testing.T) {
	srv, hub := newTestServer(t)

	creator := decodeJoin(t, postJSON(t, srv.URL+"/api/party", models.JoinRequest{Name: "Ann"}))
	ws := dialWS(t, srv, creator.Code, creator.MemberID)

	_ = readSnapshot(t, ws)

	require.NoError(t, ws.WriteJSON(models.NewQuit()))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	var p models.Party
	err := ws.ReadJSON(&p)
	assert.Error(t, err, "server closes the socket after quit")

	room, err := hub.Room(creator.Code)
	require.NoError(t, err)
	assert.True(t, room.Empty())
}
