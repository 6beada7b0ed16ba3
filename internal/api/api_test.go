package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridspace-io/gridspace/internal/api"
	"github.com/gridspace-io/gridspace/internal/api/response"
	"github.com/gridspace-io/gridspace/internal/factory"
	"github.com/gridspace-io/gridspace/internal/services/auth"
	"github.com/gridspace-io/gridspace/internal/storage/memory"
	"github.com/gridspace-io/gridspace/internal/ws"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{Secret: []byte("api-test-secret")},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		SpaceService: app.SpaceService,
		AdminService: app.AdminService,
		Gateway:      app.Gateway,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// signup creates an account and signs in, returning the token
func (ts *testServer) signup(t *testing.T, username, role string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": "secret123", "type": role}
	rr := ts.request(http.MethodPost, "/api/v1/signup", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/signin", map[string]string{
		"username": username,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.SigninResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSignupAndSignin(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123", "type": "user"}
	rr := ts.request(http.MethodPost, "/api/v1/signup", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var signupResp response.SignupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signupResp))
	assert.NotEmpty(t, signupResp.UserID)

	rr = ts.request(http.MethodPost, "/api/v1/signin", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var signinResp response.SigninResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signinResp))
	assert.NotEmpty(t, signinResp.Token)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "user")

	body := map[string]string{"username": "alice", "password": "other", "type": "user"}
	rr := ts.request(http.MethodPost, "/api/v1/signup", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSigninRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodPost, "/api/v1/signin", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodGet, "/api/v1/user/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)
}

func TestGetMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/user/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/user/me", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSpaceLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	// Create
	rr := ts.request(http.MethodPost, "/api/v1/space", map[string]string{
		"name":       "my space",
		"dimensions": "20x15",
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created response.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "20x15", created.Dimensions)

	// Get
	rr = ts.request(http.MethodGet, "/api/v1/space/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var detail response.SpaceDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, "my space", detail.Name)
	assert.Empty(t, detail.Elements)

	// List
	rr = ts.request(http.MethodGet, "/api/v1/space/all", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.SpaceList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Spaces, 1)

	// Delete
	rr = ts.request(http.MethodDelete, "/api/v1/space/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/space/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteSpaceByNonCreatorForbidden(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signup(t, "alice", "user")
	bobToken := ts.signup(t, "bob", "user")

	rr := ts.request(http.MethodPost, "/api/v1/space", map[string]string{"name": "alice's space", "dimensions": "10x10"}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = ts.request(http.MethodDelete, "/api/v1/space/"+created.ID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCreateSpaceRejectsBadDimensions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodPost, "/api/v1/space", map[string]string{
		"name":       "bad",
		"dimensions": "0x10",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodPost, "/api/v1/admin/element", map[string]any{
		"width": 1, "height": 1, "image_url": "rock.png",
	}, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminCatalogFlow(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.signup(t, "root", "admin")
	userToken := ts.signup(t, "alice", "user")

	// Create an element
	rr := ts.request(http.MethodPost, "/api/v1/admin/element", map[string]any{
		"width": 1, "height": 1, "static": true, "image_url": "tree.png",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var element response.Element
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &element))

	// Update its image
	rr = ts.request(http.MethodPut, "/api/v1/admin/element/"+element.ID, map[string]string{
		"image_url": "tree-v2.png",
	}, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Create a map using the element
	rr = ts.request(http.MethodPost, "/api/v1/admin/map", map[string]any{
		"name":       "forest",
		"dimensions": "30x25",
		"default_elements": []map[string]any{
			{"element_id": element.ID, "x": 2, "y": 3},
		},
	}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var m response.Map
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))

	// A regular user creates a space from the map
	rr = ts.request(http.MethodPost, "/api/v1/space", map[string]string{
		"name":   "my forest",
		"map_id": m.ID,
	}, userToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var space response.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &space))
	assert.Equal(t, "30x25", space.Dimensions)

	// The space inherits the map's default elements
	rr = ts.request(http.MethodGet, "/api/v1/space/"+space.ID, nil, userToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var detail response.SpaceDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Len(t, detail.Elements, 1)

	// The element catalog is readable without auth
	rr = ts.request(http.MethodGet, "/api/v1/elements", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var elements response.ElementList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &elements))
	assert.Len(t, elements.Elements, 1)
}

func TestAvatarSelection(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.signup(t, "root", "admin")
	userToken := ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodPost, "/api/v1/admin/avatar", map[string]string{
		"name": "robot", "image_url": "robot.png",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var avatar response.Avatar
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &avatar))

	rr = ts.request(http.MethodPost, "/api/v1/user/metadata", map[string]string{
		"avatar_id": avatar.ID,
	}, userToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/user/me", nil, userToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, avatar.ID, user.AvatarID)
}

func TestBulkMetadata(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signup(t, "alice", "user")
	ts.signup(t, "bob", "user")

	rr := ts.request(http.MethodGet, "/api/v1/user/me", nil, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var alice response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alice))

	path := fmt.Sprintf("/api/v1/user/metadata/bulk?ids=%s,u_missing", alice.ID)
	rr = ts.request(http.MethodGet, path, nil, aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var bulk response.BulkMetadataResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bulk))
	require.Len(t, bulk.Users, 1)
	assert.Equal(t, "alice", bulk.Users[0].Username)
}

// Realtime gateway tests

func dialGateway(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ws.Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var env ws.Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	return env
}

func sendFrame(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(ws.Envelope{Type: msgType, Payload: raw}))
}

func TestGatewayJoinAndBroadcast(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signup(t, "alice", "user")
	bobToken := ts.signup(t, "bob", "user")

	rr := ts.request(http.MethodPost, "/api/v1/space", map[string]string{
		"name":       "arena",
		"dimensions": "16x12",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	var space response.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &space))

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	// Alice joins an empty space
	alice := dialGateway(t, server)
	defer func() { _ = alice.Close() }()
	sendFrame(t, alice, ws.MessageJoin, ws.JoinPayload{SpaceID: space.ID, Token: aliceToken})

	env := readFrame(t, alice)
	require.Equal(t, ws.MessageSpaceJoined, env.Type)

	var joined ws.SpaceJoinedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &joined))
	assert.Empty(t, joined.Users)
	assert.NotEmpty(t, joined.UserID)

	// Bob joins and sees Alice in the roster
	bob := dialGateway(t, server)
	defer func() { _ = bob.Close() }()
	sendFrame(t, bob, ws.MessageJoin, ws.JoinPayload{SpaceID: space.ID, Token: bobToken})

	env = readFrame(t, bob)
	require.Equal(t, ws.MessageSpaceJoined, env.Type)

	var bobJoined ws.SpaceJoinedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &bobJoined))
	require.Len(t, bobJoined.Users, 1)
	assert.Equal(t, joined.UserID, bobJoined.Users[0].UserID)
	assert.Equal(t, ws.MaxHealth, bobJoined.Users[0].Health)

	// Alice is told Bob arrived
	env = readFrame(t, alice)
	require.Equal(t, ws.MessageUserJoined, env.Type)

	var arrival ws.UserState
	require.NoError(t, json.Unmarshal(env.Payload, &arrival))
	assert.Equal(t, bobJoined.UserID, arrival.UserID)

	// Bob disconnects; Alice hears the departure
	require.NoError(t, bob.Close())

	env = readFrame(t, alice)
	require.Equal(t, ws.MessageUserLeft, env.Type)
}

func TestGatewayRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	rr := ts.request(http.MethodPost, "/api/v1/space", map[string]string{
		"name":       "arena",
		"dimensions": "16x12",
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	var space response.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &space))

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	conn := dialGateway(t, server)
	defer func() { _ = conn.Close() }()
	sendFrame(t, conn, ws.MessageJoin, ws.JoinPayload{SpaceID: space.ID, Token: "forged-token"})

	// The server closes the connection without sending anything
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestGatewayRejectsUnknownSpace(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice", "user")

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	conn := dialGateway(t, server)
	defer func() { _ = conn.Close() }()
	sendFrame(t, conn, ws.MessageJoin, ws.JoinPayload{SpaceID: "sp_missing", Token: token})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
