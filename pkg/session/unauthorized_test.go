package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/authclient"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/tokenstore"
)

// startAuthServer runs a minimal auth API: login always succeeds with the
// given token, /auth/permissions answers 401 once armed, everything else 200.
func startAuthServer(t *testing.T, token string) (*httptest.Server, *sync.Map) {
	t.Helper()

	flags := &sync.Map{} // "reject" -> bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /auth/permissions", func(w http.ResponseWriter, r *http.Request) {
		if v, ok := flags.Load("reject"); ok && v.(bool) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "token revoked"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "permissions": []any{}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, flags
}

func TestManager_ForcedLogoutOn401(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	token := mintToken(t, "u1", "Customer", time.Now().Add(time.Hour))
	srv, flags := startAuthServer(t, token)

	client, err := authclient.New(srv.URL)
	require.NoError(t, err)

	store := newSpyStore()
	m := session.New(session.WithClient(client), session.WithStore(store))
	require.NoError(t, m.Login(ctx, authclient.Credentials{Email: "a@b.co", Password: "x"}))
	require.True(t, m.IsAuthenticated())

	flags.Store("reject", true)

	// Three concurrent requests all see the 401; exactly one logout
	// transition results.
	appClient := &http.Client{Transport: client.Transport()}
	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/auth/permissions", nil)
			resp, err := appClient.Do(req)
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 1, store.clearCount(), "concurrent 401s collapse into one logout")
	assert.ErrorIs(t, m.Snapshot().Err, session.ErrSessionExpired)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, tokenstore.ErrNoToken)
}

func TestManager_BearerFollowsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	token := mintToken(t, "u1", "Customer", time.Now().Add(time.Hour))

	var (
		mu         sync.Mutex
		lastBearer string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/probe", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastBearer = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := authclient.New(srv.URL)
	require.NoError(t, err)

	m := session.New(session.WithClient(client))
	appClient := &http.Client{Transport: client.Transport()}

	probe := func() string {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/probe", nil)
		resp, err := appClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		mu.Lock()
		defer mu.Unlock()
		return lastBearer
	}

	assert.Empty(t, probe(), "no bearer before login")

	require.NoError(t, m.Login(ctx, authclient.Credentials{Email: "a@b.co", Password: "x"}))
	assert.Equal(t, "Bearer "+token, probe(), "bearer equals the fresh token after login")

	require.NoError(t, m.Logout(ctx))
	assert.Empty(t, probe(), "no bearer after logout")
}
