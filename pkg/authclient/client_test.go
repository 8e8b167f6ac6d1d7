package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/apierr"
	"github.com/dmitrymomot/authkit/pkg/authclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a base URL", func(t *testing.T) {
		t.Parallel()

		_, err := authclient.New("  ")
		assert.ErrorIs(t, err, authclient.ErrMissingBaseURL)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL + "/")
		require.NoError(t, err)

		_, err = client.Login(context.Background(), authclient.Credentials{Email: "a@b.co", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, "/auth/login", gotPath)
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("validates before any request is issued", func(t *testing.T) {
		t.Parallel()

		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		tests := []struct {
			name  string
			creds authclient.Credentials
		}{
			{"empty payload", authclient.Credentials{}},
			{"email without password", authclient.Credentials{Email: "a@b.co"}},
			{"password without email", authclient.Credentials{Password: "x"}},
			{"mobile without country code", authclient.Credentials{Mobile: "501234567"}},
			{"both kinds at once", authclient.Credentials{Email: "a@b.co", Password: "x", Mobile: "5", CountryCode: "+971"}},
			{"malformed email", authclient.Credentials{Email: "not-an-email", Password: "x"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := client.Login(ctx, tt.creds)
				assert.ErrorIs(t, err, authclient.ErrInvalidCredentials)
			})
		}
		assert.Zero(t, hits, "invalid payloads never reach the server")
	})

	t.Run("success returns the token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "jane@example.com", payload["email"])
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "message": "welcome"})
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		resp, err := client.Login(ctx, authclient.Credentials{Email: "jane@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "tok-1", resp.Token)
		assert.Equal(t, "welcome", resp.Message)
	})

	t.Run("mobile credentials are accepted", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		resp, err := client.Login(ctx, authclient.Credentials{Mobile: "501234567", CountryCode: "+971"})
		require.NoError(t, err)
		assert.Equal(t, "tok-2", resp.Token)
	})

	t.Run("server rejection is a normalized API error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.Login(ctx, authclient.Credentials{Email: "a@b.co", Password: "bad"})
		var apiErr *apierr.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})

	t.Run("success without token is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.Login(ctx, authclient.Credentials{Email: "a@b.co", Password: "x"})
		assert.ErrorIs(t, err, authclient.ErrEmptyToken)
	})

	t.Run("unreachable server is a transport error", func(t *testing.T) {
		t.Parallel()

		client, err := authclient.New("http://127.0.0.1:1")
		require.NoError(t, err)

		_, err = client.Login(ctx, authclient.Credentials{Email: "a@b.co", Password: "x"})
		assert.ErrorIs(t, err, apierr.ErrUnavailable)
	})
}

func TestClient_OTP(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("send and verify handshake", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("POST /auth/otp/send", func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "501234567", payload["mobile"])
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("POST /auth/otp/verify", func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "123456", payload["code"])
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-otp"})
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		require.NoError(t, client.RequestOTP(ctx, "501234567", "+971"))

		resp, err := client.VerifyOTP(ctx, "501234567", "+971", "123456")
		require.NoError(t, err)
		assert.Equal(t, "tok-otp", resp.Token)
	})

	t.Run("missing fields are rejected locally", func(t *testing.T) {
		t.Parallel()

		client, err := authclient.New("http://example.invalid")
		require.NoError(t, err)

		assert.ErrorIs(t, client.RequestOTP(ctx, "", "+971"), authclient.ErrInvalidCredentials)
		_, err = client.VerifyOTP(ctx, "501234567", "+971", "")
		assert.ErrorIs(t, err, authclient.ErrInvalidCredentials)
	})
}

func TestClient_BearerOnlyEndpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("short-circuit without a credential", func(t *testing.T) {
		t.Parallel()

		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)

		assert.ErrorIs(t, client.Logout(ctx), authclient.ErrNotAuthenticated)
		_, err = client.Refresh(ctx)
		assert.ErrorIs(t, err, authclient.ErrNotAuthenticated)
		_, err = client.Permissions(ctx)
		assert.ErrorIs(t, err, authclient.ErrNotAuthenticated)
		assert.Zero(t, hits, "no request without a credential")
	})

	t.Run("permissions returns grants", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{
				"success": true,
				"permissions": [
					{"module_id":"crm","module_name":"CRM","permissions":{"can_view":true,"can_add":true}}
				]
			}`))
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)
		client.Credential().Set("tok")

		grants, err := client.Permissions(ctx)
		require.NoError(t, err)
		require.Len(t, grants, 1)
		assert.Equal(t, "crm", grants[0].ModuleID)
		assert.True(t, grants[0].Capability.CanView)
	})

	t.Run("logout tolerates an empty success body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)

		client, err := authclient.New(srv.URL)
		require.NoError(t, err)
		client.Credential().Set("tok")

		assert.NoError(t, client.Logout(ctx))
	})
}
