package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/service"
	"github.com/aussiebroadwan/cove/internal/cove/store/drivers/sqlite"
	"github.com/aussiebroadwan/cove/pkg/covesdk"
	"github.com/aussiebroadwan/cove/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "router-test-shared-secret"
	testIssuer   = "test-idp"
	testAudience = "cove"
)

// newTestServer stands up the full router against a migrated in-memory
// database and returns its base URL.
func newTestServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	verifier := jwtx.NewVerifierHS256([]byte(testSecret), jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{testAudience},
		Leeway:   30 * time.Second,
	})

	router := NewRouter(verifier, "test", st, slog.New(slog.DiscardHandler))
	router.GroupService = &service.GroupService{Store: st}
	router.InviteService = &service.InviteService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL
}

// tokenFor signs a bearer token the way the identity provider would.
func tokenFor(t *testing.T, subject string) string {
	t.Helper()

	claims := jwtx.NewClaims(subject, testIssuer, []string{testAudience}, time.Hour, time.Now())
	claims.Email = subject + "@example.com"
	claims.PreferredName = subject

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func clientFor(t *testing.T, baseURL, subject string) *covesdk.Client {
	t.Helper()
	return covesdk.NewClient(baseURL, tokenFor(t, subject))
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *covesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	baseURL := newTestServer(t)

	t.Run("no token yields 401", func(t *testing.T) {
		anon := covesdk.NewClient(baseURL, "")
		_, err := anon.ListGroups(ctx)

		var apiErr *covesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		bogus := covesdk.NewClient(baseURL, "not-a-jwt")
		_, err := bogus.CreateGroup(ctx, "Sneaky")

		var apiErr *covesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("token from the wrong issuer yields 401", func(t *testing.T) {
		claims := jwtx.NewClaims("user-x", "evil-idp", []string{testAudience}, time.Hour, time.Now())
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(testSecret))
		require.NoError(t, err)

		wrong := covesdk.NewClient(baseURL, signed)
		_, err = wrong.ListGroups(ctx)

		var apiErr *covesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("rejected request has no side effects", func(t *testing.T) {
		anon := covesdk.NewClient(baseURL, "")
		_, err := anon.CreateGroup(ctx, "Ghost")
		require.Error(t, err)

		alice := clientFor(t, baseURL, "user-alice")
		groups, err := alice.ListGroups(ctx)
		require.NoError(t, err)
		require.Empty(t, groups)
	})
}

func TestGroupEndpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	baseURL := newTestServer(t)
	alice := clientFor(t, baseURL, "user-alice")
	mallory := clientFor(t, baseURL, "user-mallory")

	group, err := alice.CreateGroup(ctx, "Campers")
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)
	require.Equal(t, "Campers", group.Name)
	require.Equal(t, "user-alice", group.CreatedBy)
	require.Len(t, group.Members, 1)

	t.Run("invalid name yields 400", func(t *testing.T) {
		_, err := alice.CreateGroup(ctx, "X")
		requireAPIError(t, err, http.StatusBadRequest, covesdk.ErrorCodeInvalidRequest)
	})

	t.Run("listing shows only the caller's groups", func(t *testing.T) {
		groups, err := alice.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Equal(t, group.ID, groups[0].ID)

		others, err := mallory.ListGroups(ctx)
		require.NoError(t, err)
		require.Empty(t, others)
	})

	t.Run("get returns the roster to members", func(t *testing.T) {
		got, err := alice.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, got.Members, 1)
		require.Equal(t, "user-alice", got.Members[0].UserID)
	})

	t.Run("members endpoint matches", func(t *testing.T) {
		members, err := alice.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
	})

	t.Run("non-members cannot tell the group exists", func(t *testing.T) {
		_, err := mallory.GetGroup(ctx, group.ID)
		requireAPIError(t, err, http.StatusNotFound, covesdk.ErrorCodeNotFound)

		_, unknownErr := mallory.GetGroup(ctx, "no-such-group")
		requireAPIError(t, unknownErr, http.StatusNotFound, covesdk.ErrorCodeNotFound)

		// Same status, same code, whichever way you probe.
		var a, b *covesdk.APIError
		require.True(t, errors.As(err, &a))
		require.True(t, errors.As(unknownErr, &b))
		require.Equal(t, a.Code, b.Code)
	})
}

func TestInviteEndpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	baseURL := newTestServer(t)
	alice := clientFor(t, baseURL, "user-alice")
	bob := clientFor(t, baseURL, "user-bob")
	carol := clientFor(t, baseURL, "user-carol")
	mallory := clientFor(t, baseURL, "user-mallory")

	group, err := alice.CreateGroup(ctx, "Campers")
	require.NoError(t, err)

	invite, err := alice.CreateInvite(ctx, group.ID)
	require.NoError(t, err)
	require.NotEmpty(t, invite.Code)
	require.Equal(t, group.ID, invite.GroupID)
	require.Empty(t, invite.UsedBy)

	t.Run("missing group_id yields 400", func(t *testing.T) {
		_, err := alice.CreateInvite(ctx, "")
		requireAPIError(t, err, http.StatusBadRequest, covesdk.ErrorCodeInvalidRequest)
	})

	t.Run("non-members get 403, unknown groups 404", func(t *testing.T) {
		_, err := mallory.CreateInvite(ctx, group.ID)
		requireAPIError(t, err, http.StatusForbidden, covesdk.ErrorCodeForbidden)

		_, err = mallory.CreateInvite(ctx, "no-such-group")
		requireAPIError(t, err, http.StatusNotFound, covesdk.ErrorCodeNotFound)
	})

	t.Run("anyone authenticated can preview by code", func(t *testing.T) {
		preview, err := bob.GetInvite(ctx, invite.Code)
		require.NoError(t, err)
		require.Equal(t, group.ID, preview.GroupID)
	})

	t.Run("accept joins the group", func(t *testing.T) {
		joined, err := bob.AcceptInvite(ctx, invite.Code)
		require.NoError(t, err)
		require.Equal(t, group.ID, joined.ID)
		require.Len(t, joined.Members, 2)
	})

	t.Run("second accept yields 409", func(t *testing.T) {
		_, err := carol.AcceptInvite(ctx, invite.Code)
		requireAPIError(t, err, http.StatusConflict, covesdk.ErrorCodeAlreadyUsed)

		var apiErr *covesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.IsAlreadyUsed())
	})

	t.Run("unknown code yields 404 on accept", func(t *testing.T) {
		_, err := carol.AcceptInvite(ctx, "definitely-not-a-code")
		requireAPIError(t, err, http.StatusNotFound, covesdk.ErrorCodeNotFound)
	})

	t.Run("unauthenticated create mints nothing", func(t *testing.T) {
		anon := covesdk.NewClient(baseURL, "")
		_, err := anon.CreateInvite(ctx, group.ID)

		var apiErr *covesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

		invites, err := alice.ListInvites(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, invites, 1)
	})

	t.Run("listing shows the audit trail to members", func(t *testing.T) {
		invites, err := bob.ListInvites(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, invites, 1)
		require.Equal(t, "user-bob", invites[0].UsedBy)

		_, err = mallory.ListInvites(ctx, group.ID)
		requireAPIError(t, err, http.StatusForbidden, covesdk.ErrorCodeForbidden)
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	baseURL := newTestServer(t)
	alice := clientFor(t, baseURL, "user-alice")

	identity, err := alice.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-alice", identity.UserID)
	require.Equal(t, "user-alice@example.com", identity.Email)
	require.Equal(t, "user-alice", identity.PreferredName)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	baseURL := newTestServer(t)

	t.Run("livez is always ok", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/livez")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readyz reports ok with a healthy database", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
