package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-mehek/LinkingLink-client/internal/client"
	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/internal/storage"
)

func TestSessionAgainstServer(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	session := client.NewSession(client.NewClient(srv.URL+"/api", store))

	reg := session.Register(t.Context(), models.RegisterRequest{
		Name:     "Demo User",
		Email:    "demo@example.com",
		Password: "Passw0rd!demo",
		UserID:   "demo_user",
	})
	require.Nil(t, reg.Error)
	assert.Equal(t, http.StatusCreated, reg.Status)
	assert.Equal(t, client.StateAuthenticated, session.State())
	assert.NotEmpty(t, store.Load())

	me := session.Verify(t.Context())
	require.Nil(t, me.Error)
	assert.Equal(t, client.StateVerified, session.State())
	assert.Equal(t, "Demo User", me.Data.User.Name)

	added := session.AddProgress(t.Context(), "Math", 30, "")
	require.Nil(t, added.Error)
	assert.Equal(t, "Math", added.Data.Entry.Subject)

	list := session.ListProgress(t.Context())
	require.Nil(t, list.Error)
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, 30, list.Data.Items[0].MinutesStudied)

	out := session.Logout(t.Context())
	assert.Nil(t, out.Error)
	assert.Equal(t, client.StateAnonymous, session.State())
	assert.Empty(t, store.Load())

	relogin := session.Login(t.Context(), "demo_user", "wrong")
	require.NotNil(t, relogin.Error)
	assert.Equal(t, http.StatusUnauthorized, relogin.Error.Status)
	assert.Equal(t, client.StateAnonymous, session.State())
}

func TestSessionDuplicateRegistration(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)

	req := models.RegisterRequest{
		Name:     "Demo User",
		Email:    "demo@example.com",
		Password: "Passw0rd!demo",
		UserID:   "demo_user",
	}

	first := client.NewSession(client.NewClient(srv.URL+"/api", storage.NewMemoryStore()))
	require.Nil(t, first.Register(t.Context(), req).Error)

	second := client.NewSession(client.NewClient(srv.URL+"/api", storage.NewMemoryStore()))
	res := second.Register(t.Context(), req)

	require.NotNil(t, res.Error)
	assert.Equal(t, http.StatusConflict, res.Error.Status)
	assert.Contains(t, client.DescribeError(client.OpRegister, res.Error), "уже существует")
	assert.Equal(t, client.StateAnonymous, second.State())
}
