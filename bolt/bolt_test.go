package bolt

import (
	"net/url"
	"testing"

	"github.com/shiroyk/cookiejar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	jar := cookiejar.New(cookiejar.Options{})

	// loading before anything was saved leaves the jar empty
	require.NoError(t, store.Load(jar))
	assert.Zero(t, jar.Len())

	u := mustCookies(t, jar)
	require.NoError(t, store.Save(jar))

	restored := cookiejar.New(cookiejar.Options{})
	require.NoError(t, store.Load(restored))
	assert.Equal(t, jar.Entries(), restored.Entries())
	assert.Equal(t, jar.Cookies(u), restored.Cookies(u))
}

func TestStoreReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)

	jar := cookiejar.New(cookiejar.Options{})
	mustCookies(t, jar)
	require.NoError(t, store.Save(jar))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	restored := cookiejar.New(cookiejar.Options{})
	require.NoError(t, store.Load(restored))
	assert.Equal(t, jar.Entries(), restored.Entries())
}

func mustCookies(t *testing.T, jar *cookiejar.Jar) *url.URL {
	t.Helper()
	u, err := url.Parse("https://example.com/")
	require.NoError(t, err)
	jar.SetCookies(u, []cookiejar.Cookie{
		{Name: "sid", Value: "abc", Path: "/"},
		{Name: "pref", Value: "dark", Domain: "example.com", MaxAge: "3600"},
	})
	return u
}
