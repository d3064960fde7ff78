package cookiejar

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTTP(t *testing.T) {
	t.Parallel()
	records := FromHTTP([]*http.Cookie{
		{Name: "a", Value: "1", Domain: "example.com", Path: "/", Secure: true, MaxAge: 60},
		{Name: "b", Value: "2", MaxAge: -1},
		{Name: "c", Value: "3", RawExpires: "Tue, 07 Jun 2033 10:18:14 GMT"},
		{Name: "d", Value: "4", Expires: time.Date(2033, 6, 7, 10, 18, 14, 0, time.UTC)},
	})
	require.Len(t, records, 4)

	assert.Equal(t, Cookie{Name: "a", Value: "1", Domain: "example.com", Path: "/", Secure: true, MaxAge: "60"}, records[0])
	assert.Equal(t, "-1", records[1].MaxAge)
	assert.Equal(t, "Tue, 07 Jun 2033 10:18:14 GMT", records[2].Expires)
	assert.Equal(t, "Tue, 07 Jun 2033 10:18:14 GMT", records[3].Expires)
}

func TestHTTPClientIntegration(t *testing.T) {
	t.Parallel()
	var received []*http.Cookie
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Cookies()
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/", MaxAge: 60})
	}))
	defer ts.Close()

	// httptest serves on a loopback IP, which the jar refuses by default
	jar := New(Options{Unsafe: true})
	client := &http.Client{Jar: HTTP(jar)}

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, received, "no cookies on the first request")

	resp, err = client.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, received, 1)
	assert.Equal(t, "sid", received[0].Name)
	assert.Equal(t, "abc", received[0].Value)
}
