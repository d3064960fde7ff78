package cookiejar

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// DummyJar is a CookieJar that stores nothing and sends nothing. Useful
// when a client must be built against the CookieJar interface but
// cookie handling is unwanted.
type DummyJar struct{}

func (DummyJar) SetCookies(*url.URL, []Cookie) {}

func (DummyJar) Cookies(*url.URL) []*http.Cookie { return nil }

func (DummyJar) Clear(func(Entry) bool) {}

func (DummyJar) ClearDomain(string) {}

func (DummyJar) Len() int { return 0 }

func (DummyJar) Entries() []Entry { return nil }

func (DummyJar) Restore([]Entry) error { return nil }

// Export returns an empty snapshot so persistence layers can treat a
// DummyJar like any other jar.
func (DummyJar) Export() ([]byte, error) {
	return json.Marshal(snapshot{Version: snapshotVersion})
}

func (DummyJar) Import([]byte) error { return nil }
