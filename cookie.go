// Package cookiejar implements an RFC 6265 client-side cookie store:
// it decides whether to accept cookies set by a response, normalizes
// their domain, path and expiration, and selects the cookies to attach
// to a request for a given URL.
//
// The package does not parse Set-Cookie header lines; it consumes
// attribute records already tokenized by the HTTP layer.
package cookiejar

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Cookie is one raw attribute record produced by a header-parsing
// collaborator. Expires and MaxAge carry the attribute values as they
// appeared on the wire; the jar interprets them during SetCookies.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
	// Expires is the raw Expires attribute, parsed leniently per
	// RFC 6265 section 5.1.1.
	Expires string
	// MaxAge is the raw Max-Age attribute. It wins over Expires when
	// it parses as an integer.
	MaxAge string
	Secure bool
}

// FromHTTP converts cookies parsed by net/http into attribute records.
// RawExpires is preferred over the parsed Expires time so the jar's own
// date parser stays authoritative.
func FromHTTP(cookies []*http.Cookie) []Cookie {
	records := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		record := Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
			Secure: c.Secure,
		}
		switch {
		case c.MaxAge > 0:
			record.MaxAge = strconv.Itoa(c.MaxAge)
		case c.MaxAge < 0:
			record.MaxAge = "-1"
		}
		if c.RawExpires != "" {
			record.Expires = c.RawExpires
		} else if !c.Expires.IsZero() {
			record.Expires = c.Expires.UTC().Format(http.TimeFormat)
		}
		records = append(records, record)
	}
	return records
}

// Entry is one stored cookie. Domain is normalized (lowercase, no
// leading dot); an empty Domain marks a cookie stored without origin
// context, sent with every request. A zero Expires marks a session
// cookie that never auto-expires.
type Entry struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Secure   bool      `json:"secure"`
	HostOnly bool      `json:"host_only"`
	Expires  time.Time `json:"expires"`
}

// CookieJar manages storage and use of cookies in HTTP requests.
// Jar is the real store; DummyJar ignores everything.
type CookieJar interface {
	// SetCookies handles the receipt of the cookies in a reply for the
	// given URL. Malformed records are dropped silently.
	SetCookies(u *url.URL, cookies []Cookie)
	// Cookies returns the cookies to send in a request for the given
	// URL. Only Name and Value are populated.
	Cookies(u *url.URL) []*http.Cookie
	// Clear removes every entry the predicate matches, or all entries
	// when pred is nil.
	Clear(pred func(Entry) bool)
	// ClearDomain removes every entry whose domain equals or is a
	// subdomain of the given domain.
	ClearDomain(domain string)
	// Len reports the number of unexpired entries.
	Len() int
	// Entries returns a copy of all unexpired entries in the same
	// deterministic order Cookies iterates them.
	Entries() []Entry
	// Restore replaces the whole entry set.
	Restore(entries []Entry) error
	// Export returns an opaque snapshot of the entry set.
	Export() ([]byte, error)
	// Import replaces the entry set with a snapshot produced by Export.
	Import(data []byte) error
}

type entryKey struct {
	domain, path, name string
}

type hostKey struct {
	host, name string
}
