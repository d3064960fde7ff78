package cookiejar

import (
	"net/http"
	"net/url"
)

// httpJar adapts a CookieJar to net/http's CookieJar interface so it
// can be handed to an http.Client.
type httpJar struct {
	jar CookieJar
}

// HTTP wraps jar for use as an http.Client cookie jar. Response cookies
// are converted with FromHTTP before ingestion.
func HTTP(jar CookieJar) http.CookieJar {
	return httpJar{jar: jar}
}

// SetCookies handles the receipt of the cookies in a reply for the given URL.
func (h httpJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	h.jar.SetCookies(u, FromHTTP(cookies))
}

// Cookies returns the cookies to send in a request for the given URL.
func (h httpJar) Cookies(u *url.URL) []*http.Cookie {
	return h.jar.Cookies(u)
}
