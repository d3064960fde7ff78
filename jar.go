package cookiejar

import (
	"cmp"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/net/publicsuffix"
)

// maxAgeSeconds bounds a Max-Age delta before it is applied to the
// clock, keeping the arithmetic clear of time.Duration overflow.
const maxAgeSeconds = int64(1) << 37

// Jar is an in-memory cookie store implementing CookieJar. All
// operations are guarded by a single lock so an ingest is never
// half-visible to a concurrent select.
type Jar struct {
	mu            sync.Mutex
	entries       map[entryKey]*Entry
	hostOnly      map[hostKey]struct{}
	expirations   map[entryKey]time.Time
	next          time.Time
	unsafe        bool
	publicSuffix  bool
	treatAsSecure map[string]struct{}
	now           func() time.Time
}

// New returns an empty Jar configured by opts.
func New(opts Options) *Jar {
	j := &Jar{
		entries:      make(map[entryKey]*Entry),
		hostOnly:     make(map[hostKey]struct{}),
		expirations:  make(map[entryKey]time.Time),
		next:         endOfTime,
		unsafe:       opts.Unsafe,
		publicSuffix: opts.PublicSuffix,
		now:          opts.Now,
	}
	if len(opts.TreatAsSecure) > 0 {
		j.treatAsSecure = make(map[string]struct{}, len(opts.TreatAsSecure))
		for _, origin := range opts.TreatAsSecure {
			j.treatAsSecure[strings.ToLower(origin)] = struct{}{}
		}
	}
	if j.now == nil {
		j.now = time.Now
	}
	return j
}

// SetCookies handles the receipt of the cookies in a reply for the
// given URL. A malformed record is dropped without affecting its
// siblings; nothing is reported back to the caller.
func (j *Jar) SetCookies(u *url.URL, cookies []Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	host := strings.ToLower(u.Hostname())
	if !j.unsafe && isIP(host) {
		// Don't accept cookies from IP hosts.
		return
	}

	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		domain := strings.ToLower(c.Domain)
		if strings.HasSuffix(domain, ".") {
			// A trailing dot counts as no Domain attribute at all.
			domain = ""
		}

		hostOnly := false
		if domain == "" && host != "" {
			domain = host
			hostOnly = true
		}
		domain = strings.TrimPrefix(domain, ".")

		if host != "" && !domainMatches(domain, host) {
			// A server may only set cookies for itself or its
			// superdomains.
			continue
		}
		if j.publicSuffix && !hostOnly && rejectPublicSuffix(domain, host) {
			continue
		}

		path := c.Path
		if path == "" || !strings.HasPrefix(path, "/") {
			path = defaultPath(u.Path)
		}

		var expires time.Time
		resolved := false
		if c.MaxAge != "" {
			if seconds, err := cast.ToInt64E(strings.TrimSpace(c.MaxAge)); err == nil {
				expires = addSeconds(now, seconds)
				resolved = true
			}
		}
		if !resolved && c.Expires != "" {
			expires, _ = parseDate(c.Expires)
		}

		if hostOnly {
			j.hostOnly[hostKey{host, c.Name}] = struct{}{}
		}
		key := entryKey{domain, path, c.Name}
		_, registered := j.hostOnly[hostKey{domain, c.Name}]
		j.entries[key] = &Entry{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     path,
			Secure:   c.Secure,
			HostOnly: registered,
			Expires:  expires,
		}
		if expires.IsZero() {
			delete(j.expirations, key)
		} else {
			j.expirations[key] = expires
			if expires.Before(j.next) {
				j.next = expires
			}
		}
	}

	j.sweep(now)
}

// Cookies returns the cookies to send in a request for the given URL,
// shortest path first, one value per name. Only Name and Value are
// populated.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.sweep(j.now())
	if len(j.entries) == 0 {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	hostIsIP := isIP(host)
	insecure := !j.secureContext(u)

	var cookies []*http.Cookie
	index := make(map[string]int)
	include := func(e *Entry) {
		if i, ok := index[e.Name]; ok {
			cookies[i].Value = e.Value
			return
		}
		index[e.Name] = len(cookies)
		cookies = append(cookies, &http.Cookie{Name: e.Name, Value: e.Value})
	}

	for _, e := range j.sorted() {
		if e.Domain == "" {
			// Stored without origin context, sent everywhere.
			include(e)
			continue
		}
		if !j.unsafe && hostIsIP {
			continue
		}
		if _, hostOnly := j.hostOnly[hostKey{e.Domain, e.Name}]; hostOnly {
			if e.Domain != host {
				continue
			}
		} else if !domainMatches(e.Domain, host) {
			continue
		}
		if !pathMatches(u.Path, e.Path) {
			continue
		}
		if e.Secure && insecure {
			continue
		}
		include(e)
	}
	return cookies
}

// Clear removes every entry matched by pred, or everything when pred
// is nil.
func (j *Jar) Clear(pred func(Entry) bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if pred == nil {
		j.entries = make(map[entryKey]*Entry)
		j.hostOnly = make(map[hostKey]struct{})
		j.expirations = make(map[entryKey]time.Time)
		j.next = endOfTime
		return
	}

	j.sweep(j.now())
	for key, e := range j.entries {
		if pred(*e) {
			j.remove(key)
		}
	}
	j.recomputeNext()
}

// ClearDomain removes every entry whose domain equals or is a
// subdomain of the given domain.
func (j *Jar) ClearDomain(domain string) {
	j.Clear(func(e Entry) bool {
		return domainMatches(domain, e.Domain)
	})
}

// Len reports the number of unexpired entries.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sweep(j.now())
	return len(j.entries)
}

// Entries returns a copy of all unexpired entries, in the order
// Cookies iterates them.
func (j *Jar) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sweep(j.now())
	sorted := j.sorted()
	entries := make([]Entry, len(sorted))
	for i, e := range sorted {
		entries[i] = *e
	}
	return entries
}

// sweep lazily removes entries whose expiration has passed. Cheap when
// nothing is due: it touches the index only when now has reached the
// earliest pending expiration.
func (j *Jar) sweep(now time.Time) {
	if now.Before(j.next) || len(j.expirations) == 0 {
		return
	}
	next := endOfTime
	for key, when := range j.expirations {
		if when.After(now) {
			if when.Before(next) {
				next = when
			}
			continue
		}
		j.remove(key)
	}
	j.next = next
}

func (j *Jar) remove(key entryKey) {
	delete(j.entries, key)
	delete(j.expirations, key)
	delete(j.hostOnly, hostKey{key.domain, key.name})
}

func (j *Jar) recomputeNext() {
	next := endOfTime
	for _, when := range j.expirations {
		if when.Before(next) {
			next = when
		}
	}
	j.next = next
}

// sorted returns the live entries ordered by ascending path length so
// more general cookies come first, with a total tie-break for
// deterministic output.
func (j *Jar) sorted() []*Entry {
	entries := make([]*Entry, 0, len(j.entries))
	for _, e := range j.entries {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *Entry) int {
		if c := cmp.Compare(len(a.Path), len(b.Path)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Domain, b.Domain); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

func (j *Jar) secureContext(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		return true
	}
	if j.treatAsSecure == nil {
		return false
	}
	origin := strings.ToLower(u.Scheme + "://" + u.Host)
	_, ok := j.treatAsSecure[origin]
	return ok
}

func addSeconds(now time.Time, seconds int64) time.Time {
	if seconds > maxAgeSeconds {
		seconds = maxAgeSeconds
	} else if seconds < -maxAgeSeconds {
		seconds = -maxAgeSeconds
	}
	// UTC also strips the monotonic reading so stored expirations
	// survive a snapshot round trip bit-for-bit.
	expires := now.Add(time.Duration(seconds) * time.Second).UTC()
	if expires.After(endOfTime) {
		return endOfTime
	}
	return expires
}

// rejectPublicSuffix reports whether an explicit Domain attribute names
// a public suffix it may not span, mirroring net/http/cookiejar's
// public suffix handling.
func rejectPublicSuffix(domain, host string) bool {
	if host == "" || domain == host {
		return false
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix == domain
}
