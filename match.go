package cookiejar

import (
	"net"
	"strings"
)

// domainMatches reports whether a host domain-matches a cookie domain
// per RFC 6265 section 5.1.3. A suffix only matches at a label
// boundary, and IP hosts never match a shorter suffix.
func domainMatches(domain, host string) bool {
	if host == domain {
		return true
	}
	if domain == "" || !strings.HasSuffix(host, domain) {
		return false
	}
	if host[len(host)-len(domain)-1] != '.' {
		return false
	}
	return !isIP(host)
}

// pathMatches reports whether a request path path-matches a cookie path
// per RFC 6265 section 5.1.4. An empty request path counts as "/".
func pathMatches(requestPath, cookiePath string) bool {
	if requestPath == "" {
		requestPath = "/"
	}
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if strings.HasSuffix(cookiePath, "/") {
		return true
	}
	return requestPath[len(cookiePath)] == '/'
}

// defaultPath derives the cookie default-path from the response URL
// path: everything up to, not including, the rightmost "/".
func defaultPath(responsePath string) string {
	if !strings.HasPrefix(responsePath, "/") {
		return "/"
	}
	if i := strings.LastIndexByte(responsePath, '/'); i > 0 {
		return responsePath[:i]
	}
	return "/"
}

func isIP(host string) bool {
	if host == "" {
		return false
	}
	return net.ParseIP(strings.Trim(host, "[]")) != nil
}
