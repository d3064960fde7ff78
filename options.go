package cookiejar

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options configures a Jar.
type Options struct {
	// Unsafe accepts cookies from, and sends cookies to, bare IP
	// hosts. Off by default: an IP host never domain-matches anything.
	Unsafe bool `yaml:"unsafe"`

	// TreatAsSecure lists origins ("scheme://host") treated as a
	// secure context even over an insecure scheme, so Secure cookies
	// are still attached. Typical entry: "http://localhost:8080".
	TreatAsSecure []string `yaml:"treat_as_secure"`

	// PublicSuffix rejects explicit Domain attributes that name a
	// public suffix, unless the response host is that suffix itself.
	PublicSuffix bool `yaml:"public_suffix"`

	// Now supplies the current time for expiration decisions.
	// Defaults to time.Now; inject a fixed clock in tests.
	Now func() time.Time `yaml:"-"`
}

// ReadOptions reads Options from a YAML file. A missing file yields the
// zero Options rather than an error.
func ReadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Options{}, nil
		}
		return nil, err
	}
	opts := new(Options)
	if err = yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("invalid options file %s: %w", path, err)
	}
	return opts, nil
}
