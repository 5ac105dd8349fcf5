package twitch

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint groups known to every Client. Additional groups can be registered
// with WithEndpoint.
const (
	EndpointHelix = "helix"
	EndpointAuth  = "auth"
)

// Default endpoint roots.
const (
	DefaultHelixURL = "https://api.twitch.tv/helix/"
	DefaultAuthURL  = "https://id.twitch.tv/oauth2/"
)

// endpoints maps an endpoint group name to its parsed root URL.
type endpoints map[string]*url.URL

func defaultEndpointRoots() map[string]string {
	return map[string]string{
		EndpointHelix: DefaultHelixURL,
		EndpointAuth:  DefaultAuthURL,
	}
}

// newEndpoints parses every root up front so that a malformed root fails
// client construction.
func newEndpoints(roots map[string]string) (endpoints, error) {
	table := make(endpoints, len(roots))
	for name, raw := range roots {
		root, err := parseRoot(raw)
		if err != nil {
			return nil, newError(ErrConfiguration, "parse endpoint "+name, err)
		}
		table[name] = root
	}
	return table, nil
}

// resolve joins path onto the root of the named group.
func (e endpoints) resolve(name, path string) (*url.URL, error) {
	root, ok := e[name]
	if !ok {
		return nil, newError(ErrConfiguration, "resolve endpoint", fmt.Errorf("%w: %q", ErrUnknownEndpoint, name))
	}

	u, err := joinPath(root, path)
	if err != nil {
		return nil, newError(ErrConfiguration, "resolve endpoint "+name, err)
	}
	return u, nil
}

// parseRoot parses an absolute endpoint root and makes sure it ends in a
// slash, so relative paths are appended to it instead of replacing its last
// segment.
func parseRoot(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("endpoint root %q is not an absolute URL", raw)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return u, nil
}

func joinPath(root *url.URL, path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	return root.ResolveReference(ref), nil
}
