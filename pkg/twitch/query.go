package twitch

import "net/url"

// ExtendURL appends name once per value as a query string, e.g.
// ExtendURL("clips", "id", []string{"a", "b"}) == "clips?id=a&id=b".
// path is returned unchanged when values is empty.
func ExtendURL(path, name string, values []string) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + url.Values{name: values}.Encode()
}
