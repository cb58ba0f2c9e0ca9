package jupyter

import (
	"net/url"
	"strings"
)

// JoinEncode appends the percent-encoded path segments of parts to base.
// Empty segments are dropped, so "a//b" and "a/b" join the same way.
func JoinEncode(base string, parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		for _, seg := range strings.Split(part, "/") {
			if seg == "" {
				continue
			}
			segments = append(segments, url.PathEscape(seg))
		}
	}
	base = strings.TrimRight(base, "/")
	if len(segments) == 0 {
		return base + "/"
	}
	return base + "/" + strings.Join(segments, "/")
}

// PathSplit splits a server path into its directory and final element.
func PathSplit(path string) (dir, name string) {
	path = strings.Trim(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// APIPath joins the REST API prefix with the given parts.
func APIPath(base string, parts ...string) string {
	return JoinEncode(base, append([]string{"api"}, parts...)...)
}
