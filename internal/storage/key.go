package storage

import (
	"net/url"
	"strings"
)

// Prefixes under which media objects are stored
const (
	EventMediaPrefix   = "event-media"
	ProgramMediaPrefix = "program-media"
)

// KeyFromURL reverses a public object URL back into its storage key.
// Three heuristics are tried in order, from strict to permissive:
//
//  1. virtual-hosted URL: https://{bucket}.s3.{region}.amazonaws.com/{key}
//  2. path-style URL:     https://{host}/{bucket}/{key}
//  3. bare prefix match:  anything containing "event-media/" or
//     "program-media/" keeps the suffix starting at the prefix
//
// Returns false when none apply; callers must not mutate anything in
// that case.
func KeyFromURL(bucket, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "", false
	}
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	// 1. virtual-hosted style: key is the whole path
	if strings.HasPrefix(u.Host, bucket+".") && path != "" {
		return path, true
	}

	// 2. path-style: key follows the bucket segment
	if rest, ok := strings.CutPrefix(path, bucket+"/"); ok && rest != "" {
		return rest, true
	}

	// 3. permissive: locate a known media prefix anywhere in the path
	for _, prefix := range []string{EventMediaPrefix, ProgramMediaPrefix} {
		if idx := strings.Index(path, prefix+"/"); idx >= 0 {
			key := path[idx:]
			if key != prefix+"/" {
				return key, true
			}
		}
	}

	return "", false
}
