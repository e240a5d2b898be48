package bluesky

import (
	"fmt"
	"regexp"
)

// postCollection is the record collection holding ordinary posts; only these
// have a canonical bsky.app URL.
const postCollection = "app.bsky.feed.post"

var atURIPattern = regexp.MustCompile(`^at://([^/]+)/([^/]+)/([^/]+)$`)

// PostURL converts a post AT URI of the form
// at://<authority>/<collection>/<rkey> into its bsky.app web URL. The second
// return value is false for malformed URIs and for collections other than
// app.bsky.feed.post.
func PostURL(atURI string) (string, bool) {
	match := atURIPattern.FindStringSubmatch(atURI)
	if match == nil {
		return "", false
	}

	authority, collection, rkey := match[1], match[2], match[3]
	if collection != postCollection {
		return "", false
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", authority, rkey), true
}
