package tagsheet

import (
	"fmt"
	"net/url"
	"strconv"
)

// tagPath is the location of a tag page below the site origin.
const tagPath = "media/advideogame/occurrences"

// TagURL returns the address of the tag page of occurrence id:
// <origin>/media/advideogame/occurrences/<id>/tags/v2.html. The origin must
// carry a scheme and a host; its own path, if any, is kept as a prefix.
func TagURL(origin string, id int) (string, error) {
	u, err := parseOrigin(origin)
	if err != nil {
		return "", err
	}
	return u.JoinPath(tagPath, strconv.Itoa(id), "tags", "v2.html").String(), nil
}

// TagFile returns the file name a tag capture is saved under.
func TagFile(id int) string {
	return fmt.Sprintf("tag_%d.png", id)
}

func parseOrigin(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w %q: scheme and host are required", ErrInvalidURL, raw)
	}
	return u, nil
}
