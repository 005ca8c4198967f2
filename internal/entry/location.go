package entry

import (
	"net/url"
	"path"
	"strings"
)

// Parent returns the location one segment above u: one trailing "/" is
// dropped, then everything from the last "/". A root location is its own
// parent.
func Parent(u *url.URL) *url.URL {
	base := *u
	base.RawQuery = ""
	base.Fragment = ""
	base.RawFragment = ""

	s := strings.TrimSuffix(base.String(), "/")
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return u
	}

	parent, err := url.Parse(s[:i])
	if err != nil || parent.Host == "" || parent.Host != u.Host || parent.Scheme != u.Scheme {
		return u
	}
	return parent
}

// IsRoot reports whether u has no parent
func IsRoot(u *url.URL) bool {
	return Parent(u) == u
}

// Join resolves an entry name against the directory u. u is treated as a
// directory whether or not it ends in "/".
func Join(u *url.URL, name string) *url.URL {
	base := *u
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		if base.RawPath != "" {
			base.RawPath += "/"
		}
	}
	base.RawQuery = ""
	base.Fragment = ""
	base.RawFragment = ""
	return base.ResolveReference(&url.URL{Path: name})
}

// Display is u percent-decoded for headers and messages. The encoded form
// is returned when decoding fails.
func Display(u *url.URL) string {
	s := u.String()
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// Label is the path of u without its leading "/", used to title paged files
func Label(u *url.URL) string {
	return strings.TrimPrefix(u.Path, "/")
}

// SuggestedName splits the last path segment of u into the name and
// extension offered when saving it locally. The extension has no dot.
func SuggestedName(u *url.URL) (name, ext string) {
	name = path.Base(strings.TrimSuffix(u.Path, "/"))
	if name == "/" || name == "." {
		name = u.Hostname()
	}
	ext = strings.TrimPrefix(path.Ext(name), ".")
	return name, ext
}
