package domain

import (
	"net/url"
	"strings"

	dErrors "paymediator/pkg/domain-errors"
)

// Origin is a web origin in serialized form: scheme "://" host [":" port].
// Default ports are elided and scheme/host are lowercased so two spellings of
// the same origin compare equal.
type Origin string

// ParseOrigin validates and canonicalizes a serialized origin. Paths other
// than "/" as well as queries, fragments and userinfo are rejected.
func ParseOrigin(s string) (Origin, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "origin must be a non-empty string")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidArgument, "origin is not a valid URL")
	}
	if u.Path != "" && u.Path != "/" {
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "origin %q must not contain a path", s)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "origin %q must not contain query, fragment or userinfo", s)
	}
	o, err := originOf(u)
	if err != nil {
		return "", err
	}
	return o, nil
}

// MustParseOrigin is ParseOrigin for constants and tests.
func MustParseOrigin(s string) Origin {
	o, err := ParseOrigin(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String returns the serialized origin.
func (o Origin) String() string {
	return string(o)
}

// IsNil reports whether the origin is empty.
func (o Origin) IsNil() bool {
	return o == ""
}

// NormalizeURL resolves raw relative to the origin and returns origin+pathname.
// Query and fragment are dropped. The resolved URL must share the origin,
// otherwise CodeOriginMismatch is returned.
func (o Origin) NormalizeURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "url must be a non-empty string")
	}
	base, err := url.Parse(string(o))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidArgument, "bound origin is not a valid URL")
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidArgument, "url is not valid")
	}
	resolved := base.ResolveReference(ref)
	got, err := originOf(resolved)
	if err != nil {
		return "", err
	}
	if got != o {
		return "", dErrors.Newf(dErrors.CodeOriginMismatch, "url %q must have an origin of %q", raw, o)
	}
	path := resolved.EscapedPath()
	if path == "" {
		path = "/"
	}
	return string(got) + path, nil
}

// OriginOfURL returns the origin of an absolute URL.
func OriginOfURL(raw string) (Origin, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidArgument, "url is not valid")
	}
	return originOf(u)
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

func originOf(u *url.URL) (Origin, error) {
	scheme := strings.ToLower(u.Scheme)
	if _, ok := defaultPorts[scheme]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "unsupported scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "url must have a host")
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host += ":" + port
	}
	return Origin(scheme + "://" + host), nil
}
