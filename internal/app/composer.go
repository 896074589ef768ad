package app

import (
	"net/url"
	"strings"

	"github.com/jsamuelsen/viewlink/internal/domain"
)

// Path segments of the fixed link shapes.
const (
	segmentBrowse = "browse"
	segmentEdit   = "edit"
)

// Schemes that require a host.
var hierarchicalSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// ComposeURL joins host and segments with "/", appends params as query
// pairs in order and returns the serialized absolute URL.
// A malformed result is reported as URL_ERROR.
func ComposeURL(host string, segments []string, params domain.Params) (string, error) {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = escapeStrayPercent(segment)
	}

	raw := host + "/" + strings.Join(escaped, "/")

	u, err := url.Parse(raw)
	if err != nil {
		return "", domain.WrapError(domain.CodeURLError, err)
	}

	if u.Scheme == "" || (hierarchicalSchemes[strings.ToLower(u.Scheme)] && u.Host == "") {
		return "", domain.NewError(domain.CodeURLError, "Invalid URL: "+raw)
	}

	AppendQuery(u, params)

	return u.String(), nil
}

// AppendQuery appends params to the query of u. Existing pairs are kept and
// repeated keys are never merged.
func AppendQuery(u *url.URL, params domain.Params) {
	if len(params) == 0 {
		return
	}

	var b strings.Builder

	b.WriteString(u.RawQuery)

	for _, p := range params {
		if b.Len() > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(stringify(p.Value)))
	}

	u.RawQuery = b.String()
	u.ForceQuery = false
}

// escapeStrayPercent encodes every "%" that does not start a valid
// percent-escape, so url.Parse accepts segments such as "a%zz".
func escapeStrayPercent(segment string) string {
	if !strings.Contains(segment, "%") {
		return segment
	}

	var b strings.Builder

	for i := 0; i < len(segment); i++ {
		if segment[i] == '%' && (i+2 >= len(segment) || !isHex(segment[i+1]) || !isHex(segment[i+2])) {
			b.WriteString("%25")
			continue
		}

		b.WriteByte(segment[i])
	}

	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func browseSegments(service, entity string) []string {
	return []string{service, entity, segmentBrowse}
}

func editSegments(service, entity, entityID string) []string {
	return []string{service, entity, segmentEdit, entityID}
}
