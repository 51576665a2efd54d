package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webseed"
)

// ComputeHash computes an xxhash digest of the content as a hex string.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ComputeHashBytes computes an xxhash digest of raw bytes as a hex string.
func ComputeHashBytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// ContentHash computes the format-independent hash of a document's
// visible content, used to detect unchanged re-fetches. Two documents
// with the same ordered visible tokens hash identically whatever
// output format is in use.
func ContentHash(nodes []webseed.Node) string {
	return ComputeHash(strings.Join(webseed.VisibleTokens(nodes), " "))
}

// OutputName derives a file name for a source's formatted output:
// scheme stripped, remaining characters outside [a-z0-9._-] collapsed
// to single dashes, and the formatter extension appended. Platform
// content IDs pass through with only the extension added.
func OutputName(source, ext string) string {
	name := source
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		name = u.Host + u.Path
		if u.RawQuery != "" {
			name += "-" + u.RawQuery
		}
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-.")
	if out == "" {
		out = "source"
	}
	return out + "." + ext
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(url) <= maxLen {
		return url
	}
	if maxLen < 4 {
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats a token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
