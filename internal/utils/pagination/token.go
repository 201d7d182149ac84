package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeToken creates a URL-safe token from the (date, recordID) keyset position of the
// last row of a page.
func EncodeToken(date time.Time, recordID string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.UTC().Format(dateFormat), recordID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token created by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, parts[1], nil
}
