// Package storage keeps team logos in an S3-compatible bucket (Cloudflare R2)
// and builds the public URLs the portal renders.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
)

var ErrStorageNotConfigured = errors.New("file storage is not configured")

// StoredObject describes a logo after it landed in the bucket.
type StoredObject struct {
	Key  string
	URL  string
	ETag string
}

// FileUploader stores team logos. Keys come from TeamLogoKey; a team's old
// logo is deleted once the new key is saved on the team.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// IsLogoContentType accepts any image/* media type, parameters ignored.
func IsLogoContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}

// TeamLogoKey builds the object key for a team logo, keeping the extension of
// the uploaded file. version makes every upload a new object so CDN caches of
// the old logo never serve stale bytes.
func TeamLogoKey(teamID, filename, version string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("teams/%s/logo-%s%s", teamID, version, ext)
}

// PublicURL joins a public bucket URL and an object key.
func PublicURL(baseURL, key string) string {
	if baseURL == "" || key == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	base.Path = path.Join("/", base.Path, key)
	return base.String()
}
