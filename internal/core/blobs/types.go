package blobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageContentType is the content type recorded for uploaded post images.
// The submit API accepts a single base64 payload with no declared type, so
// every image is stored as PNG.
const ImageContentType = "image/png"

// MaxBlobSize is the maximum accepted blob payload (6MB).
const MaxBlobSize = 6 * 1024 * 1024

// ObjectName builds a storage object name for a post image.
// Format: {username}-{unixMilli}-{suffix}.png
// The millisecond timestamp keeps names greppable per user; the random
// suffix makes them collision-resistant under concurrent submits.
func ObjectName(username string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s.png", username, now.UnixMilli(), suffix)
}

// PublicURL converts a stored object name to its publicly retrievable
// locator. Returns empty string if any required parameter is empty.
// Format: {baseURL}/{bucket}/{name}
// With the default public endpoint this reproduces the locator format of
// previously stored objects (https://storage.googleapis.com/{bucket}/{name}),
// so the name is joined verbatim, without path escaping.
func PublicURL(baseURL, bucket, name string) string {
	if baseURL == "" || bucket == "" || name == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + bucket + "/" + name
}
