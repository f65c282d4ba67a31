// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize caps JSON request bodies (register, comment, etc.).
	MaxJSONBodySize = 64 << 10 // 64 KB

	// MaxPostFormSize is the multipart memory limit for post creation.
	// The photo itself streams to storage; this bounds the in-memory part.
	MaxPostFormSize = 10 << 20 // 10 MB

	// MaxAvatarSize caps avatar uploads.
	MaxAvatarSize = 5 << 20 // 5 MB
)
