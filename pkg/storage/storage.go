package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectStorage is the contract for the image store. Keys are deterministic
// strings derived from entity ids; writing an existing key replaces it.
type ObjectStorage interface {
	// Put stores the content of r under key.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// PresignGet returns a URL that grants read access to key for ttl.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ProfileImageKey is the object key of a user's profile picture.
func ProfileImageKey(userID uint) string {
	return fmt.Sprintf("Image-EdApp:%d", userID)
}

// OrgIconKey is the object key of a school's icon.
func OrgIconKey(orgID uint) string {
	return fmt.Sprintf("OrgIcon-%d", orgID)
}
