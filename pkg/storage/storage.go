// Package storage is the blob store behind pet and campaign images. A
// driver stores bytes under a path and hands back a public URL; the rest
// of the system only ever persists that URL.
//
// Two drivers ship:
//   - "local" — local filesystem (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
package storage

import (
	"fmt"
	"sync"

	"github.com/pawhaven/pawhaven/config"
)

// Disk stores blobs under slash-separated paths.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// Get returns the full content of the blob at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a blob exists at path.
	Exists(path string) bool

	// Delete removes a blob. Removing a missing blob is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	// The S3 disk only boots when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			fmt.Printf("storage/s3: %v (disk disabled)\n", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (tests use this).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
	managerMu.Unlock()
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return Default().Put(path, content) }

// Get returns blob content from the default disk.
func Get(path string) ([]byte, error) { return Default().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return Default().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return Default().URL(path) }
