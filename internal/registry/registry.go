// Package registry resolves registration identifiers (prenotações) to scanned
// source documents stored in bucketed directories on the registry share.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Registration is a validated registration identifier.
type Registration int64

// ParseRegistration parses a raw identifier string. Surrounding whitespace and
// leading zeros are insignificant; anything that does not read as a
// non-negative integer is rejected.
func ParseRegistration(raw string) (Registration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &InvalidIdentifierError{Input: raw, Message: "identifier is empty"}
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &InvalidIdentifierError{Input: raw, Message: "identifier is not a number", Cause: err}
	}
	if value < 0 {
		return 0, &InvalidIdentifierError{Input: raw, Message: "identifier is negative"}
	}

	return Registration(value), nil
}

// Canonical returns the 8-digit zero-padded form of the identifier. Values
// that need more than eight digits keep their full width rather than being
// truncated.
func (r Registration) Canonical() string {
	return fmt.Sprintf("%08d", int64(r))
}

// Bucket returns the storage bucket the identifier files under: the smallest
// multiple of 1000 that is >= the identifier, zero-padded like Canonical.
// An identifier that is itself a multiple of 1000 maps to its own bucket.
func (r Registration) Bucket() string {
	bucket := (int64(r) + 999) / 1000 * 1000
	return fmt.Sprintf("%08d", bucket)
}

// Resolution describes a successfully located source document.
type Resolution struct {
	Registration Registration
	Bucket       string
	Path         string
}

// Resolver locates registration TIFFs under a share base path.
type Resolver struct {
	Base string
}

// NewResolver creates a Resolver rooted at the given share base path.
func NewResolver(base string) *Resolver {
	return &Resolver{Base: base}
}

// Preflight verifies the share base path is reachable before a run starts, so
// access problems surface as a precondition failure instead of mid-pipeline.
func (r *Resolver) Preflight(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(r.Base)
	if err != nil {
		return classifyFSError(r.Base, err)
	}
	if !info.IsDir() {
		return &NetworkError{Path: r.Base, Reason: ReasonNotFound, Message: "base path is not a directory"}
	}
	return nil
}

// Resolve maps a raw identifier to the document path inside its bucket.
// The exact canonical filename is tried first; if absent, the bucket listing
// is matched case-insensitively before giving up with a not-found error.
func (r *Resolver) Resolve(ctx context.Context, rawID string) (*Resolution, error) {
	reg, err := ParseRegistration(rawID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bucket := reg.Bucket()
	bucketDir := filepath.Join(r.Base, bucket)
	if _, err := os.Stat(bucketDir); err != nil {
		return nil, classifyFSError(bucketDir, err)
	}

	canonical := reg.Canonical()
	expected := filepath.Join(bucketDir, canonical+".tif")
	if _, err := os.Stat(expected); err == nil {
		return &Resolution{Registration: reg, Bucket: bucket, Path: expected}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, classifyFSError(expected, err)
	}

	match, err := findInsensitive(bucketDir, canonical+".tif")
	if err != nil {
		return nil, err
	}
	if match == "" {
		return nil, &NetworkError{
			Path:    expected,
			Reason:  ReasonNotFound,
			Message: fmt.Sprintf("no document for registration %s in bucket %s", canonical, bucket),
		}
	}

	return &Resolution{Registration: reg, Bucket: bucket, Path: filepath.Join(bucketDir, match)}, nil
}

// findInsensitive scans dir for an entry whose name equals want ignoring case.
// Returns the entry's actual name, or "" when nothing matches.
func findInsensitive(dir, want string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", classifyFSError(dir, err)
	}

	lowered := strings.ToLower(want)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(entry.Name()) == lowered {
			return entry.Name(), nil
		}
	}
	return "", nil
}
