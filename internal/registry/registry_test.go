package registry

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Registration
		wantErr  bool
	}{
		{"Plain number", "229885", 229885, false},
		{"Already padded", "00229885", 229885, false},
		{"Surrounding whitespace", " 229885 ", 229885, false},
		{"Zero", "0", 0, false},
		{"Large value", "123456789", 123456789, false},
		{"Empty", "", 0, true},
		{"Whitespace only", "   ", 0, true},
		{"Not a number", "abc", 0, true},
		{"Mixed", "12a4", 0, true},
		{"Negative", "-5", 0, true},
		{"Decimal", "12.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := ParseRegistration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *InvalidIdentifierError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reg)
		})
	}
}

func TestRegistrationCanonical(t *testing.T) {
	tests := []struct {
		name     string
		reg      Registration
		expected string
	}{
		{"Pads to eight digits", 229885, "00229885"},
		{"Small value", 1, "00000001"},
		{"Exactly eight digits", 99999999, "99999999"},
		{"Nine digits kept intact", 123456789, "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reg.Canonical())
		})
	}
}

func TestRegistrationBucket(t *testing.T) {
	tests := []struct {
		name     string
		reg      Registration
		expected string
	}{
		{"Below boundary", 999, "00001000"},
		{"Exact multiple maps to itself", 1000, "00001000"},
		{"Just past boundary", 1001, "00002000"},
		{"Mid range", 229885, "00230000"},
		{"One", 1, "00001000"},
		{"Large multiple", 230000, "00230000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reg.Bucket())
		})
	}
}

// Bucket must equal ceil(v/1000)*1000 across the 8-digit range; sweep a
// sample rather than the full space.
func TestRegistrationBucketSweep(t *testing.T) {
	for v := int64(1); v <= 5000; v += 13 {
		expected := (v + 999) / 1000 * 1000
		got := Registration(v).Bucket()
		require.Len(t, got, 8, "bucket(%d)", v)

		parsed, err := strconv.ParseInt(got, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, expected, parsed, "bucket(%d)", v)
	}
}

func TestResolveExactMatch(t *testing.T) {
	base := t.TempDir()
	bucketDir := filepath.Join(base, "00230000")
	require.NoError(t, os.MkdirAll(bucketDir, 0o755))
	docPath := filepath.Join(bucketDir, "00229885.tif")
	require.NoError(t, os.WriteFile(docPath, []byte("tiff"), 0o644))

	resolver := NewResolver(base)
	res, err := resolver.Resolve(context.Background(), " 229885 ")
	require.NoError(t, err)

	assert.Equal(t, Registration(229885), res.Registration)
	assert.Equal(t, "00230000", res.Bucket)
	assert.Equal(t, docPath, res.Path)
}

func TestResolveCaseInsensitiveExtension(t *testing.T) {
	base := t.TempDir()
	bucketDir := filepath.Join(base, "00230000")
	require.NoError(t, os.MkdirAll(bucketDir, 0o755))
	docPath := filepath.Join(bucketDir, "00229885.TIF")
	require.NoError(t, os.WriteFile(docPath, []byte("tiff"), 0o644))

	resolver := NewResolver(base)
	res, err := resolver.Resolve(context.Background(), "229885")
	require.NoError(t, err)
	assert.Equal(t, docPath, res.Path)
}

func TestResolveFileMissing(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "00230000"), 0o755))

	resolver := NewResolver(base)
	_, err := resolver.Resolve(context.Background(), "229885")
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, ReasonNotFound, netErr.Reason)
}

func TestResolveBucketMissing(t *testing.T) {
	base := t.TempDir()

	resolver := NewResolver(base)
	_, err := resolver.Resolve(context.Background(), "229885")
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, ReasonNotFound, netErr.Reason)
	assert.Contains(t, netErr.Path, "00230000")
}

func TestResolveInvalidIdentifier(t *testing.T) {
	resolver := NewResolver(t.TempDir())
	_, err := resolver.Resolve(context.Background(), "not-a-number")
	require.Error(t, err)

	var invalid *InvalidIdentifierError
	assert.ErrorAs(t, err, &invalid)
}

func TestResolveCancelledContext(t *testing.T) {
	resolver := NewResolver(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "229885")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreflight(t *testing.T) {
	t.Run("Reachable base", func(t *testing.T) {
		resolver := NewResolver(t.TempDir())
		assert.NoError(t, resolver.Preflight(context.Background()))
	})

	t.Run("Missing base", func(t *testing.T) {
		resolver := NewResolver(filepath.Join(t.TempDir(), "nope"))
		err := resolver.Preflight(context.Background())
		require.Error(t, err)

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, ReasonNotFound, netErr.Reason)
	})

	t.Run("Base is a file", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))

		resolver := NewResolver(base)
		err := resolver.Preflight(context.Background())
		require.Error(t, err)

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, ReasonNotFound, netErr.Reason)
	})
}

func TestClassifyFSError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureReason
	}{
		{"Not exist", fs.ErrNotExist, ReasonNotFound},
		{"Permission", fs.ErrPermission, ReasonAccessDenied},
		{"Wrapped not exist", &fs.PathError{Op: "stat", Path: "/x", Err: fs.ErrNotExist}, ReasonNotFound},
		{"Wrapped permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, ReasonAccessDenied},
		{"Anything else", errors.New("host is down"), ReasonUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			netErr := classifyFSError("/share/path", tt.err)
			assert.Equal(t, tt.expected, netErr.Reason)
			assert.Equal(t, "/share/path", netErr.Path)
			assert.ErrorIs(t, netErr, tt.err)
		})
	}
}
