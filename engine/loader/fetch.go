package loader

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// modelExt returns the format extension of a model URL, ignoring a trailing .gz.
func modelExt(u string) string {
	p := u
	if parsed, err := url.Parse(u); err == nil && parsed.Scheme != "" && parsed.Path != "" {
		p = parsed.Path
	}
	p = strings.TrimSuffix(strings.ToLower(p), ".gz")
	return path.Ext(p)
}

func isRemote(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isCompressed(u string) bool {
	p := u
	if parsed, err := url.Parse(u); err == nil && parsed.Scheme != "" && parsed.Path != "" {
		p = parsed.Path
	}
	return strings.HasSuffix(strings.ToLower(p), ".gz")
}

// open returns a reader over the raw bytes of u.
func (l *loader) open(ctx context.Context, u string) (io.ReadCloser, error) {
	if !isRemote(u) {
		return os.Open(u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return resp.Body, nil
}

// localize makes u available as a decompressed local file with its model extension. The cleanup
// function removes any temporary file and is never nil.
func (l *loader) localize(ctx context.Context, u string) (string, func(), error) {
	noop := func() {}
	if !isRemote(u) && !isCompressed(u) {
		return u, noop, nil
	}

	src, err := l.open(ctx, u)
	if err != nil {
		return "", noop, err
	}
	defer src.Close()

	var r io.Reader = src
	if isCompressed(u) {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return "", noop, fmt.Errorf("decompress %s: %w", u, err)
		}
		defer gz.Close()
		r = gz
	}

	tmp, err := os.CreateTemp(l.tempDir, "model-*"+modelExt(u))
	if err != nil {
		return "", noop, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return "", noop, fmt.Errorf("read %s: %w", u, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, err
	}
	return filepath.Clean(tmp.Name()), cleanup, nil
}
