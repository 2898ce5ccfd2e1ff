// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package lake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	objectTimeout  = 2 * time.Minute
	listTimeout    = 30 * time.Second
	ndjsonMimeType = "application/json"
)

// Sink receives repaired batch files.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Bucket is a Cloud Storage bucket holding the raw lake.
type Bucket struct {
	client *storage.Client
	name   string
}

// NewBucket opens name with read-write scope.
func NewBucket(ctx context.Context, name string, opts ...option.ClientOption) (*Bucket, error) {
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Bucket{client: client, name: name}, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.name }

// Put uploads data to the named object, replacing it.
func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, objectTimeout)
	defer cancel()

	w := b.client.Bucket(b.name).Object(name).NewWriter(ctx)
	w.ContentType = ndjsonMimeType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", b.name, name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close gs://%s/%s: %w", b.name, name, err)
	}
	return nil
}

// Get downloads the named object.
func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, objectTimeout)
	defer cancel()

	r, err := b.client.Bucket(b.name).Object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", b.name, name, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// List returns the object names under prefix.
func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	it := b.client.Bucket(b.name).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gs://%s/%s: %w", b.name, prefix, err)
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

// Close releases the storage client.
func (b *Bucket) Close() error {
	return b.client.Close()
}

// DirSink writes objects under a local directory, mirroring object paths.
type DirSink struct {
	Root string
}

// Put implements Sink.
func (s DirSink) Put(_ context.Context, name string, data []byte) error {
	dst := filepath.Join(s.Root, filepath.FromSlash(path.Clean("/" + name)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}
