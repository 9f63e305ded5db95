package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apparel-insights/inventory-sim/internal/results"
	"github.com/apparel-insights/inventory-sim/internal/storage"
)

type fakeObjectStorage struct {
	objects    []storage.ObjectInfo
	downloaded []string
}

func (f *fakeObjectStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return f.objects, nil
}

func (f *fakeObjectStorage) DownloadObject(ctx context.Context, key, dest string) error {
	f.downloaded = append(f.downloaded, key)
	return nil
}

type recordingCache struct {
	invalidations int
}

func (r *recordingCache) Get(ctx context.Context, key string) (*results.Response, bool, error) {
	return nil, false, nil
}

func (r *recordingCache) Set(ctx context.Context, key string, resp *results.Response) error {
	return nil
}

func (r *recordingCache) InvalidateAll(ctx context.Context) error {
	r.invalidations++
	return nil
}

func TestFetchObjects_InvalidatesCacheAfterDownload(t *testing.T) {
	client := &fakeObjectStorage{
		objects: []storage.ObjectInfo{
			{Key: "drops/nike_2024.csv", Size: 1024},
			{Key: "drops/adidas_2024.CSV", Size: 2048},
			{Key: "drops/manifest.json", Size: 64},
		},
	}
	simCache := &recordingCache{}

	downloaded, err := fetchObjects(context.Background(), client, simCache, "drops/", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2, downloaded)
	assert.Equal(t, []string{"drops/nike_2024.csv", "drops/adidas_2024.CSV"}, client.downloaded)
	assert.Equal(t, 1, simCache.invalidations, "refreshed data must evict cached responses")
}

func TestFetchObjects_NothingDownloadedKeepsCache(t *testing.T) {
	client := &fakeObjectStorage{
		objects: []storage.ObjectInfo{
			{Key: "drops/readme.md", Size: 12},
		},
	}
	simCache := &recordingCache{}

	downloaded, err := fetchObjects(context.Background(), client, simCache, "drops/", t.TempDir())
	require.NoError(t, err)

	assert.Zero(t, downloaded)
	assert.Zero(t, simCache.invalidations)
}
