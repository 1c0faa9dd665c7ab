package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/docstore"
	"github.com/droidbay/catalog/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func slicePtr(s []string) *[]string { return &s }

func fullInput(name string) models.AppInput {
	return models.AppInput{
		Name:        strPtr(name),
		Category:    strPtr("Games"),
		Description: strPtr("A test app"),
		Version:     strPtr("1.0"),
		Size:        strPtr("10MB"),
		Downloads:   strPtr("100"),
		Rating:      floatPtr(4.0),
		Icon:        strPtr("https://example.com/icon.png"),
		Screenshots: slicePtr([]string{"https://example.com/shot.png"}),
		Developer:   strPtr("Test Dev"),
		Price:       strPtr("Free"),
	}
}

type catalogFixture struct {
	catalog   *CatalogService
	artifacts *ArtifactStore
	uploadDir string
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	log := logger.New("error", "text")
	store, err := docstore.NewFileStore(t.TempDir(), log)
	require.NoError(t, err)

	apps, err := repository.NewAppRepository(context.Background(), store)
	require.NoError(t, err)

	categories, err := repository.NewCategoryRepository(context.Background(), store)
	require.NoError(t, err)

	uploadDir := t.TempDir()
	artifacts, err := NewArtifactStore(uploadDir, log)
	require.NoError(t, err)

	return &catalogFixture{
		catalog:   NewCatalogService(apps, categories, artifacts, log),
		artifacts: artifacts,
		uploadDir: uploadDir,
	}
}

func TestCreate_AssignsIncreasingIDsFromEmpty(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	first, err := f.catalog.Create(ctx, fullInput("First"))
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)
	assert.Nil(t, first.ApkFilename)

	second, err := f.catalog.Create(ctx, fullInput("Second"))
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestCreate_MissingFieldFailsValidation(t *testing.T) {
	f := newCatalogFixture(t)

	input := fullInput("Broken")
	input.Version = nil

	_, err := f.catalog.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "version")
}

func TestSearch_CaseInsensitiveSubstringOnName(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.catalog.Create(ctx, fullInput("Angry Birds"))
	require.NoError(t, err)
	_, err = f.catalog.Create(ctx, fullInput("Duolingo"))
	require.NoError(t, err)

	assert.Len(t, f.catalog.Search("angry"), 1)
	assert.Len(t, f.catalog.Search("BIRDS"), 1)
	assert.Len(t, f.catalog.Search("zzz"), 0)

	// Empty query matches everything
	assert.Len(t, f.catalog.Search(""), 2)
}

func TestUpdate_ReplacesFieldsButKeepsArtifactReference(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("Original"))
	require.NoError(t, err)

	_, _, err = f.catalog.AttachArtifact(ctx, app.ID, "build.apk", strings.NewReader("bytes"))
	require.NoError(t, err)

	updated, err := f.catalog.Update(ctx, app.ID, fullInput("Renamed"))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.ApkFilename)
}

func TestUpdate_UnknownIDReturnsNotFound(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.catalog.Update(context.Background(), "42", fullInput("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachArtifact_RejectsBadFilenames(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("App"))
	require.NoError(t, err)

	_, _, err = f.catalog.AttachArtifact(ctx, app.ID, "", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFilename)

	_, _, err = f.catalog.AttachArtifact(ctx, app.ID, "archive.zip", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadExtension)

	// Extension check is case-insensitive
	_, stored, err := f.catalog.AttachArtifact(ctx, app.ID, "Build.APK", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, app.ID+"_Build.APK", stored)
}

func TestAttachArtifact_UnknownIDReturnsNotFound(t *testing.T) {
	f := newCatalogFixture(t)

	_, _, err := f.catalog.AttachArtifact(context.Background(), "42", "a.apk", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNotFound)
}

// errReader fails partway through a stream
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("stream broken") }

func TestAttachArtifact_WriteFailureLeavesMetadataUntouched(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("App"))
	require.NoError(t, err)

	_, _, err = f.catalog.AttachArtifact(ctx, app.ID, "build.apk", errReader{})
	require.ErrorIs(t, err, ErrStorage)

	current, err := f.catalog.Get(app.ID)
	require.NoError(t, err)
	assert.Nil(t, current.ApkFilename)

	// With no reference set, download reports the artifact as unavailable
	_, _, err = f.catalog.OpenArtifact(app.ID)
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestOpenArtifact_SuggestedNameAndContent(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("Angry Birds"))
	require.NoError(t, err)

	_, _, err = f.catalog.AttachArtifact(ctx, app.ID, "release.apk", strings.NewReader("apk-bytes"))
	require.NoError(t, err)

	rc, suggested, err := f.catalog.OpenArtifact(app.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "Angry Birds_1.0.apk", suggested)

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "apk-bytes", string(content))
}

func TestOpenArtifact_FileRemovedFromDisk(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("App"))
	require.NoError(t, err)

	_, stored, err := f.catalog.AttachArtifact(ctx, app.ID, "build.apk", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(f.uploadDir, stored)))

	_, _, err = f.catalog.OpenArtifact(app.ID)
	assert.ErrorIs(t, err, ErrArtifactGone)
}

func TestDelete_RemovesEntryButOrphansArtifactFile(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	app, err := f.catalog.Create(ctx, fullInput("App"))
	require.NoError(t, err)

	_, stored, err := f.catalog.AttachArtifact(ctx, app.ID, "build.apk", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, f.catalog.Delete(ctx, app.ID))
	assert.Empty(t, f.catalog.List())

	// The APK stays behind in the artifact store
	assert.True(t, f.artifacts.Exists(stored))

	assert.ErrorIs(t, f.catalog.Delete(ctx, app.ID), ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3_build.apk", "3_build.apk"},
		{"my app (final).apk", "my_app_final_.apk"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.apk", "evil.apk"},
		{"weird<>chars!!.apk", "weird_chars_.apk"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}
