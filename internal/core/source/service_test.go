package source_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/apperr"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/internal/platform/remote/remotetest"
	"github.com/taibuivan/citely/pkg/optional"
)

func newService(t *testing.T) (*source.Service, *remotetest.Server) {
	t.Helper()

	fake := remotetest.NewServer(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return source.NewService(source.NewRemoteRepository(fake.Client()), logger), fake
}

/*
TestCreateThenGet_RoundTrip verifies that for every variant the required fields
survive a create/get round trip and omitted optional fields stay absent.
*/
func TestCreateThenGet_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		create     func(ctx context.Context, svc *source.Service) (*source.Source, error)
		wantType   source.Type
		wantKeys   []string
		absentKeys []string
		wantTitle  string
		wantAuthor string
	}{
		{
			name: "book",
			create: func(ctx context.Context, svc *source.Service) (*source.Source, error) {
				return svc.CreateBook(ctx, source.BookFields{
					Title:     "Design Patterns: Elements of Reusable Object-Oriented Software",
					Author:    "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
					Publisher: optional.Of("Addison-Wesley Professional"),
				})
			},
			wantType:   source.TypeBook,
			wantKeys:   []string{"title", "author", "type", "publisher"},
			absentKeys: []string{"year", "isbn", "journal", "duration"},
			wantTitle:  "Design Patterns: Elements of Reusable Object-Oriented Software",
			wantAuthor: "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
		},
		{
			name: "article",
			create: func(ctx context.Context, svc *source.Service) (*source.Source, error) {
				return svc.CreateArticle(ctx, source.ArticleFields{
					Title:  "The Cathedral and the Bazaar",
					Author: "Eric S. Raymond",
					DOI:    optional.Of("10.5210/fm.v3i3.578"),
					Issue:  optional.Of("3"),
				})
			},
			wantType:   source.TypeArticle,
			wantKeys:   []string{"title", "author", "type", "doi", "issue"},
			absentKeys: []string{"journal", "year", "volume", "pages", "publisher"},
			wantTitle:  "The Cathedral and the Bazaar",
			wantAuthor: "Eric S. Raymond",
		},
		{
			name: "video",
			create: func(ctx context.Context, svc *source.Service) (*source.Source, error) {
				return svc.CreateVideo(ctx, source.VideoFields{
					Title:    "Clean Code: A Handbook of Agile Software Craftsmanship",
					Author:   "Robert C. Martin",
					Duration: optional.Of(3600),
				})
			},
			wantType:   source.TypeVideo,
			wantKeys:   []string{"title", "author", "type", "duration"},
			absentKeys: []string{"platform", "year", "url", "isbn"},
			wantTitle:  "Clean Code: A Handbook of Agile Software Craftsmanship",
			wantAuthor: "Robert C. Martin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, fake := newService(t)

			created, err := tt.create(ctx, svc)
			require.NoError(t, err)
			require.True(t, created.HasID())

			// Stored document carries exactly the supplied keys.
			doc, ok := fake.Record(created.IDValue())
			require.True(t, ok)
			for _, key := range tt.wantKeys {
				assert.Contains(t, doc, key)
			}
			for _, key := range tt.absentKeys {
				assert.NotContains(t, doc, key)
			}

			fetched, err := svc.GetSource(ctx, created.IDValue())
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, fetched.Title)
			assert.Equal(t, tt.wantAuthor, fetched.Author)
			assert.Equal(t, tt.wantType, fetched.Type)
			if diff := cmp.Diff(created, fetched); diff != "" {
				t.Errorf("fetched record differs from created (-created +fetched):\n%s", diff)
			}
		})
	}
}

/*
TestCreateBook_ZeroValuesArePresent verifies that presence is decided by the
caller supplying a field, not by its value being non-zero.
*/
func TestCreateBook_ZeroValuesArePresent(t *testing.T) {
	svc, fake := newService(t)

	created, err := svc.CreateBook(context.Background(), source.BookFields{
		Title:     "Anonymous Pamphlet",
		Author:    "Unknown",
		Year:      optional.Of(0),
		Publisher: optional.Of(""),
	})
	require.NoError(t, err)

	doc, ok := fake.Record(created.IDValue())
	require.True(t, ok)
	assert.Contains(t, doc, "year")
	assert.EqualValues(t, 0, doc["year"])
	assert.Contains(t, doc, "publisher")
	assert.NotContains(t, doc, "isbn")

	require.NotNil(t, created.Year)
	assert.Equal(t, 0, *created.Year)
}

/*
TestCreateSource_Validation verifies no remote call is made for invalid records.
*/
func TestCreateSource_Validation(t *testing.T) {
	tests := []struct {
		name string
		src  source.Source
	}{
		{"missing_title", source.Source{Author: "Eric S. Raymond", Type: source.TypeArticle}},
		{"blank_author", source.Source{Title: "Clean Code", Author: "  ", Type: source.TypeVideo}},
		{"unknown_type", source.Source{Title: "Clean Code", Author: "Robert C. Martin", Type: "PODCAST"}},
		{"negative_duration", source.VideoFields{Title: "Clean Code", Author: "Robert C. Martin", Duration: optional.Of(-1)}.Source()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fake := newService(t)

			_, err := svc.CreateSource(context.Background(), tt.src)

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Equal(t, 0, fake.Requests())
		})
	}
}

/*
TestCreateSource_ServiceDown verifies transport failures come back as errors
that still expose the transport failure kind.
*/
func TestCreateSource_ServiceDown(t *testing.T) {
	svc, fake := newService(t)
	fake.SetDown(true)

	created, err := svc.CreateBook(context.Background(), source.BookFields{Title: "Design Patterns", Author: "Gamma"})

	assert.Nil(t, created)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "UPSTREAM_FAILURE"))
	assert.True(t, remote.IsKind(err, remote.KindStatus))
	assert.Equal(t, 503, remote.StatusCode(err))
}

/*
TestGetSource_Failures covers the id guard and the 404 mapping.
*/
func TestGetSource_Failures(t *testing.T) {
	svc, fake := newService(t)

	_, err := svc.GetSource(context.Background(), 0)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	assert.Equal(t, 0, fake.Requests())

	_, err = svc.GetSource(context.Background(), 999)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	fake.SetDown(true)
	_, err = svc.GetSource(context.Background(), 1)
	assert.True(t, apperr.HasCode(err, "UPSTREAM_FAILURE"))
}
