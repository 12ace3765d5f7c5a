// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source models bibliographic sources (books, articles, videos) and
registers them with the remote citation service.

Optional metadata is carried in pointer fields: a nil field was never supplied
and is omitted from the transmitted record, while a non-nil field is sent even
when it holds a zero value. The Type decides which optional fields are
meaningful; it is fixed by the constructor that built the record.
*/
package source

import (
	"github.com/taibuivan/citely/internal/platform/validate"
	"github.com/taibuivan/citely/pkg/optional"
)

// # Types

// Type is the kind of bibliographic source.
type Type string

const (
	TypeBook    Type = "BOOK"
	TypeArticle Type = "ARTICLE"
	TypeVideo   Type = "VIDEO"
)

// IsValid reports whether t is one of the known source types.
func (t Type) IsValid() bool {
	switch t {
	case TypeBook, TypeArticle, TypeVideo:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (t Type) String() string { return string(t) }

// Source is a bibliographic record as exchanged with the citation service.
//
// ID is nil until the service has accepted the record.
type Source struct {
	ID     *int64 `json:"id,omitempty"     yaml:"id,omitempty"`
	Title  string `json:"title"            yaml:"title"`
	Author string `json:"author"           yaml:"author"`
	Type   Type   `json:"type"             yaml:"type"`

	// Shared by all variants.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// Book
	Publisher *string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ISBN      *string `json:"isbn,omitempty"      yaml:"isbn,omitempty"`

	// Article
	Journal *string `json:"journal,omitempty" yaml:"journal,omitempty"`
	DOI     *string `json:"doi,omitempty"     yaml:"doi,omitempty"`
	Volume  *string `json:"volume,omitempty"  yaml:"volume,omitempty"`
	Issue   *string `json:"issue,omitempty"   yaml:"issue,omitempty"`
	Pages   *string `json:"pages,omitempty"   yaml:"pages,omitempty"`

	// Video
	Platform *string `json:"platform,omitempty" yaml:"platform,omitempty"`
	URL      *string `json:"url,omitempty"      yaml:"url,omitempty"`
	Duration *int    `json:"duration,omitempty" yaml:"duration,omitempty"` // seconds
}

// HasID reports whether the service has assigned an id.
func (s *Source) HasID() bool {
	return s.ID != nil
}

// IDValue returns the assigned id, or 0 before creation.
func (s *Source) IDValue() int64 {
	return optional.Or(s.ID, 0)
}

// Clone returns a deep copy so working sets never share optional storage.
func (s Source) Clone() Source {
	return Source{
		ID:        optional.Clone(s.ID),
		Title:     s.Title,
		Author:    s.Author,
		Type:      s.Type,
		Year:      optional.Clone(s.Year),
		Publisher: optional.Clone(s.Publisher),
		ISBN:      optional.Clone(s.ISBN),
		Journal:   optional.Clone(s.Journal),
		DOI:       optional.Clone(s.DOI),
		Volume:    optional.Clone(s.Volume),
		Issue:     optional.Clone(s.Issue),
		Pages:     optional.Clone(s.Pages),
		Platform:  optional.Clone(s.Platform),
		URL:       optional.Clone(s.URL),
		Duration:  optional.Clone(s.Duration),
	}
}

// Validate checks the fields every source must carry before transmission.
func (s *Source) Validate() error {
	v := &validate.Validator{}
	v.Required("title", s.Title).
		Required("author", s.Author).
		OneOf("type", s.Type.String(), TypeBook.String(), TypeArticle.String(), TypeVideo.String())

	if s.Duration != nil {
		v.Custom("duration", *s.Duration < 0, "Must not be negative")
	}

	return v.Err()
}

// # Variant Field Sets

// BookFields are the caller-supplied fields of a book.
type BookFields struct {
	Title     string
	Author    string
	Publisher *string
	Year      *int
	ISBN      *string
}

// Source assembles a BOOK record carrying only the supplied optional fields.
func (f BookFields) Source() Source {
	return Source{
		Title:     f.Title,
		Author:    f.Author,
		Type:      TypeBook,
		Publisher: optional.Clone(f.Publisher),
		Year:      optional.Clone(f.Year),
		ISBN:      optional.Clone(f.ISBN),
	}
}

// ArticleFields are the caller-supplied fields of a journal article.
type ArticleFields struct {
	Title   string
	Author  string
	Journal *string
	Year    *int
	DOI     *string
	Volume  *string
	Issue   *string
	Pages   *string
}

// Source assembles an ARTICLE record carrying only the supplied optional fields.
func (f ArticleFields) Source() Source {
	return Source{
		Title:   f.Title,
		Author:  f.Author,
		Type:    TypeArticle,
		Journal: optional.Clone(f.Journal),
		Year:    optional.Clone(f.Year),
		DOI:     optional.Clone(f.DOI),
		Volume:  optional.Clone(f.Volume),
		Issue:   optional.Clone(f.Issue),
		Pages:   optional.Clone(f.Pages),
	}
}

// VideoFields are the caller-supplied fields of a video.
type VideoFields struct {
	Title    string
	Author   string
	Platform *string
	Year     *int
	URL      *string
	Duration *int
}

// Source assembles a VIDEO record carrying only the supplied optional fields.
func (f VideoFields) Source() Source {
	return Source{
		Title:    f.Title,
		Author:   f.Author,
		Type:     TypeVideo,
		Platform: optional.Clone(f.Platform),
		Year:     optional.Clone(f.Year),
		URL:      optional.Clone(f.URL),
		Duration: optional.Clone(f.Duration),
	}
}
