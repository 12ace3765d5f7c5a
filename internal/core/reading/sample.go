package reading

import (
	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/pkg/optional"
)

// The canonical sample readings, created in this order on every population.

func sampleBook() source.BookFields {
	return source.BookFields{
		Title:     "Design Patterns: Elements of Reusable Object-Oriented Software",
		Author:    "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
		Publisher: optional.Of("Addison-Wesley Professional"),
		Year:      optional.Of(1994),
		ISBN:      optional.Of("978-0201633610"),
	}
}

func sampleArticle() source.ArticleFields {
	return source.ArticleFields{
		Title:   "The Cathedral and the Bazaar",
		Author:  "Eric S. Raymond",
		Journal: optional.Of("First Monday"),
		Year:    optional.Of(1998),
		DOI:     optional.Of("10.5210/fm.v3i3.578"),
		Volume:  optional.Of("3"),
		Issue:   optional.Of("3"),
	}
}

func sampleVideo() source.VideoFields {
	return source.VideoFields{
		Title:    "Clean Code: A Handbook of Agile Software Craftsmanship",
		Author:   "Robert C. Martin",
		Platform: optional.Of("YouTube"),
		Year:     optional.Of(2019),
		URL:      optional.Of("https://www.youtube.com/watch?v=7EmboKQH8lM"),
		Duration: optional.Of(3600),
	}
}
