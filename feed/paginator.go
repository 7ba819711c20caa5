// Package feed builds the paginated post listings served by postmux: the
// global feed, per-group and per-profile feeds, and the "following" feed, plus
// the page-level cache for the global feed's first page.
package feed

import (
	"math"
	"strconv"

	"github.com/Luismorlan/postmux/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one page of a feed, together with the paginator metadata handed to
// the presentation layer.
type Page struct {
	// Number is the 1-based page number actually served, after clamping.
	Number int
	// Count is the total number of posts matched by the feed query.
	Count int64
	// NumPages = ceil(Count / PageSize), at least 1 so an empty feed still
	// renders a valid (empty) first page.
	NumPages int
	Posts    []*model.Post
}

// PageNumber parses a raw ?page= query value. Absent or malformed values
// default to the first page. Values beyond the last page are clamped later by
// paginate, not here.
func PageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// paginate runs query twice: once to count, once to fetch the requested page.
// The query must already carry ordering. Requesting a page beyond the last
// valid page clamps to the last page rather than erroring.
func paginate(query *gorm.DB, pageNumber int) (*Page, error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "fail to count feed posts")
	}

	numPages := int(math.Ceil(float64(count) / float64(PageSize)))
	if numPages < 1 {
		numPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > numPages {
		pageNumber = numPages
	}

	var posts []*model.Post
	queryResult := query.
		Offset((pageNumber - 1) * PageSize).
		Limit(PageSize).
		Find(&posts)
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "fail to fetch feed page")
	}

	return &Page{
		Number:   pageNumber,
		Count:    count,
		NumPages: numPages,
		Posts:    posts,
	}, nil
}
