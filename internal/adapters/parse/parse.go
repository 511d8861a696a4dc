// Package parse turns raw second-course pages into typed records. The
// site is a legacy JSP application: markup is stable but sloppy, so
// parsers fail only when a page's skeleton is missing and tolerate
// absent or non-parsable cells.
package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// campusZone is the timezone every timestamp on the site is rendered
// in.
var campusZone = time.FixedZone("CST", 8*60*60)

const timeLayout = "2006-01-02 15:04:05"

func document(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParsePage, err)
	}

	return doc, nil
}

// parseTime returns the zero time for values the page left blank or
// mangled.
func parseTime(value string) time.Time {
	t, err := time.ParseInLocation(timeLayout, strings.TrimSpace(value), campusZone)
	if err != nil {
		return time.Time{}
	}

	return t
}

// splitTimeRange parses a "start 至 end" (or "start -- end") window.
func splitTimeRange(value string) (time.Time, time.Time) {
	for _, sep := range []string{"至", "--"} {
		if start, end, ok := strings.Cut(value, sep); ok {
			return parseTime(start), parseTime(end)
		}
	}

	return parseTime(value), time.Time{}
}
