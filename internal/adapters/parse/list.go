package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sit-kite/campus-agent/internal/domain"
)

var activityIDPattern = regexp.MustCompile(`activityId=(\d+)`)

// ActivityList extracts the rows of the public activity list page.
// Category is left zero; the caller stamps the category it queried,
// since the page itself does not repeat it.
func ActivityList(html string) ([]domain.Activity, error) {
	doc, err := document(html)
	if err != nil {
		return nil, err
	}

	container := doc.Find("ul.ul_7")
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: activity list container not found", domain.ErrParsePage)
	}

	var activities []domain.Activity
	container.Find("li").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find(`a[href*="activityDetail.action"]`).First()
		href, _ := link.Attr("href")
		match := activityIDPattern.FindStringSubmatch(href)
		if match == nil {
			err = fmt.Errorf("%w: activity row without detail link", domain.ErrParsePage)
			return false
		}
		id, convErr := strconv.ParseInt(match[1], 10, 32)
		if convErr != nil {
			err = fmt.Errorf("%w: activity id %q: %v", domain.ErrParsePage, match[1], convErr)
			return false
		}

		activity := domain.Activity{
			ID:        int32(id),
			Title:     strings.TrimSpace(link.Text()),
			StartTime: parseTime(row.Find("span.time").First().Text()),
		}
		activity.SignStartTime, activity.SignEndTime = splitTimeRange(row.Find("span.sign-time").First().Text())

		activities = append(activities, activity)
		return true
	})
	if err != nil {
		return nil, err
	}

	return activities, nil
}
