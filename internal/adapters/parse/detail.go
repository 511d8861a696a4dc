package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// ActivityDetail extracts the full record of one activity page,
// including image references. Image content is not part of the page;
// the campus adapter fills it by follow-up fetches.
func ActivityDetail(html string) (*domain.ActivityDetail, error) {
	doc, err := document(html)
	if err != nil {
		return nil, err
	}

	root := doc.Find("div.box-1").First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("%w: activity detail container not found", domain.ErrParsePage)
	}

	detail := &domain.ActivityDetail{
		Title: strings.TrimSpace(root.Find("h1").First().Text()),
	}

	if raw, ok := root.Attr("data-activity-id"); ok {
		if id, convErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 32); convErr == nil {
			detail.ID = int32(id)
		}
	}

	root.Find("div.item").Each(func(_ int, item *goquery.Selection) {
		label := strings.TrimSpace(item.Find("span.label").Text())
		value := strings.TrimSpace(item.Find("span.value").Text())

		switch strings.TrimSuffix(label, "：") {
		case "活动时间":
			detail.StartTime = parseTime(value)
		case "报名时间":
			detail.SignStartTime, detail.SignEndTime = splitTimeRange(value)
		case "活动地点":
			detail.Place = value
		case "学时":
			detail.Duration = value
		case "负责人":
			detail.Manager = value
		case "联系方式":
			detail.Contact = value
		case "主办方":
			detail.Organizer = value
		case "承办方":
			detail.Undertaker = value
		}
	})

	content := root.Find("div.content").First()
	detail.Description = strings.TrimSpace(content.Text())
	content.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
			detail.Images = append(detail.Images, domain.ScImage{OldName: strings.TrimSpace(src)})
		}
	})

	return detail, nil
}
