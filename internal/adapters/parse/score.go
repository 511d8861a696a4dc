package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// ScoreList extracts the personal score page and aggregates the
// per-category summary.
func ScoreList(html string) (*domain.ScScore, error) {
	doc, err := document(html)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#score-table tbody")
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: score table not found", domain.ErrParsePage)
	}

	score := &domain.ScScore{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		item := domain.ScScoreItem{
			Category: strings.TrimSpace(cells.Eq(1).Text()),
			Time:     parseTime(cells.Eq(3).Text()),
		}
		href, _ := cells.Eq(0).Find("a").Attr("href")
		if match := activityIDPattern.FindStringSubmatch(href); match != nil {
			if id, convErr := strconv.ParseInt(match[1], 10, 32); convErr == nil {
				item.ActivityID = int32(id)
			}
		}
		if amount, convErr := strconv.ParseFloat(strings.TrimSpace(cells.Eq(2).Text()), 64); convErr == nil {
			item.Amount = amount
		}

		score.Items = append(score.Items, item)
	})

	score.Summary = summarize(score.Items)

	return score, nil
}

func summarize(items []domain.ScScoreItem) domain.ScScoreSummary {
	var summary domain.ScScoreSummary
	for _, item := range items {
		summary.Total += item.Amount

		switch item.Category {
		case "主题报告":
			summary.ThemeReport += item.Amount
		case "社会实践":
			summary.SocialPractice += item.Amount
		case "创新创业创意":
			summary.Creativity += item.Amount
		case "校园安全文明":
			summary.SafetyCivilization += item.Amount
		case "公益志愿":
			summary.Charity += item.Amount
		case "校园文化":
			summary.CampusCulture += item.Amount
		}
	}

	return summary
}

// MyActivityList extracts the personal sign-up history page.
func MyActivityList(html string) ([]domain.ScActivityItem, error) {
	doc, err := document(html)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#apply-table tbody")
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: apply table not found", domain.ErrParsePage)
	}

	var items []domain.ScActivityItem
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		item := domain.ScActivityItem{
			Time:   parseTime(cells.Eq(2).Text()),
			Status: strings.TrimSpace(cells.Eq(3).Text()),
		}
		if applyID, convErr := strconv.ParseInt(strings.TrimSpace(cells.Eq(0).Text()), 10, 32); convErr == nil {
			item.ApplyID = int32(applyID)
		}
		link := cells.Eq(1).Find("a").First()
		item.Title = strings.TrimSpace(link.Text())
		if item.Title == "" {
			item.Title = strings.TrimSpace(cells.Eq(1).Text())
		}
		href, _ := link.Attr("href")
		if match := activityIDPattern.FindStringSubmatch(href); match != nil {
			if id, convErr := strconv.ParseInt(match[1], 10, 32); convErr == nil {
				item.ActivityID = int32(id)
			}
		}

		items = append(items, item)
	})

	return items, nil
}
