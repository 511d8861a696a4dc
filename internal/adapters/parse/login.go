package parse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// LoginForm extracts the hidden fields of the authserver login form
// (lt, execution, _eventId and friends). The SSO rejects a POST that
// does not echo them back.
func LoginForm(html string) (map[string]string, error) {
	doc, err := document(html)
	if err != nil {
		return nil, err
	}

	form := doc.Find("form#casLoginForm").First()
	if form.Length() == 0 {
		return nil, fmt.Errorf("%w: login form not found", domain.ErrParsePage)
	}

	fields := make(map[string]string)
	form.Find(`input[type="hidden"]`).Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || strings.TrimSpace(name) == "" {
			return
		}
		value, _ := input.Attr("value")
		fields[name] = value
	})

	return fields, nil
}

// LoginError extracts the error banner the authserver renders on a
// failed login, or "" when the page shows none.
func LoginError(html string) string {
	doc, err := document(html)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(doc.Find("span#msg").First().Text())
}
