package campus

import (
	"fmt"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// categoryMapping maps a numeric category index to the opaque category
// id the activity list endpoint expects. Index 0 is the unfiltered
// query. The ids are fixed server-side values.
var categoryMapping = [...]string{
	"",
	"001",                              // 主题报告
	"8ab17f543fe62d5d013fe62efd3a0002", // 社会实践
	"ff8080814e241104014eb867e1481dc3", // 创新创业创意
	"8F963F2A04013A66E0540021287E4866", // 校园安全文明
	"8ab17f543fe62d5d013fe62e6dc70001", // 公益志愿
	"8ab17f2a3fe6585e013fe6596c300001", // 校园文化
	"ff808081674ec4720167ce60dda77cea", // 主题教育
	"8ab17f543fe626a8013fe6278a880001", // 易班社区
	"402881de5d62ba57015d6320f1a7000c", // 安全网络教育
	"8ab17f533ff05c27013ff06d10bf0001", // 论文专利
	"ff8080814e241104014fedbbf7fd329d", // 会议
}

// CategoryKey resolves a request's category index to its server-side
// id. Indexes outside the table are a caller error.
func CategoryKey(category int32) (string, error) {
	if category < 0 || int(category) >= len(categoryMapping) {
		return "", fmt.Errorf("%w: category %d", domain.ErrBadParameter, category)
	}

	return categoryMapping[category], nil
}
