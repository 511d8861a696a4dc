package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sit-kite/campus-agent/internal/domain"
)

const activityDetailPage = `
<html><body>
<div class="box-1" data-activity-id="1797">
  <h1>讲座：图论基础</h1>
  <div class="item"><span class="label">活动时间：</span><span class="value">2026-05-12 18:30:00</span></div>
  <div class="item"><span class="label">报名时间：</span><span class="value">2026-05-01 08:00:00 至 2026-05-10 17:00:00</span></div>
  <div class="item"><span class="label">活动地点：</span><span class="value">第三教学楼 3F-201</span></div>
  <div class="item"><span class="label">学时：</span><span class="value">2.0</span></div>
  <div class="item"><span class="label">负责人：</span><span class="value">王老师</span></div>
  <div class="item"><span class="label">联系方式：</span><span class="value">021-12345678</span></div>
  <div class="item"><span class="label">主办方：</span><span class="value">教务处</span></div>
  <div class="item"><span class="label">承办方：</span><span class="value">计算机学院</span></div>
  <div class="content">
    欢迎参加。
    <img src="/userfiles/poster-1.png"/>
    <img src="http://sc.sit.edu.cn/userfiles/poster-2.png"/>
  </div>
</div>
</body></html>`

func TestActivityDetail(t *testing.T) {
	t.Parallel()

	detail, err := ActivityDetail(activityDetailPage)
	require.NoError(t, err)

	assert.Equal(t, int32(1797), detail.ID)
	assert.Equal(t, "讲座：图论基础", detail.Title)
	assert.Equal(t, time.Date(2026, 5, 12, 18, 30, 0, 0, campusZone), detail.StartTime.In(campusZone))
	assert.Equal(t, "第三教学楼 3F-201", detail.Place)
	assert.Equal(t, "2.0", detail.Duration)
	assert.Equal(t, "王老师", detail.Manager)
	assert.Equal(t, "021-12345678", detail.Contact)
	assert.Equal(t, "教务处", detail.Organizer)
	assert.Equal(t, "计算机学院", detail.Undertaker)
	assert.Contains(t, detail.Description, "欢迎参加")

	require.Len(t, detail.Images, 2)
	assert.Equal(t, "/userfiles/poster-1.png", detail.Images[0].OldName)
	assert.Equal(t, "http://sc.sit.edu.cn/userfiles/poster-2.png", detail.Images[1].OldName)
	assert.Empty(t, detail.Images[0].Content)
}

func TestActivityDetailMissingContainer(t *testing.T) {
	t.Parallel()

	_, err := ActivityDetail(`<html><body><div class="error">maintenance</div></body></html>`)
	require.ErrorIs(t, err, domain.ErrParsePage)
}
