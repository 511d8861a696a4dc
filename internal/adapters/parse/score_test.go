package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sit-kite/campus-agent/internal/domain"
)

const scorePage = `
<html><body>
<table id="score-table">
<tbody>
  <tr>
    <td><a href="activityDetail.action?activityId=1797">讲座：图论基础</a></td>
    <td>主题报告</td>
    <td>0.5</td>
    <td>2026-05-12 21:00:00</td>
  </tr>
  <tr>
    <td><a href="activityDetail.action?activityId=1802">校园义务植树</a></td>
    <td>公益志愿</td>
    <td>1.0</td>
    <td>2026-05-15 12:00:00</td>
  </tr>
  <tr>
    <td><a href="activityDetail.action?activityId=1810">志愿助学</a></td>
    <td>公益志愿</td>
    <td>1.5</td>
    <td>2026-05-20 12:00:00</td>
  </tr>
</tbody>
</table>
</body></html>`

func TestScoreList(t *testing.T) {
	t.Parallel()

	score, err := ScoreList(scorePage)
	require.NoError(t, err)
	require.Len(t, score.Items, 3)

	assert.Equal(t, int32(1797), score.Items[0].ActivityID)
	assert.Equal(t, "主题报告", score.Items[0].Category)
	assert.InDelta(t, 0.5, score.Items[0].Amount, 1e-9)

	assert.InDelta(t, 3.0, score.Summary.Total, 1e-9)
	assert.InDelta(t, 0.5, score.Summary.ThemeReport, 1e-9)
	assert.InDelta(t, 2.5, score.Summary.Charity, 1e-9)
	assert.Zero(t, score.Summary.CampusCulture)
}

func TestScoreListMissingTable(t *testing.T) {
	t.Parallel()

	_, err := ScoreList(`<html><body>nothing here</body></html>`)
	require.ErrorIs(t, err, domain.ErrParsePage)
}

const myActivityPage = `
<html><body>
<table id="apply-table">
<tbody>
  <tr>
    <td>8801</td>
    <td><a href="activityDetail.action?activityId=1797">讲座：图论基础</a></td>
    <td>2026-05-02 10:11:12</td>
    <td>已通过</td>
  </tr>
  <tr>
    <td>8923</td>
    <td><a href="activityDetail.action?activityId=1802">校园义务植树</a></td>
    <td>2026-05-03 09:00:00</td>
    <td>待审核</td>
  </tr>
</tbody>
</table>
</body></html>`

func TestMyActivityList(t *testing.T) {
	t.Parallel()

	items, err := MyActivityList(myActivityPage)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int32(8801), items[0].ApplyID)
	assert.Equal(t, int32(1797), items[0].ActivityID)
	assert.Equal(t, "讲座：图论基础", items[0].Title)
	assert.Equal(t, "已通过", items[0].Status)
	assert.Equal(t, "待审核", items[1].Status)
}

func TestMyActivityListMissingTable(t *testing.T) {
	t.Parallel()

	_, err := MyActivityList(`<html><body></body></html>`)
	require.ErrorIs(t, err, domain.ErrParsePage)
}

func TestLoginForm(t *testing.T) {
	t.Parallel()

	fields, err := LoginForm(`
<form id="casLoginForm" method="post">
  <input type="text" name="username"/>
  <input type="password" name="password"/>
  <input type="hidden" name="lt" value="LT-123"/>
  <input type="hidden" name="execution" value="e1s1"/>
  <input type="hidden" name="_eventId" value="submit"/>
</form>`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"lt":        "LT-123",
		"execution": "e1s1",
		"_eventId":  "submit",
	}, fields)
}

func TestLoginFormMissing(t *testing.T) {
	t.Parallel()

	_, err := LoginForm(`<html><body>503</body></html>`)
	require.ErrorIs(t, err, domain.ErrParsePage)
}

func TestLoginError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "用户名或密码错误", LoginError(`<span id="msg">用户名或密码错误</span>`))
	assert.Empty(t, LoginError(`<div>ok</div>`))
}
