package campus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sit-kite/campus-agent/internal/adapters/parse"
	"github.com/sit-kite/campus-agent/internal/domain"
	"github.com/sit-kite/campus-agent/internal/ports"
)

// joinSuccessMarker is the alert the service embeds in the apply
// response when a sign-up went through.
const joinSuccessMarker = "申请成功"

// Service runs authenticated second-course interactions on top of one
// shared http.Client. It implements ports.CampusGateway.
type Service struct {
	endpoints Endpoints
	client    *http.Client
	guard     Guard
	logger    *slog.Logger
}

var _ ports.CampusGateway = (*Service)(nil)

func NewService(endpoints Endpoints, client *http.Client, auth ports.Authenticator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		endpoints: endpoints,
		client:    client,
		guard:     Guard{Endpoints: endpoints, Auth: auth},
		logger:    logger,
	}
}

func (s *Service) FetchActivityList(ctx context.Context, session *domain.Session, category int32, index, count uint16) ([]domain.Activity, error) {
	key, err := CategoryKey(category)
	if err != nil {
		return nil, err
	}

	client := NewUserClient(session, s.client)
	if err := s.guard.MakeSureActive(ctx, client); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("pageNo", fmt.Sprintf("%d", index))
	query.Set("pageSize", fmt.Sprintf("%d", count))
	query.Set("categoryId", key)

	html, err := client.Text(ctx, s.endpoints.ActivityList+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch activity list: %w", err)
	}

	return parse.ActivityList(html)
}

func (s *Service) FetchActivityDetail(ctx context.Context, session *domain.Session, id int32) (*domain.ActivityDetail, error) {
	client := NewUserClient(session, s.client)
	target := fmt.Sprintf("%s?activityId=%d", s.endpoints.ActivityDetail, id)

	// Detail pages are heavy, so try the fetch first and only pay the
	// session probe when it fails.
	resp, err := s.guard.FetchOrMakeSureActive(ctx, client, target)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp, err = client.Get(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("fetch activity detail: %w", err)
		}
	}

	html, err := ReadBody(resp)
	if err != nil {
		return nil, err
	}

	detail, err := parse.ActivityDetail(html)
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		detail.ID = id
	}

	fetchImages(ctx, client, detail.Images, s.endpoints.ImageBase, s.logger)

	return detail, nil
}

func (s *Service) FetchScore(ctx context.Context, session *domain.Session) (*domain.ScScore, error) {
	html, err := s.fetchAuthenticated(ctx, session, s.endpoints.MyScore)
	if err != nil {
		return nil, fmt.Errorf("fetch score page: %w", err)
	}

	return parse.ScoreList(html)
}

func (s *Service) FetchActivityHistory(ctx context.Context, session *domain.Session) ([]domain.ScActivityItem, error) {
	html, err := s.fetchAuthenticated(ctx, session, s.endpoints.MyActivity)
	if err != nil {
		return nil, fmt.Errorf("fetch activity history: %w", err)
	}

	return parse.MyActivityList(html)
}

func (s *Service) JoinActivity(ctx context.Context, session *domain.Session, activityID int32, force bool) ([]domain.ScActivityItem, error) {
	client := NewUserClient(session, s.client)
	if err := s.guard.MakeSureActive(ctx, client); err != nil {
		return nil, err
	}

	body, err := client.Text(ctx, fmt.Sprintf("%s?activityId=%d", s.endpoints.ApplyActivity, activityID))
	if err != nil {
		return nil, fmt.Errorf("apply for activity %d: %w", activityID, err)
	}
	if !strings.Contains(body, joinSuccessMarker) && !force {
		return nil, fmt.Errorf("%w: activity %d", domain.ErrJoinRejected, activityID)
	}

	// Verify by re-reading the sign-up history; the host sees what the
	// service actually recorded.
	html, err := client.Text(ctx, s.endpoints.MyActivity)
	if err != nil {
		return nil, fmt.Errorf("verify join of activity %d: %w", activityID, err)
	}

	return parse.MyActivityList(html)
}

// fetchAuthenticated is the eager-guard read path shared by the
// account-scoped pages.
func (s *Service) fetchAuthenticated(ctx context.Context, session *domain.Session, target string) (string, error) {
	client := NewUserClient(session, s.client)
	if err := s.guard.MakeSureActive(ctx, client); err != nil {
		return "", err
	}

	return client.Text(ctx, target)
}
