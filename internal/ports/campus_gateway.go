package ports

import (
	"context"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// CampusGateway executes one authenticated interaction with the
// second-course service. Every call may rotate the cookies on the
// session it is given; callers persist the session back into the pool
// afterwards.
type CampusGateway interface {
	FetchActivityList(ctx context.Context, session *domain.Session, category int32, index, count uint16) ([]domain.Activity, error)
	FetchActivityDetail(ctx context.Context, session *domain.Session, id int32) (*domain.ActivityDetail, error)
	FetchScore(ctx context.Context, session *domain.Session) (*domain.ScScore, error)
	FetchActivityHistory(ctx context.Context, session *domain.Session) ([]domain.ScActivityItem, error)

	// JoinActivity applies for an activity and returns the refreshed
	// sign-up history as verification. force suppresses the rejection
	// error when the service answers with anything but the success
	// marker.
	JoinActivity(ctx context.Context, session *domain.Session, activityID int32, force bool) ([]domain.ScActivityItem, error)
}
