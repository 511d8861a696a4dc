package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sit-kite/campus-agent/internal/domain"
	"github.com/sit-kite/campus-agent/internal/ports"
)

// SharedData bundles the pool and gateway access every request variant
// needs. It is a cheap-to-copy handle passed identically to every
// dispatch.
type SharedData struct {
	Store  ports.SessionStore
	Campus ports.CampusGateway
	Logger *slog.Logger
}

// Requester is the uniform dispatch contract: one typed request, one
// typed response or error.
type Requester interface {
	Process(ctx context.Context, data SharedData) (ResponsePayload, error)
}

// ResponsePayload is the tagged union of result shapes. Exactly one
// field is set, matching the request kind.
type ResponsePayload struct {
	ActivityList   []domain.Activity       `cbor:"activity_list,omitempty"`
	ActivityDetail *domain.ActivityDetail  `cbor:"activity_detail,omitempty"`
	Score          *domain.ScScore         `cbor:"score,omitempty"`
	MyActivity     []domain.ScActivityItem `cbor:"my_activity,omitempty"`
}

// ActivityListRequest lists activities of one category page by page.
// Reads are account-agnostic: any pooled session serves them.
type ActivityListRequest struct {
	Count    uint16 `cbor:"count"`
	Index    uint16 `cbor:"index"`
	Category int32  `cbor:"category"`
}

func (r ActivityListRequest) Process(ctx context.Context, data SharedData) (ResponsePayload, error) {
	session, err := data.Store.ChooseRandomly()
	if err != nil {
		return ResponsePayload{}, err
	}

	activities, err := data.Campus.FetchActivityList(ctx, session, r.Category, r.Index, r.Count)
	if err != nil {
		return ResponsePayload{}, err
	}
	persistSession(data, session)

	// The page does not repeat the category; stamp the one queried.
	for i := range activities {
		activities[i].Category = r.Category
	}

	return ResponsePayload{ActivityList: activities}, nil
}

// ActivityDetailRequest fetches one activity including its images.
type ActivityDetailRequest struct {
	ID int32 `cbor:"id"`
}

func (r ActivityDetailRequest) Process(ctx context.Context, data SharedData) (ResponsePayload, error) {
	if r.ID <= 0 {
		return ResponsePayload{}, fmt.Errorf("%w: activity id %d", domain.ErrBadParameter, r.ID)
	}

	session, err := data.Store.ChooseRandomly()
	if err != nil {
		return ResponsePayload{}, err
	}

	detail, err := data.Campus.FetchActivityDetail(ctx, session, r.ID)
	if err != nil {
		return ResponsePayload{}, err
	}
	persistSession(data, session)

	return ResponsePayload{ActivityDetail: detail}, nil
}

// ScScoreRequest fetches the personal score summary of one account.
type ScScoreRequest struct {
	Account  string `cbor:"account"`
	Password string `cbor:"password"`
}

func (r ScScoreRequest) Process(ctx context.Context, data SharedData) (ResponsePayload, error) {
	session, err := data.Store.QueryOr(ctx, r.Account, r.Password)
	if err != nil {
		return ResponsePayload{}, err
	}

	score, err := data.Campus.FetchScore(ctx, session)
	if err != nil {
		return ResponsePayload{}, err
	}
	persistSession(data, session)

	return ResponsePayload{Score: score}, nil
}

// ScActivityRequest fetches the personal sign-up history of one
// account.
type ScActivityRequest struct {
	Account  string `cbor:"account"`
	Password string `cbor:"password"`
}

func (r ScActivityRequest) Process(ctx context.Context, data SharedData) (ResponsePayload, error) {
	session, err := data.Store.QueryOr(ctx, r.Account, r.Password)
	if err != nil {
		return ResponsePayload{}, err
	}

	items, err := data.Campus.FetchActivityHistory(ctx, session)
	if err != nil {
		return ResponsePayload{}, err
	}
	persistSession(data, session)

	return ResponsePayload{MyActivity: items}, nil
}

// ScJoinRequest signs one account up for an activity and returns the
// refreshed history as verification.
type ScJoinRequest struct {
	Account    string `cbor:"account"`
	Password   string `cbor:"password"`
	ActivityID int32  `cbor:"activity_id"`
	Force      bool   `cbor:"force"`
}

func (r ScJoinRequest) Process(ctx context.Context, data SharedData) (ResponsePayload, error) {
	if r.ActivityID <= 0 {
		return ResponsePayload{}, fmt.Errorf("%w: activity id %d", domain.ErrBadParameter, r.ActivityID)
	}

	session, err := data.Store.QueryOr(ctx, r.Account, r.Password)
	if err != nil {
		return ResponsePayload{}, err
	}

	items, err := data.Campus.JoinActivity(ctx, session, r.ActivityID, r.Force)
	if err != nil {
		return ResponsePayload{}, err
	}
	persistSession(data, session)

	return ResponsePayload{MyActivity: items}, nil
}

// persistSession writes rotated cookies back to the pool. The request
// already succeeded; a pool write failure is logged, not returned.
func persistSession(data SharedData, session *domain.Session) {
	if err := data.Store.Insert(session); err != nil {
		data.Logger.Warn("persist session", "account", session.Account, "error", err)
	}
}
