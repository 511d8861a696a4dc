package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sit-kite/campus-agent/internal/codec"
	"github.com/sit-kite/campus-agent/internal/domain"
)

// fakeStore hands out a single canned session.
type fakeStore struct {
	session   domain.Session
	chooseErr error
	queryErr  error

	inserted []domain.Session
	queried  []string
}

func (f *fakeStore) ChooseRandomly() (*domain.Session, error) {
	if f.chooseErr != nil {
		return nil, f.chooseErr
	}
	session := f.session.Clone()
	return &session, nil
}

func (f *fakeStore) QueryOr(_ context.Context, account, password string) (*domain.Session, error) {
	f.queried = append(f.queried, account)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &domain.Session{Account: account, Password: password}, nil
}

func (f *fakeStore) Insert(session *domain.Session) error {
	f.inserted = append(f.inserted, session.Clone())
	return nil
}

// fakeGateway returns canned campus results.
type fakeGateway struct {
	activities []domain.Activity
	detail     *domain.ActivityDetail
	score      *domain.ScScore
	history    []domain.ScActivityItem
	err        error

	joinedID    int32
	joinedForce bool
}

func (f *fakeGateway) FetchActivityList(context.Context, *domain.Session, int32, uint16, uint16) ([]domain.Activity, error) {
	return f.activities, f.err
}

func (f *fakeGateway) FetchActivityDetail(context.Context, *domain.Session, int32) (*domain.ActivityDetail, error) {
	return f.detail, f.err
}

func (f *fakeGateway) FetchScore(context.Context, *domain.Session) (*domain.ScScore, error) {
	return f.score, f.err
}

func (f *fakeGateway) FetchActivityHistory(context.Context, *domain.Session) ([]domain.ScActivityItem, error) {
	return f.history, f.err
}

func (f *fakeGateway) JoinActivity(_ context.Context, _ *domain.Session, activityID int32, force bool) ([]domain.ScActivityItem, error) {
	f.joinedID = activityID
	f.joinedForce = force
	return f.history, f.err
}

func testDispatcher(store *fakeStore, gateway *fakeGateway) *Dispatcher {
	return NewDispatcher(SharedData{Store: store, Campus: gateway})
}

func encodeRequest(t *testing.T, seq uint64, cmd string, body any) []byte {
	t.Helper()

	raw, err := codec.Marshal(body)
	require.NoError(t, err)
	payload, err := codec.Marshal(RequestFrame{Seq: seq, Cmd: cmd, Body: raw})
	require.NoError(t, err)

	return payload
}

func decodeResponse(t *testing.T, payload []byte) ResponseFrame {
	t.Helper()

	var frame ResponseFrame
	require.NoError(t, codec.Unmarshal(payload, &frame))

	return frame
}

func pooledStore() *fakeStore {
	return &fakeStore{session: domain.Session{Account: "1910001", Password: "secret"}}
}

func TestDispatchActivityList(t *testing.T) {
	t.Parallel()

	store := pooledStore()
	gateway := &fakeGateway{activities: []domain.Activity{{ID: 1797, Title: "讲座"}}}
	dispatcher := testDispatcher(store, gateway)

	payload := encodeRequest(t, 7, CmdActivityList, ActivityListRequest{Count: 10, Index: 1, Category: 2})
	out, err := dispatcher.Dispatch(context.Background(), payload)
	require.NoError(t, err)

	frame := decodeResponse(t, out)
	assert.Equal(t, uint64(7), frame.Seq)
	assert.Equal(t, CodeOK, frame.Code)
	assert.Empty(t, frame.Msg)

	var result ResponsePayload
	require.NoError(t, codec.Unmarshal(frame.Body, &result))
	require.Len(t, result.ActivityList, 1)
	assert.Equal(t, int32(1797), result.ActivityList[0].ID)
	assert.Equal(t, int32(2), result.ActivityList[0].Category, "queried category is stamped on each row")

	require.Len(t, store.inserted, 1, "rotated session flows back into the pool")
}

func TestDispatchScJoinPassesForceThrough(t *testing.T) {
	t.Parallel()

	store := pooledStore()
	gateway := &fakeGateway{history: []domain.ScActivityItem{{ApplyID: 8801, ActivityID: 1797}}}
	dispatcher := testDispatcher(store, gateway)

	payload := encodeRequest(t, 3, CmdScJoin, ScJoinRequest{
		Account:    "1910001",
		Password:   "secret",
		ActivityID: 1797,
		Force:      true,
	})
	out, err := dispatcher.Dispatch(context.Background(), payload)
	require.NoError(t, err)

	frame := decodeResponse(t, out)
	assert.Equal(t, CodeOK, frame.Code)
	assert.Equal(t, int32(1797), gateway.joinedID)
	assert.True(t, gateway.joinedForce)
	assert.Equal(t, []string{"1910001"}, store.queried)
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Parallel()

	dispatcher := testDispatcher(pooledStore(), &fakeGateway{})

	payload := encodeRequest(t, 9, "reboot", struct{}{})
	out, err := dispatcher.Dispatch(context.Background(), payload)
	require.NoError(t, err, "an unknown command still gets its response frame")

	frame := decodeResponse(t, out)
	assert.Equal(t, uint64(9), frame.Seq)
	assert.Equal(t, CodeBadRequest, frame.Code)
	assert.Contains(t, frame.Msg, "reboot")
	assert.Empty(t, frame.Body)
}

func TestDispatchMalformedBody(t *testing.T) {
	t.Parallel()

	dispatcher := testDispatcher(pooledStore(), &fakeGateway{})

	// A text body where the variant expects a map.
	payload := encodeRequest(t, 4, CmdActivityDetail, "not a struct")
	out, err := dispatcher.Dispatch(context.Background(), payload)
	require.NoError(t, err)

	frame := decodeResponse(t, out)
	assert.Equal(t, uint64(4), frame.Seq)
	assert.Equal(t, CodeBadRequest, frame.Code)
}

func TestDispatchUndecodableEnvelopeIsRefused(t *testing.T) {
	t.Parallel()

	dispatcher := testDispatcher(pooledStore(), &fakeGateway{})

	_, err := dispatcher.Dispatch(context.Background(), []byte{0xff, 0x00, 0x13})
	require.Error(t, err, "no seq to answer on, so the frame is refused to the bridge")
}

func TestDispatchErrorCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		store    *fakeStore
		gateway  *fakeGateway
		cmd      string
		body     any
		wantCode int
	}{
		{
			name:     "empty pool",
			store:    &fakeStore{chooseErr: domain.ErrNoSessionAvailable},
			gateway:  &fakeGateway{},
			cmd:      CmdActivityList,
			body:     ActivityListRequest{Count: 10, Index: 1},
			wantCode: CodeNoSession,
		},
		{
			name:     "bad activity id",
			store:    pooledStore(),
			gateway:  &fakeGateway{},
			cmd:      CmdActivityDetail,
			body:     ActivityDetailRequest{ID: -1},
			wantCode: CodeBadParameter,
		},
		{
			name:     "login refused",
			store:    &fakeStore{queryErr: domain.ErrLoginFailed},
			gateway:  &fakeGateway{},
			cmd:      CmdScScore,
			body:     ScScoreRequest{Account: "1910001", Password: "wrong"},
			wantCode: CodeLoginFailed,
		},
		{
			name:     "join rejected",
			store:    pooledStore(),
			gateway:  &fakeGateway{err: fmt.Errorf("%w: activity 5", domain.ErrJoinRejected)},
			cmd:      CmdScJoin,
			body:     ScJoinRequest{Account: "1910001", Password: "secret", ActivityID: 5},
			wantCode: CodeJoinRejected,
		},
		{
			name:     "page did not parse",
			store:    pooledStore(),
			gateway:  &fakeGateway{err: domain.ErrParsePage},
			cmd:      CmdScActivity,
			body:     ScActivityRequest{Account: "1910001", Password: "secret"},
			wantCode: CodeParseFailed,
		},
		{
			name:     "campus unreachable",
			store:    pooledStore(),
			gateway:  &fakeGateway{err: fmt.Errorf("connection refused")},
			cmd:      CmdScScore,
			body:     ScScoreRequest{Account: "1910001", Password: "secret"},
			wantCode: CodeFetchFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dispatcher := testDispatcher(tc.store, tc.gateway)
			out, err := dispatcher.Dispatch(context.Background(), encodeRequest(t, 1, tc.cmd, tc.body))
			require.NoError(t, err)

			frame := decodeResponse(t, out)
			assert.Equal(t, tc.wantCode, frame.Code)
			assert.NotEmpty(t, frame.Msg)
			assert.Empty(t, frame.Body)
		})
	}
}
