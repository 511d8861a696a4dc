package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sit-kite/campus-agent/internal/codec"
)

// Dispatcher decodes request frames, runs the matching variant, and
// encodes the response frame. Every request frame that decodes yields
// exactly one response frame, success or typed error; only a payload
// whose envelope cannot be decoded at all (no usable seq) is refused
// back to the bridge.
type Dispatcher struct {
	data SharedData
}

func NewDispatcher(data SharedData) *Dispatcher {
	if data.Logger == nil {
		data.Logger = slog.Default()
	}

	return &Dispatcher{data: data}
}

// Dispatch implements the bridge handler contract: one inbound binary
// payload in, one outbound binary payload out.
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte) ([]byte, error) {
	var frame RequestFrame
	if err := codec.Unmarshal(payload, &frame); err != nil {
		return nil, fmt.Errorf("decode request frame: %w", err)
	}

	request, err := newRequester(frame.Cmd, frame.Body)
	if err != nil {
		d.data.Logger.Warn("reject request", "seq", frame.Seq, "cmd", frame.Cmd, "error", err)
		return encodeResponse(ResponseFrame{Seq: frame.Seq, Code: CodeBadRequest, Msg: err.Error()})
	}

	result, err := request.Process(ctx, d.data)
	if err != nil {
		d.data.Logger.Warn("request failed", "seq", frame.Seq, "cmd", frame.Cmd, "error", err)
		return encodeResponse(ResponseFrame{Seq: frame.Seq, Code: codeFor(err), Msg: err.Error()})
	}

	body, err := codec.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode response payload: %w", err)
	}

	d.data.Logger.Debug("request served", "seq", frame.Seq, "cmd", frame.Cmd)

	return encodeResponse(ResponseFrame{Seq: frame.Seq, Code: CodeOK, Body: body})
}

// newRequester builds the typed request for cmd from its raw body.
func newRequester(cmd string, body codec.RawMessage) (Requester, error) {
	decode := func(v Requester) (Requester, error) {
		if err := codec.Unmarshal(body, v); err != nil {
			return nil, fmt.Errorf("decode %s body: %w", cmd, err)
		}
		return v, nil
	}

	switch cmd {
	case CmdActivityList:
		return decode(&ActivityListRequest{})
	case CmdActivityDetail:
		return decode(&ActivityDetailRequest{})
	case CmdScScore:
		return decode(&ScScoreRequest{})
	case CmdScActivity:
		return decode(&ScActivityRequest{})
	case CmdScJoin:
		return decode(&ScJoinRequest{})
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func encodeResponse(frame ResponseFrame) ([]byte, error) {
	data, err := codec.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("encode response frame: %w", err)
	}

	return data, nil
}
