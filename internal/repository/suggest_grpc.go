package repo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	errs "goban/internal/errors"
)

// SuggestMethod полное имя метода сервиса подсказок. Запрос и ответ -
// google.protobuf.Struct: {"board": "..."} -> {"move": "dd" | "pass"}.
const SuggestMethod = "/suggest.MoveSuggestionService/Suggest"

type GrpcSuggestClient struct {
	conn    grpc.ClientConnInterface
	log     *zap.SugaredLogger
	timeout time.Duration
}

func NewGrpcSuggestClient(conn grpc.ClientConnInterface, log *zap.SugaredLogger, timeout time.Duration) *GrpcSuggestClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GrpcSuggestClient{conn: conn, log: log, timeout: timeout}
}

func (c *GrpcSuggestClient) SuggestMove(ctx context.Context, board string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"board": board})
	if err != nil {
		return "", err
	}
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, SuggestMethod, req, resp); err != nil {
		c.log.Warnw("suggest call failed", "error", err)
		return "", err
	}

	move, ok := resp.GetFields()["move"]
	if !ok {
		return "", fmt.Errorf("%w: reply has no move field", errs.ErrMalformedSuggestion)
	}
	value, ok := move.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: move is not a string", errs.ErrMalformedSuggestion)
	}
	return value.StringValue, nil
}
