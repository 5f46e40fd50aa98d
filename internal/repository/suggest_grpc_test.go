package repo

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	errs "goban/internal/errors"
)

type suggestServer interface {
	Suggest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type suggestFunc func(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func (f suggestFunc) Suggest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return f(ctx, req)
}

var suggestServiceDesc = grpc.ServiceDesc{
	ServiceName: "suggest.MoveSuggestionService",
	HandlerType: (*suggestServer)(nil),
	Methods: []grpc.MethodDesc{{
		MethodName: "Suggest",
		Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			req := &structpb.Struct{}
			if err := dec(req); err != nil {
				return nil, err
			}
			return srv.(suggestServer).Suggest(ctx, req)
		},
	}},
}

func dialSuggest(t *testing.T, impl suggestFunc) *GrpcSuggestClient {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	server := grpc.NewServer()
	server.RegisterService(&suggestServiceDesc, impl)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewGrpcSuggestClient(conn, testLogger(), 0)
}

func TestGrpcSuggestClient(t *testing.T) {
	var seen string
	client := dialSuggest(t, func(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
		seen = req.GetFields()["board"].GetStringValue()
		return structpb.NewStruct(map[string]any{"move": "dd"})
	})

	move, err := client.SuggestMove(context.Background(), "3:b:.../.../...")
	require.NoError(t, err)
	assert.Equal(t, "dd", move)
	assert.Equal(t, "3:b:.../.../...", seen)
}

func TestGrpcSuggestClientMalformedReply(t *testing.T) {
	client := dialSuggest(t, func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return structpb.NewStruct(map[string]any{"move": 42})
	})
	_, err := client.SuggestMove(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrMalformedSuggestion)

	empty := dialSuggest(t, func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return &structpb.Struct{}, nil
	})
	_, err = empty.SuggestMove(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrMalformedSuggestion)
}

func TestGrpcSuggestClientServerError(t *testing.T) {
	client := dialSuggest(t, func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return nil, status.Error(codes.Unavailable, "engine is warming up")
	})

	_, err := client.SuggestMove(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}
