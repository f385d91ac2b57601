package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: MethodGetQuote}

func TestRequestIDInterceptor(t *testing.T) {
	t.Run("keeps the incoming id", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "req-42"))
		var seen string
		_, err := RequestIDInterceptor()(ctx, nil, testInfo, func(ctx context.Context, _ interface{}) (interface{}, error) {
			seen = RequestIDFromContext(ctx)
			return nil, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "req-42", seen)
	})

	t.Run("generates one", func(t *testing.T) {
		var seen string
		_, err := RequestIDInterceptor()(context.Background(), nil, testInfo, func(ctx context.Context, _ interface{}) (interface{}, error) {
			seen = RequestIDFromContext(ctx)
			return nil, nil
		})
		require.NoError(t, err)
		assert.Regexp(t, `^grpc-[0-9a-f-]{36}$`, seen)
	})
}

func TestRecoveryInterceptor(t *testing.T) {
	_, err := RecoveryInterceptor()(context.Background(), nil, testInfo, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestMetricsInterceptor(t *testing.T) {
	calls := &recordingCalls{codes: make(map[string]string)}
	_, err := MetricsInterceptor(calls)(context.Background(), nil, testInfo, func(context.Context, interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "quote not found")
	})
	assert.Error(t, err)
	assert.Equal(t, "NotFound", calls.codes[MethodGetQuote])
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	cause := errors.New("failed")
	resp, err := LoggingInterceptor()(context.Background(), "req", testInfo, func(_ context.Context, req interface{}) (interface{}, error) {
		return req, cause
	})
	assert.Equal(t, "req", resp)
	assert.ErrorIs(t, err, cause)
}

func TestServerInterceptors(t *testing.T) {
	assert.Len(t, ServerInterceptors(nil), 3)
	assert.Len(t, ServerInterceptors(&recordingCalls{codes: map[string]string{}}), 4)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, CodecName, c.Name())

	data, err := c.Marshal(&GetQuoteRequest{QuoteID: "q-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"quote_id":"q-1"}`, string(data))

	var out GetQuoteRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "q-1", out.QuoteID)
	require.NoError(t, c.Unmarshal(nil, &out))
}
