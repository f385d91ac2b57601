package list_events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
)

type recordingReadModel struct {
	got *Request
}

func (r *recordingReadModel) ListEvents(_ context.Context, req *Request) ([]*m_outbox.Data, int64, error) {
	r.got = req
	return []*m_outbox.Data{{EventID: "e-1"}}, 1, nil
}

func TestQuery_Execute_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 100},
		{"negative", -5, 100},
		{"kept", 25, 25},
		{"capped", 5000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &recordingReadModel{}
			events, total, err := NewQuery(rm).Execute(context.Background(), &Request{Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, events, 1)
			assert.Equal(t, int64(1), total)
			assert.Equal(t, tt.want, rm.got.Limit)
		})
	}
}
