package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("package_pricing").
		Select("package_id", "domain_price", "package_price").
		Build()

	assert.Equal(t, "SELECT package_id, domain_price, package_price FROM package_pricing", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("add_ons").Build()

	assert.Equal(t, "SELECT * FROM add_ons", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleSelectCalls(t *testing.T) {
	stmt := From("add_ons").
		Select("add_on_id", "label").
		Select("kind", "price").
		Build()

	assert.Equal(t, "SELECT add_on_id, label, kind, price FROM add_ons", stmt.SQL)
}

func TestBuilder_WhereConditions(t *testing.T) {
	stmt := From("package_durations").
		Select("duration_months", "discount_percent").
		Where(Eq("package_id", "pkg-1")).
		Where(Eq("is_active", true)).
		Build()

	assert.Equal(t, "SELECT duration_months, discount_percent FROM package_durations WHERE package_id = @p0 AND is_active = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "pkg-1",
		"p1": true,
	}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	t.Run("single key", func(t *testing.T) {
		stmt := From("outbox_events").Select("event_id").OrderBy("created_at", Desc).Build()
		assert.Equal(t, "SELECT event_id FROM outbox_events ORDER BY created_at DESC", stmt.SQL)
	})

	t.Run("multiple keys", func(t *testing.T) {
		stmt := From("package_durations").
			Select("duration_id").
			OrderBy("sort_order", Asc).
			OrderBy("duration_id", Asc).
			Build()
		assert.Equal(t, "SELECT duration_id FROM package_durations ORDER BY sort_order ASC, duration_id ASC", stmt.SQL)
	})
}

func TestBuilder_Pagination(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_CompleteQuery(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stmt := From("outbox_events").
		Select("event_id", "status").
		Where(In("status", []string{"completed", "failed"})).
		Where(Lt("created_at", cutoff)).
		Where(IsNotNull("processed_at")).
		Where(Eq("event_type", "quote.locked")).
		OrderBy("created_at", Asc).
		Limit(500).
		Build()

	expected := "SELECT event_id, status FROM outbox_events WHERE status IN UNNEST(@p0) AND created_at < @p1 AND processed_at IS NOT NULL AND event_type = @p2 ORDER BY created_at ASC LIMIT @limit"
	assert.Equal(t, expected, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    []string{"completed", "failed"},
		"p1":    cutoff,
		"p2":    "quote.locked",
		"limit": int64(500),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("outbox_events").
		Select("event_id", "event_type").
		Where(Eq("status", "pending")).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100)

	main := builder.Build()
	count := builder.Count().Build()

	assert.Equal(t, "SELECT COUNT(*) FROM outbox_events WHERE status = @p0", count.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "pending"}, count.Params)
	assert.Equal(t, main.SQL, builder.Build().SQL, "Count must not modify the source builder")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("quotes").Select("quote_id")

	locked := base.Where(Eq("status", "locked")).Build()
	byPackage := base.Where(Eq("package_id", "pkg-1")).OrderBy("created_at", Desc).Build()

	assert.Equal(t, "SELECT quote_id FROM quotes WHERE status = @p0", locked.SQL)
	assert.Equal(t, "SELECT quote_id FROM quotes WHERE package_id = @p0 ORDER BY created_at DESC", byPackage.SQL)
	assert.Equal(t, "SELECT quote_id FROM quotes", base.Build().SQL)
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name   string
		cond   Condition
		index  int
		sql    string
		params map[string]interface{}
	}{
		{"eq", Eq("status", "locked"), 0, "status = @p0", map[string]interface{}{"p0": "locked"}},
		{"eq with offset index", Eq("package_id", "pkg-1"), 5, "package_id = @p5", map[string]interface{}{"p5": "pkg-1"}},
		{"ne", Ne("status", "consumed"), 1, "status != @p1", map[string]interface{}{"p1": "consumed"}},
		{"lt", Lt("retry_count", int64(3)), 0, "retry_count < @p0", map[string]interface{}{"p0": int64(3)}},
		{"lte", Lte("sort_order", int64(0)), 0, "sort_order <= @p0", map[string]interface{}{"p0": int64(0)}},
		{"gt", Gt("years", int64(0)), 2, "years > @p2", map[string]interface{}{"p2": int64(0)}},
		{"gte", Gte("duration_months", int64(12)), 0, "duration_months >= @p0", map[string]interface{}{"p0": int64(12)}},
		{"in", In("name", []string{"a", "b"}), 3, "name IN UNNEST(@p3)", map[string]interface{}{"p3": []string{"a", "b"}}},
		{"is null", IsNull("price_override"), 0, "price_override IS NULL", map[string]interface{}{}},
		{"is not null", IsNotNull("price_override"), 0, "price_override IS NOT NULL", map[string]interface{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.cond.SQL(tt.index)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestBuilder_String(t *testing.T) {
	str := From("quotes").Select("quote_id").Where(Eq("status", "locked")).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "quotes")
}
