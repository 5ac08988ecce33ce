package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gather/shared"
	"gather/shared/constant"
	"gather/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "rounds up", total: 21, limit: 10, want: 3},
		{name: "empty result", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 50, limit: 0, want: 1},
		{name: "single page", total: 3, limit: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "valid id", raw: "42", want: 42},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-7", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := shared.ParseID(tt.raw)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateEventRequest struct {
		Title     string `db:"title"`
		Location  string `db:"location"`
		Published *bool  `db:"published"`
		Ignored   string
	}

	published := false
	fields := shared.TransformFields(updateEventRequest{
		Title:     "Go Meetup",
		Published: &published,
	})

	assert.Equal(t, "Go Meetup", fields["title"])
	assert.Equal(t, false, fields["published"])
	assert.NotContains(t, fields, "location")
	assert.IsType(t, time.Time{}, fields[constant.FieldUpdatedAt])
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(7, "id", "bookings")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, int64(7), args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:12", shared.BuildCacheKey("booking", "get", "12"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID(1, "user_id", "bookings")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, second)

	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)
	assert.NotEqual(t, first, other)
}
