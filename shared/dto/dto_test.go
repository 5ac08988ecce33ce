package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gather/shared/dto"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "user_id",
				Operator: dto.FilterOperatorEq,
				Value:    int64(1),
				Table:    "bookings",
			},
			wantWhere: "bookings.user_id = :user_id",
			wantArgs:  map[string]any{"user_id": int64(1)},
		},
		{
			name: "like is case insensitive",
			filter: dto.Filter{
				Field:    "title",
				Operator: dto.FilterOperatorLike,
				Value:    "meetup",
				Table:    "events",
			},
			wantWhere: "LOWER(events.title) LIKE LOWER(:title) ",
			wantArgs:  map[string]any{"title": "%meetup%"},
		},
		{
			name: "custom arg name",
			filter: dto.Filter{
				ArgName:  "event_search",
				Field:    "description",
				Operator: dto.FilterOperatorLike,
				Value:    "go",
				Table:    "events",
			},
			wantWhere: "LOWER(events.description) LIKE LOWER(:event_search) ",
			wantArgs:  map[string]any{"event_search": "%go%"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Operator: "between",
				Value:    "going",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "published",
				Operator: dto.FilterOperatorEq,
				Value:    true,
				Table:    "events",
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{
						ArgName:  "search_title",
						Field:    "title",
						Operator: dto.FilterOperatorLike,
						Value:    "picnic",
						Table:    "events",
					},
					dto.Filter{
						ArgName:  "search_location",
						Field:    "location",
						Operator: dto.FilterOperatorLike,
						Value:    "picnic",
						Table:    "events",
					},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, "events.published = :published")
	assert.Contains(t, where, " OR ")
	assert.Contains(t, where, " AND ")
	assert.Equal(t, true, args["published"])
	assert.Equal(t, "%picnic%", args["search_title"])
	assert.Equal(t, "%picnic%", args["search_location"])
}

func TestFilterGroupEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParamsFromRequest(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name:           "explicit values",
			target:         "/v1/events?page=3&limit=25&search=music",
			defaultRequest: true,
			want:           dto.QueryParams{Page: 3, Limit: 25, Search: "music"},
		},
		{
			name:           "defaults applied when missing",
			target:         "/v1/events",
			defaultRequest: true,
			want:           dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:           "no defaults when not requested",
			target:         "/v1/events?search=run",
			defaultRequest: false,
			want:           dto.QueryParams{Search: "run"},
		},
		{
			name:           "garbage pagination ignored",
			target:         "/v1/events?page=zero&limit=-4",
			defaultRequest: true,
			want:           dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.want, params)
		})
	}
}
