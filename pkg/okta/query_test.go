package okta_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params *okta.ListParams
		want   url.Values
	}{
		{
			name:   "nil",
			params: nil,
			want:   url.Values{},
		},
		{
			name:   "empty",
			params: okta.NewListParams(),
			want:   url.Values{},
		},
		{
			name:   "limit and filter",
			params: okta.NewListParams().WithLimit(25).WithFilter(`status eq "ACTIVE"`),
			want:   url.Values{"limit": {"25"}, "filter": {`status eq "ACTIVE"`}},
		},
		{
			name:   "query and search",
			params: okta.NewListParams().WithQuery("eric").WithSearch(`profile.department eq "Eng"`),
			want:   url.Values{"q": {"eric"}, "search": {`profile.department eq "Eng"`}},
		},
		{
			name: "start date in UTC",
			params: okta.NewListParams().WithStartDate(
				time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))),
			want: url.Values{"startDate": {"2024-03-01T09:00:00Z"}},
		},
		{
			name:   "extra parameters",
			params: okta.NewListParams().Set("expand", "stats").Set("expand", "app"),
			want:   url.Values{"expand": {"stats", "app"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.params.ToValues())
		})
	}
}
