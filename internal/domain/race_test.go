package domain_test

import (
	"testing"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUnknownDateLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates map[string]domain.DateValue
		want  []string
	}{
		{
			name:  "no dates at all",
			dates: nil,
			want:  []string{"primary", "general", "filing_deadline"},
		},
		{
			name: "all canonical dates known",
			dates: map[string]domain.DateValue{
				domain.DatePrimary:        domain.KnownDate("May 5, 2026"),
				domain.DateGeneral:        domain.KnownDate("November 3, 2026"),
				domain.DateFilingDeadline: {Status: domain.DateNone},
			},
			want: nil,
		},
		{
			name: "extra label unknown while canonical known",
			dates: map[string]domain.DateValue{
				domain.DatePrimary:        domain.KnownDate("May 5, 2026"),
				domain.DateGeneral:        domain.KnownDate("November 3, 2026"),
				domain.DateFilingDeadline: {Status: domain.DateNone},
				"runoff":                  {Status: domain.DateUnknown},
			},
			want: []string{"runoff"},
		},
		{
			name: "extra known label stays out",
			dates: map[string]domain.DateValue{
				domain.DatePrimary:        domain.KnownDate("May 5, 2026"),
				domain.DateGeneral:        domain.KnownDate("November 3, 2026"),
				domain.DateFilingDeadline: {Status: domain.DateNone},
				"runoff":                  domain.KnownDate("December 1, 2026"),
			},
			want: nil,
		},
		{
			name: "canonical before extras",
			dates: map[string]domain.DateValue{
				domain.DateGeneral: domain.KnownDate("November 3, 2026"),
				"special":          {Status: domain.DateUnknown},
				"runoff":           {Status: domain.DateUnknown},
			},
			want: []string{"primary", "filing_deadline", "runoff", "special"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := domain.RaceRecord{KeyDates: tt.dates}
			assert.Equal(t, tt.want, r.UnknownDateLabels())
		})
	}
}

func TestKeyTablesExtend(t *testing.T) {
	t.Parallel()

	tables := domain.DefaultKeyTables().Extend(
		map[string]string{"Buckeye State": "oh"},
		map[string]string{"Chief Executive": domain.OfficeGovernor},
	)

	key, err := tables.DeriveKey("buckeye state", "chief executive", 2026)
	assert.NoError(t, err)
	assert.Equal(t, domain.RaceKey{State: "OH", Office: "governor", Year: 2026}, key)

	// Built-in aliases keep working after extension.
	key, err = tables.DeriveKey("Ohio", "Governor", 2026)
	assert.NoError(t, err)
	assert.Equal(t, domain.RaceKey{State: "OH", Office: "governor", Year: 2026}, key)
}
