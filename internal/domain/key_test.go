package domain_test

import (
	"testing"

	"github.com/jonesrussell/keyraces/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Normalization(t *testing.T) {
	t.Parallel()

	tables := domain.DefaultKeyTables()

	tests := []struct {
		name   string
		state  string
		office string
		year   int
		want   domain.RaceKey
	}{
		{
			name:   "abbreviations",
			state:  "OH",
			office: "GOV",
			year:   2026,
			want:   domain.RaceKey{State: "OH", Office: "governor", Year: 2026},
		},
		{
			name:   "full names lowercase",
			state:  "ohio",
			office: "governor",
			year:   2026,
			want:   domain.RaceKey{State: "OH", Office: "governor", Year: 2026},
		},
		{
			name:   "extra whitespace and casing",
			state:  "  New   Hampshire ",
			office: " Attorney  General ",
			year:   2026,
			want:   domain.RaceKey{State: "NH", Office: "attorney_general", Year: 2026},
		},
		{
			name:   "senate alias",
			state:  "Georgia",
			office: "U.S. Senate",
			year:   2026,
			want:   domain.RaceKey{State: "GA", Office: "us_senate", Year: 2026},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tables.DeriveKey(tt.state, tt.office, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveKey_SameRaceSameKey(t *testing.T) {
	t.Parallel()

	tables := domain.DefaultKeyTables()

	a, err := tables.DeriveKey("Ohio", "Governor", 2026)
	require.NoError(t, err)

	b, err := tables.DeriveKey("OH", "gov", 2026)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDeriveKey_InvalidInput(t *testing.T) {
	t.Parallel()

	tables := domain.DefaultKeyTables()

	tests := []struct {
		name   string
		state  string
		office string
		year   int
	}{
		{name: "unknown state", state: "Narnia", office: "governor", year: 2026},
		{name: "unknown office", state: "OH", office: "dogcatcher", year: 2026},
		{name: "year too small", state: "OH", office: "governor", year: 26},
		{name: "year too large", state: "OH", office: "governor", year: 20260},
		{name: "empty state", state: "", office: "governor", year: 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tables.DeriveKey(tt.state, tt.office, tt.year)
			require.ErrorIs(t, err, domain.ErrInvalidKeyInput)
		})
	}
}

func TestRaceKey_Less(t *testing.T) {
	t.Parallel()

	ohGov := domain.RaceKey{State: "OH", Office: "governor", Year: 2026}
	ohSen := domain.RaceKey{State: "OH", Office: "us_senate", Year: 2026}
	gaGov := domain.RaceKey{State: "GA", Office: "governor", Year: 2026}
	ohGov28 := domain.RaceKey{State: "OH", Office: "governor", Year: 2028}

	assert.True(t, gaGov.Less(ohGov))
	assert.True(t, ohGov.Less(ohSen))
	assert.True(t, ohGov.Less(ohGov28))
	assert.False(t, ohGov.Less(ohGov))
}

func TestRaceRecord_CandidatesUnknown(t *testing.T) {
	t.Parallel()

	unknown := &domain.RaceRecord{}
	assert.True(t, unknown.CandidatesUnknown())

	confirmedEmpty := &domain.RaceRecord{CandidatesNone: true}
	assert.False(t, confirmedEmpty.CandidatesUnknown())

	populated := &domain.RaceRecord{
		Candidates: []domain.Candidate{{Name: "A. Smith"}},
	}
	assert.False(t, populated.CandidatesUnknown())
}

func TestRaceRecord_UnknownDateLabels(t *testing.T) {
	t.Parallel()

	rec := &domain.RaceRecord{
		KeyDates: map[string]domain.DateValue{
			domain.DatePrimary: domain.KnownDate("May 5, 2026"),
			domain.DateGeneral: {Status: domain.DateUnknown},
		},
	}

	assert.Equal(t,
		[]string{domain.DateGeneral, domain.DateFilingDeadline},
		rec.UnknownDateLabels(),
	)
}
