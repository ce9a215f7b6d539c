package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKeyInput indicates state, office, or year could not be
// normalized to a valid race key. Callers skip the entry with a warning.
var ErrInvalidKeyInput = errors.New("invalid race key input")

// Sane bounds for election years accepted by DeriveKey.
const (
	minElectionYear = 1990
	maxElectionYear = 2099
)

// KeyTables holds the normalization tables used to derive race keys.
// Both maps are keyed by lowercased, whitespace-collapsed input.
type KeyTables struct {
	// States maps state names and abbreviations to two-letter codes.
	States map[string]string
	// Offices maps office names and abbreviations to canonical tokens.
	Offices map[string]string
}

// Canonical office tokens.
const (
	OfficeGovernor         = "governor"
	OfficeLtGovernor       = "lt_governor"
	OfficeAttorneyGeneral  = "attorney_general"
	OfficeSecretaryOfState = "secretary_of_state"
	OfficeUSSenate         = "us_senate"
	OfficeUSHouse          = "us_house"
	OfficeStateSenate      = "state_senate"
	OfficeStateHouse       = "state_house"
	OfficeSupremeCourt     = "supreme_court"
	OfficeMayor            = "mayor"
)

// stateNames maps two-letter codes to full state names.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// defaultOfficeAliases maps accepted office spellings to canonical tokens.
var defaultOfficeAliases = map[string]string{
	"governor":            OfficeGovernor,
	"gov":                 OfficeGovernor,
	"gubernatorial":       OfficeGovernor,
	"lieutenant governor": OfficeLtGovernor,
	"lt governor":         OfficeLtGovernor,
	"lt gov":              OfficeLtGovernor,
	"attorney general":    OfficeAttorneyGeneral,
	"ag":                  OfficeAttorneyGeneral,
	"secretary of state":  OfficeSecretaryOfState,
	"sos":                 OfficeSecretaryOfState,
	"us senate":           OfficeUSSenate,
	"u.s. senate":         OfficeUSSenate,
	"senate":              OfficeUSSenate,
	"senator":             OfficeUSSenate,
	"us house":            OfficeUSHouse,
	"u.s. house":          OfficeUSHouse,
	"house":               OfficeUSHouse,
	"representative":      OfficeUSHouse,
	"state senate":        OfficeStateSenate,
	"state house":         OfficeStateHouse,
	"state assembly":      OfficeStateHouse,
	"supreme court":       OfficeSupremeCourt,
	"state supreme court": OfficeSupremeCourt,
	"mayor":               OfficeMayor,
}

// DefaultKeyTables returns the built-in normalization tables: all US
// states plus DC by name or abbreviation, and the default office aliases.
// Callers may extend the returned maps from configuration.
func DefaultKeyTables() KeyTables {
	states := make(map[string]string, 2*len(stateNames))
	for code, name := range stateNames {
		states[strings.ToLower(code)] = code
		states[strings.ToLower(name)] = code
	}

	offices := make(map[string]string, len(defaultOfficeAliases)+len(officeNames))
	for alias, token := range defaultOfficeAliases {
		offices[alias] = token
	}
	// Canonical tokens round-trip, so derived keys can be re-derived.
	for token := range officeNames {
		offices[token] = token
	}

	return KeyTables{States: states, Offices: offices}
}

// Extend merges configured alias tables into t and returns it. Aliases
// are normalized the same way lookups are, so any casing works in config.
func (t KeyTables) Extend(states, offices map[string]string) KeyTables {
	for alias, code := range states {
		t.States[normalizeToken(alias)] = strings.ToUpper(code)
	}
	for alias, token := range offices {
		t.Offices[normalizeToken(alias)] = token
	}
	return t
}

// officeNames maps canonical office tokens to display names.
var officeNames = map[string]string{
	OfficeGovernor:         "Governor",
	OfficeLtGovernor:       "Lieutenant Governor",
	OfficeAttorneyGeneral:  "Attorney General",
	OfficeSecretaryOfState: "Secretary of State",
	OfficeUSSenate:         "U.S. Senate",
	OfficeUSHouse:          "U.S. House",
	OfficeStateSenate:      "State Senate",
	OfficeStateHouse:       "State House",
	OfficeSupremeCourt:     "Supreme Court",
	OfficeMayor:            "Mayor",
}

// OfficeName returns the display name for a canonical office token, or
// the token itself when unknown.
func OfficeName(token string) string {
	if name, ok := officeNames[token]; ok {
		return name
	}
	return token
}

// StateName returns the full name for a two-letter state code, or the
// code itself when unknown.
func StateName(code string) string {
	if name, ok := stateNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// DeriveKey normalizes state, office, and year into a RaceKey. It is a
// pure function: casing, surrounding whitespace, and registered
// abbreviation variants all yield the same key. Returns ErrInvalidKeyInput
// when state or office has no table entry or year is out of bounds.
func (t KeyTables) DeriveKey(state, office string, year int) (RaceKey, error) {
	stateCode, ok := t.States[normalizeToken(state)]
	if !ok {
		return RaceKey{}, fmt.Errorf("%w: unknown state %q", ErrInvalidKeyInput, state)
	}

	officeToken, ok := t.Offices[normalizeToken(office)]
	if !ok {
		return RaceKey{}, fmt.Errorf("%w: unknown office %q", ErrInvalidKeyInput, office)
	}

	if year < minElectionYear || year > maxElectionYear {
		return RaceKey{}, fmt.Errorf("%w: year %d out of range", ErrInvalidKeyInput, year)
	}

	return RaceKey{State: stateCode, Office: officeToken, Year: year}, nil
}

// normalizeToken lowercases and collapses interior whitespace.
func normalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
