package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/liamcoop/healthquote/internal/logger"
	"github.com/liamcoop/healthquote/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuote = `
lhc:
  Loading: 4
tiers:
  - key: Base
    name: Base tier
    expression: "age < 65 ? 24.608 : (age < 70 ? 28.710 : 32.812)"
  - key: Tier1
    name: Tier 1
    expression: "age < 65 ? 16.405 : (age < 70 ? 20.507 : 24.608)"
extras:
  None:
    Code: None
    BaseBundle: null
    Bundles: []
  Top:
    Code: Top
    BaseBundle: X
    Bundles: [A, B]
attributes:
  IncomeTier: Tier1
  ApplyGovernmentRebate: true
  PersonalDetails:
    PolicyHolder:
      Title: Ms
      FirstName: Alex
      Email: alex@example.com
      DateOfBirth: "16/10/1958"
  ProductSelection:
    Hospital:
      Code: MID
    Extras:
      Code: Top
      BaseBundle: X
      Bundles: [A, B]
`

var fixedNow = func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC) }

func writeQuote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAndBuildModel(t *testing.T) {
	f, err := Load(writeQuote(t, sampleQuote))
	require.NoError(t, err)

	m, err := f.NewModel(fixedNow)
	require.NoError(t, err)

	name, ok := m.PolicyHolderFirstName()
	assert.True(t, ok)
	assert.Equal(t, "Alex", name)

	assert.Equal(t, quote.HospitalMid, m.HospitalProductCode())
	assert.True(t, m.IsHospitalProductSelected())

	code, ok := m.ExtrasProductCode()
	assert.True(t, ok)
	assert.Equal(t, quote.ExtrasTop, code)

	age, err := m.PolicyHolderAge(quote.AgeYears)
	require.NoError(t, err)
	assert.Equal(t, 68, age)

	assert.True(t, m.IsAGRApplied())
	pct, err := m.AGRPercentage()
	require.NoError(t, err)
	assert.Equal(t, 20.507, pct)

	assert.True(t, m.IsLHCApplied())
	assert.Equal(t, 4.0, m.LHCPercentage())
}

func TestLoadedModelIsReactive(t *testing.T) {
	f, err := Parse([]byte(sampleQuote))
	require.NoError(t, err)

	m, err := f.NewModel(fixedNow)
	require.NoError(t, err)

	var extras []any
	m.On(quote.EventExtrasCode, func(value any, args ...any) { extras = append(extras, value) })

	require.NoError(t, m.SetExtrasProductCode(quote.ExtrasNone))
	require.Len(t, extras, 1)
	assert.False(t, m.IsExtrasProductSelected())

	m.Set(quote.PathTitle, "Mr")
	gender, _ := m.Get(quote.PathGender)
	assert.Equal(t, quote.GenderMale, gender)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"Malformed YAML", "tiers: [unclosed"},
		{"Negative loading", "lhc:\n  Loading: -1\n"},
		{"Bad tier key", "tiers:\n  - key: bad-key\n    expression: \"1.0\"\n"},
		{"Duplicate tier", "tiers:\n  - key: A\n    expression: \"1.0\"\n  - key: A\n    expression: \"2.0\"\n"},
		{"Unknown log level", "logLevel: loud\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			assert.Error(t, err)
		})
	}
}

func TestNewModelRejectsUncompilableTier(t *testing.T) {
	f, err := Parse([]byte("tiers:\n  - key: Base\n    expression: \"age >\"\n"))
	require.NoError(t, err)

	_, err = f.NewModel(nil)
	assert.Error(t, err)
}

func TestEmptyFixture(t *testing.T) {
	f, err := Parse([]byte("{}"))
	require.NoError(t, err)

	m, err := f.NewModel(nil)
	require.NoError(t, err)

	assert.False(t, m.IsHospitalProductSelected())
	assert.False(t, m.IsLHCApplied())
	_, err = m.AGRTier()
	assert.Error(t, err)
}

func TestLogLevelAppliedByLoadOnly(t *testing.T) {
	previous := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(previous) })
	logger.SetLevel(logger.LevelInfo)

	_, err := Parse([]byte("logLevel: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, logger.LevelInfo, logger.GetLevel(), "Parse must not change the log level")

	_, err = Load(writeQuote(t, "logLevel: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, logger.LevelDebug, logger.GetLevel())
}
