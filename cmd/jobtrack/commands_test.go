package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

func TestReportCommand_JSON(t *testing.T) {
	out, err := execute(t, "report", "--data", sampleJSON, "--now", fixedNow, "--json")
	require.NoError(t, err, out)

	report := decodeOutput[types.Report](t, out)
	assert.Equal(t, 5, report.Funnel.Total)
	assert.Len(t, report.Forecast.Stages, 3)
	assert.Len(t, report.Scenarios, 4)
	assert.NotEmpty(t, report.Recommendations)
}

func TestReportCommand_Text(t *testing.T) {
	out, err := execute(t, "report", "-d", sampleYAML, "--now", fixedNow)
	require.NoError(t, err, out)

	for _, section := range []string{"APPLICATION FUNNEL", "FORECAST", "SCENARIOS", "RECOMMENDATIONS"} {
		assert.Contains(t, out, section)
	}
}

func TestReportCommand_OutFileValidates(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "report", "--data", sampleJSON, "--now", fixedNow, "--out", outFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Report written to")

	_, err = os.Stat(outFile)
	require.NoError(t, err)

	out, err = execute(t, "validate", "--report", outFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Validation passed")
}

func TestReportCommand_SourceFlags(t *testing.T) {
	_, err := execute(t, "report", "--now", fixedNow)
	assert.Error(t, err)

	_, err = execute(t, "report", "--data", sampleJSON, "--user-id", "00000000-0000-0000-0000-000000000001")
	assert.Error(t, err)
}

func TestReportCommand_InvalidNow(t *testing.T) {
	_, err := execute(t, "report", "--data", sampleJSON, "--now", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFC3339")
}

func TestReportCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "report", "--data", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReportCommand_UserWithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, "report", "--user-id", "00000000-0000-0000-0000-000000000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")

	_, err = execute(t, "report", "--user-id", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
}

func TestReportCommand_Settings(t *testing.T) {
	out, err := execute(t, "--config", exampleCfg, "report", "--data", sampleJSON, "--now", fixedNow, "--json")
	require.NoError(t, err, out)

	report := decodeOutput[types.Report](t, out)
	assert.Equal(t, 10, report.Correlations.Prep.LookbackDays)
	assert.Equal(t, 2, report.Patterns.DayOfWeek.MinSampleSize)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("min_sample_size: 0\n"), 0644))
	_, err = execute(t, "--config", bad, "report", "--data", sampleJSON)
	assert.Error(t, err)
}

func TestFunnelCommand(t *testing.T) {
	out, err := execute(t, "funnel", "--data", sampleJSON, "--now", fixedNow)
	require.NoError(t, err, out)
	assert.Contains(t, out, "APPLICATION FUNNEL")

	out, err = execute(t, "funnel", "--data", sampleJSON, "--now", fixedNow, "--json")
	require.NoError(t, err, out)
	assert.Equal(t, 5, decodeOutput[types.FunnelMetrics](t, out).Total)
}

func TestForecastCommand(t *testing.T) {
	out, err := execute(t, "forecast", "--data", sampleJSON, "--now", fixedNow, "--json")
	require.NoError(t, err, out)

	fc := decodeOutput[types.Forecast](t, out)
	require.Len(t, fc.Stages, 3)
	now, _ := time.Parse(time.RFC3339, fixedNow)
	for _, st := range fc.Stages {
		assert.False(t, st.CompletionDate.Before(now))
	}
}

func TestRecommendCommand(t *testing.T) {
	out, err := execute(t, "recommend", "--data", sampleJSON, "--now", fixedNow, "--limit", "1", "--json")
	require.NoError(t, err, out)
	assert.Len(t, decodeOutput[[]types.Recommendation](t, out), 1)

	out, err = execute(t, "recommend", "--data", sampleJSON, "--now", fixedNow, "--limit", "0", "--json")
	require.NoError(t, err, out)
	assert.GreaterOrEqual(t, len(decodeOutput[[]types.Recommendation](t, out)), 1)
}

func TestRecommendCommand_EmptyDataset(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0644))

	out, err := execute(t, "recommend", "--data", empty, "--json")
	require.NoError(t, err, out)

	recs := decodeOutput[[]types.Recommendation](t, out)
	require.Len(t, recs, 1)
	assert.Equal(t, "Keep building your data", recs[0].Title)
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--apps-per-week", "10", "--response", "15", "--interview", "25", "--offer", "20", "--json")
	require.NoError(t, err, out)

	scenarios := decodeOutput[[]types.Scenario](t, out)
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Pace", scenarios[0].Name)
	assert.Equal(t, 10.0, scenarios[0].ApplicationsPerWeek)
	assert.Equal(t, 15.0, scenarios[0].ResponseRate)

	out, err = execute(t, "simulate", "-a", "10")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Networking Focus")
}

func TestSimulateCommand_Negative(t *testing.T) {
	_, err := execute(t, "simulate", "--apps-per-week", "5", "--response", "-1")
	assert.Error(t, err)
}

func TestSimulateCommand_FromData(t *testing.T) {
	out, err := execute(t, "simulate", "--data", sampleJSON, "--apps-per-week", "7", "--json")
	require.NoError(t, err, out)

	scenarios := decodeOutput[[]types.Scenario](t, out)
	require.Len(t, scenarios, 4)
	assert.Equal(t, 7.0, scenarios[0].ApplicationsPerWeek)
}

func TestValidateCommand_Dataset(t *testing.T) {
	out, err := execute(t, "validate", "--data", sampleJSON)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Validation passed")
	assert.Contains(t, out, "5 records will be skipped")

	out, err = execute(t, "validate", "--data", sampleYAML)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No records skipped")
}

func TestValidateCommand_InvalidDataset(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"applications": [{"id": 7}]}`), 0644))

	out, err := execute(t, "validate", "--data", bad)
	require.Error(t, err)
	assert.Contains(t, out, "Validation failed")
}

func TestValidateCommand_SchemaAndJSON(t *testing.T) {
	schema := filepath.Join("..", "..", "schemas", "dataset.schema.json")

	out, err := execute(t, "validate", "--schema", schema, "--json", sampleJSON)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Validation passed")

	_, err = execute(t, "validate", "--schema", schema)
	assert.Error(t, err)
}

func TestImportCommand_Flags(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "import", "--data", sampleJSON)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "user-id"))

	_, err = execute(t, "import", "--data", sampleJSON, "--user-id", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")

	_, err = execute(t, "import", "--data", sampleJSON, "--user-id", "00000000-0000-0000-0000-000000000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")
}

func TestParseNow(t *testing.T) {
	before := time.Now()
	got, err := parseNow("")
	require.NoError(t, err)
	assert.False(t, got.Before(before))

	got, err = parseNow(fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())

	_, err = parseNow("2024-06-15")
	assert.Error(t, err)
}
