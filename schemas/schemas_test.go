package schemas_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-insights/internal/schemas"
	rootschemas "github.com/jonathan/jobsearch-insights/schemas"
)

var schemaFiles = []string{
	rootschemas.DatasetSchemaFile,
	rootschemas.ReportSchemaFile,
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
		})
	}
}

func TestEmbeddedSchemas_MatchFiles(t *testing.T) {
	data, err := os.ReadFile(rootschemas.DatasetSchemaFile)
	require.NoError(t, err)
	assert.Equal(t, string(data), rootschemas.Dataset())

	data, err = os.ReadFile(rootschemas.ReportSchemaFile)
	require.NoError(t, err)
	assert.Equal(t, string(data), rootschemas.Report())
}

func TestDatasetSchema_AcceptsEmptyAndPartialDocuments(t *testing.T) {
	docs := []string{
		`{}`,
		`{"applications": []}`,
		`{"applications": null, "interviews": [{"id": "i1", "interview_date": "2024-06-01"}]}`,
		`{"predictions": [{"id": "p1", "overall_probability": 0.4, "actual_outcome": null}]}`,
	}

	for _, doc := range docs {
		assert.NoError(t, schemas.ValidateJSONString(rootschemas.Dataset(), doc), doc)
	}
}

func TestDatasetSchema_RejectsWrongShapes(t *testing.T) {
	docs := []string{
		`[]`,
		`{"applications": {"id": "a1"}}`,
		`{"applications": [{"id": 12}]}`,
		`{"checklists": [{"completion_percentage": "half"}]}`,
	}

	for _, doc := range docs {
		err := schemas.ValidateJSONString(rootschemas.Dataset(), doc)
		require.Error(t, err, doc)
		_, ok := err.(*schemas.ValidationError)
		assert.True(t, ok, "expected ValidationError for %s", doc)
	}
}

func TestReportSchema_RequiresRecommendations(t *testing.T) {
	doc := `{
		"generated_at": "2024-06-15T12:00:00Z",
		"funnel": {"total": 0, "response_rate": 0, "interview_conversion": 0, "offer_conversion": 0, "interview_success_rate": 0},
		"breakdowns": {},
		"average_times": {},
		"correlations": {
			"prep": {"with_prep": 0, "without_prep": 0, "success_rate_with_prep": 0, "success_rate_without_prep": 0},
			"mock": {"with_prep": 0, "without_prep": 0, "success_rate_with_prep": 0, "success_rate_without_prep": 0},
			"research": {}
		},
		"patterns": {
			"day_of_week": {"dimension": "day_of_week", "ranked": [], "insufficient": []},
			"industry": {"dimension": "industry", "ranked": [], "insufficient": []},
			"company_size": {"dimension": "company_size", "ranked": [], "insufficient": []}
		},
		"forecast": {"overall_confidence": 55, "stages": [
			{"name": "first_response", "estimated_days": 7, "confidence": 60, "completion_date": "2024-06-22T12:00:00Z"},
			{"name": "first_interview", "estimated_days": 14, "confidence": 55, "completion_date": "2024-06-29T12:00:00Z"},
			{"name": "offer", "estimated_days": 30, "confidence": 50, "completion_date": "2024-07-15T12:00:00Z"}
		]},
		"scenarios": [],
		"recommendations": [],
		"skipped": {}
	}`

	err := schemas.ValidateJSONString(rootschemas.Report(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommendations")
}
