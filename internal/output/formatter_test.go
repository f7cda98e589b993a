package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwatch/posture/pkg/types"
)

func sampleResult() *types.Result {
	return &types.Result{
		Target: types.Target{Host: "example.com"},
		Scores: map[types.Category]int{
			types.ConnectionSecurity: 82,
			types.CertificateHealth:  95,
			types.DNSRecordHealth:    60,
			types.DomainReputation:   41,
			types.WHOISPattern:       100,
			types.IPReputation:       100,
			types.CredentialSafety:   80,
		},
		Aggregated: 68.43,
	}
}

func TestGetFormatter_Table(t *testing.T) {
	f, err := GetFormatter("table")
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)
}

func TestGetFormatter_JSON(t *testing.T) {
	f, err := GetFormatter("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, sampleResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "example.com")
	assert.Contains(t, output, "Connection_Security")
	assert.Contains(t, output, "Domain_Reputation")
	assert.Contains(t, output, "68.43")
	assert.NotContains(t, output, "Preflight")
}

func TestTableFormatter_Preflight(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	result := &types.Result{
		Target:     types.Target{Host: "gone.example"},
		Scores:     map[types.Category]int{types.ConnectionSecurity: 1},
		Aggregated: 1,
		Preflight:  types.PreflightDead,
	}
	err := f.Format(&buf, result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Preflight")
	assert.Contains(t, buf.String(), "dead")
}

func TestOrderedCategories(t *testing.T) {
	scores := map[types.Category]int{
		types.ContentSafety:      90,
		types.ConnectionSecurity: 80,
		types.Category("Zz_Custom"): 50,
		types.Category("Aa_Custom"): 50,
	}

	ordered := orderedCategories(scores)

	assert.Equal(t, []types.Category{
		types.ConnectionSecurity,
		types.ContentSafety,
		types.Category("Aa_Custom"),
		types.Category("Zz_Custom"),
	}, ordered)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	err := f.Format(&buf, sampleResult())
	require.NoError(t, err)

	var decoded types.Result
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, 82, decoded.Scores[types.ConnectionSecurity])
	assert.Equal(t, 68.43, decoded.Aggregated)
}
