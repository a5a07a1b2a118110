package nullable

import (
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	EngineerID Int    `json:"engineer_id"`
	Remarks    String `json:"remarks"`
	VisitDate  Date   `json:"visit_date"`
	UpdatedAt  Time   `json:"updated_at"`
}

func TestUnmarshalLenientInputs(t *testing.T) {
	var v visit
	err := json.Unmarshal([]byte(`{"engineer_id":"12","remarks":null,"visit_date":"2025-03-14","updated_at":""}`), &v)
	require.NoError(t, err)
	assert.Equal(t, int64(12), v.EngineerID.ForceValue())
	assert.True(t, v.Remarks.IsNil())
	assert.Equal(t, "2025-03-14", v.VisitDate.String())
	assert.True(t, v.UpdatedAt.IsNil())

	err = json.Unmarshal([]byte(`{"engineer_id":"","visit_date":"2025-03-14T08:30:00Z"}`), &v)
	require.NoError(t, err)
	assert.True(t, v.EngineerID.IsNil())
	assert.Equal(t, "2025-03-14", v.VisitDate.String())
}

func TestMarshalNulls(t *testing.T) {
	out, err := json.Marshal(visit{EngineerID: IntOf(3), VisitDate: DateOf(time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"engineer_id":3,"remarks":null,"visit_date":"2025-01-02","updated_at":null}`, string(out))
}

func TestScanText(t *testing.T) {
	var ts Time
	require.NoError(t, ts.Scan("2025-06-01 10:11:12"))
	assert.Equal(t, 10, ts.Time.Hour())

	var d Date
	require.NoError(t, d.Scan([]byte("2025-06-01")))
	val, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", val)

	require.NoError(t, d.Scan(nil))
	val, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.Error(t, d.Scan(3.5))
	assert.Error(t, ts.Scan("yesterday"))
}

func TestStringOf(t *testing.T) {
	assert.True(t, StringOf("").IsNil())
	assert.Equal(t, "EMP-01", StringOf("EMP-01").ForceValue())
}
