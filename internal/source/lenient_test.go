package source

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseLenient_StrictJSON(t *testing.T) {

	payload, err := ParseLenient([]byte(`{"status": "OK", "data": [{"job_title": "Dev"}]}`))
	assert.NoError(t, err)
	assert.Equal(t, "OK", payload["status"])
}

func Test_ParseLenient_LooseLiteral(t *testing.T) {

	content := `{
		'status': 'OK',
		'count': 2,
		'data': [
			{'job_title': 'Dev', 'job_is_remote': True, 'job_state': None,},
			{'job_title': "Tester \"QA\"", 'job_is_remote': False},
		],
	}`

	payload, err := ParseLenient([]byte(content))
	assert.NoError(t, err)
	assert.Equal(t, "OK", payload["status"])

	data := payload["data"].([]any)
	assert.Len(t, data, 2)

	first := data[0].(map[string]any)
	assert.Equal(t, true, first["job_is_remote"])
	assert.Nil(t, first["job_state"])

	second := data[1].(map[string]any)
	assert.Equal(t, `Tester "QA"`, second["job_title"])
}

func Test_ParseLenient_EscapedSingleQuote(t *testing.T) {

	payload, err := ParseLenient([]byte(`{'employer_name': 'O\'Reilly Media'}`))
	assert.NoError(t, err)
	assert.Equal(t, "O'Reilly Media", payload["employer_name"])
}

func Test_ParseLenient_KeywordsInsideStrings_AreUntouched(t *testing.T) {

	payload, err := ParseLenient([]byte(`{'note': 'None of this is True'}`))
	assert.NoError(t, err)
	assert.Equal(t, "None of this is True", payload["note"])
}

func Test_ParseLenient_BothEncodingsFail(t *testing.T) {

	_, err := ParseLenient([]byte(`definitely not a payload`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse")
}

func Test_ParseLenient_OfflineFixture(t *testing.T) {

	content, err := os.ReadFile("testdata/offline_dataset.txt")
	assert.NoError(t, err)

	payload, err := ParseLenient(content)
	assert.NoError(t, err)

	data := payload["data"].([]any)
	assert.Len(t, data, 3)

	first := data[0].(map[string]any)
	assert.Equal(t, "Android Developer", first["job_title"])
	assert.Equal(t, true, first["job_is_remote"])
}
