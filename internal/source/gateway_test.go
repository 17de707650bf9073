package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jhagent/job-hunter/internal/cache"
	"github.com/jhagent/job-hunter/internal/clients/jsearch"
	"github.com/jhagent/job-hunter/internal/config"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSearchClient struct {
	mock.Mock
}

func (m *mockSearchClient) Search(parameters jsearch.SearchParameters) (map[string]any, error) {
	args := m.Called(parameters)
	payload, _ := args.Get(0).(map[string]any)
	return payload, args.Error(1)
}

func testSourceConfig(t *testing.T) config.SourceConfig {
	base := t.TempDir()
	return config.SourceConfig{
		CacheDir:              filepath.Join(base, "cache"),
		DebugDir:              filepath.Join(base, "debug"),
		OfflineDataset:        "testdata/offline_dataset.txt",
		RequestTimeoutSeconds: 30,
		NumPages:              1,
	}
}

func jobWithID(id string) map[string]any {
	return map[string]any{"job_id": id, "job_title": "Android Developer " + id}
}

func Test_Gateway_CacheHit_SkipsClient(t *testing.T) {

	cfg := testSourceConfig(t)
	store := cache.NewStore(cfg.CacheDir)
	query := models.NewSearchQuery("Android Developer", "Berlin", models.DatePostedWeek, nil)

	cached := map[string]any{"data": []any{jobWithID("cached")}}
	assert.NoError(t, store.Save(query, cached))

	client := &mockSearchClient{}
	gateway := NewGateway(client, store, cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)
	assert.True(t, result.UsedCache)
	assert.False(t, result.APICalled)
	assert.Equal(t, cached, result.Payload)
	client.AssertNotCalled(t, "Search", mock.Anything)
}

func Test_Gateway_CacheMiss_CallsClientAndStores(t *testing.T) {

	cfg := testSourceConfig(t)
	store := cache.NewStore(cfg.CacheDir)
	query := models.NewSearchQuery("Android Developer", "Berlin", models.DatePostedWeek, nil)

	fresh := map[string]any{"data": []any{jobWithID("fresh")}}
	client := &mockSearchClient{}
	client.On("Search", mock.MatchedBy(func(p jsearch.SearchParameters) bool {
		return p.Query == "Android Developer" && p.Location == "Berlin" && p.Country == "de"
	})).Return(fresh, nil).Once()

	gateway := NewGateway(client, store, cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)
	assert.False(t, result.UsedCache)
	assert.True(t, result.APICalled)
	client.AssertExpectations(t)

	cached, found := store.Lookup(query)
	assert.True(t, found)
	assert.Equal(t, fresh, cached)
}

func Test_Gateway_MultiCountry_MergesAndDedups(t *testing.T) {

	cfg := testSourceConfig(t)
	store := cache.NewStore(cfg.CacheDir)
	query := models.NewSearchQuery("Android Developer", "Europe", models.DatePostedWeek, []string{"de", "fr", "nl"})

	client := &mockSearchClient{}
	client.On("Search", mock.MatchedBy(func(p jsearch.SearchParameters) bool { return p.Country == "de" })).
		Return(map[string]any{"data": []any{jobWithID("shared"), jobWithID("de-only")}}, nil)
	client.On("Search", mock.MatchedBy(func(p jsearch.SearchParameters) bool { return p.Country == "fr" })).
		Return(nil, errors.New("provider unavailable"))
	client.On("Search", mock.MatchedBy(func(p jsearch.SearchParameters) bool { return p.Country == "nl" })).
		Return(map[string]any{"data": []any{jobWithID("shared"), jobWithID("nl-only")}}, nil)

	gateway := NewGateway(client, store, cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err, "one failed country must not abort the batch")
	assert.True(t, result.APICalled)

	data := result.Payload["data"].([]any)
	assert.Len(t, data, 3)
	assert.Equal(t, "shared", data[0].(map[string]any)["job_id"])
	assert.Equal(t, "de-only", data[1].(map[string]any)["job_id"])
	assert.Equal(t, "nl-only", data[2].(map[string]any)["job_id"])
}

func Test_Gateway_MultiCountry_AllFail_YieldsEmptyResult(t *testing.T) {

	cfg := testSourceConfig(t)
	query := models.NewSearchQuery("Android Developer", "Europe", models.DatePostedWeek, []string{"de", "fr"})

	client := &mockSearchClient{}
	client.On("Search", mock.Anything).Return(nil, errors.New("provider unavailable"))

	gateway := NewGateway(client, cache.NewStore(cfg.CacheDir), cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)
	assert.Empty(t, result.Payload["data"])
}

func Test_Gateway_Offline_SingleLocation_SubstringMatch(t *testing.T) {

	cfg := testSourceConfig(t)
	query := models.NewSearchQuery("Android Developer", "Amsterdam", models.DatePostedAll, nil)

	gateway := NewGateway(nil, cache.NewStore(cfg.CacheDir), cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)
	assert.False(t, result.APICalled)

	data := result.Payload["data"].([]any)
	assert.Len(t, data, 1)
	assert.Equal(t, "offline-3", data[0].(map[string]any)["job_id"])
}

func Test_Gateway_Offline_MultiCountry_ExactCodeMatch(t *testing.T) {

	cfg := testSourceConfig(t)
	query := models.NewSearchQuery("Android Developer", "Europe", models.DatePostedAll, []string{"nl"})

	gateway := NewGateway(nil, cache.NewStore(cfg.CacheDir), cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)

	data := result.Payload["data"].([]any)
	assert.Len(t, data, 1)
	assert.Equal(t, "offline-3", data[0].(map[string]any)["job_id"])
}

func Test_Gateway_Offline_MissingDataset_IsFatal(t *testing.T) {

	cfg := testSourceConfig(t)
	cfg.OfflineDataset = filepath.Join(t.TempDir(), "missing.txt")
	query := models.NewSearchQuery("Android Developer", "", models.DatePostedAll, nil)

	gateway := NewGateway(nil, cache.NewStore(cfg.CacheDir), cfg)

	_, err := gateway.Fetch(query)
	assert.ErrorIs(t, err, ErrNoDataSource)
}

func Test_Gateway_WritesDiagnosticSnapshot(t *testing.T) {

	cfg := testSourceConfig(t)
	query := models.NewSearchQuery("Android Developer", "", models.DatePostedAll, nil)

	gateway := NewGateway(nil, cache.NewStore(cfg.CacheDir), cfg)

	result, err := gateway.Fetch(query)
	assert.NoError(t, err)

	snapshot := filepath.Join(cfg.DebugDir, result.CorrelationID+"_response.json")
	_, err = os.Stat(snapshot)
	assert.NoError(t, err)
}

func Test_InferCountry(t *testing.T) {

	assert.Equal(t, "de", InferCountry("Berlin, Germany"))
	assert.Equal(t, "gb", InferCountry("London"))
	assert.Equal(t, "us", InferCountry("New York City"))
	assert.Equal(t, "", InferCountry("Ukraine"), "short codes must match whole words only")
	assert.Equal(t, "", InferCountry(""))
}
