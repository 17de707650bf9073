package notifier

import (
	"testing"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(chattable botApi.Chattable) (botApi.Message, error) {
	args := m.Called(chattable)
	return args.Get(0).(botApi.Message), args.Error(1)
}

func testJobsFound(jobs ...models.ExtractedJob) events.JobsFound {
	return events.JobsFound{
		Query:         models.NewSearchQuery("Android Developer", "", models.DatePostedWeek, nil),
		CorrelationID: "20260823_120000",
		TotalFetched:  len(jobs),
		Jobs:          jobs,
	}
}

func Test_OnJobsFound_SendsDigest(t *testing.T) {

	salary := 70000
	sender := &mockSender{}
	sender.On("Send", mock.Anything).Return(botApi.Message{}, nil)

	notifier := &Telegram{api: sender, chatID: 42}
	notifier.onJobsFound(testJobsFound(models.ExtractedJob{
		Role:         "Android Developer",
		Employer:     "Acme Fintech",
		LocationType: models.LocationRemote,
		MinSalary:    &salary,
		ApplyLink:    "https://example.com/jobs/1",
	}))

	require.Len(t, sender.Calls, 1)
	msg, ok := sender.Calls[0].Arguments.Get(0).(botApi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Found 1 job(s) for \"Android Developer\"")
	assert.Contains(t, msg.Text, "Android Developer at Acme Fintech (remote), from 70000")
	assert.Contains(t, msg.Text, "https://example.com/jobs/1")
}

func Test_OnJobsFound_SkipsEmptyRuns(t *testing.T) {

	sender := &mockSender{}
	notifier := &Telegram{api: sender, chatID: 42}

	notifier.onJobsFound(testJobsFound())

	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func Test_BuildDigest_CapsJobCount(t *testing.T) {

	jobs := make([]models.ExtractedJob, 15)
	for i := range jobs {
		jobs[i] = models.ExtractedJob{
			Role:         "Android Developer",
			Employer:     "Acme",
			LocationType: models.LocationNotDefined,
			PositionType: models.PositionNotDefined,
		}
	}

	digest := buildDigest(testJobsFound(jobs...))
	assert.Contains(t, digest, "...and 5 more")
	assert.Contains(t, digest, "10. Android Developer")
	assert.NotContains(t, digest, "11. Android Developer")
}
