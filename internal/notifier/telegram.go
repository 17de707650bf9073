package notifier

import (
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/jhagent/job-hunter/internal/logger"
	log "github.com/sirupsen/logrus"
)

// maxDigestJobs bounds the message size; Telegram rejects texts over 4096
// characters.
const maxDigestJobs = 10

type sender interface {
	Send(chattable botApi.Chattable) (botApi.Message, error)
}

// Telegram pushes a digest of every non-empty run to a single chat. It is
// optional; the run never fails because a digest could not be delivered.
type Telegram struct {
	api    sender
	chatID int64
}

func NewTelegram(token string, chatID int64, bus EventBus.Bus) (*Telegram, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("authorized on account %s", api.Self.UserName)

	notifier := &Telegram{api: api, chatID: chatID}
	if err := bus.Subscribe(events.JobsFoundTopic, notifier.onJobsFound); err != nil {
		return nil, err
	}
	return notifier, nil
}

func (t *Telegram) onJobsFound(event events.JobsFound) {

	if len(event.Jobs) == 0 {
		return
	}

	msg := botApi.NewMessage(t.chatID, buildDigest(event))
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending digest: %v", err)
	}
}

func buildDigest(event events.JobsFound) string {

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d job(s) for \"%v\":\n", len(event.Jobs), event.Query.Role)

	shown := event.Jobs
	if len(shown) > maxDigestJobs {
		shown = shown[:maxDigestJobs]
	}

	for i, job := range shown {
		fmt.Fprintf(&b, "\n%d. %v at %v", i+1, job.Role, job.Employer)
		if job.LocationType != models.LocationNotDefined {
			fmt.Fprintf(&b, " (%v)", job.LocationType)
		}
		if job.MinSalary != nil {
			fmt.Fprintf(&b, ", from %d", *job.MinSalary)
		}
		if job.ApplyLink != "" {
			fmt.Fprintf(&b, "\n%v", job.ApplyLink)
		}
		b.WriteString("\n")
	}

	if len(event.Jobs) > maxDigestJobs {
		fmt.Fprintf(&b, "\n...and %d more", len(event.Jobs)-maxDigestJobs)
	}

	return b.String()
}
