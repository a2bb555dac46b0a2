package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"freebusy/internal/domain"
)

type eventService struct {
	store          domain.EventDocumentStore
	emailService   domain.EmailService
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	baseURL        string
	contextTimeout time.Duration
}

// NewEventService returns the EventService over the replicated document
// store. baseURL is the public URL used to build invitation links.
func NewEventService(store domain.EventDocumentStore,
	emailService domain.EmailService,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	baseURL string,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		store:          store,
		emailService:   emailService,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return fmt.Errorf("event title is required: %w", domain.ErrInvalidInput)
	}
	if event.DurationMinutes <= 0 {
		return fmt.Errorf("event duration is required: %w", domain.ErrInvalidInput)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	// Repeated creation with identical metadata resolves to a no-op under
	// the store's last-writer-wins merge; divergent metadata is simply
	// overwritten, no attempt is made to merge conflicting values.
	_, err := s.store.Update(ctx, event.ID, func(doc *domain.EventDocument) error {
		doc.Event = *event
		return nil
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	doc, err := s.store.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return doc, nil
}

func (s *eventService) JoinEvent(ctx context.Context, eventID, name string) (*domain.Participant, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, "", fmt.Errorf("participant name is required: %w", domain.ErrInvalidInput)
	}
	if _, err := s.store.Get(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("get event: %w", err)
	}

	participant := domain.Participant{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		JoinedAt: time.Now(),
	}
	_, err := s.store.Update(ctx, eventID, func(doc *domain.EventDocument) error {
		// Color comes from the local participant count at join time. Two
		// replicas joining concurrently may pick the same color; accepted
		// as cosmetic.
		participant.Color = domain.ColorForJoinOrder(len(doc.Participants))
		doc.Participants[participant.ID] = participant
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("join event: %w", err)
	}

	token, err := s.tokenIssuer.Issue(participant.ID, eventID, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("issue participant token: %w", err)
	}
	return &participant, token, nil
}

func (s *eventService) UpdateParticipant(ctx context.Context, eventID, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var updated *domain.Participant
	_, err := s.store.Update(ctx, eventID, func(doc *domain.EventDocument) error {
		p, ok := doc.Participants[participantID]
		if !ok {
			// Replication can deliver an update before the join that
			// created the participant has been observed; a silent skip
			// avoids spurious failures in that window.
			return nil
		}
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.CalendarConnected != nil {
			p.CalendarConnected = *patch.CalendarConnected
		}
		doc.Participants[participantID] = p
		updated = &p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update participant: %w", err)
	}
	return updated, nil
}

func (s *eventService) ReplaceParticipantBlocks(ctx context.Context, eventID, participantID string, blocks []domain.ScheduleBlock) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, err := s.store.Update(ctx, eventID, func(doc *domain.EventDocument) error {
		for key := range doc.ScheduleBlocks {
			if ownedBy(key, participantID) {
				delete(doc.ScheduleBlocks, key)
			}
		}
		for _, block := range blocks {
			key := fmt.Sprintf("%s-%s", participantID, uuid.NewString())
			doc.ScheduleBlocks[key] = block
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace participant blocks: %w", err)
	}
	return nil
}

func (s *eventService) ScheduleForParticipant(ctx context.Context, eventID, participantID string) ([]domain.ScheduleBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	doc, err := s.store.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	blocks := []domain.ScheduleBlock{}
	for key, block := range doc.ScheduleBlocks {
		if ownedBy(key, participantID) {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

func (s *eventService) SendInvitations(ctx context.Context, eventID string, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	doc, err := s.store.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		data := &domain.EventInvitationEmailData{
			Email:           email,
			OrganizerName:   doc.Event.OrganizerName,
			EventTitle:      doc.Event.Title,
			DurationMinutes: doc.Event.DurationMinutes,
			EventURL:        fmt.Sprintf("%s/events/%s", s.baseURL, eventID),
		}
		if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}
