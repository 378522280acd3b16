package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recruithub/hiring-pipeline/internal/events"
	"github.com/recruithub/hiring-pipeline/internal/idgen"
	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
	"github.com/recruithub/hiring-pipeline/internal/service/mappers"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

// TalentService manages the talent pool: standing profiles that are freely
// editable and carry a single Active/Inactive state toggled through the
// engine.
type TalentService struct {
	store       store.Store
	eventWriter *events.EventProducer
}

func NewTalentService(store store.Store, eventWriter *events.EventProducer) *TalentService {
	return &TalentService{store: store, eventWriter: eventWriter}
}

// TalentFilter narrows talent-pool listings.
type TalentFilter struct {
	Active *bool
	Email  *string
}

// ToggleOutcome is a committed pool-state toggle.
type ToggleOutcome struct {
	Profile *model.TalentProfile
	Version int
	Events  []lifecycle.DomainEvent
}

func (s *TalentService) CreateProfile(ctx context.Context, form mappers.TalentCreateForm) (*model.TalentProfile, error) {
	if err := form.Validate(); err != nil {
		return nil, NewErrInvalidForm(err)
	}

	for attempt := 0; attempt < displayIDRetries; attempt++ {
		profile := form.ToDomain(idgen.NewTalentID(), time.Now())
		created, err := s.store.Talent().Create(ctx, *model.NewTalentProfileFromDomain(profile))
		if err == nil {
			return created, nil
		}
		if errors.Is(err, store.ErrDuplicateKey) {
			continue
		}
		return nil, err
	}
	return nil, store.ErrDuplicateKey
}

// UpdateProfile applies plain field edits under the optimistic version. Edits
// are not state transitions; the pool state is untouched.
func (s *TalentService) UpdateProfile(ctx context.Context, id uuid.UUID, form mappers.TalentUpdateForm, expectedVersion int) (*model.TalentProfile, error) {
	if err := form.Validate(); err != nil {
		return nil, NewErrInvalidForm(err)
	}

	record, err := s.store.Talent().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTalentProfileNotFound(id)
		}
		return nil, err
	}

	if record.Version != expectedVersion {
		return nil, NewErrConcurrentModification(id, expectedVersion)
	}

	profile := record.ToDomain()
	form.ApplyTo(&profile)

	updated, err := s.store.Talent().Update(ctx, *model.NewTalentProfileFromDomain(profile), expectedVersion)
	if err != nil {
		if errors.Is(err, store.ErrConcurrentModification) {
			return nil, NewErrConcurrentModification(id, expectedVersion)
		}
		return nil, err
	}
	return updated, nil
}

// Toggle drives an Activate or Deactivate event against the profile.
// Toggling to the state the profile is already in is refused as an invalid
// transition.
func (s *TalentService) Toggle(ctx context.Context, id uuid.UUID, event lifecycle.Event, expectedVersion int) (*ToggleOutcome, error) {
	record, err := s.store.Talent().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTalentProfileNotFound(id)
		}
		return nil, err
	}

	if record.Version != expectedVersion {
		return nil, NewErrConcurrentModification(id, expectedVersion)
	}

	result, err := lifecycle.TalentTransition(record.ToDomain(), event, time.Now())
	if err != nil {
		return nil, err
	}

	record.IsActive = result.Profile.IsActive
	updated, err := s.store.Talent().Update(ctx, *record, expectedVersion)
	if err != nil {
		if errors.Is(err, store.ErrConcurrentModification) {
			return nil, NewErrConcurrentModification(id, expectedVersion)
		}
		return nil, err
	}

	s.publishToggle(ctx, updated, event, result.Events)

	return &ToggleOutcome{Profile: updated, Version: updated.Version, Events: result.Events}, nil
}

func (s *TalentService) AvailableEvents(ctx context.Context, id uuid.UUID) ([]lifecycle.Event, error) {
	record, err := s.store.Talent().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTalentProfileNotFound(id)
		}
		return nil, err
	}
	return lifecycle.TalentAvailableEvents(record.ToDomain()), nil
}

func (s *TalentService) GetProfile(ctx context.Context, id uuid.UUID) (*model.TalentProfile, error) {
	record, err := s.store.Talent().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTalentProfileNotFound(id)
		}
		return nil, err
	}
	return record, nil
}

func (s *TalentService) ListProfiles(ctx context.Context, filter *TalentFilter) (model.TalentProfileList, error) {
	storeFilter := store.NewTalentQueryFilter()
	if filter != nil {
		if filter.Active != nil {
			storeFilter = storeFilter.ByActive(*filter.Active)
		}
		if filter.Email != nil {
			storeFilter = storeFilter.ByEmail(*filter.Email)
		}
	}
	return s.store.Talent().List(ctx, storeFilter)
}

func (s *TalentService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.store.Talent().Delete(ctx, id)
}

func (s *TalentService) publishToggle(ctx context.Context, record *model.TalentProfile, event lifecycle.Event, domainEvents []lifecycle.DomainEvent) {
	msg := events.TalentMessage{
		ProfileID: record.ID.String(),
		Event:     string(event),
		IsActive:  record.IsActive,
		Events:    domainEvents,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		zap.S().Named("talent_service").Errorw("failed to marshal talent message", "error", err, "profile_id", record.ID)
		return
	}

	if err := s.eventWriter.Write(ctx, events.TalentMessageKind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("talent_service").Errorw("failed to write event", "error", err, "event_kind", events.TalentMessageKind)
	}
}
