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
	"github.com/recruithub/hiring-pipeline/pkg/metrics"
)

// displayIDRetries bounds retries when a generated display id collides with
// an existing row.
const displayIDRetries = 3

// CandidateService orchestrates the candidate lifecycle: it loads state,
// delegates every decision to the pure transition table, persists the outcome
// under the optimistic version and emits the declared domain events.
type CandidateService struct {
	store       store.Store
	eventWriter *events.EventProducer
	cfg         lifecycle.Config
}

func NewCandidateService(store store.Store, eventWriter *events.EventProducer, cfg lifecycle.Config) *CandidateService {
	return &CandidateService{store: store, eventWriter: eventWriter, cfg: cfg}
}

// CandidateFilter narrows candidate listings.
type CandidateFilter struct {
	JobID  *uuid.UUID
	Status *lifecycle.CandidateStatus
	Email  *string
}

// TransitionOutcome is a committed transition as seen by callers: the fresh
// record, its new version and the domain events the transition declared.
type TransitionOutcome struct {
	Candidate *model.Candidate
	Version   int
	Events    []lifecycle.DomainEvent
}

func (s *CandidateService) CreateCandidate(ctx context.Context, form mappers.CandidateCreateForm) (*TransitionOutcome, error) {
	if err := form.Validate(); err != nil {
		metrics.IncreaseTransitionsTotalMetric(string(lifecycle.EventApply), metrics.TransitionOutcomeRefused)
		return nil, NewErrInvalidForm(err)
	}

	jobRecord, err := s.store.Job().Get(ctx, form.JobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(form.JobID)
		}
		return nil, err
	}
	job := lifecycle.Job{ID: jobRecord.ID, Title: jobRecord.Title, IsActive: jobRecord.IsActive}

	var created *model.Candidate
	var domainEvents []lifecycle.DomainEvent
	for attempt := 0; attempt < displayIDRetries; attempt++ {
		candidate, evs, err := lifecycle.Apply(form.ToApplyRequest(), job, idgen.NewCandidateID(), time.Now())
		if err != nil {
			metrics.IncreaseTransitionsTotalMetric(string(lifecycle.EventApply), metrics.TransitionOutcomeRefused)
			return nil, err
		}

		created, err = s.store.Candidate().Create(ctx, *model.NewCandidateFromDomain(candidate))
		if err == nil {
			domainEvents = evs
			break
		}
		if errors.Is(err, store.ErrDuplicateKey) {
			// display id collision, roll a new one
			continue
		}
		metrics.IncreaseTransitionsTotalMetric(string(lifecycle.EventApply), metrics.TransitionOutcomeError)
		return nil, err
	}
	if created == nil {
		metrics.IncreaseTransitionsTotalMetric(string(lifecycle.EventApply), metrics.TransitionOutcomeError)
		return nil, store.ErrDuplicateKey
	}

	s.publishTransition(ctx, created, lifecycle.EventApply, domainEvents)
	metrics.IncreaseTransitionsTotalMetric(string(lifecycle.EventApply), metrics.TransitionOutcomeApplied)

	return &TransitionOutcome{Candidate: created, Version: created.Version, Events: domainEvents}, nil
}

// Transition drives one lifecycle event against the candidate identified by
// id. The caller passes the version it last read; a mismatch, detected either
// up front or at commit, yields ErrConcurrentModification and the caller
// retries against fresh state.
func (s *CandidateService) Transition(ctx context.Context, id uuid.UUID, req lifecycle.Request, expectedVersion int) (*TransitionOutcome, error) {
	record, err := s.store.Candidate().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCandidateNotFound(id)
		}
		return nil, err
	}

	if record.Version != expectedVersion {
		metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeConflict)
		return nil, NewErrConcurrentModification(id, expectedVersion)
	}

	candidate, err := record.ToDomain()
	if err != nil {
		return nil, NewErrEntityCorrupted(id, err)
	}
	if err := lifecycle.CheckIntegrity(candidate); err != nil {
		metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeError)
		return nil, NewErrEntityCorrupted(id, err)
	}

	result, err := lifecycle.Transition(candidate, req, s.cfg, time.Now())
	if err != nil {
		metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeRefused)
		return nil, err
	}

	record.SetFromDomain(result.Candidate)
	updated, err := s.store.Candidate().Update(ctx, *record, expectedVersion)
	if err != nil {
		if errors.Is(err, store.ErrConcurrentModification) {
			metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeConflict)
			return nil, NewErrConcurrentModification(id, expectedVersion)
		}
		metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeError)
		return nil, err
	}

	s.publishTransition(ctx, updated, req.Event, result.Events)
	metrics.IncreaseTransitionsTotalMetric(string(req.Event), metrics.TransitionOutcomeApplied)

	return &TransitionOutcome{Candidate: updated, Version: updated.Version, Events: result.Events}, nil
}

// AvailableEvents reports the events legal for the candidate's current
// status, derived from the same table Transition consults.
func (s *CandidateService) AvailableEvents(ctx context.Context, id uuid.UUID) ([]lifecycle.Event, error) {
	record, err := s.store.Candidate().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCandidateNotFound(id)
		}
		return nil, err
	}

	candidate, err := record.ToDomain()
	if err != nil {
		return nil, NewErrEntityCorrupted(id, err)
	}

	return lifecycle.AvailableEvents(candidate), nil
}

func (s *CandidateService) GetCandidate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	record, err := s.store.Candidate().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCandidateNotFound(id)
		}
		return nil, err
	}
	return record, nil
}

func (s *CandidateService) GetCandidateByDisplayID(ctx context.Context, displayID string) (*model.Candidate, error) {
	record, err := s.store.Candidate().GetByDisplayID(ctx, displayID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrResourceNotFound(uuid.UUID{}, "candidate "+displayID)
		}
		return nil, err
	}
	return record, nil
}

func (s *CandidateService) ListCandidates(ctx context.Context, filter *CandidateFilter) (model.CandidateList, error) {
	storeFilter := store.NewCandidateQueryFilter()
	if filter != nil {
		if filter.JobID != nil {
			storeFilter = storeFilter.ByJobID(filter.JobID.String())
		}
		if filter.Status != nil {
			storeFilter = storeFilter.ByStatus(string(*filter.Status))
		}
		if filter.Email != nil {
			storeFilter = storeFilter.ByEmail(*filter.Email)
		}
	}

	opts := store.NewCandidateQueryOptions().WithSortOrder(store.SortByCreatedTime)
	return s.store.Candidate().List(ctx, storeFilter, opts)
}

func (s *CandidateService) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return s.store.Candidate().Delete(ctx, id)
}

// UpdateStatusMetrics refreshes the per-status gauge from the current store
// contents. Called periodically by the server loop.
func (s *CandidateService) UpdateStatusMetrics(ctx context.Context) error {
	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return err
	}
	for status, count := range stats.CandidatesPerStatus {
		metrics.UpdateCandidateStatusCountMetric(status, count)
	}
	return nil
}

// publishTransition hands the committed transition to the event producer.
// Delivery is best effort: the transition is already durable and must not be
// rolled back by a notification failure.
func (s *CandidateService) publishTransition(ctx context.Context, record *model.Candidate, event lifecycle.Event, domainEvents []lifecycle.DomainEvent) {
	msg := events.TransitionMessage{
		CandidateID: record.ID.String(),
		Event:       string(event),
		Status:      record.Status,
		Version:     record.Version,
		Events:      domainEvents,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		zap.S().Named("candidate_service").Errorw("failed to marshal transition message", "error", err, "candidate_id", record.ID)
		return
	}

	if err := s.eventWriter.Write(ctx, events.TransitionMessageKind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("candidate_service").Errorw("failed to write event", "error", err, "event_kind", events.TransitionMessageKind)
	}
}
