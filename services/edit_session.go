package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/blob"
	"github.com/samudev/portfolio-backend/database"
	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
)

// EditState is the lifecycle of one mutation attempt.
type EditState string

const (
	StateIdle           EditState = "idle"
	StateStaged         EditState = "staged"
	StateUploading      EditState = "uploading"
	StateMerging        EditState = "merging"
	StatePersisting     EditState = "persisting"
	StateDone           EditState = "done"
	StatePartialFailure EditState = "partial-failure"
	StateFailed         EditState = "failed"
)

// StagedFile is one pending upload, partitioned by media kind.
type StagedFile struct {
	File blob.File
	Kind models.MediaKind
}

// UploadOutcome records the result of one independent upload. Error carries
// the failure reason in wire form so callers see why a file was lost, not
// just that it was.
type UploadOutcome struct {
	Name  string           `json:"name"`
	Kind  models.MediaKind `json:"kind"`
	URL   string           `json:"url,omitempty"`
	Error string           `json:"error,omitempty"`
	Err   error            `json:"-"`
}

// Result is the aggregate outcome of a submit. Success and failure counts are
// always reported distinctly; failures are never silently dropped. Message
// explains a terminal failure in one line.
type Result struct {
	State        EditState       `json:"state"`
	ProjectID    string          `json:"projectId,omitempty"`
	Project      *models.Project `json:"project,omitempty"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Message      string          `json:"message,omitempty"`
	Outcomes     []UploadOutcome `json:"outcomes,omitempty"`
}

// EditSession coordinates one record mutation with its media upload batch:
// Idle -> Staged -> Uploading -> Merging -> Persisting -> terminal state. The
// record store and blob store stay independent; a persist failure after
// successful uploads leaves orphaned blobs, which are logged, never rolled
// back.
type EditSession struct {
	store  database.RecordStore
	blobs  blob.Store
	logger zerolog.Logger

	state     EditState
	projectID string // empty until bound; empty at submit means create
	draft     models.Project
	staged    []StagedFile
}

func NewEditSession(store database.RecordStore, blobs blob.Store) *EditSession {
	return &EditSession{
		store:  store,
		blobs:  blobs,
		logger: log.With().Str("component", "editSession").Logger(),
		state:  StateIdle,
	}
}

func (s *EditSession) State() EditState {
	return s.state
}

// BeginCreate stages a new record. Validation runs now, before any network
// call, so a bad draft never causes a partial state change.
func (s *EditSession) BeginCreate(draft models.Project) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	s.projectID = ""
	s.draft = draft
	s.state = StateStaged
	return nil
}

// BeginEdit pre-seeds the session with the stored record and merges the
// caller's partial fields over it. Media already on the record is untouched;
// staged uploads append after it.
func (s *EditSession) BeginEdit(ctx context.Context, id string, patch json.RawMessage) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	draft := *existing
	if len(patch) > 0 {
		if err := json.Unmarshal(patch, &draft); err != nil {
			return errs.NewBadRequestError("malformed project patch")
		}
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	s.projectID = id
	s.draft = draft
	s.state = StateStaged
	return nil
}

// Stage adds files to the pending batch.
func (s *EditSession) Stage(files ...StagedFile) {
	s.staged = append(s.staged, files...)
}

// Submit runs the remainder of the state machine. Uploads run concurrently
// and every outcome is collected before anything else happens; a single
// failure neither aborts sibling uploads nor the persist step. In-flight
// uploads survive caller cancellation, matching the no-cancellation model.
func (s *EditSession) Submit(ctx context.Context) Result {
	if s.state != StateStaged {
		return Result{State: StateFailed}
	}

	// submitting without new files is a persist-only path
	if len(s.staged) == 0 {
		return s.persist(ctx, Result{})
	}

	s.state = StateUploading
	owner := s.projectID
	if owner == "" {
		// no id bound yet; scope uploads under an ephemeral owner the
		// way the original panel did before the record exists
		owner = fmt.Sprintf("temp-%d", time.Now().UnixMilli())
	}

	uploadCtx := context.WithoutCancel(ctx)
	outcomes := make([]UploadOutcome, len(s.staged))
	var wg sync.WaitGroup
	for i, staged := range s.staged {
		wg.Add(1)
		go func(i int, staged StagedFile) {
			defer wg.Done()
			url, err := s.blobs.Upload(uploadCtx, owner, staged.File, staged.Kind)
			outcome := UploadOutcome{
				Name: staged.File.Name,
				Kind: staged.Kind,
				URL:  url,
				Err:  err,
			}
			if err != nil {
				outcome.Error = err.Error()
			}
			outcomes[i] = outcome
		}(i, staged)
	}
	wg.Wait()

	result := Result{Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			s.logger.Error().Err(outcome.Err).Str("file", outcome.Name).Msg("Upload failed")
			result.FailureCount++
		} else {
			result.SuccessCount++
		}
	}

	if result.SuccessCount == 0 {
		s.state = StateFailed
		result.State = StateFailed
		result.Message = "every upload failed; the record was not persisted"
		s.logger.Error().
			Int("failureCount", result.FailureCount).
			Msg("Every upload failed, skipping persist")
		return result
	}

	// append successful URLs after the existing media, order preserved
	s.state = StateMerging
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			s.draft.Images = append(s.draft.Images, models.MediaItem{
				Kind: outcome.Kind,
				URL:  outcome.URL,
			})
		}
	}

	return s.persist(ctx, result)
}

func (s *EditSession) persist(ctx context.Context, result Result) Result {
	s.state = StatePersisting

	var persisted *models.Project
	var err error
	if s.projectID == "" {
		record := s.draft
		if _, err = s.store.Create(ctx, &record); err == nil {
			persisted = &record
		}
	} else {
		var patch json.RawMessage
		patch, err = json.Marshal(s.draft)
		if err == nil {
			persisted, err = s.store.Update(ctx, s.projectID, patch)
		}
	}

	if err != nil {
		s.state = StateFailed
		result.State = StateFailed
		result.Message = "persist failed: " + err.Error()
		s.logOrphans(result.Outcomes)
		s.logger.Error().Err(err).Msg("Persist failed")
		return result
	}

	result.ProjectID = persisted.ID
	result.Project = persisted
	if result.FailureCount > 0 {
		s.state = StatePartialFailure
		result.State = StatePartialFailure
		s.logger.Warn().
			Int("successCount", result.SuccessCount).
			Int("failureCount", result.FailureCount).
			Str("projectID", persisted.ID).
			Msg("Record persisted with partial upload failures")
	} else {
		s.state = StateDone
		result.State = StateDone
	}
	return result
}

// logOrphans records blobs that uploaded but never made it into a persisted
// record, for manual cleanup. No compensating delete is attempted.
func (s *EditSession) logOrphans(outcomes []UploadOutcome) {
	for _, outcome := range outcomes {
		if outcome.Err == nil && outcome.URL != "" {
			s.logger.Error().
				Str("url", outcome.URL).
				Msg("Orphaned blob: uploaded but not referenced by any record")
		}
	}
}
