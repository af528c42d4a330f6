// Package verification drives a session through the ordered identity checks
// gating the dashboard: email code, phone number + code, face scan. Stages
// only move forward; a wrong code reports a mismatch and leaves the stage
// alone, and a submission for a later stage is rejected without effect.
package verification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeus-fintech/zeus-api/internal/config"
	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/logging"
)

type Service struct {
	cfg *config.Config

	// mu guards both stage transitions and the scan timers, so a cancelled
	// scan can never complete: the timer callback re-checks registration
	// under the same lock that Cancel holds while stopping it.
	mu    sync.Mutex
	scans map[uuid.UUID]*time.Timer
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:   cfg,
		scans: make(map[uuid.UUID]*time.Timer),
	}
}

// SubmitEmailCode advances EmailPending to PhonePending on the expected
// code. Anything that is not exactly the expected 6-digit value, including
// a wrong length or format, is a mismatch.
func (s *Service) SubmitEmailCode(ctx context.Context, sess *domain.Session, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := sess.Stage(); st != domain.StageEmailPending {
		return fmt.Errorf("SubmitEmailCode: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}
	if code != s.cfg.EmailVerificationCode {
		return fmt.Errorf("SubmitEmailCode: %w", domain.ErrVerificationMismatch)
	}

	sess.SetProgress(domain.StagePhonePending, domain.PhoneStepNumber)
	logging.FromContext(ctx).Info("email verified", "session_id", sess.ID)
	return nil
}

// SubmitPhoneNumber records the number and moves the phone sub-step to code
// entry. Any non-empty value is accepted; the demo sends no real SMS.
func (s *Service) SubmitPhoneNumber(ctx context.Context, sess *domain.Session, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, step := sess.Progress(); st != domain.StagePhonePending || step != domain.PhoneStepNumber {
		return fmt.Errorf("SubmitPhoneNumber: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}
	if number == "" {
		return fmt.Errorf("SubmitPhoneNumber: phone_number: %w", domain.ErrMissingField)
	}

	sess.SetPhoneNumber(number)
	sess.SetProgress(domain.StagePhonePending, domain.PhoneStepCode)
	return nil
}

// EditPhoneNumber returns the phone sub-step to number entry. The outer
// stage does not change.
func (s *Service) EditPhoneNumber(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, step := sess.Progress(); st != domain.StagePhonePending || step != domain.PhoneStepCode {
		return fmt.Errorf("EditPhoneNumber: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}

	sess.SetProgress(domain.StagePhonePending, domain.PhoneStepNumber)
	return nil
}

// SubmitPhoneCode advances PhonePending to FacePending on the expected code.
func (s *Service) SubmitPhoneCode(ctx context.Context, sess *domain.Session, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, step := sess.Progress(); st != domain.StagePhonePending || step != domain.PhoneStepCode {
		return fmt.Errorf("SubmitPhoneCode: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}
	if code != s.cfg.PhoneVerificationCode {
		return fmt.Errorf("SubmitPhoneCode: %w", domain.ErrVerificationMismatch)
	}

	sess.SetProgress(domain.StageFacePending, "")
	logging.FromContext(ctx).Info("phone verified", "session_id", sess.ID)
	return nil
}

// StartFaceScan schedules the transition to FullyVerified after the
// configured scan duration. Starting while a scan is already running is a
// no-op. The pending transition is aborted by CancelFaceScan.
func (s *Service) StartFaceScan(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := sess.Stage(); st != domain.StageFacePending {
		return fmt.Errorf("StartFaceScan: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}
	if _, running := s.scans[sess.ID]; running {
		return nil
	}

	id := sess.ID
	s.scans[id] = time.AfterFunc(s.cfg.FaceScanDuration, func() {
		s.completeScan(id, sess)
	})
	logging.FromContext(ctx).Info("face scan started", "session_id", id, "duration", s.cfg.FaceScanDuration)
	return nil
}

func (s *Service) completeScan(id uuid.UUID, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancelled scan may already have been removed; in that case the
	// session must not advance.
	if _, running := s.scans[id]; !running {
		return
	}
	delete(s.scans, id)

	if sess.Stage() != domain.StageFacePending {
		return
	}
	sess.SetProgress(domain.StageFullyVerified, "")
}

// CancelFaceScan aborts a pending scan, leaving the session at FacePending.
// It is safe to call when no scan is running, including at logout.
func (s *Service) CancelFaceScan(ctx context.Context, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, running := s.scans[sess.ID]; running {
		t.Stop()
		delete(s.scans, sess.ID)
	}
}

// ReportCameraDenied records that the capture device was unavailable. Any
// pending scan is aborted; the session stays at FacePending so the user can
// retry after granting access.
func (s *Service) ReportCameraDenied(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := sess.Stage(); st != domain.StageFacePending {
		return fmt.Errorf("ReportCameraDenied: stage %s: %w", st, domain.ErrStageOutOfOrder)
	}
	if t, running := s.scans[sess.ID]; running {
		t.Stop()
		delete(s.scans, sess.ID)
	}

	logging.FromContext(ctx).Warn("camera access denied", "session_id", sess.ID)
	return fmt.Errorf("ReportCameraDenied: %w", domain.ErrCameraAccessDenied)
}

// Scanning reports whether a face scan is currently pending for the session.
func (s *Service) Scanning(sess *domain.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, running := s.scans[sess.ID]
	return running
}
