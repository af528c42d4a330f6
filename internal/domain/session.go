package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Stage is the session's position in the ordered identity-verification flow.
// Progression is strictly linear; the only backwards movement is the phone
// sub-step returning from code entry to number entry.
type Stage string

const (
	StageEmailPending  Stage = "email_pending"
	StagePhonePending  Stage = "phone_pending"
	StageFacePending   Stage = "face_pending"
	StageFullyVerified Stage = "fully_verified"
)

// PhoneStep is the sub-step within StagePhonePending.
type PhoneStep string

const (
	PhoneStepNumber PhoneStep = "number_entry"
	PhoneStepCode   PhoneStep = "code_entry"
)

// Session identifies one signed-in user and their verification progress.
// It exists from login until logout; an absent session is the
// unauthenticated state.
//
// ID, Email and CreatedAt are fixed at login. The verification progress is
// written by the verification flow, including the face-scan timer goroutine,
// while request goroutines read it, so it lives behind the session's own
// mutex and is only reachable through the accessors.
type Session struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time

	mu          sync.Mutex
	stage       Stage
	phoneNumber string
	phoneStep   PhoneStep
}

func NewSession(email string) *Session {
	return &Session{
		ID:        uuid.New(),
		Email:     email,
		stage:     StageEmailPending,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

func (s *Session) PhoneStep() PhoneStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phoneStep
}

func (s *Session) PhoneNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phoneNumber
}

// Progress returns stage and phone sub-step as one consistent pair.
func (s *Session) Progress() (Stage, PhoneStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage, s.phoneStep
}

// SetProgress moves the session to the given stage and phone sub-step in one
// step. Transition ordering is the verification service's responsibility;
// the session only makes the write safe to observe.
func (s *Session) SetProgress(stage Stage, step PhoneStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
	s.phoneStep = step
}

func (s *Session) SetPhoneNumber(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phoneNumber = number
}
