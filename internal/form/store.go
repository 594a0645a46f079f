package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/validation"
)

// Mode selects when a field is validated on change
type Mode int

const (
	// ValidateOnTouch validates a field on change only once it was touched
	ValidateOnTouch Mode = iota
	// ValidateContinuously validates every field on every change
	ValidateContinuously
)

// Status is the derived visual state of one field
type Status string

const (
	StatusNeutral Status = "neutral"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrFieldType    = errors.New("wrong value type for field")
)

// Store is the client-side contact form state: values, touched flags and
// per-field errors. Progress and Status are derived from them.
type Store struct {
	mu      sync.Mutex
	mode    Mode
	values  contact.Submission
	touched map[validation.Field]bool
	errors  validation.FieldErrors
	cache   DraftCache
	now     func() time.Time
}

type Option func(*Store)

func WithMode(mode Mode) Option {
	return func(s *Store) { s.mode = mode }
}

// WithDraftCache mirrors every change into cache
func WithDraftCache(cache DraftCache) Option {
	return func(s *Store) { s.cache = cache }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		mode:    ValidateOnTouch,
		touched: make(map[validation.Field]bool),
		errors:  make(validation.FieldErrors),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetField updates one value and revalidates it when it was touched or the
// store validates continuously. The change is mirrored into the draft cache;
// a cache failure is returned but the value is kept.
func (s *Store) SetField(field validation.Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.assign(field, value); err != nil {
		return err
	}

	if s.touched[field] || s.mode == ValidateContinuously {
		s.validateLocked(field)
	}

	return s.saveDraftLocked()
}

// Touch marks field as touched and validates it
func (s *Store) Touch(field validation.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touched[field] = true
	s.validateLocked(field)
}

// ValidateAll touches every required field and returns a copy of the errors.
// An empty result means the form may be submitted.
func (s *Store) ValidateAll() validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, field := range validation.RequiredFields {
		s.touched[field] = true
		s.validateLocked(field)
	}
	return s.errorsLocked()
}

// Reset clears values, touched flags and errors. The draft cache is left
// alone; see ClearDraft.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = contact.Submission{}
	s.touched = make(map[validation.Field]bool)
	s.errors = make(validation.FieldErrors)
}

// Snapshot returns the current values as a submission payload
func (s *Store) Snapshot() contact.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// Errors returns a copy of the current per-field errors
func (s *Store) Errors() validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorsLocked()
}

// Touched reports whether field was touched
func (s *Store) Touched(field validation.Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched[field]
}

// Status derives the visual state of field
func (s *Store) Status(field validation.Field) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, hasError := s.errors[string(field)]; hasError {
		return StatusError
	}
	if !s.touched[field] {
		return StatusNeutral
	}
	if s.emptyLocked(field) {
		return StatusWarning
	}
	return StatusSuccess
}

// Progress is the percentage of required fields whose current value passes
// its rule. Touched flags and recorded errors play no part.
func (s *Store) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	complete := 0
	for _, field := range validation.RequiredFields {
		if _, ok := validation.ValidateField(field, s.valueLocked(field)); ok {
			complete++
		}
	}
	return complete * 100 / len(validation.RequiredFields)
}

// PrefillService fills the message with an inquiry about the named service
func (s *Store) PrefillService(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	return s.SetField(validation.FieldMessage, fmt.Sprintf("I'd like to inquire about your %s service.", title))
}

// Restore applies the cached draft when it is younger than DraftTTL and
// reports whether it did. Expired drafts are cleared. Restored fields are not
// touched, so they are not validated until the user interacts with them.
func (s *Store) Restore() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return false, nil
	}

	draft, err := s.cache.Load()
	if errors.Is(err, ErrNoDraft) {
		return false, nil
	}
	if err != nil {
		// An unreadable draft is worth nothing
		_ = s.cache.Clear()
		return false, err
	}

	if draft.Expired(s.now()) {
		return false, s.cache.Clear()
	}

	s.values.Name = draft.Data.Name
	s.values.Email = draft.Data.Email
	s.values.Phone = draft.Data.Phone
	s.values.Message = draft.Data.Message
	return true, nil
}

// ClearDraft drops the cached draft
func (s *Store) ClearDraft() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear()
}

func (s *Store) assign(field validation.Field, value any) error {
	if field == validation.FieldConsent {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrFieldType, field, value)
		}
		s.values.Consent = b
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s wants string, got %T", ErrFieldType, field, value)
	}

	switch field {
	case validation.FieldName:
		s.values.Name = str
	case validation.FieldEmail:
		s.values.Email = str
	case validation.FieldPhone:
		s.values.Phone = str
	case validation.FieldMessage:
		s.values.Message = str
	case validation.FieldHoneypot:
		s.values.Honeypot = str
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (s *Store) valueLocked(field validation.Field) any {
	switch field {
	case validation.FieldName:
		return s.values.Name
	case validation.FieldEmail:
		return s.values.Email
	case validation.FieldPhone:
		return s.values.Phone
	case validation.FieldMessage:
		return s.values.Message
	case validation.FieldConsent:
		return s.values.Consent
	case validation.FieldHoneypot:
		return s.values.Honeypot
	}
	return nil
}

func (s *Store) emptyLocked(field validation.Field) bool {
	switch v := s.valueLocked(field).(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	}
	return true
}

func (s *Store) validateLocked(field validation.Field) {
	if msg, ok := validation.ValidateField(field, s.valueLocked(field)); !ok {
		s.errors[string(field)] = msg
		return
	}
	delete(s.errors, string(field))
}

func (s *Store) errorsLocked() validation.FieldErrors {
	out := make(validation.FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *Store) saveDraftLocked() error {
	if s.cache == nil {
		return nil
	}

	data := DraftData{
		Name:    s.values.Name,
		Email:   s.values.Email,
		Phone:   s.values.Phone,
		Message: s.values.Message,
	}
	if data.Empty() {
		return s.cache.Clear()
	}
	return s.cache.Save(NewDraft(data, s.now()))
}
