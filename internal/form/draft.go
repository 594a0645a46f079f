package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// DraftKey is the fixed cache key the contact form draft lives under
const DraftKey = "sirch-contact-draft"

// DraftTTL is how long a draft stays eligible for recovery
const DraftTTL = time.Hour

// ErrNoDraft is returned by a DraftCache holding no draft
var ErrNoDraft = errors.New("no draft saved")

// DraftData is the recoverable part of the form. Consent and the honeypot
// are never cached.
type DraftData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Empty reports whether no field holds any text
func (d DraftData) Empty() bool {
	return strings.TrimSpace(d.Name+d.Email+d.Phone+d.Message) == ""
}

// Draft is a timestamped snapshot of the form, timestamp in epoch milliseconds
type Draft struct {
	Data      DraftData `json:"data"`
	Timestamp int64     `json:"timestamp"`
}

// NewDraft stamps data with now
func NewDraft(data DraftData, now time.Time) *Draft {
	return &Draft{Data: data, Timestamp: now.UnixMilli()}
}

// SavedAt returns the draft timestamp as a time
func (d *Draft) SavedAt() time.Time {
	return time.UnixMilli(d.Timestamp)
}

// Expired reports whether the draft is older than DraftTTL at now
func (d *Draft) Expired(now time.Time) bool {
	return now.Sub(d.SavedAt()) > DraftTTL
}

// DraftCache persists at most one draft under DraftKey
type DraftCache interface {
	Load() (*Draft, error)
	Save(d *Draft) error
	Clear() error
}

func encodeDraft(d *Draft) ([]byte, error) {
	data, err := sonic.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	return data, nil
}

func decodeDraft(data []byte) (*Draft, error) {
	var d Draft
	if err := sonic.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}
