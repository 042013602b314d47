package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"time"

	"github.com/pkg/errors"
)

const (
	AliasCodeLength    = 6
	AliasCodeMaxLength = 12
	AliasTargetMaxLen  = 2048
	AliasMaxRetries    = 5
)

var aliasCodeRegexp = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// IsValidAliasCode accepts 1..AliasCodeMaxLength alphanumeric characters.
func IsValidAliasCode(code string) bool {
	return len(code) <= AliasCodeMaxLength && aliasCodeRegexp.MatchString(code)
}

type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	marshalData, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshal metadata failed")
	}
	return string(marshalData), nil
}

func (Metadata) GormDataType() string {
	return "json"
}

func (m *Metadata) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unexpected metadata type %T", value)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	if err := json.Unmarshal(data, m); err != nil {
		return errors.Wrap(err, "unmarshal metadata failed")
	}
	return nil
}

type Alias struct {
	Code       string     `json:"code" gorm:"primaryKey;size:12"`
	Target     string     `json:"target" gorm:"size:2048;not null"`
	UserID     string     `json:"user_id" gorm:"size:100;not null;index"`
	Metadata   Metadata   `json:"metadata"`
	ExpiresAt  *time.Time `json:"expires_at" gorm:"index"`
	ShouldWarn bool       `json:"should_warn" gorm:"not null;default:false"`
	IsActive   bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsResolvable reports whether the alias may be served at now.
func (a *Alias) IsResolvable(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
		return false
	}
	return true
}

type CreateAliasParams struct {
	UserID    string
	Target    string
	Metadata  Metadata
	ExpiresAt *time.Time
}

type UpdateAliasParams struct {
	Target    *string
	Metadata  Metadata
	ExpiresAt *time.Time
	IsActive  *bool
}

func (u *UpdateAliasParams) IsEmpty() bool {
	return u.Target == nil && u.Metadata == nil && u.ExpiresAt == nil && u.IsActive == nil
}

type AliasRepo interface {
	Create(ctx context.Context, alias *Alias) error
	GetByCode(ctx context.Context, code string) (*Alias, error)
	GetByCodeAndUserID(ctx context.Context, code, userID string) (*Alias, error)
	GetByUserID(ctx context.Context, userID string) ([]*Alias, error)
	Update(ctx context.Context, code, userID string, params *UpdateAliasParams) (*Alias, error)
	UpdateShouldWarn(ctx context.Context, code string, shouldWarn bool) (updated bool, err error)
	Delete(ctx context.Context, code, userID string) (deleted bool, err error)
	Ping(ctx context.Context) error
}

type AllocatorUseCase interface {
	Create(ctx context.Context, params *CreateAliasParams) (*Alias, error)
}

type AliasUseCase interface {
	GetAliases(ctx context.Context, userID string) ([]*Alias, error)
	GetAlias(ctx context.Context, userID, code string) (*Alias, error)
	UpdateAlias(ctx context.Context, userID, code string, params *UpdateAliasParams) (*Alias, error)
	DeleteAlias(ctx context.Context, userID, code string) error
	ResolveTarget(ctx context.Context, code string) (string, error)
}
