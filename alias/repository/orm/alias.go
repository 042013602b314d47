package orm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	ormKit "github.com/superj80820/url2short/kit/orm"
	"gorm.io/gorm"
)

const tableName = "alias"

type aliasEntity domain.Alias

func (aliasEntity) TableName() string {
	return tableName
}

type aliasRepo struct {
	orm *ormKit.DB
}

func CreateAliasRepo(orm *ormKit.DB) domain.AliasRepo {
	return &aliasRepo{
		orm: orm,
	}
}

// Migrate creates the alias table for local runs. Production uses schema.sql.
func Migrate(orm *ormKit.DB) error {
	if err := orm.AutoMigrate(&aliasEntity{}); err != nil {
		return errors.Wrap(err, "migrate alias failed")
	}
	return nil
}

func (a *aliasRepo) Create(ctx context.Context, alias *domain.Alias) error {
	err := a.orm.WithContext(ctx).Create((*aliasEntity)(alias)).Error
	if _, ok := ormKit.ConvertDuplicateErr(err); ok {
		return errors.Wrapf(domain.ErrDuplicate, "code %s already exists", alias.Code)
	} else if err != nil {
		return errors.Wrap(err, "insert alias failed")
	}
	return nil
}

func (a *aliasRepo) GetByCode(ctx context.Context, code string) (*domain.Alias, error) {
	var alias aliasEntity
	err := a.orm.WithContext(ctx).Where("code = ?", code).First(&alias).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "code %s", code)
	} else if err != nil {
		return nil, errors.Wrap(err, "query alias failed")
	}
	return (*domain.Alias)(&alias), nil
}

func (a *aliasRepo) GetByCodeAndUserID(ctx context.Context, code, userID string) (*domain.Alias, error) {
	return getByCodeAndUserID(a.orm.WithContext(ctx), code, userID)
}

func getByCodeAndUserID(tx *gorm.DB, code, userID string) (*domain.Alias, error) {
	var alias aliasEntity
	err := tx.Where("code = ? AND user_id = ?", code, userID).First(&alias).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "code %s", code)
	} else if err != nil {
		return nil, errors.Wrap(err, "query alias failed")
	}
	return (*domain.Alias)(&alias), nil
}

func (a *aliasRepo) GetByUserID(ctx context.Context, userID string) ([]*domain.Alias, error) {
	var entities []*aliasEntity
	if err := a.orm.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, errors.Wrap(err, "query aliases failed")
	}
	aliases := make([]*domain.Alias, len(entities))
	for idx, entity := range entities {
		aliases[idx] = (*domain.Alias)(entity)
	}
	return aliases, nil
}

func (a *aliasRepo) Update(ctx context.Context, code, userID string, params *domain.UpdateAliasParams) (*domain.Alias, error) {
	var updated *domain.Alias
	err := a.orm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getByCodeAndUserID(tx, code, userID); err != nil {
			return errors.Wrap(err, "get alias failed")
		}

		updates := make(map[string]interface{})
		if params.Target != nil {
			updates["target"] = *params.Target
		}
		if params.Metadata != nil {
			updates["metadata"] = params.Metadata
		}
		if params.ExpiresAt != nil {
			updates["expires_at"] = params.ExpiresAt.UTC()
		}
		if params.IsActive != nil {
			updates["is_active"] = *params.IsActive
		}
		if len(updates) != 0 {
			if err := tx.Model(&aliasEntity{}).Where("code = ? AND user_id = ?", code, userID).Updates(updates).Error; err != nil {
				return errors.Wrap(err, "update alias failed")
			}
		}

		alias, err := getByCodeAndUserID(tx, code, userID)
		if err != nil {
			return errors.Wrap(err, "get updated alias failed")
		}
		updated = alias
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (a *aliasRepo) UpdateShouldWarn(ctx context.Context, code string, shouldWarn bool) (bool, error) {
	result := a.orm.WithContext(ctx).Model(&aliasEntity{}).Where("code = ?", code).Update("should_warn", shouldWarn)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "update should warn failed")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	// mysql reports zero affected rows when the value is unchanged
	var count int64
	if err := a.orm.WithContext(ctx).Model(&aliasEntity{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count alias failed")
	}
	return count > 0, nil
}

func (a *aliasRepo) Delete(ctx context.Context, code, userID string) (bool, error) {
	result := a.orm.WithContext(ctx).Where("code = ? AND user_id = ?", code, userID).Delete(&aliasEntity{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete alias failed")
	}
	return result.RowsAffected > 0, nil
}

func (a *aliasRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return a.orm.Ping(ctx)
}
