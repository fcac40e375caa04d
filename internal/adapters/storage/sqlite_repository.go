package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/prmonitor/internal/config"
	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/ports"
)

const maxRetries = 3

// SQLiteRepository implements ports.StateRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.StateRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (and migrates) the database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the CLI read while a watch/serve process writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&TrackedPullRequestModel{}, &SettingsModel{}, &CredentialModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForHome opens <home>/state.db
func NewSQLiteRepositoryForHome(home string) (*SQLiteRepository, error) {
	return NewSQLiteRepository(config.DBPath(home))
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListTracked implements TrackedReader.ListTracked, in insertion order
func (r *SQLiteRepository) ListTracked(ctx context.Context) ([]domain.TrackedPullRequest, error) {
	var models []TrackedPullRequestModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked pull requests: %w", err)
	}

	result := make([]domain.TrackedPullRequest, 0, len(models))
	for _, m := range models {
		pr, err := trackedModelToDomain(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt row for #%d: %w", m.Number, err)
		}
		result = append(result, pr)
	}
	return result, nil
}

// AddTracked implements TrackedWriter.AddTracked
func (r *SQLiteRepository) AddTracked(ctx context.Context, pr domain.TrackedPullRequest) error {
	model := domainToTrackedModel(pr)

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, maxRetries)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: #%d", domain.ErrDuplicateIdentity, pr.Number)
	}
	if err != nil {
		return fmt.Errorf("failed to create tracked pull request: %w", err)
	}
	return nil
}

// DeleteTracked implements TrackedWriter.DeleteTracked. Deleting an absent number is not an error.
func (r *SQLiteRepository) DeleteTracked(ctx context.Context, number int) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Where("number = ?", number).Delete(&TrackedPullRequestModel{}).Error
	}, maxRetries)
}

// MarkClosed implements TrackedWriter.MarkClosed
func (r *SQLiteRepository) MarkClosed(ctx context.Context, number int, merged bool, closedAt *time.Time) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&TrackedPullRequestModel{}).
			Where("number = ?", number).
			Updates(map[string]any{
				"closed_at": closedAt,
				"merged":    merged,
				"state":     string(domain.StateClosed),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark closed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("pull request #%d not found", number)
		}
		return nil
	}, maxRetries)
}

// UpdateTitle implements TrackedWriter.UpdateTitle
func (r *SQLiteRepository) UpdateTitle(ctx context.Context, number int, title string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&TrackedPullRequestModel{}).
			Where("number = ?", number).
			Update("title", title)
		if result.Error != nil {
			return fmt.Errorf("failed to update title: %w", result.Error)
		}
		return nil
	}, maxRetries)
}

// UpdateMergeable implements TrackedWriter.UpdateMergeable
func (r *SQLiteRepository) UpdateMergeable(ctx context.Context, number int, state domain.MergeableState) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&TrackedPullRequestModel{}).
			Where("number = ?", number).
			Update("mergeable", string(state))
		if result.Error != nil {
			return fmt.Errorf("failed to update mergeable state: %w", result.Error)
		}
		return nil
	}, maxRetries)
}

// LoadSettings implements SettingsStore.LoadSettings. Defaults are returned
// when nothing was saved yet.
func (r *SQLiteRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model SettingsModel
			err := tx.Where("id = ?", singletonID).First(&model).Error
			switch {
			case err == nil:
				settings = settingsModelToDomain(model, "")
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			var credential CredentialModel
			err = tx.Where("id = ?", singletonID).First(&credential).Error
			switch {
			case err == nil:
				settings.Credential = credential.Token
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			return nil
		})
	}, maxRetries)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// SaveSettings implements SettingsStore.SaveSettings. An empty credential
// removes the stored one.
func (r *SQLiteRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToSettingsModel(settings)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			if settings.Credential == "" {
				if err := tx.Where("id = ?", singletonID).Delete(&CredentialModel{}).Error; err != nil {
					return fmt.Errorf("failed to clear credential: %w", err)
				}
				return nil
			}

			credential := CredentialModel{ID: singletonID, Token: settings.Credential}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&credential).Error; err != nil {
				return fmt.Errorf("failed to save credential: %w", err)
			}
			return nil
		})
	}, maxRetries)
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
