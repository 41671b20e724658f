// file: internals/features/school/announcements/service/announcement_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/announcements/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type AnnouncementService struct {
	DB *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{DB: db}
}

type AnnouncementInput struct {
	Title        string
	Body         string
	VisibleUntil time.Time
}

func (s *AnnouncementService) Create(ctx context.Context, p helperAuth.Principal, in AnnouncementInput) (*model.AnnouncementModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	if in.VisibleUntil.Before(time.Now()) {
		return nil, errs.New(errs.ValidationError, "visible_until must be in the future")
	}
	a := &model.AnnouncementModel{
		AnnouncementOrganizationID: orgID,
		AnnouncementTitle:          in.Title,
		AnnouncementBody:           in.Body,
		AnnouncementVisibleUntil:   in.VisibleUntil,
		AnnouncementIsActive:       true,
	}
	if err := s.DB.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, p helperAuth.Principal) ([]model.AnnouncementModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.AnnouncementModel{})
	if err != nil {
		return nil, err
	}
	var out []model.AnnouncementModel
	err = scoped.Where("announcement_visible_until > ?", time.Now()).
		Order("announcement_created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *AnnouncementService) Delete(ctx context.Context, p helperAuth.Principal, announcementID uuid.UUID) error {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.AnnouncementModel{})
	if err != nil {
		return err
	}
	res := scoped.Model(&model.AnnouncementModel{}).
		Where("announcement_id = ?", announcementID).
		Update("announcement_is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.NotFoundInOrganization, "announcement not found")
	}
	return nil
}

func (s *AnnouncementService) Get(ctx context.Context, p helperAuth.Principal, announcementID uuid.UUID) (*model.AnnouncementModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.AnnouncementModel{})
	if err != nil {
		return nil, err
	}
	var a model.AnnouncementModel
	err = scoped.Where("announcement_id = ?", announcementID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.NotFoundInOrganization, "announcement not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SweepExpired retires every active announcement whose visibility
// window has passed, across all organizations.
func SweepExpired(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&model.AnnouncementModel{}).
		Where("announcement_is_active = TRUE AND announcement_visible_until <= ?", now).
		Update("announcement_is_active", false)
	return res.RowsAffected, res.Error
}

// StartSweeper runs SweepExpired on a fixed interval until ctx is
// cancelled.
func StartSweeper(ctx context.Context, db *gorm.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log.Printf("[AnnouncementSweeper] started. interval=%s", interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("[AnnouncementSweeper] stopped")
				return
			case <-ticker.C:
				n, err := SweepExpired(db, time.Now())
				if err != nil {
					log.Printf("[AnnouncementSweeper] sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("[AnnouncementSweeper] retired %d expired announcements", n)
				}
			}
		}
	}()
}
