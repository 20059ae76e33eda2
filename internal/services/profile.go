package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/internal/models"
	"github.com/Blindworks/rhenanenmanager/validation"
)

// ProfileRequest is the write shape for member profiles. Satellite records
// (addresses, contacts, employer, corps data) are embedded and written in one
// transaction with the profile itself.
type ProfileRequest struct {
	Firstname  string       `json:"firstname"`
	Middlename string       `json:"middlename,omitempty"`
	Lastname   string       `json:"lastname"`
	Title      string       `json:"title,omitempty"`
	Email      string       `json:"email"`
	BirthDate  *models.Date `json:"birth_date,omitempty"`
	DeathDate  *models.Date `json:"death_date,omitempty"`
	Deceased   bool         `json:"deceased"`
	Married    *models.Date `json:"marriage_date,omitempty"`
	PictureURL string       `json:"picture_url,omitempty"`
	Notes      string       `json:"notes,omitempty"`

	PrivateAddress  *models.Address         `json:"private_address,omitempty"`
	ParentsAddress  *models.Address         `json:"parents_address,omitempty"`
	PrivateContact  *models.Contact         `json:"private_contact,omitempty"`
	BusinessContact *models.Contact         `json:"business_contact,omitempty"`
	Employer        *models.Employer        `json:"employer,omitempty"`
	CorpsMemberData *models.CorpsMemberData `json:"corps_member_data,omitempty"`
}

// ProfilePage is the paginated list envelope.
type ProfilePage struct {
	Items  []models.Profile `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ProfileParams narrows List: optional name/email search and status filter
// on the corps member status.
type ProfileParams struct {
	Limit  int
	Page   int
	Query  string
	Status string
}

// ProfileService manages member profiles and their satellite records.
type ProfileService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProfileService(db *gorm.DB, log *zap.Logger) *ProfileService {
	return &ProfileService{db: db, log: log}
}

// List returns profiles ordered by lastname, firstname with a total count.
func (s *ProfileService) List(ctx context.Context, p ProfileParams) (*ProfilePage, error) {
	limit := p.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := 0
	if p.Page > 1 {
		offset = (p.Page - 1) * limit
	}

	q := s.db.WithContext(ctx).Model(&models.Profile{})
	if p.Query != "" {
		like := "%" + p.Query + "%"
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR email LIKE ?", like, like, like)
	}
	if p.Status != "" {
		q = q.Where("id IN (?)", s.db.Model(&models.CorpsMemberData{}).
			Select("profile_id").Where("status = ?", p.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count profiles")
	}
	var items []models.Profile
	if err := q.Order("lastname").Order("firstname").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list profiles")
	}
	return &ProfilePage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID returns a profile with all satellite records loaded.
func (s *ProfileService) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).
		Preload("PrivateAddress").Preload("ParentsAddress").
		Preload("PrivateContact").Preload("BusinessContact").
		Preload("Employer").Preload("CorpsMemberData").
		First(&p, id).Error
	if err != nil {
		return nil, notFoundOr(err, "profile not found with id %d", id)
	}
	return &p, nil
}

// Exists reports whether a profile with the id is present.
func (s *ProfileService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err, "failed to check profile existence")
	}
	return count > 0, nil
}

// Create persists a profile and its embedded satellites in one transaction.
func (s *ProfileService) Create(ctx context.Context, req ProfileRequest, createdBy *uint) (*models.Profile, error) {
	s.log.Debug("creating profile", zap.String("lastname", req.Lastname))
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	p := models.Profile{
		Firstname:       req.Firstname,
		Middlename:      req.Middlename,
		Lastname:        req.Lastname,
		Title:           req.Title,
		Email:           req.Email,
		BirthDate:       req.BirthDate,
		DeathDate:       req.DeathDate,
		Deceased:        req.Deceased,
		MarriageDate:    req.Married,
		PictureURL:      req.PictureURL,
		Notes:           req.Notes,
		PrivateAddress:  req.PrivateAddress,
		ParentsAddress:  req.ParentsAddress,
		PrivateContact:  req.PrivateContact,
		BusinessContact: req.BusinessContact,
		Employer:        req.Employer,
		CorpsMemberData: req.CorpsMemberData,
		CreatedByID:     createdBy,
		UpdatedByID:     createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, apperr.Internal(err, "failed to create profile")
	}
	s.log.Info("profile created", zap.Uint("id", p.ID), zap.String("name", p.DisplayName()))
	return &p, nil
}

// Update replaces the profile's own fields and upserts the embedded
// satellites. A satellite omitted from the request is left untouched.
func (s *ProfileService) Update(ctx context.Context, id uint, req ProfileRequest, updatedBy *uint) (*models.Profile, error) {
	s.log.Debug("updating profile", zap.Uint("id", id))
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "profile not found with id %d", id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p.Firstname = req.Firstname
		p.Middlename = req.Middlename
		p.Lastname = req.Lastname
		p.Title = req.Title
		p.Email = req.Email
		p.BirthDate = req.BirthDate
		p.DeathDate = req.DeathDate
		p.Deceased = req.Deceased
		p.MarriageDate = req.Married
		p.PictureURL = req.PictureURL
		p.Notes = req.Notes
		p.UpdatedByID = updatedBy

		if req.PrivateAddress != nil {
			if err := upsertSatellite(tx, req.PrivateAddress, &req.PrivateAddress.ID, p.PrivateAddressID); err != nil {
				return err
			}
			p.PrivateAddressID = &req.PrivateAddress.ID
		}
		if req.ParentsAddress != nil {
			if err := upsertSatellite(tx, req.ParentsAddress, &req.ParentsAddress.ID, p.ParentsAddressID); err != nil {
				return err
			}
			p.ParentsAddressID = &req.ParentsAddress.ID
		}
		if req.PrivateContact != nil {
			if err := upsertSatellite(tx, req.PrivateContact, &req.PrivateContact.ID, p.PrivateContactID); err != nil {
				return err
			}
			p.PrivateContactID = &req.PrivateContact.ID
		}
		if req.BusinessContact != nil {
			if err := upsertSatellite(tx, req.BusinessContact, &req.BusinessContact.ID, p.BusinessContactID); err != nil {
				return err
			}
			p.BusinessContactID = &req.BusinessContact.ID
		}
		if req.Employer != nil {
			if err := upsertSatellite(tx, req.Employer, &req.Employer.ID, p.EmployerID); err != nil {
				return err
			}
			p.EmployerID = &req.Employer.ID
		}
		if req.CorpsMemberData != nil {
			req.CorpsMemberData.ProfileID = p.ID
			var existing models.CorpsMemberData
			err := tx.Where("profile_id = ?", p.ID).First(&existing).Error
			switch {
			case err == nil:
				req.CorpsMemberData.ID = existing.ID
				if err := tx.Save(req.CorpsMemberData).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(req.CorpsMemberData).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Omit("PrivateAddress", "ParentsAddress", "PrivateContact",
			"BusinessContact", "Employer", "CorpsMemberData").Save(&p).Error
	})
	if err != nil {
		return nil, apperr.Internal(err, "failed to update profile")
	}
	s.log.Info("profile updated", zap.Uint("id", p.ID))
	return s.GetByID(ctx, p.ID)
}

// Delete removes a profile. It refuses while any connection still references
// the profile, so the relationship graph never dangles.
func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	s.log.Debug("deleting profile", zap.Uint("id", id))

	var refs int64
	err := s.db.WithContext(ctx).Model(&models.Connection{}).
		Where("from_profile_id = ? OR to_profile_id = ?", id, id).
		Count(&refs).Error
	if err != nil {
		return apperr.Internal(err, "failed to check profile references")
	}
	if refs > 0 {
		return apperr.Conflict("profile %d is still referenced by %d connection(s)", id, refs)
	}

	res := s.db.WithContext(ctx).Delete(&models.Profile{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to delete profile")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("profile not found with id %d", id)
	}
	s.log.Info("profile deleted", zap.Uint("id", id))
	return nil
}

// upsertSatellite saves the record reusing the profile's existing satellite
// row id when one is already linked, otherwise inserts a new row.
func upsertSatellite(tx *gorm.DB, record any, recordID *uint, existingID *uint) error {
	if existingID != nil {
		*recordID = *existingID
		return tx.Save(record).Error
	}
	*recordID = 0
	return tx.Create(record).Error
}

func validateProfileRequest(req ProfileRequest) error {
	v := validation.Violations{}
	validation.Required("firstname", req.Firstname, v)
	validation.Required("lastname", req.Lastname, v)
	validation.Required("email", req.Email, v)
	if !v.Empty() {
		return apperr.ValidationDetails("validation_failed", v)
	}
	return nil
}
