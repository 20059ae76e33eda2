package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/internal/models"
	"github.com/Blindworks/rhenanenmanager/validation"
)

// ConnectionRequest is the write shape for creating or updating a connection.
// Update replaces all mutable fields wholesale; there is no partial patch.
type ConnectionRequest struct {
	FromProfileID uint         `json:"from_profile_id"`
	ToProfileID   uint         `json:"to_profile_id"`
	RelationType  string       `json:"relation_type"`
	StartDate     *models.Date `json:"start_date,omitempty"`
	EndDate       *models.Date `json:"end_date,omitempty"`
	Description   string       `json:"description,omitempty"`
	Bidirectional *bool        `json:"bidirectional,omitempty"`
}

// ConnectionResponse is the default read shape: endpoint ids plus resolved
// display names and the computed active flag.
type ConnectionResponse struct {
	ID              uint         `json:"id"`
	FromProfileID   uint         `json:"from_profile_id"`
	FromProfileName string       `json:"from_profile_name"`
	ToProfileID     uint         `json:"to_profile_id"`
	ToProfileName   string       `json:"to_profile_name"`
	RelationType    string       `json:"relation_type"`
	StartDate       *models.Date `json:"start_date,omitempty"`
	EndDate         *models.Date `json:"end_date,omitempty"`
	Description     string       `json:"description,omitempty"`
	Bidirectional   bool         `json:"bidirectional"`
	Active          bool         `json:"active"`
	Created         time.Time    `json:"created_at"`
	Updated         time.Time    `json:"updated_at"`
}

// ProfileSummary is the embedded endpoint shape of detail responses.
type ProfileSummary struct {
	ID         uint   `json:"id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	PictureURL string `json:"picture_url,omitempty"`
}

// ConnectionDetailResponse embeds full profile summaries instead of bare
// ids/names. A read-shape distinction only.
type ConnectionDetailResponse struct {
	ID            uint           `json:"id"`
	FromProfile   ProfileSummary `json:"from_profile"`
	ToProfile     ProfileSummary `json:"to_profile"`
	RelationType  string         `json:"relation_type"`
	StartDate     *models.Date   `json:"start_date,omitempty"`
	EndDate       *models.Date   `json:"end_date,omitempty"`
	Description   string         `json:"description,omitempty"`
	Bidirectional bool           `json:"bidirectional"`
	Active        bool           `json:"active"`
	Created       time.Time      `json:"created_at"`
	Updated       time.Time      `json:"updated_at"`
}

// ConnectionService owns the relationship graph between member profiles:
// CRUD with profile-existence, self-loop and duplicate validation in front of
// persistence, plus the graph-shaped read queries.
type ConnectionService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConnectionService(db *gorm.DB, log *zap.Logger) *ConnectionService {
	return &ConnectionService{db: db, log: log}
}

// Create validates both endpoints and the relation type, rejects self-loops
// and duplicate (from, to, type) triples, then persists the edge. All
// validation runs before the insert; a failed step leaves no trace.
func (s *ConnectionService) Create(ctx context.Context, req ConnectionRequest, createdBy *uint) (*ConnectionResponse, error) {
	s.log.Debug("creating connection",
		zap.Uint("from", req.FromProfileID), zap.Uint("to", req.ToProfileID),
		zap.String("relation_type", req.RelationType))

	if err := validateConnectionRequest(req); err != nil {
		return nil, err
	}
	if req.FromProfileID == req.ToProfileID {
		return nil, apperr.Validation("cannot create a connection from a profile to itself")
	}

	from, err := s.findProfile(ctx, req.FromProfileID, "from profile")
	if err != nil {
		return nil, err
	}
	to, err := s.findProfile(ctx, req.ToProfileID, "to profile")
	if err != nil {
		return nil, err
	}

	exists, err := s.Exists(ctx, req.FromProfileID, req.ToProfileID, req.RelationType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("connection already exists between these profiles with this type")
	}

	conn := models.Connection{
		FromProfileID: req.FromProfileID,
		ToProfileID:   req.ToProfileID,
		RelationType:  req.RelationType,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Description:   req.Description,
		Bidirectional: req.Bidirectional != nil && *req.Bidirectional,
		CreatedByID:   createdBy,
		UpdatedByID:   createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&conn).Error; err != nil {
		return nil, apperr.Internal(err, "failed to create connection")
	}
	s.log.Info("connection created", zap.Uint("id", conn.ID))
	return toConnectionResponse(&conn, from, to), nil
}

// Update replaces all mutable fields of an existing connection, re-validating
// both profile ids. The duplicate-triple check deliberately does not run
// here: an update may converge two edges onto the same triple.
func (s *ConnectionService) Update(ctx context.Context, id uint, req ConnectionRequest, updatedBy *uint) (*ConnectionResponse, error) {
	s.log.Debug("updating connection", zap.Uint("id", id))

	if err := validateConnectionRequest(req); err != nil {
		return nil, err
	}
	if req.FromProfileID == req.ToProfileID {
		return nil, apperr.Validation("cannot update a connection to link a profile to itself")
	}

	var conn models.Connection
	if err := s.db.WithContext(ctx).First(&conn, id).Error; err != nil {
		return nil, notFoundOr(err, "connection not found with id %d", id)
	}

	from, err := s.findProfile(ctx, req.FromProfileID, "from profile")
	if err != nil {
		return nil, err
	}
	to, err := s.findProfile(ctx, req.ToProfileID, "to profile")
	if err != nil {
		return nil, err
	}

	conn.FromProfileID = req.FromProfileID
	conn.ToProfileID = req.ToProfileID
	conn.RelationType = req.RelationType
	conn.StartDate = req.StartDate
	conn.EndDate = req.EndDate
	conn.Description = req.Description
	conn.Bidirectional = req.Bidirectional != nil && *req.Bidirectional
	conn.UpdatedByID = updatedBy

	if err := s.db.WithContext(ctx).Save(&conn).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update connection")
	}
	s.log.Info("connection updated", zap.Uint("id", conn.ID))
	return toConnectionResponse(&conn, from, to), nil
}

// Delete removes a connection permanently. No soft delete, no cascade.
func (s *ConnectionService) Delete(ctx context.Context, id uint) error {
	s.log.Debug("deleting connection", zap.Uint("id", id))

	res := s.db.WithContext(ctx).Delete(&models.Connection{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to delete connection")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("connection not found with id %d", id)
	}
	s.log.Info("connection deleted", zap.Uint("id", id))
	return nil
}

// GetByID returns a single connection with resolved display names.
func (s *ConnectionService) GetByID(ctx context.Context, id uint) (*ConnectionResponse, error) {
	conn, from, to, err := s.loadWithProfiles(ctx, id)
	if err != nil {
		return nil, err
	}
	return toConnectionResponse(conn, from, to), nil
}

// GetDetailByID returns a single connection with embedded profile summaries.
func (s *ConnectionService) GetDetailByID(ctx context.Context, id uint) (*ConnectionDetailResponse, error) {
	conn, from, to, err := s.loadWithProfiles(ctx, id)
	if err != nil {
		return nil, err
	}
	return toConnectionDetailResponse(conn, from, to), nil
}

// ForProfile returns the full local neighborhood of a profile: every edge
// where it is either source or target.
func (s *ConnectionService) ForProfile(ctx context.Context, profileID uint) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).
		Where("from_profile_id = ? OR to_profile_id = ?", profileID, profileID))
}

// DetailedForProfile is ForProfile with embedded profile summaries.
func (s *ConnectionService) DetailedForProfile(ctx context.Context, profileID uint) ([]ConnectionDetailResponse, error) {
	conns, profiles, err := s.queryWithProfiles(ctx, s.db.WithContext(ctx).
		Where("from_profile_id = ? OR to_profile_id = ?", profileID, profileID))
	if err != nil {
		return nil, err
	}
	out := make([]ConnectionDetailResponse, 0, len(conns))
	for i := range conns {
		out = append(out, *toConnectionDetailResponse(&conns[i], profiles[conns[i].FromProfileID], profiles[conns[i].ToProfileID]))
	}
	return out, nil
}

// From returns edges where the profile is the source.
func (s *ConnectionService) From(ctx context.Context, profileID uint) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).Where("from_profile_id = ?", profileID))
}

// To returns edges where the profile is the target.
func (s *ConnectionService) To(ctx context.Context, profileID uint) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).Where("to_profile_id = ?", profileID))
}

// ActiveForProfile restricts ForProfile to edges whose end date is absent or
// strictly in the future.
func (s *ConnectionService) ActiveForProfile(ctx context.Context, profileID uint) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).
		Where("from_profile_id = ? OR to_profile_id = ?", profileID, profileID).
		Where("end_date IS NULL OR end_date > ?", models.Today()))
}

// ActiveByType restricts ActiveForProfile to one relation type.
func (s *ConnectionService) ActiveByType(ctx context.Context, profileID uint, relationType string) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).
		Where("from_profile_id = ? OR to_profile_id = ?", profileID, profileID).
		Where("relation_type = ?", relationType).
		Where("end_date IS NULL OR end_date > ?", models.Today()))
}

// ByType returns all edges of one relation type across all profiles.
func (s *ConnectionService) ByType(ctx context.Context, relationType string) ([]ConnectionResponse, error) {
	return s.queryResponses(ctx, s.db.WithContext(ctx).Where("relation_type = ?", relationType))
}

// All returns every edge, optionally restricted to active ones.
func (s *ConnectionService) All(ctx context.Context, activeOnly bool) ([]ConnectionResponse, error) {
	q := s.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("end_date IS NULL OR end_date > ?", models.Today())
	}
	return s.queryResponses(ctx, q)
}

// RelationTypes enumerates the distinct relation types in use, sorted.
func (s *ConnectionService) RelationTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := s.db.WithContext(ctx).Model(&models.Connection{}).
		Distinct("relation_type").Order("relation_type").Pluck("relation_type", &types).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list relation types")
	}
	return types, nil
}

// Exists checks for an edge with the exact (from, to, type) triple.
func (s *ConnectionService) Exists(ctx context.Context, fromProfileID, toProfileID uint, relationType string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Connection{}).
		Where("from_profile_id = ? AND to_profile_id = ? AND relation_type = ?",
			fromProfileID, toProfileID, relationType).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err, "failed to check connection existence")
	}
	return count > 0, nil
}

func validateConnectionRequest(req ConnectionRequest) error {
	v := validation.Violations{}
	validation.RequiredID("from_profile_id", req.FromProfileID, v)
	validation.RequiredID("to_profile_id", req.ToProfileID, v)
	validation.Required("relation_type", req.RelationType, v)
	if !v.Empty() {
		return apperr.ValidationDetails("validation_failed", v)
	}
	return nil
}

func (s *ConnectionService) findProfile(ctx context.Context, id uint, label string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "%s not found with id %d", label, id)
	}
	return &p, nil
}

func (s *ConnectionService) loadWithProfiles(ctx context.Context, id uint) (*models.Connection, *models.Profile, *models.Profile, error) {
	var conn models.Connection
	if err := s.db.WithContext(ctx).First(&conn, id).Error; err != nil {
		return nil, nil, nil, notFoundOr(err, "connection not found with id %d", id)
	}
	from, err := s.findProfile(ctx, conn.FromProfileID, "from profile")
	if err != nil {
		return nil, nil, nil, err
	}
	to, err := s.findProfile(ctx, conn.ToProfileID, "to profile")
	if err != nil {
		return nil, nil, nil, err
	}
	return &conn, from, to, nil
}

// queryResponses runs a prepared edge query and resolves display names for
// every endpoint in one batched profile lookup.
func (s *ConnectionService) queryResponses(ctx context.Context, q *gorm.DB) ([]ConnectionResponse, error) {
	conns, profiles, err := s.queryWithProfiles(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]ConnectionResponse, 0, len(conns))
	for i := range conns {
		out = append(out, *toConnectionResponse(&conns[i], profiles[conns[i].FromProfileID], profiles[conns[i].ToProfileID]))
	}
	return out, nil
}

func (s *ConnectionService) queryWithProfiles(ctx context.Context, q *gorm.DB) ([]models.Connection, map[uint]*models.Profile, error) {
	var conns []models.Connection
	if err := q.Find(&conns).Error; err != nil {
		return nil, nil, apperr.Internal(err, "failed to query connections")
	}
	ids := make([]uint, 0, len(conns)*2)
	seen := make(map[uint]bool, len(conns)*2)
	for _, c := range conns {
		for _, id := range []uint{c.FromProfileID, c.ToProfileID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	profiles := make(map[uint]*models.Profile, len(ids))
	if len(ids) > 0 {
		var rows []models.Profile
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, nil, apperr.Internal(err, "failed to resolve connection profiles")
		}
		for i := range rows {
			profiles[rows[i].ID] = &rows[i]
		}
	}
	return conns, profiles, nil
}

func toConnectionResponse(c *models.Connection, from, to *models.Profile) *ConnectionResponse {
	resp := &ConnectionResponse{
		ID:            c.ID,
		FromProfileID: c.FromProfileID,
		ToProfileID:   c.ToProfileID,
		RelationType:  c.RelationType,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Description:   c.Description,
		Bidirectional: c.Bidirectional,
		Active:        c.IsActive(),
		Created:       c.CreatedAt,
		Updated:       c.UpdatedAt,
	}
	if from != nil {
		resp.FromProfileName = from.DisplayName()
	}
	if to != nil {
		resp.ToProfileName = to.DisplayName()
	}
	return resp
}

func toConnectionDetailResponse(c *models.Connection, from, to *models.Profile) *ConnectionDetailResponse {
	return &ConnectionDetailResponse{
		ID:            c.ID,
		FromProfile:   toProfileSummary(from),
		ToProfile:     toProfileSummary(to),
		RelationType:  c.RelationType,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Description:   c.Description,
		Bidirectional: c.Bidirectional,
		Active:        c.IsActive(),
		Created:       c.CreatedAt,
		Updated:       c.UpdatedAt,
	}
}

func toProfileSummary(p *models.Profile) ProfileSummary {
	if p == nil {
		return ProfileSummary{}
	}
	return ProfileSummary{
		ID:         p.ID,
		Firstname:  p.Firstname,
		Lastname:   p.Lastname,
		Email:      p.Email,
		PictureURL: p.PictureURL,
	}
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return apperr.Internal(err, "database error")
}
