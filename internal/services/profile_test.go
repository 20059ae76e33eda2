package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/internal/models"
)

func TestProfileCreateWithSatellites(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ProfileRequest{
		Firstname: "Karl",
		Lastname:  "Weber",
		Email:     "karl@example.com",
		PrivateAddress: &models.Address{
			Street: "Hauptstr. 1", Zip: "69117", City: "Heidelberg", Country: "DE",
		},
		PrivateContact: &models.Contact{MobileNumber: "+49 170 0000000"},
		CorpsMemberData: &models.CorpsMemberData{
			MemberNumber: "RH-0042", Status: "CB",
		},
	}, nil)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PrivateAddress)
	require.Equal(t, "Heidelberg", got.PrivateAddress.City)
	require.NotNil(t, got.PrivateContact)
	require.NotNil(t, got.CorpsMemberData)
	require.Equal(t, "RH-0042", got.CorpsMemberData.MemberNumber)
	require.Nil(t, got.Employer)
}

func TestProfileValidation(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())

	_, err := svc.Create(context.Background(), ProfileRequest{Firstname: "Karl"}, nil)
	require.True(t, apperr.IsValidation(err), "%v", err)
}

func TestProfileUpdate(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ProfileRequest{
		Firstname: "Karl", Lastname: "Weber", Email: "karl@example.com",
		PrivateAddress: &models.Address{City: "Heidelberg"},
	}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ProfileRequest{
		Firstname: "Karl", Lastname: "Weber-Lang", Email: "karl@example.com",
		PrivateAddress: &models.Address{City: "Mannheim"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "Weber-Lang", updated.Lastname)
	require.Equal(t, "Mannheim", updated.PrivateAddress.City)
	// the linked address row is reused, not duplicated
	require.Equal(t, *created.PrivateAddressID, *updated.PrivateAddressID)

	var addrCount int64
	require.NoError(t, conn.Model(&models.Address{}).Count(&addrCount).Error)
	require.EqualValues(t, 1, addrCount)

	_, err = svc.Update(ctx, 9999, ProfileRequest{
		Firstname: "x", Lastname: "y", Email: "z@example.com",
	}, nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestProfileUpdateAddsCorpsData(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ProfileRequest{
		Firstname: "Karl", Lastname: "Weber", Email: "karl@example.com",
	}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ProfileRequest{
		Firstname: "Karl", Lastname: "Weber", Email: "karl@example.com",
		CorpsMemberData: &models.CorpsMemberData{Status: "AH"},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.CorpsMemberData)
	require.Equal(t, "AH", updated.CorpsMemberData.Status)

	// second update replaces the same row
	updated, err = svc.Update(ctx, created.ID, ProfileRequest{
		Firstname: "Karl", Lastname: "Weber", Email: "karl@example.com",
		CorpsMemberData: &models.CorpsMemberData{Status: "CB"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "CB", updated.CorpsMemberData.Status)

	var count int64
	require.NoError(t, conn.Model(&models.CorpsMemberData{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestProfileList(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())
	ctx := context.Background()

	seedProfile(t, conn, "Karl", "Weber")
	seedProfile(t, conn, "Fritz", "Lang")
	seedProfile(t, conn, "Otto", "Braun")

	page, err := svc.List(ctx, ProfileParams{})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, "Braun", page.Items[0].Lastname, "ordered by lastname")

	filtered, err := svc.List(ctx, ProfileParams{Query: "Lang"})
	require.NoError(t, err)
	require.EqualValues(t, 1, filtered.Total)
	require.Equal(t, "Fritz", filtered.Items[0].Firstname)
}

func TestProfileDeleteBlockedByConnection(t *testing.T) {
	conn := setupTestDB(t)
	profiles := NewProfileService(conn, zap.NewNop())
	connections := NewConnectionService(conn, zap.NewNop())
	ctx := context.Background()

	a := seedProfile(t, conn, "Karl", "Weber")
	b := seedProfile(t, conn, "Fritz", "Lang")

	edge, err := connections.Create(ctx, ConnectionRequest{
		FromProfileID: a.ID, ToProfileID: b.ID, RelationType: models.RelationMentor,
	}, nil)
	require.NoError(t, err)

	require.True(t, apperr.IsConflict(profiles.Delete(ctx, a.ID)), "source still referenced")
	require.True(t, apperr.IsConflict(profiles.Delete(ctx, b.ID)), "target still referenced")

	require.NoError(t, connections.Delete(ctx, edge.ID))
	require.NoError(t, profiles.Delete(ctx, a.ID))

	_, err = profiles.GetByID(ctx, a.ID)
	require.True(t, apperr.IsNotFound(err))
	require.True(t, apperr.IsNotFound(profiles.Delete(ctx, 9999)))
}

func TestProfileExists(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProfileService(conn, zap.NewNop())
	ctx := context.Background()

	p := seedProfile(t, conn, "Karl", "Weber")

	ok, err := svc.Exists(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(ctx, 9999)
	require.NoError(t, err)
	require.False(t, ok)
}
