package services

import (
	"testing"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTeamServiceFixture(teamRepo *fakeTeamRepo, userRepo *fakeUserRepo) (TeamServiceInterface, *fakePublisher) {
	bus := &fakePublisher{}
	svc := NewTeamService(teamRepo, userRepo, bus, zap.NewNop())
	return svc, bus
}

func TestAddMemberRejectsDuplicate(t *testing.T) {
	teamRepo := newFakeTeamRepo(entities.MaintenanceTeam{
		ID:      3,
		Name:    "Mechanics",
		Members: []uint64{7},
	})
	userRepo := newFakeUserRepo(entities.User{ID: 7, FullName: "Jordan Pratt", IsActive: true})
	svc, bus := newTeamServiceFixture(teamRepo, userRepo)

	_, err := svc.AddMember(testCtx(testManager), 3, 7)

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []uint64{7}, teamRepo.teams[3].Members)
	assert.Empty(t, bus.events)
}

func TestAddMemberRejectsUnknownUser(t *testing.T) {
	teamRepo := newFakeTeamRepo(entities.MaintenanceTeam{ID: 3, Name: "Mechanics"})
	svc, _ := newTeamServiceFixture(teamRepo, newFakeUserRepo())

	_, err := svc.AddMember(testCtx(testManager), 3, 42)

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, teamRepo.teams[3].Members)
}

func TestAddMember(t *testing.T) {
	teamRepo := newFakeTeamRepo(entities.MaintenanceTeam{
		ID:      3,
		Name:    "Mechanics",
		Members: []uint64{7},
	})
	userRepo := newFakeUserRepo(
		entities.User{ID: 7, FullName: "Jordan Pratt", IsActive: true},
		entities.User{ID: 9, FullName: "Sam Okafor", IsActive: true},
	)
	svc, bus := newTeamServiceFixture(teamRepo, userRepo)

	team, err := svc.AddMember(testCtx(testManager), 3, 9)
	require.NoError(t, err)

	assert.Equal(t, []uint64{7, 9}, teamRepo.teams[3].Members)
	assert.Len(t, team.Members, 2)

	mutations := bus.named(events.EntityMutated)
	require.Len(t, mutations, 1)
	assert.Equal(t, constants.AuditActionMemberAdd, mutations[0].(events.EntityMutatedEvent).Action)
}

func TestRemoveMemberIsIdempotent(t *testing.T) {
	teamRepo := newFakeTeamRepo(entities.MaintenanceTeam{
		ID:      3,
		Name:    "Mechanics",
		Members: []uint64{7, 9},
	})
	userRepo := newFakeUserRepo(
		entities.User{ID: 7, FullName: "Jordan Pratt", IsActive: true},
		entities.User{ID: 9, FullName: "Sam Okafor", IsActive: true},
	)
	svc, bus := newTeamServiceFixture(teamRepo, userRepo)
	ctx := testCtx(testManager)

	_, err := svc.RemoveMember(ctx, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, teamRepo.teams[3].Members)
	assert.Len(t, bus.named(events.EntityMutated), 1)

	// Removing the same user again succeeds without another audit entry.
	_, err = svc.RemoveMember(ctx, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, teamRepo.teams[3].Members)
	assert.Len(t, bus.named(events.EntityMutated), 1)
}

func TestCreateTeamDedupesMembers(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 7, FullName: "Jordan Pratt", IsActive: true},
		entities.User{ID: 9, FullName: "Sam Okafor", IsActive: true},
	)
	teamRepo := newFakeTeamRepo()
	svc, _ := newTeamServiceFixture(teamRepo, userRepo)

	team, err := svc.CreateTeam(testCtx(testManager), dto.CreateTeamDTO{
		Name:    "Mechanics",
		Type:    "Mechanical",
		Members: []uint64{7, 9, 7},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{7, 9}, teamRepo.teams[team.ID].Members)
}

func TestCreateTeamRejectsUnknownMember(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 7, FullName: "Jordan Pratt", IsActive: true})
	svc, _ := newTeamServiceFixture(newFakeTeamRepo(), userRepo)

	_, err := svc.CreateTeam(testCtx(testManager), dto.CreateTeamDTO{
		Name:    "Mechanics",
		Members: []uint64{7, 42},
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
