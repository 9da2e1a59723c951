package services

import (
	"context"
	"encoding/json"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error)
	AddMember(ctx context.Context, teamID, userID uint64) (*dto.TeamDTO, error)
	RemoveMember(ctx context.Context, teamID, userID uint64) (*dto.TeamDTO, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	bus      eventbus.Publisher
	logger   *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		bus:      bus,
		logger:   logger,
	}
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error) {
	teams, total, err := s.teamRepo.GetTeams(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// One user lookup covers every team's lead and members.
	idSet := make(map[uint64]struct{})
	for _, t := range teams {
		if t.TeamLeadID != nil {
			idSet[*t.TeamLeadID] = struct{}{}
		}
		for _, m := range t.Members {
			idSet[m] = struct{}{}
		}
	}
	ids := make([]uint64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.TeamDTO, 0, len(teams))
	for i := range teams {
		list = append(list, *mapTeamDTO(&teams[i], users))
	}
	return list, total, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expandTeam(ctx, team)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	team := entities.MaintenanceTeam{
		Name:        payload.Name,
		Type:        payload.Type,
		Description: payload.Description,
		TeamLeadID:  payload.TeamLeadID,
		Members:     dedupeMembers(payload.Members),
		IsActive:    true,
	}
	if err := s.verifyMembersExist(ctx, &team); err != nil {
		return nil, err
	}

	id, err := s.teamRepo.CreateTeam(ctx, &team)
	if err != nil {
		return nil, err
	}
	team.ID = id

	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &team, nil)
	return s.FindTeam(ctx, id)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *team

	if payload.Name != nil {
		team.Name = *payload.Name
	}
	if payload.Type != nil {
		team.Type = *payload.Type
	}
	if payload.Description != nil {
		team.Description = *payload.Description
	}
	if payload.TeamLeadID != nil {
		team.TeamLeadID = payload.TeamLeadID
	}
	if payload.IsActive != nil {
		team.IsActive = *payload.IsActive
	}

	if err := s.teamRepo.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, team, &before)
	return s.FindTeam(ctx, id)
}

// AddMember rejects a user who is already on the team.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uint64) (*dto.TeamDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(userID) {
		return nil, apperrors.NewInvalidInputError("user %d is already a member of team %q", userID, team.Name)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("user %d does not exist", userID)
		}
		return nil, err
	}

	team.Members = append(team.Members, userID)
	if err := s.teamRepo.UpdateMembers(ctx, teamID, team.Members); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionMemberAdd, team, nil)
	return s.expandTeam(ctx, team)
}

// RemoveMember is idempotent: removing an absent user succeeds silently.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uint64) (*dto.TeamDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.RemoveMember(userID) {
		if err := s.teamRepo.UpdateMembers(ctx, teamID, team.Members); err != nil {
			return nil, err
		}
		s.publishMutation(ctx, actor.ID, constants.AuditActionMemberRemove, team, nil)
	}
	return s.expandTeam(ctx, team)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.DeleteTeam(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, team)
	return nil
}

func (s *TeamService) expandTeam(ctx context.Context, team *entities.MaintenanceTeam) (*dto.TeamDTO, error) {
	ids := make([]uint64, 0, len(team.Members)+1)
	ids = append(ids, team.Members...)
	if team.TeamLeadID != nil {
		ids = append(ids, *team.TeamLeadID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return mapTeamDTO(team, users), nil
}

func (s *TeamService) verifyMembersExist(ctx context.Context, team *entities.MaintenanceTeam) error {
	if len(team.Members) == 0 {
		return nil
	}
	users, err := s.userRepo.FindByIDs(ctx, team.Members)
	if err != nil {
		return err
	}
	for _, id := range team.Members {
		if _, ok := users[id]; !ok {
			return apperrors.NewInvalidInputError("user %d does not exist", id)
		}
	}
	return nil
}

func (s *TeamService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.MaintenanceTeam) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeTeam,
	}
	if after != nil {
		event.EntityID = after.ID
		event.EntityName = after.Name
		event.After, _ = json.Marshal(after)
	}
	if before != nil {
		if event.EntityID == 0 {
			event.EntityID = before.ID
			event.EntityName = before.Name
		}
		event.Before, _ = json.Marshal(before)
	}
	s.bus.Publish(ctx, event)
}

func mapTeamDTO(team *entities.MaintenanceTeam, users map[uint64]entities.User) *dto.TeamDTO {
	d := dto.TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Type:        team.Type,
		Description: team.Description,
		Members:     []dto.ShortUserDTO{},
		IsActive:    team.IsActive,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
	if team.TeamLeadID != nil {
		if u, ok := users[*team.TeamLeadID]; ok {
			d.TeamLead = &dto.ShortUserDTO{ID: u.ID, FullName: u.FullName}
		}
	}
	for _, id := range team.Members {
		if u, ok := users[id]; ok {
			d.Members = append(d.Members, dto.ShortUserDTO{ID: u.ID, FullName: u.FullName})
		}
	}
	return &d
}

func dedupeMembers(members []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(members))
	out := make([]uint64, 0, len(members))
	for _, id := range members {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
