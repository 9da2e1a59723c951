package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// In-memory repository fakes backing the service tests. Each stores entities
// by id and hands out copies, so a service's read-modify-write cannot alias
// the stored value.

var testManager = utils.ActingUser{ID: 1, Role: constants.RoleManager, Department: "Maintenance"}

func testCtx(user utils.ActingUser) context.Context {
	return utils.WithActingUser(context.Background(), user)
}

type fakePublisher struct {
	events []eventbus.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event eventbus.Event) {
	p.events = append(p.events, event)
}

func (p *fakePublisher) named(name string) []eventbus.Event {
	var out []eventbus.Event
	for _, e := range p.events {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}

type fakeRequestRepo struct {
	nextID   uint64
	requests map[uint64]entities.MaintenanceRequest
	board    []dto.MaintenanceRequestDTO
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1, requests: map[uint64]entities.MaintenanceRequest{}}
}

func (r *fakeRequestRepo) seed(request entities.MaintenanceRequest) {
	r.requests[request.ID] = request
	if request.ID >= r.nextID {
		r.nextID = request.ID + 1
	}
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeRequestRepo) GetRequestsForBoard(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	return r.board, nil
}

func (r *fakeRequestRepo) GetCalendarEvents(ctx context.Context, month, year int) ([]dto.CalendarEventDTO, error) {
	return nil, nil
}

func (r *fakeRequestRepo) GetRequestsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRequestDTO, error) {
	return nil, nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &dto.MaintenanceRequestDTO{
		ID:            request.ID,
		Title:         request.Title,
		Status:        request.Status,
		Priority:      request.Priority,
		CompletedDate: request.CompletedDate,
	}, nil
}

func (r *fakeRequestRepo) FindEntity(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := request
	return &clone, nil
}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error) {
	request.ID = r.nextID
	r.nextID++
	r.requests[request.ID] = *request
	return request.ID, nil
}

func (r *fakeRequestRepo) UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.requests[request.ID] = *request
	return nil
}

func (r *fakeRequestRepo) DeleteRequest(ctx context.Context, id uint64) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

type fakeEquipmentRepo struct {
	equipment map[uint64]entities.Equipment
}

func newFakeEquipmentRepo(items ...entities.Equipment) *fakeEquipmentRepo {
	repo := &fakeEquipmentRepo{equipment: map[uint64]entities.Equipment{}}
	for _, item := range items {
		repo.equipment[item.ID] = item
	}
	return repo
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) FindEntity(ctx context.Context, id uint64) (*entities.Equipment, error) {
	item, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := item
	return &clone, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	r.equipment[equipment.ID] = *equipment
	return equipment.ID, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	r.equipment[equipment.ID] = *equipment
	return nil
}

func (r *fakeEquipmentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	item, ok := r.equipment[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	item.Status = status
	r.equipment[id] = item
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	delete(r.equipment, id)
	return nil
}

type fakeSLARepo struct {
	match *entities.SLA
}

func (r *fakeSLARepo) GetSLAs(ctx context.Context, filter types.Filter) ([]entities.SLA, uint64, error) {
	return nil, 0, nil
}

func (r *fakeSLARepo) FindSLA(ctx context.Context, id uint64) (*entities.SLA, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeSLARepo) FindMatch(ctx context.Context, priority, requestType string) (*entities.SLA, error) {
	if r.match == nil || !r.match.Matches(priority, requestType) {
		return nil, apperrors.ErrNotFound
	}
	clone := *r.match
	return &clone, nil
}

func (r *fakeSLARepo) CreateSLA(ctx context.Context, sla *entities.SLA) (uint64, error) {
	return sla.ID, nil
}

func (r *fakeSLARepo) UpdateSLA(ctx context.Context, sla *entities.SLA) error { return nil }

func (r *fakeSLARepo) DeleteSLA(ctx context.Context, id uint64) error { return nil }

type fakeSparePartRepo struct {
	nextID uint64
	parts  map[uint64]entities.SparePart
}

func newFakeSparePartRepo(items ...entities.SparePart) *fakeSparePartRepo {
	repo := &fakeSparePartRepo{nextID: 1, parts: map[uint64]entities.SparePart{}}
	for _, item := range items {
		repo.parts[item.ID] = item
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
	}
	return repo
}

func (r *fakeSparePartRepo) GetSpareParts(ctx context.Context, filter types.Filter) ([]entities.SparePart, uint64, error) {
	return nil, 0, nil
}

func (r *fakeSparePartRepo) GetLowStockParts(ctx context.Context) ([]entities.SparePart, error) {
	return nil, nil
}

func (r *fakeSparePartRepo) FindSparePart(ctx context.Context, id uint64) (*entities.SparePart, error) {
	part, ok := r.parts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := part
	return &clone, nil
}

func (r *fakeSparePartRepo) CreateSparePart(ctx context.Context, part *entities.SparePart) (uint64, error) {
	part.ID = r.nextID
	r.nextID++
	r.parts[part.ID] = *part
	return part.ID, nil
}

func (r *fakeSparePartRepo) UpdateSparePart(ctx context.Context, part *entities.SparePart) error {
	if _, ok := r.parts[part.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.parts[part.ID] = *part
	return nil
}

func (r *fakeSparePartRepo) DeleteSparePart(ctx context.Context, id uint64) error {
	delete(r.parts, id)
	return nil
}

type fakeBudgetRepo struct {
	nextID  uint64
	budgets map[uint64]entities.Budget
}

func newFakeBudgetRepo(items ...entities.Budget) *fakeBudgetRepo {
	repo := &fakeBudgetRepo{nextID: 1, budgets: map[uint64]entities.Budget{}}
	for _, item := range items {
		repo.budgets[item.ID] = item
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
	}
	return repo
}

func (r *fakeBudgetRepo) GetBudgets(ctx context.Context, filter types.Filter) ([]entities.Budget, uint64, error) {
	return nil, 0, nil
}

func (r *fakeBudgetRepo) FindBudget(ctx context.Context, id uint64) (*entities.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := budget
	return &clone, nil
}

func (r *fakeBudgetRepo) CreateBudget(ctx context.Context, budget *entities.Budget) (uint64, error) {
	budget.ID = r.nextID
	r.nextID++
	r.budgets[budget.ID] = *budget
	return budget.ID, nil
}

func (r *fakeBudgetRepo) UpdateBudget(ctx context.Context, budget *entities.Budget) error {
	if _, ok := r.budgets[budget.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *fakeBudgetRepo) DeleteBudget(ctx context.Context, id uint64) error {
	delete(r.budgets, id)
	return nil
}

func (r *fakeBudgetRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, b := range r.budgets {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeTeamRepo struct {
	nextID uint64
	teams  map[uint64]entities.MaintenanceTeam
}

func newFakeTeamRepo(items ...entities.MaintenanceTeam) *fakeTeamRepo {
	repo := &fakeTeamRepo{nextID: 1, teams: map[uint64]entities.MaintenanceTeam{}}
	for _, item := range items {
		repo.teams[item.ID] = item
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
	}
	return repo
}

func (r *fakeTeamRepo) GetTeams(ctx context.Context, filter types.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	list := make([]entities.MaintenanceTeam, 0, len(r.teams))
	for _, t := range r.teams {
		list = append(list, t)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeTeamRepo) FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := team
	clone.Members = append([]uint64(nil), team.Members...)
	return &clone, nil
}

func (r *fakeTeamRepo) CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) (uint64, error) {
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = *team
	return team.ID, nil
}

func (r *fakeTeamRepo) UpdateTeam(ctx context.Context, team *entities.MaintenanceTeam) error {
	if _, ok := r.teams[team.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) UpdateMembers(ctx context.Context, id uint64, members []uint64) error {
	team, ok := r.teams[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	team.Members = append([]uint64(nil), members...)
	r.teams[id] = team
	return nil
}

func (r *fakeTeamRepo) DeleteTeam(ctx context.Context, id uint64) error {
	delete(r.teams, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint64]entities.User
}

func newFakeUserRepo(items ...entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uint64]entities.User{}}
	for _, item := range items {
		repo.users[item.ID] = item
	}
	return repo
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.User, error) {
	out := make(map[uint64]entities.User)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindActiveManagers(ctx context.Context, department string) ([]entities.User, error) {
	var out []entities.User
	for _, user := range r.users {
		if !user.IsActive || user.Role != constants.RoleManager {
			continue
		}
		if department != "" && user.Department != department {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}
