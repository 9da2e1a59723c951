package services

import (
	"testing"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMatchSLAMissReturnsNil(t *testing.T) {
	svc := NewSLAService(&fakeSLARepo{}, &fakePublisher{}, zap.NewNop())

	matched, err := svc.MatchSLA(testCtx(testManager), dto.MatchSLADTO{
		Priority:    constants.PriorityLow,
		RequestType: constants.RequestTypeCorrective,
	})

	require.NoError(t, err)
	assert.Nil(t, matched)
}

func TestMatchSLAComputesMinutes(t *testing.T) {
	svc := NewSLAService(&fakeSLARepo{match: &entities.SLA{
		ID:             3,
		Name:           "Critical corrective",
		Priority:       constants.PriorityCritical,
		RequestType:    constants.RequestTypeCorrective,
		ResponseTime:   entities.SLADuration{Value: 2, Unit: constants.TimeUnitHours},
		ResolutionTime: entities.SLADuration{Value: 1, Unit: constants.TimeUnitDays},
		IsActive:       true,
	}}, &fakePublisher{}, zap.NewNop())

	matched, err := svc.MatchSLA(testCtx(testManager), dto.MatchSLADTO{
		Priority:    constants.PriorityCritical,
		RequestType: constants.RequestTypeCorrective,
	})

	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, 120, matched.ResponseMinutes)
	assert.Equal(t, 1440, matched.ResolutionMinutes)
}

func TestCreateSLARejectsBadDurations(t *testing.T) {
	svc := NewSLAService(&fakeSLARepo{}, &fakePublisher{}, zap.NewNop())
	ctx := testCtx(testManager)

	_, err := svc.CreateSLA(ctx, dto.CreateSLADTO{
		Name:           "Broken",
		Priority:       constants.PriorityHigh,
		RequestType:    constants.SLARequestTypeBoth,
		ResponseTime:   entities.SLADuration{Value: 0, Unit: constants.TimeUnitHours},
		ResolutionTime: entities.SLADuration{Value: 8, Unit: constants.TimeUnitHours},
	})
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.CreateSLA(ctx, dto.CreateSLADTO{
		Name:           "Broken",
		Priority:       constants.PriorityHigh,
		RequestType:    constants.SLARequestTypeBoth,
		ResponseTime:   entities.SLADuration{Value: 1, Unit: "fortnights"},
		ResolutionTime: entities.SLADuration{Value: 8, Unit: constants.TimeUnitHours},
	})
	require.ErrorAs(t, err, &invalid)
}
