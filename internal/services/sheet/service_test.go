package sheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet-engine/internal/errors"
	mockcharacters "github.com/KirkDiggler/dnd-sheet-engine/internal/repositories/characters/mock"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/usage"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/services/sheet"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/testutils"

	mockdnd5e "github.com/KirkDiggler/dnd-sheet-engine/internal/clients/dnd5e/mock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockRepo  *mockcharacters.MockRepository
	mockDnd5e *mockdnd5e.MockClient
	service   sheet.Service
	ctx       context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = mockcharacters.NewMockRepository(s.ctrl)
	s.mockDnd5e = mockdnd5e.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	s.service = sheet.NewService(&sheet.ServiceConfig{
		Repository: s.mockRepo,
		Store: usage.New(&usage.Config{
			TimeProvider: testutils.FixedTime{Time: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
		}),
		DNDClient: s.mockDnd5e,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// migratedBard returns a character that will not trigger migration on
// load.
func migratedBard(level int) *character.Character {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", level)
	testutils.WithScore(char, shared.AttributeCharisma, 14)
	char.FeatureUsage = shared.UsageMap{
		"bardic-inspiration": {
			Name: "Bardic Inspiration", Kind: shared.KindSlots,
			CurrentUses: 2, MaxUses: 2,
		},
	}
	return char
}

func (s *ServiceTestSuite) TestGetCharacter() {
	char := migratedBard(3)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	result, err := s.service.GetCharacter(s.ctx, "char-1")

	s.NoError(err)
	s.Equal("char-1", result.ID)
}

func (s *ServiceTestSuite) TestGetCharacterMigratesOnLoad() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
	char.Legacy.BardicInspirationUsed = testutils.IntPtr(1)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	result, err := s.service.GetCharacter(s.ctx, "char-1")

	s.NoError(err)
	record := result.FeatureUsage["bardic-inspiration"]
	s.Require().NotNil(record)
	s.Equal(0, record.CurrentUses, "one migrated use consumed of a charisma 8 bard's single die")
	s.Equal(1, record.MaxUses)
}

func (s *ServiceTestSuite) TestGetCharacterMigrationSaveFailureIsNotFatal() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(dnderr.Internal("redis down"))

	result, err := s.service.GetCharacter(s.ctx, "char-1")

	s.NoError(err, "caller still gets the migrated snapshot")
	s.NotEmpty(result.FeatureUsage)
}

func (s *ServiceTestSuite) TestGetCharacterNotFound() {
	s.mockRepo.EXPECT().Get(s.ctx, "missing").Return(nil, dnderr.NotFoundf("not found"))

	_, err := s.service.GetCharacter(s.ctx, "missing")

	s.Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestUseFeature() {
	char := migratedBard(3)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, updated *character.Character) error {
			s.Equal(1, updated.FeatureUsage["bardic-inspiration"].CurrentUses)
			return nil
		})

	result, err := s.service.UseFeature(s.ctx, "char-1", "bardic-inspiration", 1)

	s.NoError(err)
	s.Equal(1, result.FeatureUsage["bardic-inspiration"].CurrentUses)
}

func (s *ServiceTestSuite) TestUseFeatureRejectsNonPositiveAmount() {
	_, err := s.service.UseFeature(s.ctx, "char-1", "bardic-inspiration", 0)

	s.Error(err)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestSpendPoints() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 4)
	char.FeatureUsage = shared.UsageMap{
		"lay-on-hands": {Kind: shared.KindPointsPool, CurrentPoints: 20, MaxPoints: 20},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	result, err := s.service.SpendPoints(s.ctx, "char-1", "lay-on-hands", 5)

	s.NoError(err)
	s.Equal(15, result.FeatureUsage["lay-on-hands"].CurrentPoints)
}

func (s *ServiceTestSuite) TestSwapOption() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 2)
	char.FeatureUsage = shared.UsageMap{
		"eldritch-invocations": {
			Kind: shared.KindOptionsList,
			Selected: []shared.SelectedOption{
				{Key: "agonizing-blast"}, {Key: "devils-sight"},
			},
		},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	result, err := s.service.SwapOption(s.ctx, "char-1", "eldritch-invocations",
		"devils-sight", shared.SelectedOption{Key: "eldritch-mind"})

	s.NoError(err)
	record := result.FeatureUsage["eldritch-invocations"]
	s.Require().Len(record.Selected, 2)
	s.True(record.HasOption("agonizing-blast"))
	s.True(record.HasOption("eldritch-mind"))
	s.False(record.HasOption("devils-sight"))
}

func (s *ServiceTestSuite) TestSwapOptionRejectsDuplicateWithoutPersisting() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 2)
	char.FeatureUsage = shared.UsageMap{
		"eldritch-invocations": {
			Kind: shared.KindOptionsList,
			Selected: []shared.SelectedOption{
				{Key: "agonizing-blast"}, {Key: "devils-sight"},
			},
		},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	_, err := s.service.SwapOption(s.ctx, "char-1", "eldritch-invocations",
		"devils-sight", shared.SelectedOption{Key: "agonizing-blast"})

	s.Error(err)
	s.True(dnderr.IsInvalidArgument(err))

	record := char.FeatureUsage["eldritch-invocations"]
	s.Require().Len(record.Selected, 2, "a failed swap must leave state as it was")
	s.True(record.HasOption("devils-sight"))
	s.True(record.HasOption("agonizing-blast"))
}

func (s *ServiceTestSuite) TestSwapOptionRejectsWhenReplacementCannotLand() {
	// The remove key is not selected, so the swap degenerates to an
	// add against a full list; nothing may be persisted.
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 2)
	char.FeatureUsage = shared.UsageMap{
		"eldritch-invocations": {
			Kind: shared.KindOptionsList,
			Selected: []shared.SelectedOption{
				{Key: "agonizing-blast"}, {Key: "devils-sight"},
			},
		},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	_, err := s.service.SwapOption(s.ctx, "char-1", "eldritch-invocations",
		"not-selected", shared.SelectedOption{Key: "eldritch-mind"})

	s.Error(err)
	s.True(dnderr.IsInvalidArgument(err))
	s.Len(char.FeatureUsage["eldritch-invocations"].Selected, 2)
}

func (s *ServiceTestSuite) TestSwapOptionRejectedForNonSwappable() {
	_, err := s.service.SwapOption(s.ctx, "char-1", "fighting-style",
		"defense", shared.SelectedOption{Key: "dueling"})

	s.Error(err)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestRest() {
	char := migratedBard(3)
	char.FeatureUsage["bardic-inspiration"].CurrentUses = 0
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	result, err := s.service.Rest(s.ctx, "char-1", shared.RestTypeShort)

	s.NoError(err)
	s.Equal(2, result.FeatureUsage["bardic-inspiration"].CurrentUses)
}

func (s *ServiceTestSuite) TestRestRejectsUnknownRestType() {
	_, err := s.service.Rest(s.ctx, "char-1", shared.RestType("nap"))

	s.Error(err)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestDescribeFeature() {
	char := migratedBard(1)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	text, err := s.service.DescribeFeature(s.ctx, "char-1", "bardic-inspiration")

	s.NoError(err)
	s.Contains(text, "d6")
	s.NotContains(text, "{")
}

func (s *ServiceTestSuite) TestDescribeFeatureUnknown() {
	_, err := s.service.DescribeFeature(s.ctx, "char-1", "no-such-feature")

	s.Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestListFeatureOptions() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 2)
	char.FeatureUsage = shared.UsageMap{
		"eldritch-invocations": {Kind: shared.KindOptionsList},
	}
	candidates := []shared.SelectedOption{
		{Key: "agonizing-blast", Title: "Agonizing Blast"},
		{Key: "devils-sight", Title: "Devil's Sight"},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockDnd5e.EXPECT().ListFeatureOptions("warlock", 2).Return(candidates, nil)

	options, err := s.service.ListFeatureOptions(s.ctx, "char-1", "eldritch-invocations")

	s.NoError(err)
	s.Equal(candidates, options)
}

func (s *ServiceTestSuite) TestListFeatureOptionsSpellSource() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 11)
	char.FeatureUsage = shared.UsageMap{
		"mystic-arcanum": {Kind: shared.KindOptionsList},
	}
	candidates := []shared.SelectedOption{
		{Key: "circle-of-death", Title: "Circle of Death"},
		{Key: "mass-suggestion", Title: "Mass Suggestion"},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockDnd5e.EXPECT().ListSpellOptions("warlock", 6).Return(candidates, nil)

	options, err := s.service.ListFeatureOptions(s.ctx, "char-1", "mystic-arcanum")

	s.NoError(err)
	s.Equal(candidates, options)
}

func (s *ServiceTestSuite) TestListFeatureOptionsBelowMinLevel() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 1)
	char.FeatureUsage = shared.UsageMap{
		"second-wind": {Kind: shared.KindSlots},
	}
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	options, err := s.service.ListFeatureOptions(s.ctx, "char-1", "eldritch-invocations")

	s.NoError(err)
	s.Nil(options, "below the feature's minimum level there are no candidates")
}

func (s *ServiceTestSuite) TestListFeatureOptionsCustomSource() {
	options, err := s.service.ListFeatureOptions(s.ctx, "char-1", "fighting-style")

	s.NoError(err)
	s.Nil(options, "custom-source options are free text, not catalog entries")
}

func (s *ServiceTestSuite) TestMigrateCharacter() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "monk", 3)
	char.Legacy.KiSpent = testutils.IntPtr(2)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	result, err := s.service.MigrateCharacter(s.ctx, "char-1")

	s.NoError(err)
	record := result.FeatureUsage["ki-points"]
	s.Require().NotNil(record)
	s.Equal(3, record.MaxPoints)
	s.Equal(1, record.CurrentPoints)
}

func (s *ServiceTestSuite) TestMigrateCharacterSaveFailure() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "monk", 3)
	s.mockRepo.EXPECT().Get(s.ctx, "char-1").Return(char, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).Return(dnderr.Internal("redis down"))

	_, err := s.service.MigrateCharacter(s.ctx, "char-1")

	s.Error(err)
}
