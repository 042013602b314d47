package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mqRepo "github.com/superj80820/url2short/alias/repository/mq"
	ormRepo "github.com/superj80820/url2short/alias/repository/orm"
	"github.com/superj80820/url2short/alias/usecase/mocks"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	memoryMQKit "github.com/superj80820/url2short/kit/mq/memory"
	ormKit "github.com/superj80820/url2short/kit/orm"
)

func createSQLiteAliasRepo(t *testing.T) domain.AliasRepo {
	db, err := ormKit.CreateDB(ormKit.UseSQLite(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, ormRepo.Migrate(db))
	return ormRepo.CreateAliasRepo(db)
}

func TestModeration(t *testing.T) {
	ctx := context.Background()
	logger := loggerKit.CreateNoOpLogger()

	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "unsafe verdict sets should warn",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasRepo.On("UpdateShouldWarn", ctx, "abc123", true).Return(true, nil).Once()

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				assert.NoError(t, moderation.HandleChecked(ctx, []byte(`{"code":"abc123","is_safe":false,"score":0.97}`)))
			},
		},
		{
			scenario: "safe verdict clears should warn",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasRepo.On("UpdateShouldWarn", ctx, "abc123", false).Return(true, nil).Once()

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				assert.NoError(t, moderation.HandleChecked(ctx, []byte(`{"code":"abc123","is_safe":true}`)))
			},
		},
		{
			scenario: "malformed events are dropped without store access",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				for _, message := range []string{
					`not json`,
					`{"is_safe":false}`,
					`{"code":"","is_safe":false}`,
					`{"code":"abc123"}`,
					`{"code":"abc123","is_safe":"no"}`,
				} {
					assert.NoError(t, moderation.HandleChecked(ctx, []byte(message)), message)
				}
				aliasRepo.AssertNotCalled(t, "UpdateShouldWarn")
			},
		},
		{
			scenario: "unknown code is a no-op",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasRepo.On("UpdateShouldWarn", ctx, "zzzzzz", true).Return(false, nil).Once()

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				assert.NoError(t, moderation.HandleChecked(ctx, []byte(`{"code":"zzzzzz","is_safe":false}`)))
			},
		},
		{
			scenario: "store error is returned for redelivery",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasRepo.On("UpdateShouldWarn", ctx, "abc123", true).Return(false, errors.New("connection refused")).Once()

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				assert.Error(t, moderation.HandleChecked(ctx, []byte(`{"code":"abc123","is_safe":false}`)))
			},
		},
		{
			scenario: "replayed event converges",
			fn: func(t *testing.T) {
				aliasRepo := createSQLiteAliasRepo(t)
				require.NoError(t, aliasRepo.Create(ctx, &domain.Alias{Code: "abc123", Target: "https://example.com", UserID: "user-1", IsActive: true}))

				moderation, err := CreateModerationUseCase(aliasRepo, mocks.NewAliasEventRepo(t), logger)
				require.NoError(t, err)
				message := []byte(`{"code":"abc123","is_safe":false,"score":0.9}`)
				require.NoError(t, moderation.HandleChecked(ctx, message))
				once, err := aliasRepo.GetByCode(ctx, "abc123")
				require.NoError(t, err)

				require.NoError(t, moderation.HandleChecked(ctx, message))
				twice, err := aliasRepo.GetByCode(ctx, "abc123")
				require.NoError(t, err)

				assert.True(t, once.ShouldWarn)
				assert.Equal(t, once.ShouldWarn, twice.ShouldWarn)
				assert.Equal(t, once.Target, twice.Target)
			},
		},
		{
			scenario: "consume checked topic",
			fn: func(t *testing.T) {
				aliasRepo := createSQLiteAliasRepo(t)
				require.NoError(t, aliasRepo.Create(ctx, &domain.Alias{Code: "abc123", Target: "https://example.com", UserID: "user-1", IsActive: true}))

				createdTopic := memoryMQKit.CreateMemoryMQ(ctx, 10)
				defer createdTopic.Shutdown()
				deleteTopic := memoryMQKit.CreateMemoryMQ(ctx, 10)
				defer deleteTopic.Shutdown()
				checkedTopic := memoryMQKit.CreateMemoryMQ(ctx, 10)
				defer checkedTopic.Shutdown()

				moderation, err := CreateModerationUseCase(aliasRepo, mqRepo.CreateAliasEventRepo(createdTopic, deleteTopic, checkedTopic), logger)
				require.NoError(t, err)
				moderation.ConsumeChecked(ctx)

				isSafe := false
				require.NoError(t, checkedTopic.Produce(ctx, &mqRepo.AliasCheckedMessage{
					AliasCheckedEvent: &domain.AliasCheckedEvent{Code: "abc123", IsSafe: &isSafe},
				}))

				assert.Eventually(t, func() bool {
					alias, err := aliasRepo.GetByCode(ctx, "abc123")
					return err == nil && alias.ShouldWarn
				}, 3*time.Second, 10*time.Millisecond)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}
