package allocator

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	ormRepo "github.com/superj80820/url2short/alias/repository/orm"
	"github.com/superj80820/url2short/alias/usecase/mocks"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	ormKit "github.com/superj80820/url2short/kit/orm"
	utilKit "github.com/superj80820/url2short/kit/util"
	"golang.org/x/sync/errgroup"
)

var codeRegexp = regexp.MustCompile(`^[0-9A-Za-z]{6}$`)

func createSequenceCodeGenerate(codes ...string) utilKit.ShortCodeGenerate {
	var (
		lock  sync.Mutex
		index int
	)
	return func() (string, error) {
		lock.Lock()
		defer lock.Unlock()
		code := codes[index%len(codes)]
		index++
		return code, nil
	}
}

func TestAllocator(t *testing.T) {
	ctx := context.Background()
	logger := loggerKit.CreateNoOpLogger()

	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "create alias with fresh code",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(nil).Once()
				aliasEventRepo.On("ProduceAliasCreated", mock.Anything, mock.MatchedBy(func(event *domain.AliasCreatedEvent) bool {
					return event.Target == "https://example.com" && event.UserID == "user-1"
				})).Return(nil).Once()

				allocator, err := CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger)
				require.NoError(t, err)

				alias, err := allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com"})
				require.NoError(t, err)
				assert.Regexp(t, codeRegexp, alias.Code)
				assert.True(t, alias.IsActive)
				assert.False(t, alias.ShouldWarn)
			},
		},
		{
			scenario: "retry after fewer collisions than max retries",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				rejected := domain.AliasMaxRetries - 1
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(domain.ErrDuplicate).Times(rejected)
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(nil).Once()
				aliasEventRepo.On("ProduceAliasCreated", mock.Anything, mock.Anything).Return(nil).Once()

				allocator, err := CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger,
					SetCodeGenerate(createSequenceCodeGenerate("aaaaa1", "aaaaa2", "aaaaa3", "aaaaa4", "aaaaa5")))
				require.NoError(t, err)

				alias, err := allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com"})
				require.NoError(t, err)
				assert.Equal(t, "aaaaa5", alias.Code)
			},
		},
		{
			scenario: "collision exhausted",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(domain.ErrDuplicate).Times(domain.AliasMaxRetries)

				allocator, err := CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger)
				require.NoError(t, err)

				_, err = allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com"})
				assert.ErrorIs(t, err, domain.ErrCollisionExhausted)
				aliasEventRepo.AssertNotCalled(t, "ProduceAliasCreated", mock.Anything, mock.Anything)
			},
		},
		{
			scenario: "store error aborts without retry",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				storeErr := errors.New("connection refused")
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(storeErr).Once()

				allocator, err := CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger)
				require.NoError(t, err)

				_, err = allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com"})
				assert.ErrorIs(t, err, storeErr)
				assert.NotErrorIs(t, err, domain.ErrCollisionExhausted)
			},
		},
		{
			scenario: "produce failure does not fail creation",
			fn: func(t *testing.T) {
				aliasRepo := mocks.NewAliasRepo(t)
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				aliasRepo.On("Create", ctx, mock.AnythingOfType("*domain.Alias")).Return(nil).Once()
				aliasEventRepo.On("ProduceAliasCreated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

				allocator, err := CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger)
				require.NoError(t, err)

				alias, err := allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com"})
				require.NoError(t, err)
				assert.NotEmpty(t, alias.Code)
			},
		},
		{
			scenario: "expiry in the past",
			fn: func(t *testing.T) {
				now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				expiresAt := now.Add(-time.Second)

				allocator, err := CreateAllocatorUseCase(mocks.NewAliasRepo(t), mocks.NewAliasEventRepo(t), logger,
					SetNow(func() time.Time { return now }))
				require.NoError(t, err)

				_, err = allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com", ExpiresAt: &expiresAt})
				assert.ErrorIs(t, err, domain.ErrExpiryInPast)

				_, err = allocator.Create(ctx, &domain.CreateAliasParams{UserID: "user-1", Target: "https://example.com", ExpiresAt: &now})
				assert.ErrorIs(t, err, domain.ErrExpiryInPast)
			},
		},
		{
			scenario: "concurrent creations get distinct codes",
			fn: func(t *testing.T) {
				db, err := ormKit.CreateDB(ormKit.UseSQLite(":memory:"))
				require.NoError(t, err)
				defer db.Close()
				require.NoError(t, ormRepo.Migrate(db))
				aliasEventRepo := mocks.NewAliasEventRepo(t)
				aliasEventRepo.On("ProduceAliasCreated", mock.Anything, mock.Anything).Return(nil)

				// every code is handed out twice so concurrent callers collide
				var counter atomic.Int64
				codeGenerate := func() (string, error) {
					return fmt.Sprintf("c%05d", counter.Add(1)/2), nil
				}

				allocator, err := CreateAllocatorUseCase(ormRepo.CreateAliasRepo(db), aliasEventRepo, logger,
					SetCodeGenerate(codeGenerate),
					SetMaxRetries(100))
				require.NoError(t, err)

				const n = 50
				codes := make([]string, n)
				var eg errgroup.Group
				for i := 0; i < n; i++ {
					i := i
					eg.Go(func() error {
						alias, err := allocator.Create(ctx, &domain.CreateAliasParams{
							UserID: "user-1",
							Target: fmt.Sprintf("https://example.com/%d", i),
						})
						if err != nil {
							return err
						}
						codes[i] = alias.Code
						return nil
					})
				}
				require.NoError(t, eg.Wait())

				distinct := make(map[string]struct{}, n)
				for _, code := range codes {
					distinct[code] = struct{}{}
				}
				assert.Len(t, distinct, n)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}

func TestValidateTarget(t *testing.T) {
	testCases := []struct {
		target string
		valid  bool
	}{
		{target: "https://example.com", valid: true},
		{target: "http://example.com/a?b=c", valid: true},
		{target: "ftp://example.com", valid: false},
		{target: "example.com", valid: false},
		{target: "https://", valid: false},
		{target: "", valid: false},
		{target: "https://example.com/" + string(make([]byte, domain.AliasTargetMaxLen)), valid: false},
	}
	for _, testCase := range testCases {
		err := ValidateTarget(testCase.target)
		if testCase.valid {
			assert.NoError(t, err, testCase.target)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		}
	}
}
