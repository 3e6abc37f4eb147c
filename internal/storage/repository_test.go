package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite provides a test suite for repository operations
type RepositoryTestSuite struct {
	suite.Suite
	repo *SQLiteRepository
	ctx  context.Context
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	repo, err := NewSQLiteRepository(filepath.Join(suite.T().TempDir(), "finlog.db"))
	require.NoError(suite.T(), err, "failed to create test repository")
	suite.repo = repo
	suite.ctx = context.Background()
}

// TearDownTest runs after each test
func (suite *RepositoryTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *RepositoryTestSuite) TestCreateAndGetUser() {
	user, err := suite.repo.CreateUser(suite.ctx, "alice", "hashed-secret")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", user.Username)
	assert.NotZero(suite.T(), user.ID)

	byName, err := suite.repo.GetUserByUsername(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, byName.ID)
	assert.Equal(suite.T(), "hashed-secret", byName.PasswordHash)

	byID, err := suite.repo.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", byID.Username)
}

func (suite *RepositoryTestSuite) TestCreateUserDuplicateUsername() {
	_, err := suite.repo.CreateUser(suite.ctx, "alice", "original-hash")
	require.NoError(suite.T(), err)

	_, err = suite.repo.CreateUser(suite.ctx, "alice", "other-hash")
	assert.ErrorIs(suite.T(), err, ErrUsernameTaken)

	// The original credential must be untouched
	existing, err := suite.repo.GetUserByUsername(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "original-hash", existing.PasswordHash)
}

func (suite *RepositoryTestSuite) TestGetUserNotFound() {
	_, err := suite.repo.GetUserByUsername(suite.ctx, "nobody")
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.repo.GetUserByID(suite.ctx, 999)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestAppendAndListRecords() {
	user, err := suite.repo.CreateUser(suite.ctx, "alice", "h")
	require.NoError(suite.T(), err)

	rec, err := suite.repo.AppendRecord(suite.ctx, user.ID, 1050, "Lunch", "food")
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), rec.ID)
	assert.Equal(suite.T(), int64(1050), rec.Amount.Cents)
	assert.WithinDuration(suite.T(), time.Now(), rec.CreatedAt, 5*time.Second)

	_, err = suite.repo.AppendRecord(suite.ctx, user.ID, -200000, "Salary", "income")
	require.NoError(suite.T(), err)

	records, err := suite.repo.ListRecordsByUser(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 2)

	// Newest first
	assert.Equal(suite.T(), "Salary", records[0].Description)
	assert.Equal(suite.T(), int64(-200000), records[0].Amount.Cents)
	assert.Equal(suite.T(), "Lunch", records[1].Description)
}

func (suite *RepositoryTestSuite) TestListRecordsIsolatedPerUser() {
	alice, err := suite.repo.CreateUser(suite.ctx, "alice", "h")
	require.NoError(suite.T(), err)
	bob, err := suite.repo.CreateUser(suite.ctx, "bob", "h")
	require.NoError(suite.T(), err)

	// Interleave appends by both users
	for i := 0; i < 3; i++ {
		_, err := suite.repo.AppendRecord(suite.ctx, alice.ID, 100, "alice spend", "food")
		require.NoError(suite.T(), err)
		_, err = suite.repo.AppendRecord(suite.ctx, bob.ID, 200, "bob spend", "transport")
		require.NoError(suite.T(), err)
	}

	aliceRecords, err := suite.repo.ListRecordsByUser(suite.ctx, alice.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), aliceRecords, 3)
	for _, r := range aliceRecords {
		assert.Equal(suite.T(), alice.ID, r.UserID)
		assert.Equal(suite.T(), "alice spend", r.Description)
	}

	bobRecords, err := suite.repo.ListRecordsByUser(suite.ctx, bob.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), bobRecords, 3)
	for _, r := range bobRecords {
		assert.Equal(suite.T(), bob.ID, r.UserID)
	}
}

func (suite *RepositoryTestSuite) TestListRecordsEmptyUser() {
	user, err := suite.repo.CreateUser(suite.ctx, "alice", "h")
	require.NoError(suite.T(), err)

	records, err := suite.repo.ListRecordsByUser(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), records)
}

// SessionTestSuite provides a test suite for session persistence
type SessionTestSuite struct {
	suite.Suite
	repo   *SQLiteRepository
	ctx    context.Context
	userID int64
}

func (suite *SessionTestSuite) SetupTest() {
	repo, err := NewSQLiteRepository(filepath.Join(suite.T().TempDir(), "finlog.db"))
	require.NoError(suite.T(), err, "failed to create test repository")
	suite.repo = repo
	suite.ctx = context.Background()

	user, err := suite.repo.CreateUser(suite.ctx, "alice", "h")
	require.NoError(suite.T(), err)
	suite.userID = user.ID
}

func (suite *SessionTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *SessionTestSuite) TestCreateAndGetSession() {
	expiresAt := time.Now().Add(time.Hour)
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-1", suite.userID, expiresAt))

	s, err := suite.repo.GetSession(suite.ctx, "tok-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, s.UserID)
	assert.WithinDuration(suite.T(), expiresAt, s.ExpiresAt, time.Second)
}

func (suite *SessionTestSuite) TestGetSessionExpired() {
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-old", suite.userID, time.Now().Add(-time.Minute)))

	_, err := suite.repo.GetSession(suite.ctx, "tok-old")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SessionTestSuite) TestRenewSession() {
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-1", suite.userID, time.Now().Add(time.Hour)))

	newExpiry := time.Now().Add(48 * time.Hour)
	require.NoError(suite.T(), suite.repo.RenewSession(suite.ctx, "tok-1", newExpiry))

	s, err := suite.repo.GetSession(suite.ctx, "tok-1")
	require.NoError(suite.T(), err)
	assert.WithinDuration(suite.T(), newExpiry, s.ExpiresAt, time.Second)
}

func (suite *SessionTestSuite) TestDeleteSession() {
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-1", suite.userID, time.Now().Add(time.Hour)))

	require.NoError(suite.T(), suite.repo.DeleteSession(suite.ctx, "tok-1"))

	_, err := suite.repo.GetSession(suite.ctx, "tok-1")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SessionTestSuite) TestDeleteExpiredSessions() {
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-live", suite.userID, time.Now().Add(time.Hour)))
	require.NoError(suite.T(), suite.repo.CreateSession(suite.ctx, "tok-dead", suite.userID, time.Now().Add(-time.Hour)))

	n, err := suite.repo.DeleteExpiredSessions(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), n)

	_, err = suite.repo.GetSession(suite.ctx, "tok-live")
	assert.NoError(suite.T(), err)
}

// Test suite runners
func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
