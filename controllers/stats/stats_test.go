package statsController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"caselab/config"
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"
	"caselab/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupStatsApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &clinical.Case{}, &clinical.Progress{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	return app, db
}

func addStudent(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: "student", MembershipType: "free"}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func complete(t *testing.T, db *gorm.DB, userID, caseID uint, score int) {
	t.Helper()
	require.NoError(t, db.Create(&clinical.Progress{
		UserID: userID, CaseID: caseID, Score: score, IsCompleted: true,
	}).Error)
}

func getJSON(t *testing.T, app *fiber.App, path, token string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestGetMyStats(t *testing.T) {
	app, db := setupStatsApp(t)
	user, token := addStudent(t, db, "a@example.com")

	complete(t, db, user.ID, 1, 20)
	complete(t, db, user.ID, 2, 15)
	// replaying a case keeps the best score, not the sum
	complete(t, db, user.ID, 1, 10)

	status, parsed := getJSON(t, app, "/api/stats/me", token)
	require.Equal(t, http.StatusOK, status)

	var stats struct {
		CasesCompleted int `json:"casesCompleted"`
		TotalScore     int `json:"totalScore"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &stats))
	assert.Equal(t, 2, stats.CasesCompleted)
	assert.Equal(t, 35, stats.TotalScore)
}

func TestLeaderboardOrdering(t *testing.T) {
	app, db := setupStatsApp(t)

	alice, token := addStudent(t, db, "alice@example.com")
	bob, _ := addStudent(t, db, "bob@example.com")
	carol, _ := addStudent(t, db, "carol@example.com")
	addStudent(t, db, "dave@example.com")

	// alice: 2 cases, 30 points. bob: 2 cases, 20 points.
	// carol: 1 case, 50 points. dave: nothing.
	complete(t, db, alice.ID, 1, 10)
	complete(t, db, alice.ID, 2, 20)
	complete(t, db, bob.ID, 1, 10)
	complete(t, db, bob.ID, 2, 10)
	complete(t, db, carol.ID, 3, 50)

	status, parsed := getJSON(t, app, "/api/leaderboard", token)
	require.Equal(t, http.StatusOK, status)

	var standings []clinical.Standing
	require.NoError(t, json.Unmarshal(parsed.Data, &standings))
	require.Len(t, standings, 4)

	assert.Equal(t, "alice@example.com", standings[0].Email)
	assert.Equal(t, "bob@example.com", standings[1].Email)
	assert.Equal(t, "carol@example.com", standings[2].Email)
	assert.Equal(t, "dave@example.com", standings[3].Email)
	for i, s := range standings {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestLeaderboardExcludesAdminsAndDeleted(t *testing.T) {
	app, db := setupStatsApp(t)

	_, token := addStudent(t, db, "alice@example.com")

	admin := models.User{Email: "admin@example.com", Password: "x", Role: "admin"}
	require.NoError(t, db.Create(&admin).Error)
	complete(t, db, admin.ID, 1, 99)

	gone := models.User{Email: "gone@example.com", Password: "x", Role: "student", IsDeleted: true}
	require.NoError(t, db.Create(&gone).Error)
	complete(t, db, gone.ID, 1, 99)

	status, parsed := getJSON(t, app, "/api/leaderboard", token)
	require.Equal(t, http.StatusOK, status)

	var standings []clinical.Standing
	require.NoError(t, json.Unmarshal(parsed.Data, &standings))
	require.Len(t, standings, 1)
	assert.Equal(t, "alice@example.com", standings[0].Email)
}

func TestProfileStatsRankMatchesLeaderboard(t *testing.T) {
	app, db := setupStatsApp(t)

	alice, aliceToken := addStudent(t, db, "alice@example.com")
	bob, bobToken := addStudent(t, db, "bob@example.com")

	require.NoError(t, db.Create(&clinical.Case{Title: "Acute ACL Tear"}).Error)
	complete(t, db, alice.ID, 1, 20)
	complete(t, db, bob.ID, 1, 10)

	var profile struct {
		CasesCompleted int    `json:"casesCompleted"`
		TotalScore     int    `json:"totalScore"`
		Rank           int    `json:"rank"`
		MembershipType string `json:"membershipType"`
		CompletedCases []struct {
			CaseID uint   `json:"caseId"`
			Title  string `json:"title"`
			Score  int    `json:"score"`
		} `json:"completedCases"`
	}

	status, parsed := getJSON(t, app, "/api/profile/stats", aliceToken)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed.Data, &profile))
	assert.Equal(t, 1, profile.Rank)
	assert.Equal(t, 20, profile.TotalScore)
	assert.Equal(t, "free", profile.MembershipType)
	require.Len(t, profile.CompletedCases, 1)
	assert.Equal(t, "Acute ACL Tear", profile.CompletedCases[0].Title)

	status, parsed = getJSON(t, app, "/api/profile/stats", bobToken)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed.Data, &profile))
	assert.Equal(t, 2, profile.Rank)
}
