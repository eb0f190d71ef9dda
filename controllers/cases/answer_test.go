package caseController_test

import (
	"bytes"
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
	"caselab/routers/caseRoutes"

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

type answerResult struct {
	Correct  bool   `json:"correct"`
	Final    bool   `json:"final"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Stats    struct {
		CasesCompleted int `json:"casesCompleted"`
		TotalScore     int `json:"totalScore"`
	} `json:"stats"`
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&clinical.Case{},
		&clinical.CaseStep{},
		&clinical.StepOption{},
		&clinical.Investigation{},
		&clinical.Xray{},
		&clinical.Progress{},
		&clinical.CaseCursor{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	caseRoutes.SetupCaseRoutes(app)
	return app, db
}

func newStudent(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: "student"}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed, raw
}

func seedCase(t *testing.T, db *gorm.DB, title string, prereq *uint) clinical.Case {
	t.Helper()
	cs := clinical.Case{Title: title, PrerequisiteCaseID: prereq, Duration: 10}
	require.NoError(t, db.Create(&cs).Error)
	return cs
}

func addStep(t *testing.T, db *gorm.DB, caseID uint, index int, stepType string, maxScore int) clinical.CaseStep {
	t.Helper()
	step := clinical.CaseStep{CaseID: caseID, StepIndex: index, Type: stepType, MaxScore: maxScore}
	require.NoError(t, db.Create(&step).Error)
	return step
}

func addOption(t *testing.T, db *gorm.DB, stepID uint, label string, correct bool, hint string) clinical.StepOption {
	t.Helper()
	option := clinical.StepOption{StepID: stepID, Label: label, IsCorrect: correct, Feedback: hint}
	require.NoError(t, db.Create(&option).Error)
	return option
}

// seedScenario builds the canonical three-step case: info, mcq worth 10 and
// a final mcq worth 10
func seedScenario(t *testing.T, db *gorm.DB) (clinical.Case, clinical.CaseStep, clinical.CaseStep, clinical.StepOption, clinical.StepOption, clinical.StepOption) {
	t.Helper()
	cs := seedCase(t, db, "Acute ACL Tear", nil)
	addStep(t, db, cs.ID, 0, "info", 0)
	mid := addStep(t, db, cs.ID, 1, "mcq", 10)
	final := addStep(t, db, cs.ID, 2, "mcq", 10)
	midCorrect := addOption(t, db, mid.ID, "ACL tear", true, "Well done.")
	midWrong := addOption(t, db, mid.ID, "Meniscus tear", false, "Swelling onset points elsewhere.")
	finalCorrect := addOption(t, db, final.ID, "Conservative rehab", true, "Correct plan.")
	return cs, mid, final, midCorrect, midWrong, finalCorrect
}

func answerPath(caseID, stepID uint) string {
	return fmt.Sprintf("/api/cases/%d/steps/%d/answer", caseID, stepID)
}

func progressCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&clinical.Progress{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestGetCaseRequiresToken(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetCaseNotFound(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := newStudent(t, db, "a@example.com")

	status, _, _ := doRequest(t, app, http.MethodGet, "/api/cases/999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetCaseEmptyCaseIsConfigError(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := newStudent(t, db, "a@example.com")
	cs := seedCase(t, db, "Empty", nil)

	status, parsed, _ := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cases/%d", cs.ID), token, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, parsed.Status)
}

func TestPrerequisiteGating(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")

	first := seedCase(t, db, "First", nil)
	addStep(t, db, first.ID, 0, "info", 0)
	gated := seedCase(t, db, "Gated", &first.ID)
	addStep(t, db, gated.ID, 0, "info", 0)

	path := fmt.Sprintf("/api/cases/%d", gated.ID)

	status, parsed, _ := doRequest(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, parsed.Status)

	// an incomplete attempt does not unlock the gate
	require.NoError(t, db.Create(&clinical.Progress{UserID: user.ID, CaseID: first.ID, Score: 0, IsCompleted: false}).Error)
	status, _, _ = doRequest(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	require.NoError(t, db.Create(&clinical.Progress{UserID: user.ID, CaseID: first.ID, Score: 10, IsCompleted: true}).Error)
	status, _, _ = doRequest(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestStudentViewWithholdsAnswerKey(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := newStudent(t, db, "a@example.com")
	cs, _, _, _, _, _ := seedScenario(t, db)

	status, _, raw := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cases/%d", cs.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	assert.NotContains(t, string(raw), "isCorrect")
	assert.NotContains(t, string(raw), "feedback")
}

func TestSubmitAnswerInvalidOption(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")
	cs, mid, final, _, _, finalCorrect := seedScenario(t, db)

	// an option of another step is invalid even though it is correct
	status, parsed, _ := doRequest(t, app, http.MethodPost, answerPath(cs.ID, mid.ID), token, fiber.Map{
		"selectedOptionId": finalCorrect.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, parsed.Status)

	// unknown option id
	status, _, _ = doRequest(t, app, http.MethodPost, answerPath(cs.ID, final.ID), token, fiber.Map{
		"selectedOptionId": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	assert.EqualValues(t, 0, progressCount(t, db, user.ID))
}

func TestSubmitWrongAnswerReturnsFeedback(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")
	cs, mid, _, _, midWrong, _ := seedScenario(t, db)

	status, parsed, _ := doRequest(t, app, http.MethodPost, answerPath(cs.ID, mid.ID), token, fiber.Map{
		"selectedOptionId": midWrong.ID,
	})
	require.Equal(t, http.StatusOK, status)

	var result answerResult
	require.NoError(t, json.Unmarshal(parsed.Data, &result))
	assert.False(t, result.Correct)
	assert.Equal(t, "Swelling onset points elsewhere.", result.Feedback)

	assert.EqualValues(t, 0, progressCount(t, db, user.ID))
}

func TestSubmitCorrectNonFinalDoesNotFinalize(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")
	cs, mid, _, midCorrect, _, _ := seedScenario(t, db)

	// finality is derived from the step position, a client claim is ignored
	status, parsed, _ := doRequest(t, app, http.MethodPost, answerPath(cs.ID, mid.ID), token, fiber.Map{
		"selectedOptionId": midCorrect.ID,
		"isFinalStep":      true,
	})
	require.Equal(t, http.StatusOK, status)

	var result answerResult
	require.NoError(t, json.Unmarshal(parsed.Data, &result))
	assert.True(t, result.Correct)
	assert.False(t, result.Final)

	assert.EqualValues(t, 0, progressCount(t, db, user.ID))

	var cursor clinical.CaseCursor
	require.NoError(t, db.Where("user_id = ? AND case_id = ?", user.ID, cs.ID).First(&cursor).Error)
	assert.Equal(t, 1, cursor.LastStepIndex)
}

func TestCompleteCaseScenario(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")
	cs, mid, final, midCorrect, _, finalCorrect := seedScenario(t, db)

	status, parsed, _ := doRequest(t, app, http.MethodPost, answerPath(cs.ID, mid.ID), token, fiber.Map{
		"selectedOptionId": midCorrect.ID,
	})
	require.Equal(t, http.StatusOK, status)
	var result answerResult
	require.NoError(t, json.Unmarshal(parsed.Data, &result))
	assert.True(t, result.Correct)
	assert.EqualValues(t, 0, progressCount(t, db, user.ID))

	status, parsed, _ = doRequest(t, app, http.MethodPost, answerPath(cs.ID, final.ID), token, fiber.Map{
		"selectedOptionId": finalCorrect.ID,
		"isFinalStep":      true,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed.Data, &result))

	assert.True(t, result.Correct)
	assert.True(t, result.Final)
	assert.Equal(t, 20, result.Score) // sum of maxScore across all steps
	assert.Equal(t, 1, result.Stats.CasesCompleted)
	assert.Equal(t, 20, result.Stats.TotalScore)

	var rows []clinical.Progress
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, cs.ID, rows[0].CaseID)
	assert.Equal(t, 20, rows[0].Score)
	assert.True(t, rows[0].IsCompleted)
}

func TestCatalogCompletionFlags(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := newStudent(t, db, "a@example.com")

	caseA := seedCase(t, db, "Case A", nil)
	caseB := seedCase(t, db, "Case B", nil)
	require.NoError(t, db.Create(&clinical.Progress{UserID: user.ID, CaseID: caseA.ID, Score: 10, IsCompleted: true}).Error)

	status, parsed, _ := doRequest(t, app, http.MethodGet, "/api/cases", token, nil)
	require.Equal(t, http.StatusOK, status)

	var summaries []struct {
		ID          uint `json:"id"`
		IsCompleted bool `json:"isCompleted"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &summaries))
	require.Len(t, summaries, 2)

	byID := map[uint]bool{}
	for _, s := range summaries {
		byID[s.ID] = s.IsCompleted
	}
	assert.True(t, byID[caseA.ID])
	assert.False(t, byID[caseB.ID])
}

func TestCaseProgressCursor(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := newStudent(t, db, "a@example.com")
	cs, mid, _, midCorrect, _, _ := seedScenario(t, db)

	status, parsed, _ := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cases/%d/progress", cs.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var cursor struct {
		LastStepIndex int `json:"lastStepIndex"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &cursor))
	assert.Equal(t, -1, cursor.LastStepIndex)

	status, _, _ = doRequest(t, app, http.MethodPost, answerPath(cs.ID, mid.ID), token, fiber.Map{
		"selectedOptionId": midCorrect.ID,
	})
	require.Equal(t, http.StatusOK, status)

	status, parsed, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cases/%d/progress", cs.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed.Data, &cursor))
	assert.Equal(t, 1, cursor.LastStepIndex)
}
