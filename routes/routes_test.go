package routes

import (
	"bytes"
	"encoding/json"
	"fiber-admin/config"
	"fiber-admin/database"
	"fiber-admin/migration"
	"fiber-admin/models"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.MAIN_ROUTES = "/api/v1"
	config.JWTSecret = "routes-test-secret"
	config.JWTExpiration = 3600
	config.MenuSystem = "PORTAL"
	config.MenuCacheTTL = time.Minute
	config.DefaultApproverID = 2

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	require.NoError(t, database.RunSeeders(db))

	// Eve (id 5) bukan approver request manapun
	eve := models.User{Model: gorm.Model{ID: 5}, Username: "eve", FirstName: "Eve", Email: "eve@example.com", Role: models.RoleEmployee, IsActive: true}
	var bob models.User
	require.NoError(t, db.First(&bob, 2).Error)
	eve.Password = bob.Password
	require.NoError(t, db.Create(&eve).Error)

	return NewApp(Options{DB: db}), db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, user string) string {
	t.Helper()
	code, out := call(t, app, "POST", "/api/v1/auth/login", "", map[string]string{"user": user, "passwd": "password", "type": "none"})
	require.Equal(t, 200, code, out.Message)
	var token string
	require.NoError(t, json.Unmarshal(out.Data, &token))
	return token
}

func decodeRequest(t *testing.T, out envelope) models.ApprovalRequest {
	t.Helper()
	var req models.ApprovalRequest
	require.NoError(t, json.Unmarshal(out.Data, &req))
	return req
}

func TestLoginAndProfile(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "alice")

	code, out := call(t, app, "GET", "/api/v1/auth/getuserprofile", token, nil)
	require.Equal(t, 200, code)
	assert.True(t, out.Status)

	var profile struct {
		FirstName string            `json:"firstName"`
		Role      string            `json:"role"`
		ListMenu  []models.MenuNode `json:"listMenu"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &profile))
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "Employee", profile.Role)

	names := make([]string, len(profile.ListMenu))
	for i, n := range profile.ListMenu {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"Dashboard", "Requests", "Master Data", "Workflows"}, names)
	require.Len(t, profile.ListMenu[2].SubMenus, 2)
	assert.Equal(t, "Users", profile.ListMenu[2].SubMenus[0].Name)
}

func TestLoginFailureAndMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	code, out := call(t, app, "POST", "/api/v1/auth/login", "", map[string]string{"user": "alice", "passwd": "nope"})
	assert.Equal(t, 401, code)
	assert.False(t, out.Status)
	assert.Equal(t, "invalid username or password", out.Message)

	code, _ = call(t, app, "GET", "/api/v1/auth/getuserprofile", "", nil)
	assert.Equal(t, 401, code)

	code, _ = call(t, app, "GET", "/api/v1/auth/getuserprofile", "garbage", nil)
	assert.Equal(t, 401, code)
}

func TestLogoutEndsSession(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "bob")

	code, _ := call(t, app, "GET", "/api/v1/auth/logout", token, nil)
	require.Equal(t, 200, code)

	code, _ = call(t, app, "GET", "/api/v1/auth/getuserprofile", token, nil)
	assert.Equal(t, 401, code)
}

func TestDecisionByNonApproverIsForbidden(t *testing.T) {
	app, _ := newTestApp(t)
	eve := login(t, app, "eve")
	bob := login(t, app, "bob")

	code, out := call(t, app, "POST", "/api/v1/approvals/101/decision", eve, map[string]string{"decision": "Approved"})
	assert.Equal(t, 403, code)
	assert.False(t, out.Status)

	code, out = call(t, app, "GET", "/api/v1/approvals/101", bob, nil)
	require.Equal(t, 200, code)
	req := decodeRequest(t, out)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, uint(2), req.ApproverID)
}

func TestDecisionByApprover(t *testing.T) {
	app, _ := newTestApp(t)
	bob := login(t, app, "bob")
	alice := login(t, app, "alice")

	code, out := call(t, app, "POST", "/api/v1/approvals/101/decision", bob, map[string]string{"decision": "Approved"})
	require.Equal(t, 200, code, out.Message)
	req := decodeRequest(t, out)
	assert.Equal(t, models.StatusApproved, req.Status)
	assert.Equal(t, "101", req.ID.String())
	assert.NotNil(t, req.DecidedAt)

	code, _ = call(t, app, "POST", "/api/v1/approvals/101/decision", bob, map[string]string{"decision": "Rejected"})
	assert.Equal(t, 409, code)

	code, _ = call(t, app, "POST", "/api/v1/approvals/101/decision", bob, map[string]string{"decision": "Later"})
	assert.Equal(t, 400, code)

	code, _ = call(t, app, "POST", "/api/v1/approvals/999/decision", bob, map[string]string{"decision": "Approved"})
	assert.Equal(t, 404, code)

	code, out = call(t, app, "GET", "/api/v1/notifications/count", alice, nil)
	require.Equal(t, 200, code)
	var count struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &count))
	assert.Equal(t, int64(1), count.Unread)
}

func TestSubmitAndListAssigned(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice")
	bob := login(t, app, "bob")

	code, out := call(t, app, "POST", "/api/v1/approvals", alice, map[string]string{"details": "Laptop replacement"})
	require.Equal(t, 201, code, out.Message)
	created := decodeRequest(t, out)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, uint(2), created.ApproverID)

	code, out = call(t, app, "GET", "/api/v1/approvals?scope=assigned&status=Pending", bob, nil)
	require.Equal(t, 200, code)
	var pending []models.ApprovalRequest
	require.NoError(t, json.Unmarshal(out.Data, &pending))
	assert.Len(t, pending, 2)

	code, _ = call(t, app, "GET", "/api/v1/approvals?scope=everything", bob, nil)
	assert.Equal(t, 400, code)
}

func TestRoleGuardOnUserManagement(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice")
	bob := login(t, app, "bob")

	code, _ := call(t, app, "GET", "/api/v1/users", alice, nil)
	assert.Equal(t, 403, code)

	code, out := call(t, app, "GET", "/api/v1/users", bob, nil)
	require.Equal(t, 200, code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Data, &users))
	assert.Len(t, users, 3)
	_, hasPassword := users[0]["password"]
	assert.False(t, hasPassword)

	code, _ = call(t, app, "GET", "/api/v1/user/preferences", alice, nil)
	assert.Equal(t, 200, code, "preferences are open to every logged in user")

	code, _ = call(t, app, "PUT", "/api/v1/user/preferences", alice, map[string]interface{}{"themeMode": "dark", "denseLayout": true})
	assert.Equal(t, 200, code)
}

func TestMenuTreeAndImport(t *testing.T) {
	app, _ := newTestApp(t)
	bob := login(t, app, "bob")
	alice := login(t, app, "alice")

	rows := []map[string]interface{}{
		{"MENU_ID": 50, "MENU_NAME": "Home", "MENU_PATH": "/", "MENU_SEQUENCE": 1, "MENU_PARENT": nil, "MENU_SYSTEM": "PORTAL", "MENU_ICON": "home", "IS_ACTIVE": 1},
		{"MENU_ID": 51, "MENU_NAME": "Inbox", "MENU_PATH": "/inbox", "MENU_SEQUENCE": 1, "MENU_PARENT": 50, "MENU_SYSTEM": "PORTAL", "MENU_ICON": "mail", "IS_ACTIVE": 1},
	}
	code, _ := call(t, app, "POST", "/api/v1/menus/import", alice, rows)
	assert.Equal(t, 403, code)

	code, out := call(t, app, "POST", "/api/v1/menus/import", bob, rows)
	require.Equal(t, 200, code, out.Message)

	code, out = call(t, app, "GET", "/api/v1/menus/tree", alice, nil)
	require.Equal(t, 200, code)
	var tree []models.MenuNode
	require.NoError(t, json.Unmarshal(out.Data, &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "Home", tree[0].Name)
	require.Len(t, tree[0].SubMenus, 1)
	assert.Equal(t, uint(51), tree[0].SubMenus[0].ID)

	cyclic := []map[string]interface{}{
		{"MENU_ID": 60, "MENU_NAME": "A", "MENU_PATH": "/a", "MENU_PARENT": 61},
		{"MENU_ID": 61, "MENU_NAME": "B", "MENU_PATH": "/b", "MENU_PARENT": 60},
	}
	code, _ = call(t, app, "POST", "/api/v1/menus/import", bob, cyclic)
	assert.Equal(t, 422, code)
}

func TestCommodityExport(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice")

	req := httptest.NewRequest("GET", "/api/v1/commodities/groups/export", nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "commodity_groups.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx is a zip archive")
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)

	code, out := call(t, app, "GET", "/healthz", "", nil)
	assert.Equal(t, 200, code)
	assert.True(t, out.Status)

	// campuran method tanpa token, semua berakhir 401
	for _, m := range []string{"GET", "POST", "PUT", "DELETE", "GET", "POST"} {
		code, _ = call(t, app, m, "/api/v1/menus/tree", "", nil)
		assert.Equal(t, 401, code, m)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `method="DELETE",status="401"`)
}

func TestDashboardSummary(t *testing.T) {
	app, _ := newTestApp(t)
	bob := login(t, app, "bob")

	code, out := call(t, app, "GET", "/api/v1/dashboard", bob, nil)
	require.Equal(t, 200, code, out.Message)

	var summary struct {
		Submitted           map[string]int64 `json:"submitted"`
		Assigned            map[string]int64 `json:"assigned"`
		UnreadNotifications int64            `json:"unreadNotifications"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &summary))
	assert.Equal(t, int64(1), summary.Assigned["Pending"])
	assert.Equal(t, int64(1), summary.Assigned["Approved"])
	assert.Equal(t, int64(0), summary.Assigned["Rejected"])
	assert.Equal(t, int64(0), summary.Submitted["Pending"])
}

func TestWorkflowListMatchesSeededMenu(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice")

	code, _ := call(t, app, "GET", "/api/v1/workflows", "", nil)
	assert.Equal(t, 401, code)

	code, out := call(t, app, "GET", "/api/v1/workflows", alice, nil)
	require.Equal(t, 200, code, out.Message)
	var all []models.Workflow
	require.NoError(t, json.Unmarshal(out.Data, &all))
	require.Len(t, all, 3)
	assert.Equal(t, "Leave Request", all[0].Name)
	assert.True(t, all[0].Active)

	code, out = call(t, app, "GET", "/api/v1/workflows?active=true", alice, nil)
	require.Equal(t, 200, code)
	var active []models.Workflow
	require.NoError(t, json.Unmarshal(out.Data, &active))
	assert.Len(t, active, 2)
}
