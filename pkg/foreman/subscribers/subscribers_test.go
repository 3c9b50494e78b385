package subscribers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foremenchoice/foreman/pkg/foreman/auth"
	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("", auth.AuthMiddleware())
	handler.RegisterRoutes(api)

	return r
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	token, _ := auth.GenerateToken("test-operator", "test@example.com", "admin")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateSubscriber(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body := CreateSubscriberRequest{
		Name:        "Anand",
		PhoneNumber: "9000000001",
		Address:     "12 Temple Street",
	}

	resp := doRequest(router, "POST", "/subscribers", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response SubscriberResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Name != "Anand" {
		t.Errorf("Expected name Anand, got %s", response.Name)
	}
	if !response.IsActive {
		t.Error("Expected new subscriber to be active")
	}
}

func TestCreateSubscriberDuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	first := CreateSubscriberRequest{Name: "Anand", PhoneNumber: "9000000001"}
	if resp := doRequest(router, "POST", "/subscribers", first); resp.Code != http.StatusCreated {
		t.Fatalf("Expected first subscriber to be created, got %d", resp.Code)
	}

	dup := CreateSubscriberRequest{Name: "Bhavna", PhoneNumber: "9000000001"}
	resp := doRequest(router, "POST", "/subscribers", dup)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate phone, got %d", resp.Code)
	}

	// Different phone numbers both succeed
	other := CreateSubscriberRequest{Name: "Bhavna", PhoneNumber: "9000000002"}
	if resp := doRequest(router, "POST", "/subscribers", other); resp.Code != http.StatusCreated {
		t.Errorf("Expected non-colliding phone to be accepted, got %d", resp.Code)
	}
}

func TestCreateSubscriberRequiresNameAndPhone(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	cases := []CreateSubscriberRequest{
		{Name: "", PhoneNumber: "9000000001"},
		{Name: "Anand", PhoneNumber: ""},
	}

	for _, body := range cases {
		resp := doRequest(router, "POST", "/subscribers", body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.Code)
		}
	}
}

func TestListSubscribersOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.Subscriber{Name: "Chitra", PhoneNumber: "9000000003", IsActive: true})
	db.Create(&models.Subscriber{Name: "Anand", PhoneNumber: "9000000001", IsActive: true})
	db.Create(&models.Subscriber{Name: "Bhavna", PhoneNumber: "9000000002", IsActive: false})

	resp := doRequest(router, "GET", "/subscribers", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var subs []SubscriberResponse
	json.Unmarshal(resp.Body.Bytes(), &subs)

	if len(subs) != 2 {
		t.Fatalf("Expected 2 active subscribers, got %d", len(subs))
	}
	if subs[0].Name != "Anand" || subs[1].Name != "Chitra" {
		t.Errorf("Expected name order Anand, Chitra; got %s, %s", subs[0].Name, subs[1].Name)
	}
}

func TestDeactivateSubscriberFreesPhone(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	sub := models.Subscriber{Name: "Anand", PhoneNumber: "9000000001", IsActive: true}
	db.Create(&sub)

	resp := doRequest(router, "DELETE", "/subscribers/"+sub.ID.String(), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// The number now belongs to no active subscriber and may be reused
	reuse := CreateSubscriberRequest{Name: "Deepak", PhoneNumber: "9000000001"}
	if resp := doRequest(router, "POST", "/subscribers", reuse); resp.Code != http.StatusCreated {
		t.Errorf("Expected freed phone number to be reusable, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeactivateSubscriberNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := doRequest(router, "DELETE", "/subscribers/a2e8b7a6-5d24-4c2b-9f50-45f2dbb0a111", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
