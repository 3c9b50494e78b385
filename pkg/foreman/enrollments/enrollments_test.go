package enrollments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func createTestGroup(t *testing.T, db *gorm.DB) models.ChitGroup {
	group := models.ChitGroup{
		Name:                "Circle",
		Value:               50000,
		NumberOfSubscribers: 5,
		Duration:            5,
		StartDate:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:            true,
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return group
}

func createTestSubscriber(t *testing.T, db *gorm.DB, name, phone string) models.Subscriber {
	sub := models.Subscriber{Name: name, PhoneNumber: phone, IsActive: true}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("Failed to create test subscriber: %v", err)
	}
	return sub
}

func TestEnroll(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db)
	sub := createTestSubscriber(t, db, "Anand", "9000000001")

	body := CreateEnrollmentRequest{
		SubscriberID:       sub.ID.String(),
		AssignedChitNumber: 3,
		JoinDate:           "2024-01-15",
	}

	resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response EnrollmentResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.SubscriberName != "Anand" {
		t.Errorf("Expected subscriber name Anand, got %s", response.SubscriberName)
	}
	if response.AssignedChitNumber != 3 {
		t.Errorf("Expected chit number 3, got %d", response.AssignedChitNumber)
	}
	if response.JoinDate != "2024-01-15" {
		t.Errorf("Expected join date 2024-01-15, got %s", response.JoinDate)
	}
}

func TestEnrollSameSubscriberTwice(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db)
	sub := createTestSubscriber(t, db, "Anand", "9000000001")

	first := CreateEnrollmentRequest{SubscriberID: sub.ID.String(), AssignedChitNumber: 1, JoinDate: "2024-01-15"}
	if resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", first); resp.Code != http.StatusCreated {
		t.Fatalf("Expected first enrollment to succeed, got %d", resp.Code)
	}

	// Same subscriber, different chit number: still rejected
	second := CreateEnrollmentRequest{SubscriberID: sub.ID.String(), AssignedChitNumber: 2, JoinDate: "2024-01-16"}
	resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", second)
	if resp.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", resp.Code)
	}

	var errBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &errBody)
	if errBody["error"] != "Subscriber is already enrolled in this group" {
		t.Errorf("Expected the already-enrolled message, got %q", errBody["error"])
	}
}

func TestEnrollChitNumberTaken(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db)
	sub1 := createTestSubscriber(t, db, "Anand", "9000000001")
	sub2 := createTestSubscriber(t, db, "Bhavna", "9000000002")

	first := CreateEnrollmentRequest{SubscriberID: sub1.ID.String(), AssignedChitNumber: 1, JoinDate: "2024-01-15"}
	if resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", first); resp.Code != http.StatusCreated {
		t.Fatalf("Expected first enrollment to succeed, got %d", resp.Code)
	}

	second := CreateEnrollmentRequest{SubscriberID: sub2.ID.String(), AssignedChitNumber: 1, JoinDate: "2024-01-16"}
	resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", second)
	if resp.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", resp.Code)
	}

	var errBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &errBody)
	if errBody["error"] != "Chit number is already taken in this group" {
		t.Errorf("Expected the chit-number-taken message, got %q", errBody["error"])
	}
}

func TestEnrollChitNumberOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db) // 5 subscribers
	sub := createTestSubscriber(t, db, "Anand", "9000000001")

	body := CreateEnrollmentRequest{SubscriberID: sub.ID.String(), AssignedChitNumber: 6, JoinDate: "2024-01-15"}
	resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", body)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for out-of-range chit number, got %d", resp.Code)
	}
}

func TestEnrollInactiveSubscriber(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db)
	sub := models.Subscriber{Name: "Gone", PhoneNumber: "9000000009", IsActive: false}
	db.Create(&sub)

	body := CreateEnrollmentRequest{SubscriberID: sub.ID.String(), AssignedChitNumber: 1, JoinDate: "2024-01-15"}
	resp := doRequest(router, "POST", "/groups/"+group.ID.String()+"/enrollments", body)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for inactive subscriber, got %d", resp.Code)
	}
}

func TestEnrollGroupNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	sub := createTestSubscriber(t, db, "Anand", "9000000001")

	body := CreateEnrollmentRequest{SubscriberID: sub.ID.String(), AssignedChitNumber: 1, JoinDate: "2024-01-15"}
	resp := doRequest(router, "POST", "/groups/a2e8b7a6-5d24-4c2b-9f50-45f2dbb0a111/enrollments", body)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestListEnrollmentsOrderedByChitNumber(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	group := createTestGroup(t, db)
	sub1 := createTestSubscriber(t, db, "Anand", "9000000001")
	sub2 := createTestSubscriber(t, db, "Bhavna", "9000000002")
	sub3 := createTestSubscriber(t, db, "Chitra", "9000000003")

	join := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	db.Create(&models.Enrollment{SubscriberID: sub2.ID, GroupID: group.ID, AssignedChitNumber: 4, JoinDate: join})
	db.Create(&models.Enrollment{SubscriberID: sub1.ID, GroupID: group.ID, AssignedChitNumber: 2, JoinDate: join})
	db.Create(&models.Enrollment{SubscriberID: sub3.ID, GroupID: group.ID, AssignedChitNumber: 1, JoinDate: join})

	resp := doRequest(router, "GET", "/groups/"+group.ID.String()+"/enrollments", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var views []EnrollmentResponse
	json.Unmarshal(resp.Body.Bytes(), &views)

	if len(views) != 3 {
		t.Fatalf("Expected 3 enrollments, got %d", len(views))
	}
	if views[0].AssignedChitNumber != 1 || views[1].AssignedChitNumber != 2 || views[2].AssignedChitNumber != 4 {
		t.Errorf("Expected chit number order 1,2,4; got %d,%d,%d",
			views[0].AssignedChitNumber, views[1].AssignedChitNumber, views[2].AssignedChitNumber)
	}
	if views[0].SubscriberName != "Chitra" {
		t.Errorf("Expected chit number 1 to belong to Chitra, got %s", views[0].SubscriberName)
	}
	if views[0].SubscriberPhone != "9000000003" {
		t.Errorf("Expected subscriber phone in the view, got %s", views[0].SubscriberPhone)
	}
}
