package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workbridge/internal/domain"
	"workbridge/internal/repo"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repo.MemStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repo.NewMemStore()
	m := NewModule(store, zap.NewNop())

	r := gin.New()
	m.MountAPI(r.Group("/api"))
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedJob(t *testing.T, store *repo.MemStore, employerID uint, title string) domain.Job {
	t.Helper()
	job := domain.Job{EmployerID: employerID, Title: title, Description: "d", Location: "Dubai", Salary: "2000"}
	require.NoError(t, store.CreateJob(context.Background(), &job))
	return job
}

func seedApplication(t *testing.T, store *repo.MemStore, jobID, workerID uint) domain.Application {
	t.Helper()
	app := domain.Application{JobID: jobID, WorkerID: workerID}
	require.NoError(t, store.CreateApplication(context.Background(), &app))
	return app
}

func TestSubmitApplication_FanOut(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")

	w := doJSON(t, r, http.MethodPost, "/api/applications?workerId=20", map[string]any{"jobId": job.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var app domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Equal(t, uint(20), app.WorkerID)

	ctx := context.Background()
	employerNs, err := store.ListNotificationsByUser(ctx, 10)
	require.NoError(t, err)
	require.Len(t, employerNs, 1)
	assert.Equal(t, "New application received for job: Mason", employerNs[0].Message)
	assert.Equal(t, domain.NotifJobApplication, employerNs[0].Type)
	require.NotNil(t, employerNs[0].RelatedID)
	assert.Equal(t, app.ID, *employerNs[0].RelatedID)

	workerNs, err := store.ListNotificationsByUser(ctx, 20)
	require.NoError(t, err)
	require.Len(t, workerNs, 1)
	assert.Equal(t, "You have applied for the job: Mason", workerNs[0].Message)
	assert.Equal(t, domain.NotifApplicationSubmitted, workerNs[0].Type)
}

func TestSubmitApplication_MissingWorkerID(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")

	w := doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{"jobId": job.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Worker ID is required")
}

func TestSubmitApplication_UnknownJobSkipsNotifications(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/applications?workerId=20", map[string]any{"jobId": 777})
	require.Equal(t, http.StatusCreated, w.Code, "the insert itself still succeeds")

	ns, err := store.ListNotificationsByUser(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, ns)
}

func TestUpdateStatus_AcceptedWithDocuments(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	app := seedApplication(t, store, job.ID, 20)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{
		"status":             "accepted",
		"employerNotes":      "Bring ID",
		"requestedDocuments": "ID proof",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusAccepted, updated.Status)

	ns, err := store.ListNotificationsByUser(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, ns, 1, "exactly one notification for the status change")
	assert.Equal(t,
		`Your application for "Mason" has been accepted. Please provide the following documents: ID proof`,
		ns[0].Message,
	)
	assert.Equal(t, domain.NotifApplicationUpdate, ns[0].Type)
}

func TestUpdateStatus_Rejected(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	app := seedApplication(t, store, job.ID, 20)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{
		"status": "rejected",
	})
	require.Equal(t, http.StatusOK, w.Code)

	ns, err := store.ListNotificationsByUser(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, `Your application for "Mason" has been rejected`, ns[0].Message)
	assert.NotContains(t, ns[0].Message, "documents")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/applications/999", map[string]any{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	ns, err := store.ListNotificationsByUser(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, ns, "no mutation, no notification")
}

func TestUpdateStatus_RepeatResendsNotification(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	app := seedApplication(t, store, job.ID, 20)

	body := map[string]any{"status": "accepted"}
	path := fmt.Sprintf("/api/applications/%d", app.ID)

	first := doJSON(t, r, http.MethodPatch, path, body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	// A value-identical repeat is still a successful update, not a 404,
	// and it notifies the worker again.
	second := doJSON(t, r, http.MethodPatch, path, body)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	var updated domain.Application
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusAccepted, updated.Status)

	ns, err := store.ListNotificationsByUser(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, ns[0].Message, ns[1].Message)
	assert.Equal(t, `Your application for "Mason" has been accepted`, ns[0].Message)
}

func TestUpdateDetails_OwnershipEnforced(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	app := seedApplication(t, store, job.ID, 20)

	w := doJSON(t, r, http.MethodPatch,
		fmt.Sprintf("/api/applications/%d/details?workerId=21", app.ID),
		map[string]any{"resume": "my resume"},
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized")

	unchanged, err := store.GetApplication(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.Resume, "record must be untouched")

	ns, err := store.ListNotificationsByUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, ns)
}

func TestUpdateDetails_NotifiesEmployer(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	app := seedApplication(t, store, job.ID, 20)

	w := doJSON(t, r, http.MethodPatch,
		fmt.Sprintf("/api/applications/%d/details?workerId=20", app.ID),
		map[string]any{"resume": "my resume", "coverLetter": "dear sir"},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, err := store.GetApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Resume)
	assert.Equal(t, "my resume", *updated.Resume)

	ns, err := store.ListNotificationsByUser(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t,
		`A worker has updated their application for "Mason" with additional details`,
		ns[0].Message,
	)
	assert.Equal(t, domain.NotifApplicationDetails, ns[0].Type)
}

func TestListApplicationsForEmployer_WithApplicantSnapshot(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()

	worker := domain.User{Username: "amina", Email: "amina@example.com", Role: domain.RoleWorker,
		FirstName: "Amina", LastName: "Yusuf", Phone: "+971500000001"}
	require.NoError(t, store.CreateUser(ctx, &worker))
	require.NoError(t, store.CreateWorkerProfile(ctx, &domain.WorkerProfile{UserID: worker.ID, Skills: "masonry"}))

	job := seedJob(t, store, 10, "Mason")
	seedApplication(t, store, job.ID, worker.ID)

	w := doJSON(t, r, http.MethodGet, "/api/applications/employer/10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []EmployerApplication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Job)
	assert.Equal(t, "Mason", out[0].Job.Title)
	assert.Equal(t, "Amina Yusuf", out[0].Applicant.Name)
	assert.Equal(t, "masonry", out[0].Applicant.Skills)
	assert.Equal(t, "amina@example.com", out[0].Applicant.Email)
}

func TestListApplicationsForEmployer_UnknownApplicant(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	seedApplication(t, store, job.ID, 42) // no such user

	w := doJSON(t, r, http.MethodGet, "/api/applications/employer/10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []EmployerApplication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Unknown", out[0].Applicant.Name)
	assert.Equal(t, "Unknown", out[0].Applicant.Skills)
}

func TestListApplicationsForWorker(t *testing.T) {
	r, store := newTestRouter(t)
	job := seedJob(t, store, 10, "Mason")
	seedApplication(t, store, job.ID, 20)
	seedApplication(t, store, job.ID, 21)

	w := doJSON(t, r, http.MethodGet, "/api/applications/worker/20", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []domain.ApplicationWithJob
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Job)
	assert.Equal(t, "Mason", out[0].Job.Title)
}
