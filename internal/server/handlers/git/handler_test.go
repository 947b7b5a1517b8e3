package git_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/projects"
	githandler "github.com/apiarycd/gitgate/internal/server/handlers/git"
	"github.com/apiarycd/gitgate/internal/server/protocol"
	"github.com/apiarycd/gitgate/internal/tasks"
	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	t *testing.T

	app      *fiber.App
	tasks    *tasks.Service
	project  *projects.Project
	basePath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := badgerfx.New(badgerfx.Config{InMemory: true}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := zaptest.NewLogger(t)
	workspace := t.TempDir()

	gitSvc := git.NewService(git.NewArena(logger), git.Config{
		Timeout:      30 * time.Second,
		WorkspaceDir: workspace,
		Author:       git.AuthorConfig{Name: "Test Author", Email: "test@example.com"},
	}, logger)
	projectsSvc := projects.NewService(projects.NewRepository(db), gitSvc, projects.Config{WorkspaceDir: workspace}, logger)
	tasksSvc := tasks.NewService(tasks.NewRepository(db), tasks.Config{Timeout: 30 * time.Second}, logger)

	project, err := projectsSvc.Create(context.Background(), projects.ProjectDraft{Name: "demo"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	app := fiber.New()
	app.Use(validation.Middleware)
	githandler.NewHandler(
		gitSvc,
		projectsSvc,
		tasksSvc,
		links.NewBuilder("/api/v1"),
		protocol.Config{Version: "1"},
		validator.New(),
		logger,
	).Register(app)

	return &fixture{
		t:        t,
		app:      app,
		tasks:    tasksSvc,
		project:  project,
		basePath: "/git",
	}
}

func (f *fixture) write(name, content string) {
	f.t.Helper()

	full := filepath.Join(f.project.Dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		f.t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) do(method, path, body string) (*http.Response, []byte) {
	f.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, f.basePath+path, reader)
	req.Header.Set(protocol.Header, "1")
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := f.app.Test(req, -1)
	if err != nil {
		f.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.t.Fatal(err)
	}

	return resp, data
}

func (f *fixture) expect(method, path, body string, status int) []byte {
	f.t.Helper()

	resp, data := f.do(method, path, body)
	if resp.StatusCode != status {
		f.t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, status, resp.StatusCode, data)
	}

	return data
}

func TestHandler_ProtocolHeader(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(fiber.MethodGet, "/git/status/file/demo/", nil)
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 without protocol header, got %d", resp.StatusCode)
	}
}

func TestHandler_StatusAndCommit(t *testing.T) {
	f := newFixture(t)
	f.write("docs/readme.md", "hello\n")

	var status githandler.StatusResponse
	if err := json.Unmarshal(f.expect(fiber.MethodGet, "/status/file/demo/", "", fiber.StatusOK), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if len(status.Untracked) != 1 || status.Untracked[0].Name != "docs/readme.md" {
		t.Fatalf("Expected one untracked entry, got %+v", status.Untracked)
	}
	entry := status.Untracked[0]
	if entry.Location != "/api/v1/file/"+f.project.ID.String()+"/docs/readme.md" {
		t.Errorf("Unexpected entry location %s", entry.Location)
	}
	if entry.Git.IndexURI == "" || entry.Git.HeadURI == "" {
		t.Errorf("Expected entry git links, got %+v", entry.Git)
	}

	f.expect(fiber.MethodPut, "/index/file/demo/docs", "", fiber.StatusOK)

	if err := json.Unmarshal(f.expect(fiber.MethodGet, "/status/file/demo/", "", fiber.StatusOK), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if len(status.Added) != 1 || len(status.Untracked) != 0 {
		t.Fatalf("Expected one added entry, got %+v", status)
	}

	var commit githandler.CommitResponse
	body := `{"Message":"Add readme","AuthorName":"Jane","AuthorEmail":"jane@example.com"}`
	if err := json.Unmarshal(f.expect(fiber.MethodPost, "/commit/HEAD/file/demo/", body, fiber.StatusOK), &commit); err != nil {
		t.Fatalf("failed to decode commit: %v", err)
	}
	if commit.Message != "Add readme" || commit.AuthorName != "Jane" || commit.ID == "" {
		t.Errorf("Unexpected commit %+v", commit)
	}

	var log githandler.LogResponse
	if err := json.Unmarshal(f.expect(fiber.MethodGet, "/commit/HEAD/file/demo/", "", fiber.StatusOK), &log); err != nil {
		t.Fatalf("failed to decode log: %v", err)
	}
	if len(log.Children) != 1 || log.Children[0].ID != commit.ID {
		t.Errorf("Expected log with the new commit, got %+v", log.Children)
	}

	f.expect(fiber.MethodPost, "/commit/main/file/demo/", body, fiber.StatusBadRequest)
	f.expect(fiber.MethodPost, "/commit/HEAD/file/demo/", `{"Message":"   "}`, fiber.StatusBadRequest)
}

func TestHandler_NotFound(t *testing.T) {
	f := newFixture(t)

	f.expect(fiber.MethodGet, "/status/file/unknown/", "", fiber.StatusNotFound)
	f.expect(fiber.MethodGet, "/status/file/demo/missing", "", fiber.StatusNotFound)
	f.expect(fiber.MethodGet, "/remote/origin/main/file/demo/", "", fiber.StatusNotFound)
}

func TestHandler_CheckoutConflict(t *testing.T) {
	f := newFixture(t)
	f.write("a.txt", "one\n")
	f.expect(fiber.MethodPut, "/index/file/demo/", "", fiber.StatusOK)
	f.expect(fiber.MethodPost, "/commit/HEAD/file/demo/", `{"Message":"initial"}`, fiber.StatusOK)

	var branch githandler.BranchResponse
	if err := json.Unmarshal(f.expect(fiber.MethodPost, "/branch/file/demo/", `{"Name":"feature/x"}`, fiber.StatusCreated), &branch); err != nil {
		t.Fatalf("failed to decode branch: %v", err)
	}
	if !strings.Contains(branch.Location, "feature%2Fx") {
		t.Errorf("Expected escaped branch in location, got %s", branch.Location)
	}

	f.expect(fiber.MethodPut, "/branch/feature%2Fx/file/demo/", "", fiber.StatusOK)
	f.write("a.txt", "two\n")
	f.expect(fiber.MethodPut, "/index/file/demo/a.txt", "", fiber.StatusOK)
	f.expect(fiber.MethodPost, "/commit/HEAD/file/demo/", `{"Message":"change"}`, fiber.StatusOK)

	var branches githandler.BranchListResponse
	if err := json.Unmarshal(f.expect(fiber.MethodGet, "/branch/file/demo/", "", fiber.StatusOK), &branches); err != nil {
		t.Fatalf("failed to decode branches: %v", err)
	}
	var base string
	for _, b := range branches.Children {
		if !b.Current {
			base = b.Name
		}
	}
	if base == "" {
		t.Fatalf("Expected a second branch, got %+v", branches.Children)
	}

	f.write("a.txt", "dirty\n")

	var conflict githandler.ConflictResponse
	if err := json.Unmarshal(f.expect(fiber.MethodPut, "/branch/"+base+"/file/demo/", "", fiber.StatusConflict), &conflict); err != nil {
		t.Fatalf("failed to decode conflict: %v", err)
	}
	if conflict.Severity != "WARNING" || len(conflict.Conflicts) != 1 || conflict.Conflicts[0] != "a.txt" {
		t.Errorf("Unexpected conflict body %+v", conflict)
	}

	f.expect(fiber.MethodDelete, "/branch/feature%2Fx/file/demo/", "", fiber.StatusBadRequest)
}

func TestHandler_PushTask(t *testing.T) {
	f := newFixture(t)
	f.write("a.txt", "one\n")
	f.expect(fiber.MethodPut, "/index/file/demo/", "", fiber.StatusOK)
	f.expect(fiber.MethodPost, "/commit/HEAD/file/demo/", `{"Message":"initial"}`, fiber.StatusOK)

	f.expect(fiber.MethodPost, "/remote/origin/main/file/demo/", `{"PushSrcRef":"HEAD"}`, fiber.StatusNotFound)

	f.expect(fiber.MethodPost, "/remote/file/demo/", `{"Name":"origin","URI":"git@example.com:org/repo.git"}`, fiber.StatusCreated)

	f.expect(fiber.MethodPost, "/remote/origin/main/file/demo/", "", fiber.StatusBadRequest)
	f.expect(fiber.MethodPost, "/remote/origin/main/file/demo/", `{}`, fiber.StatusBadRequest)

	resp, data := f.do(fiber.MethodPost, "/remote/origin/main/file/demo/", `{"PushSrcRef":"HEAD"}`)
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", resp.StatusCode, data)
	}

	var task githandler.TaskResponse
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if task.Kind != string(tasks.KindPush) {
		t.Errorf("Expected push task, got %s", task.Kind)
	}
	if resp.Header.Get(fiber.HeaderLocation) != "/api/v1/tasks/"+task.ID {
		t.Errorf("Unexpected location %s", resp.Header.Get(fiber.HeaderLocation))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.tasks.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	tasksList, err := f.tasks.ListByProject(context.Background(), f.project.ID)
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	if len(tasksList) != 1 || tasksList[0].Status != tasks.StatusCompleted {
		t.Fatalf("Expected one completed task, got %+v", tasksList)
	}

	// the SSH remote has no key, so the push is not attempted
	var result git.PushResult
	if err := json.Unmarshal(tasksList[0].Result, &result); err != nil {
		t.Fatalf("failed to decode push result: %v", err)
	}
	if result.Severity != git.SeverityError {
		t.Errorf("Expected ERROR severity, got %s", result.Severity)
	}
}
