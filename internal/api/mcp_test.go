package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lessonforge/lessonforge/internal/lesson"
	"github.com/lessonforge/lessonforge/internal/store"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T) (MCPDeps, *stubRunner) {
	t.Helper()
	runner := &stubRunner{}
	return MCPDeps{
		Store:     store.NewMemory(),
		Assembler: lesson.NewAssembler(),
		Runner:    runner,
	}, runner
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func createLessonArgs() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Period 3",
		"subject":       "History of Rome",
		"grade":         float64(9),
		"length":        float64(5),
		"narration":     "historical_character",
		"narrator_name": "Julius Caesar",
		"include_quiz":  true,
	}
}

// --- tests ---

func TestMCPCreateLesson(t *testing.T) {
	deps, runner := newTestMCPDeps(t)

	result, err := mcpCreateLesson(deps)(context.Background(), makeCallToolRequest("create_lesson", createLessonArgs()))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var resp struct {
		LessonID string `json:"lessonId"`
		Status   string `json:"status"`
		Frames   int    `json:"frames"`
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if resp.LessonID == "" {
		t.Fatal("result has no lessonId")
	}
	if resp.Status != string(lesson.StatusGenerating) {
		t.Errorf("status = %q, want generating", resp.Status)
	}
	if resp.Frames != 6 {
		t.Errorf("frames = %d, want 6", resp.Frames)
	}

	if _, err := deps.Store.GetLesson(resp.LessonID); err != nil {
		t.Errorf("lesson not stored: %v", err)
	}
	if len(runner.ids) != 1 {
		t.Errorf("runner submissions = %v, want one", runner.ids)
	}
}

func TestMCPCreateLesson_Validation(t *testing.T) {
	deps, runner := newTestMCPDeps(t)

	args := createLessonArgs()
	delete(args, "subject")

	result, err := mcpCreateLesson(deps)(context.Background(), makeCallToolRequest("create_lesson", args))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing subject")
	}
	if len(runner.ids) != 0 {
		t.Error("invalid request reached the runner")
	}
}

func TestMCPGetLesson(t *testing.T) {
	deps, _ := newTestMCPDeps(t)

	created, err := mcpCreateLesson(deps)(context.Background(), makeCallToolRequest("create_lesson", createLessonArgs()))
	if err != nil || created.IsError {
		t.Fatalf("creating lesson: err=%v result=%v", err, created)
	}
	var createResp struct {
		LessonID string `json:"lessonId"`
	}
	if err := json.Unmarshal([]byte(toolText(t, created)), &createResp); err != nil {
		t.Fatalf("decoding create result: %v", err)
	}

	result, err := mcpGetLesson(deps)(context.Background(), makeCallToolRequest("get_lesson", map[string]interface{}{
		"lesson_id": createResp.LessonID,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var v lesson.View
	if err := json.Unmarshal([]byte(toolText(t, result)), &v); err != nil {
		t.Fatalf("decoding lesson: %v", err)
	}
	if v.ID != createResp.LessonID {
		t.Errorf("lesson id = %q, want %q", v.ID, createResp.LessonID)
	}
	if len(v.Frames) != 6 {
		t.Errorf("frames = %d, want 6", len(v.Frames))
	}
}

func TestMCPGetLesson_NotFound(t *testing.T) {
	deps, _ := newTestMCPDeps(t)

	result, err := mcpGetLesson(deps)(context.Background(), makeCallToolRequest("get_lesson", map[string]interface{}{
		"lesson_id": "nope",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for unknown lesson")
	}
}

func TestMCPLessonProgress(t *testing.T) {
	deps, _ := newTestMCPDeps(t)

	created, err := mcpCreateLesson(deps)(context.Background(), makeCallToolRequest("create_lesson", createLessonArgs()))
	if err != nil || created.IsError {
		t.Fatalf("creating lesson: err=%v result=%v", err, created)
	}
	var createResp struct {
		LessonID string `json:"lessonId"`
	}
	if err := json.Unmarshal([]byte(toolText(t, created)), &createResp); err != nil {
		t.Fatalf("decoding create result: %v", err)
	}

	result, err := mcpLessonProgress(deps)(context.Background(), makeCallToolRequest("lesson_progress", map[string]interface{}{
		"lesson_id": createResp.LessonID,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var p lesson.Progress
	if err := json.Unmarshal([]byte(toolText(t, result)), &p); err != nil {
		t.Fatalf("decoding progress: %v", err)
	}
	if p.TotalFrames != 6 || p.CompletedFrames != 0 || p.ProgressPercent != 0 {
		t.Errorf("progress = %+v, want fresh lesson at 0%%", p)
	}
}

func TestMCPListSubjects(t *testing.T) {
	result, err := mcpListSubjects()(context.Background(), makeCallToolRequest("list_subjects", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var resp struct {
		Subjects  []string `json:"subjects"`
		Narrators []string `json:"narrators"`
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(resp.Subjects) == 0 || len(resp.Narrators) == 0 {
		t.Errorf("subjects=%v narrators=%v, want both non-empty", resp.Subjects, resp.Narrators)
	}
}

func TestMCPResourceSubjects(t *testing.T) {
	contents, err := mcpResourceSubjects()(context.Background(), makeReadResourceRequest("catalog://subjects"))
	if err != nil {
		t.Fatalf("resource error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}

	var subjects []struct {
		Name   string `json:"name"`
		Scenes int    `json:"scenes"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &subjects); err != nil {
		t.Fatalf("decoding resource: %v", err)
	}
	if len(subjects) == 0 {
		t.Fatal("no subjects in resource")
	}
	for _, s := range subjects {
		if s.Scenes == 0 {
			t.Errorf("subject %q reports zero scenes", s.Name)
		}
	}
}
