package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lessonforge/lessonforge/internal/catalog"
	"github.com/lessonforge/lessonforge/internal/lesson"
	"github.com/lessonforge/lessonforge/internal/store"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store     store.Store
	Assembler *lesson.Assembler
	Runner    Submitter
}

// NewMCPServer creates an MCP server with all lesson tools and resources
// registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"lessonforge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("lessonforge builds multi-scene history lessons with generated imagery and tracks their generation progress."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("create_lesson",
			mcp.WithDescription("Create a history lesson for a class and start generating its scene images in the background."),
			mcp.WithString("name", mcp.Description("Class name"), mcp.Required()),
			mcp.WithString("subject", mcp.Description("Lesson subject, e.g. \"History of Rome\""), mcp.Required()),
			mcp.WithNumber("grade", mcp.Description("Grade level, 1 and up"), mcp.Required()),
			mcp.WithNumber("length", mcp.Description("Lesson length in minutes"), mcp.Required()),
			mcp.WithString("narration", mcp.Description("Narration mode: \"teacher\" or \"historical_character\"")),
			mcp.WithString("narrator_name", mcp.Description("Historical narrator name; required for historical_character narration")),
			mcp.WithBoolean("include_quiz", mcp.Description("Append a quiz frame to the lesson")),
		),
		mcpCreateLesson(deps),
	)

	s.AddTool(
		mcp.NewTool("get_lesson",
			mcp.WithDescription("Fetch a lesson by id, including frame statuses and image URLs."),
			mcp.WithString("lesson_id", mcp.Description("Lesson id"), mcp.Required()),
		),
		mcpGetLesson(deps),
	)

	s.AddTool(
		mcp.NewTool("lesson_progress",
			mcp.WithDescription("Report image generation progress for a lesson."),
			mcp.WithString("lesson_id", mcp.Description("Lesson id"), mcp.Required()),
		),
		mcpLessonProgress(deps),
	)

	s.AddTool(
		mcp.NewTool("list_subjects",
			mcp.WithDescription("List available lesson subjects and historical narrators."),
		),
		mcpListSubjects(),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"catalog://subjects",
			"Lesson Subjects",
			mcp.WithResourceDescription("Available subjects with their scene and quiz counts"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceSubjects(),
	)

	return s
}

func mcpCreateLesson(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		subject, err := req.RequireString("subject")
		if err != nil {
			return mcpError("subject is required"), nil
		}

		narration := req.GetString("narration", lesson.NarrationTeacher)

		l, err := deps.Assembler.Assemble(lesson.Request{
			Name:         name,
			Subject:      subject,
			Grade:        req.GetInt("grade", 0),
			Length:       req.GetInt("length", 0),
			Narration:    narration,
			NarratorName: req.GetString("narrator_name", ""),
			IncludeQuiz:  req.GetBool("include_quiz", false),
		})
		var verr *lesson.ValidationError
		if errors.As(err, &verr) {
			return mcpError(verr.Reason), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("assembling lesson: %v", err)), nil
		}

		if err := deps.Store.PutLesson(l); err != nil {
			return mcpError(fmt.Sprintf("saving lesson: %v", err)), nil
		}
		deps.Runner.Submit(l.ID)

		b, err := json.Marshal(map[string]any{
			"lessonId": l.ID,
			"status":   l.Status,
			"frames":   len(l.Frames),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetLesson(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("lesson_id")
		if err != nil {
			return mcpError("lesson_id is required"), nil
		}

		l, err := deps.Store.GetLesson(id)
		if errors.Is(err, store.ErrNotFound) {
			return mcpError("lesson not found"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("loading lesson: %v", err)), nil
		}

		b, err := json.Marshal(l.AsView())
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling lesson: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpLessonProgress(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("lesson_id")
		if err != nil {
			return mcpError("lesson_id is required"), nil
		}

		l, err := deps.Store.GetLesson(id)
		if errors.Is(err, store.ErrNotFound) {
			return mcpError("lesson not found"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("loading lesson: %v", err)), nil
		}

		b, err := json.Marshal(lesson.BuildProgress(l))
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling progress: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListSubjects() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(map[string]any{
			"subjects":  catalog.SubjectNames(),
			"narrators": catalog.NarratorNames(),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling subjects: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceSubjects() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type subjectInfo struct {
			Name      string `json:"name"`
			Scenes    int    `json:"scenes"`
			Questions int    `json:"quizQuestions"`
		}

		names := catalog.SubjectNames()
		subjects := make([]subjectInfo, 0, len(names))
		for _, name := range names {
			s, _ := catalog.Subject(name)
			subjects = append(subjects, subjectInfo{
				Name:      name,
				Scenes:    len(s.Scenes),
				Questions: len(s.QuizQuestions),
			})
		}

		b, err := json.Marshal(subjects)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal subjects: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
