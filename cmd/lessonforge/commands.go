package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lessonforge/lessonforge/internal/config"
)

// --- subjects ---

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List available lesson subjects and narrators",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/subjects")
		if err != nil {
			return err
		}

		var result struct {
			Subjects []struct {
				Name          string `json:"name"`
				Scenes        int    `json:"scenes"`
				QuizQuestions int    `json:"quizQuestions"`
			} `json:"subjects"`
			Narrators []string `json:"narrators"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(colorize(colorBold, "Subjects"))
		for _, s := range result.Subjects {
			fmt.Printf("  %s (%d scenes, %d quiz questions)\n", s.Name, s.Scenes, s.QuizQuestions)
		}
		fmt.Println(colorize(colorBold, "Narrators"))
		for _, n := range result.Narrators {
			fmt.Printf("  %s\n", n)
		}
		return nil
	},
}

// --- lesson ---

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Create and inspect lessons",
}

var lessonCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lesson and start image generation",
	Long: `Create a lesson and start image generation.

Examples:
  lessonforge lesson create --name "Period 3" --subject "History of Rome" --grade 9 --length 5
  lessonforge lesson create --name "AP Euro" --subject "French Revolution" --grade 11 --length 10 \
    --narration historical_character --narrator "Napoleon Bonaparte" --quiz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetInt("grade")
		length, _ := cmd.Flags().GetInt("length")
		narration, _ := cmd.Flags().GetString("narration")
		narrator, _ := cmd.Flags().GetString("narrator")
		quiz, _ := cmd.Flags().GetBool("quiz")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]any{
			"name":          name,
			"subject":       subject,
			"grade":         grade,
			"length":        length,
			"narration":     narration,
			"narrator_name": narrator,
			"includeQuiz":   quiz,
		}
		resp, err := client.post(cmd.Context(), "/api/lessons", req)
		if err != nil {
			return err
		}

		var result struct {
			LessonID string `json:"lessonId"`
			Lesson   struct {
				StoryStyle string `json:"storyStyle"`
				Frames     []struct {
					Title     string `json:"title"`
					Timestamp string `json:"timestamp"`
				} `json:"frames"`
			} `json:"lesson"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Created lesson %s (%s)", result.LessonID, result.Lesson.StoryStyle)
		for i, f := range result.Lesson.Frames {
			fmt.Printf("  %d. [%s] %s\n", i+1, f.Timestamp, f.Title)
		}
		fmt.Printf("\nTrack progress with: lessonforge lesson progress %s\n", result.LessonID)
		return nil
	},
}

var lessonShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a lesson as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/lessons/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}

		var l any
		if err := decodeJSON(resp, &l); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	},
}

var lessonProgressCmd = &cobra.Command{
	Use:   "progress <id>",
	Short: "Show image generation progress for a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		for {
			resp, err := client.get(cmd.Context(), "/api/lessons/"+url.PathEscape(args[0])+"/progress")
			if err != nil {
				return err
			}

			var p struct {
				Progress  int    `json:"progress"`
				Status    string `json:"status"`
				Total     int    `json:"totalFrames"`
				Completed int    `json:"completedFrames"`
				Failed    int    `json:"failedFrames"`
				Frames    []struct {
					Title  string `json:"title"`
					Status string `json:"status"`
				} `json:"frames"`
			}
			if err := decodeJSON(resp, &p); err != nil {
				return err
			}

			fmt.Printf("%s %d%% (%d/%d done, %d failed)\n",
				colorize(colorBold, p.Status), p.Progress, p.Completed, p.Total, p.Failed)
			for i, f := range p.Frames {
				fmt.Printf("  %d. %-12s %s\n", i+1, f.Status, f.Title)
			}

			if !watch || terminalStatus(p.Status) {
				return nil
			}
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(2 * time.Second):
			}
			fmt.Println()
		}
	},
}

// terminalStatus reports whether a lesson status will never change again.
func terminalStatus(status string) bool {
	switch status {
	case "completed", "partially_completed", "failed":
		return true
	}
	return false
}

var lessonExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a lesson as text, markdown, or csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("/api/lessons/%s/export?format=%s", url.PathEscape(args[0]), url.QueryEscape(format))
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			var envelope struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error.Message != "" {
				return fmt.Errorf("server returned %d: %s", resp.StatusCode, envelope.Error.Message)
			}
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}

		writer := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			writer = f
		}
		if _, err := writer.ReadFrom(resp.Body); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		if output != "" {
			printSuccess("Lesson exported to %s", output)
		}
		return nil
	},
}

func init() {
	lessonCreateCmd.Flags().String("name", "", "class name (required)")
	lessonCreateCmd.Flags().String("subject", "", "lesson subject (required)")
	lessonCreateCmd.Flags().Int("grade", 0, "grade level (required)")
	lessonCreateCmd.Flags().Int("length", 0, "lesson length in minutes (required)")
	lessonCreateCmd.Flags().String("narration", "teacher", "narration mode: teacher or historical_character")
	lessonCreateCmd.Flags().String("narrator", "", "historical narrator name")
	lessonCreateCmd.Flags().Bool("quiz", false, "append a quiz frame")

	lessonProgressCmd.Flags().Bool("watch", false, "poll until generation finishes")

	lessonExportCmd.Flags().String("format", "text", "export format: text, markdown, or csv")
	lessonExportCmd.Flags().String("output", "", "output file path (default: stdout)")

	lessonCmd.AddCommand(lessonCreateCmd)
	lessonCmd.AddCommand(lessonShowCmd)
	lessonCmd.AddCommand(lessonProgressCmd)
	lessonCmd.AddCommand(lessonExportCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
