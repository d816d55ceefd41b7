package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers prompts for common task tracking workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}

	srv.Prompt("daily_planning").
		Description("Plan the day from overdue tasks, tasks due today and ready tasks").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Planning", `Help me plan my day. Please:

1. Read the taskflow://stats resource for an overview
2. Review overdue tasks from the taskflow://tasks/overdue resource
3. Review tasks due today from the taskflow://tasks/today resource
4. Call dependencies.get to see which tasks are ready to start

Then suggest the three tasks I should focus on first. For overdue tasks,
propose a new deadline or suggest completing them now. Apply changes with
task.update and task.toggle once I confirm.`), nil
		})

	srv.Prompt("unblock_tasks").
		Description("Find blocked tasks and the unfinished prerequisites holding them up").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Unblock Tasks", `Help me unblock my work. Please:

1. Call dependencies.get and list every blocked task
2. For each one, name the prerequisites that are not completed yet
3. Order those prerequisites by how many tasks they unblock

Point out prerequisites that are overdue, and suggest removing
dependencies that look unnecessary with task.update.`), nil
		})

	srv.Prompt("weekly_review").
		Description("Review the coming week's deadlines and the notification feed").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Weekly Review", `Help me review my week. Please:

1. Call calendar.get with view "week" for this week and again with move 1
2. Call notifications.list to see reminders and recommendations
3. Read taskflow://stats for the completion rate

Summarize what got done, what is at risk, and which deadlines cluster
on the same day. Mark the notifications we covered as read.`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
