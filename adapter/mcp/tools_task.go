package mcp

import (
	"bytes"
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

type taskAddInput struct {
	Title        string   `json:"title" jsonschema:"required"`
	Description  string   `json:"description,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Status       string   `json:"status,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type taskUpdateInput struct {
	TaskID       string    `json:"task_id" jsonschema:"required"`
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Priority     *string   `json:"priority,omitempty"`
	Status       *string   `json:"status,omitempty"`
	Deadline     *string   `json:"deadline,omitempty"`
	Dependencies *[]string `json:"dependencies,omitempty"`
}

type taskListInput struct {
	Search   string `json:"search,omitempty"`
	Filter   string `json:"filter,omitempty"`
	Priority string `json:"priority,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type taskExportInput struct {
	Format string `json:"format,omitempty"`
}

type taskExportOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, h handlers) {
	srv.Tool("task.add").
		Description("Add a task. Priority defaults to the configured default; status defaults to pending. Deadline is YYYY-MM-DD.").
		Handler(h.addTask)

	srv.Tool("task.update").
		Description("Update the given fields of a task. An empty deadline clears it. Returns found=false for unknown ids.").
		Handler(h.updateTask)

	srv.Tool("task.toggle").
		Description("Complete a pending or in-progress task, or reopen a completed one").
		Handler(h.toggleTask)

	srv.Tool("task.delete").
		Description("Delete a task. Dependents keep the id, which is then ignored.").
		Handler(h.deleteTask)

	srv.Tool("task.list").
		Description("List tasks with search, filter (all, pending, completed, overdue), priority and sort").
		Handler(h.listTasks)

	srv.Tool("task.get").
		Description("Get a task with its prerequisites, dependents and blocked/ready state").
		Handler(h.getTask)

	srv.Tool("task.export").
		Description("Export every task as a json or yaml dataset, or an ics deadline feed").
		Handler(h.exportTasks)
}

func (h handlers) addTask(ctx context.Context, input taskAddInput) (*queries.TaskDTO, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	deps, err := h.parseTaskIDs(ctx, input.Dependencies)
	if err != nil {
		return nil, err
	}
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.AddTaskCommand{
		Title:        input.Title,
		Description:  input.Description,
		Priority:     input.Priority,
		Status:       input.Status,
		Deadline:     input.Deadline,
		Dependencies: deps,
	}, h.app.AddTaskHandler.Handle)
}

func (h handlers) updateTask(ctx context.Context, input taskUpdateInput) (*commands.TaskResult, error) {
	id, err := h.parseTaskID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	cmd := commands.UpdateTaskCommand{
		TaskID:      id,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		Deadline:    input.Deadline,
	}
	if input.Dependencies != nil {
		deps, err := h.parseTaskIDs(ctx, *input.Dependencies)
		if err != nil {
			return nil, err
		}
		cmd.Dependencies = &deps
	}
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), cmd, h.app.UpdateTaskHandler.Handle)
}

func (h handlers) toggleTask(ctx context.Context, input taskIDInput) (*commands.TaskResult, error) {
	id, err := h.parseTaskID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.ToggleCompleteCommand{TaskID: id}, h.app.ToggleCompleteHandler.Handle)
}

func (h handlers) deleteTask(ctx context.Context, input taskIDInput) (*commands.DeleteTaskResult, error) {
	id, err := h.parseTaskID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.DeleteTaskCommand{TaskID: id}, h.app.DeleteTaskHandler.Handle)
}

func (h handlers) listTasks(ctx context.Context, input taskListInput) (*queries.ListTasksResult, error) {
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), queries.ListTasksQuery{
		Search:   input.Search,
		Filter:   input.Filter,
		Priority: input.Priority,
		Sort:     input.Sort,
		Limit:    input.Limit,
	}, h.app.ListTasksHandler.Handle)
}

func (h handlers) getTask(ctx context.Context, input taskIDInput) (*queries.GetTaskResult, error) {
	id, err := h.parseTaskID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), queries.GetTaskQuery{TaskID: id}, h.app.GetTaskHandler.Handle)
}

func (h handlers) exportTasks(ctx context.Context, input taskExportInput) (*taskExportOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	var buf bytes.Buffer
	if err := h.app.ExportService.Export(ctx, &buf, format); err != nil {
		return nil, err
	}
	return &taskExportOutput{Format: format, Content: buf.String()}, nil
}
