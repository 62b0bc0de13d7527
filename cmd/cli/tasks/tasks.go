package tasks

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/crucial707/todo-api/cmd/cli/client"
	"github.com/crucial707/todo-api/cmd/cli/output"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/spf13/cobra"
)

var taskHeaders = []string{"ID", "TASK", "PRIORITY", "STATUS"}

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage your tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		getTaskCmd(),
		createTaskCmd(),
		updateTaskCmd(),
		deleteTaskCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// taskMessage is the create/update response body.
type taskMessage struct {
	Message string      `json:"message"`
	Task    models.Task `json:"task"`
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			var tasks []models.Task
			if err := c.Do(cmd.Context(), http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
				return err
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), tasks)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			renderTasks(cmd.OutOrStdout(), tasks...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getTaskCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			var task models.Task
			if err := c.Do(cmd.Context(), http.MethodGet, "/api/tasks/"+id, nil, &task); err != nil {
				return err
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), task)
			}
			renderTasks(cmd.OutOrStdout(), task)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createTaskCmd() *cobra.Command {
	var title, priority, status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			payload := map[string]string{
				"task":     title,
				"priority": priority,
				"status":   status,
			}

			var resp taskMessage
			if err := c.Do(cmd.Context(), http.MethodPost, "/api/tasks", payload, &resp); err != nil {
				return err
			}
			return printTaskMessage(cmd, resp, asJSON)
		},
	}

	cmd.Flags().StringVar(&title, "task", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority, e.g. High")
	cmd.Flags().StringVar(&status, "status", "Pending", "status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("priority")

	return cmd
}

// ==========================
// UPDATE (only flags given on the command line are sent)
// ==========================
func updateTaskCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			payload := map[string]string{}
			for _, name := range []string{"task", "priority", "status"} {
				if cmd.Flags().Changed(name) {
					v, _ := cmd.Flags().GetString(name)
					payload[name] = v
				}
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --task, --priority or --status")
			}

			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			var resp taskMessage
			if err := c.Do(cmd.Context(), http.MethodPut, "/api/tasks/"+id, payload, &resp); err != nil {
				return err
			}
			return printTaskMessage(cmd, resp, asJSON)
		},
	}

	cmd.Flags().String("task", "", "new task description")
	cmd.Flags().String("priority", "", "new priority")
	cmd.Flags().String("status", "", "new status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Message string `json:"message"`
			}
			if err := c.Do(cmd.Context(), http.MethodDelete, "/api/tasks/"+id, nil, &resp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
}

func printTaskMessage(cmd *cobra.Command, resp taskMessage, asJSON bool) error {
	if asJSON {
		return output.RenderJSON(cmd.OutOrStdout(), resp)
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	renderTasks(cmd.OutOrStdout(), resp.Task)
	return nil
}

func renderTasks(w io.Writer, tasks ...models.Task) {
	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []interface{}{t.ID, t.Title, t.Priority, t.Status})
	}
	output.RenderTable(w, taskHeaders, rows)
}

// parseID rejects ids the API would never match before making a request.
func parseID(arg string) (string, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("invalid task id %q", arg)
	}
	return strconv.Itoa(id), nil
}
