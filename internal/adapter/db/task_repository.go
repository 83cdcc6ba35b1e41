package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID          uint64         `db:"id"`
	UserID      uint64         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	DueDate     sql.NullTime   `db:"due_date"`
	DueTime     sql.NullString `db:"due_time"`
	CreatedAt   time.Time      `db:"created_at"`
}

const taskColumns = "t.id, t.user_id, t.title, t.description, t.status, t.due_date, t.due_time, t.created_at"

// Completed tasks sink to the bottom. Ascending due_date sorts NULLs first
// in MySQL, so undated tasks lead their band; newest creation breaks ties.
const taskListOrder = `
ORDER BY (t.status = 'completed'), t.due_date ASC, t.created_at DESC`

func (r *TaskRepository) ListTasks(ctx context.Context, userID uint64, filter domain.TaskFilter) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks t WHERE t.user_id = ?"
	args := []interface{}{userID}

	if filter.Status != nil {
		query += " AND t.status = ?"
		args = append(args, string(*filter.Status))
	}
	if filter.Query != "" {
		query += ` AND (LOWER(t.title) LIKE ? OR EXISTS (
  SELECT 1 FROM task_tags tt
  JOIN tags g ON g.id = tt.tag_id
  WHERE tt.task_id = t.id AND LOWER(g.name) LIKE ?))`
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		args = append(args, pattern, pattern)
	}
	query += taskListOrder

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRow(row))
	}

	if err := r.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+taskColumns+" FROM tasks t WHERE t.id = ? AND t.user_id = ?",
		taskID, userID)
	if err == sql.ErrNoRows {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}

	tasks := []domain.Task{mapTaskRow(row)}
	if err := r.attachTags(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	return tasks[0], nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, status, due_date, due_time) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, input.Title, input.Description, string(input.Status),
		nullDate(input.DueDate), nullTimeOfDay(input.DueTime))
	if err != nil {
		return domain.Task{}, err
	}
	taskID, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	if err := r.replaceTags(ctx, tx, userID, uint64(taskID), input.TagNames); err != nil {
		return domain.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return r.GetTask(ctx, userID, uint64(taskID))
}

func (r *TaskRepository) UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := taskExists(ctx, tx, userID, taskID); err != nil {
		return domain.Task{}, err
	}

	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 7)
	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, input.Description)
	}
	if input.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*input.Status))
	}
	if input.DueDateSet {
		sets = append(sets, "due_date = ?")
		args = append(args, nullDate(input.DueDate))
	}
	if input.DueTimeSet {
		sets = append(sets, "due_time = ?")
		args = append(args, nullTimeOfDay(input.DueTime))
	}

	if len(sets) > 0 {
		args = append(args, taskID, userID)
		_, err = tx.ExecContext(ctx,
			"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
			args...)
		if err != nil {
			return domain.Task{}, err
		}
	}

	if input.TagNamesSet {
		if err := r.replaceTags(ctx, tx, userID, taskID, input.TagNames); err != nil {
			return domain.Task{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return r.GetTask(ctx, userID, taskID)
}

func (r *TaskRepository) UpdateTaskStatus(ctx context.Context, userID, taskID uint64, status domain.TaskStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := taskExists(ctx, tx, userID, taskID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET status = ? WHERE id = ? AND user_id = ?",
		string(status), taskID, userID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	// task_tags rows are removed by the FK cascade; orphaned tags are not.
	if err := collectUnusedTags(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TaskRepository) ListDueTasks(ctx context.Context, userID uint64, from, to time.Time) ([]domain.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT "+taskColumns+` FROM tasks t
WHERE t.user_id = ? AND t.status != 'completed' AND t.due_date BETWEEN ? AND ?
ORDER BY t.due_date ASC, t.due_time ASC`,
		userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRow(row))
	}
	return tasks, nil
}

func (r *TaskRepository) SearchTagNames(ctx context.Context, userID uint64, term string) ([]string, error) {
	names := []string{}
	err := r.db.SelectContext(ctx, &names,
		`SELECT DISTINCT name FROM tags WHERE user_id = ? AND LOWER(name) LIKE ? ORDER BY name LIMIT 20`,
		userID, "%"+strings.ToLower(term)+"%")
	if err != nil {
		return nil, err
	}
	return names, nil
}

// replaceTags sets the task's tag set to exactly the given names, upserting
// each tag atomically and garbage-collecting tags left without tasks.
func (r *TaskRepository) replaceTags(ctx context.Context, tx *sqlx.Tx, userID, taskID uint64, names []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM task_tags WHERE task_id = ?", taskID); err != nil {
		return err
	}

	for _, name := range names {
		// LAST_INSERT_ID(id) makes the duplicate branch report the existing
		// row's id, so one statement covers both get and create.
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tags (user_id, name) VALUES (?, ?)
ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
			userID, name)
		if err != nil {
			return err
		}
		tagID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)",
			taskID, tagID); err != nil {
			return err
		}
	}

	return collectUnusedTags(ctx, tx, userID)
}

func collectUnusedTags(ctx context.Context, tx *sqlx.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE g FROM tags g
LEFT JOIN task_tags tt ON tt.tag_id = g.id
WHERE g.user_id = ? AND tt.tag_id IS NULL`,
		userID)
	return err
}

func taskExists(ctx context.Context, tx *sqlx.Tx, userID, taskID uint64) error {
	var id uint64
	err := tx.GetContext(ctx, &id,
		"SELECT id FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err == sql.ErrNoRows {
		return domain.ErrTaskNotFound
	}
	return err
}

func (r *TaskRepository) attachTags(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(tasks))
	index := make(map[uint64]int, len(tasks))
	for i, task := range tasks {
		ids = append(ids, task.ID)
		index[task.ID] = i
	}

	query, args, err := sqlx.In(
		`SELECT tt.task_id AS task_id, g.id AS id, g.user_id AS user_id, g.name AS name
FROM task_tags tt
JOIN tags g ON g.id = tt.tag_id
WHERE tt.task_id IN (?)
ORDER BY g.name`, ids)
	if err != nil {
		return err
	}

	var rows []struct {
		TaskID uint64 `db:"task_id"`
		ID     uint64 `db:"id"`
		UserID uint64 `db:"user_id"`
		Name   string `db:"name"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return err
	}

	for _, row := range rows {
		i, ok := index[row.TaskID]
		if !ok {
			continue
		}
		tasks[i].Tags = append(tasks[i].Tags, domain.Tag{ID: row.ID, UserID: row.UserID, Name: row.Name})
	}
	return nil
}

func mapTaskRow(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}
	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.DueTime.Valid {
		// TIME columns come back as strings even with parseTime enabled.
		if parsed, err := time.Parse("15:04:05", row.DueTime.String); err == nil {
			task.DueTime = &parsed
		}
	}
	return task
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func nullTimeOfDay(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("15:04:05")
}
