package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

// Entry is one indexed task or task selector.
type Entry struct {
	Key         string // task path, or project path + selector name
	Kind        string // "task" or "selector"
	Name        string
	Description string
	Group       string
	ProjectName string
	ProjectPath string
	Snippet     string
}

// Index manages the task search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex creates a new task search index
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	// First, check if FTS5 is available
	idx.useFTS = idx.checkFTS5Support()

	// Create metadata table first (always needed)
	metaSchema := `
	CREATE TABLE IF NOT EXISTS tasks_meta (
		key TEXT PRIMARY KEY,
		kind TEXT,
		name TEXT,
		description TEXT,
		task_group TEXT,
		project_name TEXT,
		project_path TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_meta_name ON tasks_meta(name);
	CREATE INDEX IF NOT EXISTS idx_tasks_meta_group ON tasks_meta(task_group);
	CREATE INDEX IF NOT EXISTS idx_tasks_meta_project ON tasks_meta(project_path);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	// Create FTS table if supported
	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS tasks_fts USING fts5(
			key UNINDEXED,
			name,
			description,
			task_group,
			project_name,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	// Try to create a test FTS5 table to check if it's supported
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	// Clean up test table
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// ReindexTree replaces the whole index with the tasks and selectors of the
// given projection. The index is rebuilt wholesale, matching the projection's
// own rebuild lifecycle.
func (idx *Index) ReindexTree(projection *tree.Projection) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM tasks_fts"); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM tasks_meta"); err != nil {
		return err
	}

	for _, element := range projection.Elements() {
		node, ok := element.(*tree.ProjectNode)
		if !ok {
			continue
		}
		for _, taskNode := range tree.TaskNodes(node) {
			entry := entryFor(taskNode)
			if err := insertEntry(tx, idx.useFTS, entry); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func entryFor(node tree.TaskNode) Entry {
	project := node.Owner().Project()
	switch node := node.(type) {
	case *tree.ProjectTaskNode:
		task := node.Task()
		return Entry{
			Key:         task.Path,
			Kind:        "task",
			Name:        task.Name,
			Description: task.Description,
			Group:       task.Group,
			ProjectName: project.Name,
			ProjectPath: project.Path,
		}
	case *tree.TaskSelectorNode:
		selector := node.Selector()
		return Entry{
			Key:         project.Path + "#" + selector.Name,
			Kind:        "selector",
			Name:        selector.Name,
			Description: selector.Description,
			Group:       selector.Group,
			ProjectName: project.Name,
			ProjectPath: project.Path,
		}
	default:
		return Entry{}
	}
}

func insertEntry(tx *sql.Tx, useFTS bool, entry Entry) error {
	if useFTS {
		_, err := tx.Exec(`
			INSERT INTO tasks_fts (key, name, description, task_group, project_name)
			VALUES (?, ?, ?, ?, ?)
		`, entry.Key, entry.Name, entry.Description, entry.Group, entry.ProjectName)
		if err != nil {
			return err
		}
	}

	_, err := tx.Exec(`
		INSERT INTO tasks_meta (key, kind, name, description, task_group, project_name, project_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.Key, entry.Kind, entry.Name, entry.Description, entry.Group, entry.ProjectName, entry.ProjectPath)
	return err
}

// Options for searching
type Options struct {
	ProjectPath string
	Group       string
	Limit       int
}

// Search performs a full-text search over task names, descriptions, groups
// and project names.
func (idx *Index) Search(query string, opts *Options) ([]*Entry, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

// searchWithFTS performs search using FTS5
func (idx *Index) searchWithFTS(query string, opts *Options) ([]*Entry, error) {
	var conditions []string
	var args []any

	if opts.ProjectPath != "" {
		conditions = append(conditions, "m.project_path = ?")
		args = append(args, opts.ProjectPath)
	}

	if opts.Group != "" {
		conditions = append(conditions, "m.task_group = ?")
		args = append(args, opts.Group)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ") + " AND"
	} else {
		whereClause = "WHERE"
	}

	searchQuery := fmt.Sprintf(`
		SELECT
			m.key, m.kind, m.name, m.description, m.task_group, m.project_name, m.project_path,
			snippet(tasks_fts, 2, '<match>', '</match>', '...', 16) as snippet
		FROM tasks_fts f
		JOIN tasks_meta m ON f.key = m.key
		%s tasks_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, whereClause)

	args = append(args, query, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Entry
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.Key, &entry.Kind, &entry.Name, &entry.Description,
			&entry.Group, &entry.ProjectName, &entry.ProjectPath,
			&entry.Snippet,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	return results, nil
}

// searchWithoutFTS performs search using LIKE queries on the metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*Entry, error) {
	var conditions []string
	var args []any

	if opts.ProjectPath != "" {
		conditions = append(conditions, "project_path = ?")
		args = append(args, opts.ProjectPath)
	}

	if opts.Group != "" {
		conditions = append(conditions, "task_group = ?")
		args = append(args, opts.Group)
	}

	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
	args = append(args, searchPattern, searchPattern)

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	searchQuery := fmt.Sprintf(`
		SELECT
			key, kind, name, description, task_group, project_name, project_path
		FROM tasks_meta
		%s
		ORDER BY project_path, name
		LIMIT ?
	`, whereClause)

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Entry
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.Key, &entry.Kind, &entry.Name, &entry.Description,
			&entry.Group, &entry.ProjectName, &entry.ProjectPath,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	return results, nil
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
