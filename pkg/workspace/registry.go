package workspace

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Registry manages workspace registration and lookup. Workspace names are
// unique: the name is the primary key, so a name resolves to at most one
// entry. The registry also acts as the configuration store for each entry's
// build root directory and build-system marker.
type Registry struct {
	db      *sql.DB
	dataDir string
}

// NewRegistry creates a new workspace registry
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspaces.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{
		db:      db,
		dataDir: dataDir,
	}

	if err := r.init(); err != nil {
		return nil, fmt.Errorf("initialize registry: %w", err)
	}

	return r, nil
}

// init creates the database schema
func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		name TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		type TEXT NOT NULL,
		root_dir TEXT NOT NULL,
		build_marker BOOLEAN NOT NULL DEFAULT 0,
		settings TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workspaces_path ON workspaces(path);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Add registers a new workspace entry
func (r *Registry) Add(w *Workspace) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("validate workspace: %w", err)
	}

	settings, err := json.Marshal(w.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO workspaces (name, path, type, root_dir, build_marker, settings, created_at, last_used)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err = r.db.Exec(query, w.Name, w.Path, w.Type, w.RootDir, w.BuildMarker, settings, now, now)
	return err
}

// Get retrieves a workspace by name
func (r *Registry) Get(name string) (*Workspace, error) {
	query := `
	SELECT name, path, type, root_dir, build_marker, settings, created_at, last_used
	FROM workspaces WHERE name = ?
	`

	w := &Workspace{}
	var settings string
	err := r.db.QueryRow(query, name).Scan(
		&w.Name, &w.Path, &w.Type, &w.RootDir, &w.BuildMarker,
		&settings, &w.CreatedAt, &w.LastUsed,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workspace not found: %s", name)
	}
	if err != nil {
		return nil, err
	}

	if settings != "" {
		if err := json.Unmarshal([]byte(settings), &w.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	return w, nil
}

// List returns all registered workspaces
func (r *Registry) List() ([]*Workspace, error) {
	query := `
	SELECT name, path, type, root_dir, build_marker, settings, created_at, last_used
	FROM workspaces ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		w := &Workspace{}
		var settings string
		err := rows.Scan(
			&w.Name, &w.Path, &w.Type, &w.RootDir, &w.BuildMarker,
			&settings, &w.CreatedAt, &w.LastUsed,
		)
		if err != nil {
			return nil, err
		}

		if settings != "" {
			if err := json.Unmarshal([]byte(settings), &w.Settings); err != nil {
				return nil, fmt.Errorf("unmarshal settings: %w", err)
			}
		}

		workspaces = append(workspaces, w)
	}

	return workspaces, nil
}

// FindByPath finds the workspace entry that contains the given path
func (r *Registry) FindByPath(path string) (*Workspace, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	workspaces, err := r.List()
	if err != nil {
		return nil, err
	}

	// Find the most specific workspace match
	var bestMatch *Workspace
	bestMatchLen := 0

	// Convert to lowercase for case-insensitive comparison
	lowerAbsPath := strings.ToLower(absPath)

	for _, w := range workspaces {
		wsAbsPath, err := filepath.Abs(w.Path)
		if err != nil {
			continue
		}

		// Case-insensitive comparison to handle filesystem case variations
		lowerWsAbsPath := strings.ToLower(wsAbsPath)
		if strings.HasPrefix(lowerAbsPath, lowerWsAbsPath) && len(wsAbsPath) > bestMatchLen {
			bestMatch = w
			bestMatchLen = len(wsAbsPath)
		}
	}

	if bestMatch != nil {
		// Update last used time
		if err := r.updateLastUsed(bestMatch.Name); err != nil {
			// Log error but don't fail the detection
			fmt.Fprintf(os.Stderr, "Warning: failed to update last used: %v\n", err)
		}
		return bestMatch, nil
	}

	return nil, nil
}

// SetRootDir updates the configured build root directory for a workspace
func (r *Registry) SetRootDir(name, rootDir string) error {
	res, err := r.db.Exec("UPDATE workspaces SET root_dir = ? WHERE name = ?", rootDir, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("workspace not found: %s", name)
	}
	return nil
}

// Remove removes a workspace from the registry
func (r *Registry) Remove(name string) error {
	_, err := r.db.Exec("DELETE FROM workspaces WHERE name = ?", name)
	return err
}

// updateLastUsed updates the last used timestamp for a workspace
func (r *Registry) updateLastUsed(name string) error {
	_, err := r.db.Exec(
		"UPDATE workspaces SET last_used = ? WHERE name = ?",
		time.Now(), name,
	)
	return err
}

// Close closes the registry database
func (r *Registry) Close() error {
	return r.db.Close()
}
