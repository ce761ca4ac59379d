package store

import (
	"context"
	"time"
)

// FileStore tracks upload metadata; bytes live on disk under the configured
// upload directory.
type FileStore struct {
	db DB
}

type Folder struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type File struct {
	ID          string    `db:"id" json:"id"`
	FolderID    *string   `db:"folder_id" json:"folder_id,omitempty"`
	Name        string    `db:"name" json:"name"`
	StoredName  string    `db:"stored_name" json:"-"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

type FileInput struct {
	ID          string
	FolderID    *string
	Name        string
	StoredName  string
	ContentType string
	SizeBytes   int64
}

func NewFileStore(db DB) *FileStore {
	return &FileStore{db: db}
}

func (s *FileStore) CreateFolder(ctx context.Context, id, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO folders (id, name) VALUES ($1, $2)`, id, name)
	return err
}

func (s *FileStore) ListFolders(ctx context.Context) ([]Folder, error) {
	var rows []Folder
	err := s.db.SelectContext(ctx, &rows, `SELECT id, name, created_at FROM folders ORDER BY name`)
	return rows, err
}

func (s *FileStore) CreateFile(ctx context.Context, input FileInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, folder_id, name, stored_name, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.FolderID, input.Name, input.StoredName, input.ContentType, input.SizeBytes)
	return err
}

func (s *FileStore) GetFile(ctx context.Context, id string) (File, error) {
	var row File
	err := s.db.GetContext(ctx, &row, `
		SELECT id, folder_id, name, stored_name, content_type, size_bytes, uploaded_at
		FROM files
		WHERE id = $1
	`, id)
	return row, err
}

func (s *FileStore) ListFiles(ctx context.Context, folderID string) ([]File, error) {
	var rows []File
	query := `
		SELECT id, folder_id, name, stored_name, content_type, size_bytes, uploaded_at
		FROM files
	`
	args := []any{}
	if folderID != "" {
		query += ` WHERE folder_id = $1`
		args = append(args, folderID)
	}
	query += ` ORDER BY uploaded_at DESC`
	err := s.db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}
