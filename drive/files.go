package drive

import (
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// FileManager handles generic file operations in Google Drive
type FileManager struct {
	client *Client
}

// NewFileManager creates a new file manager
func NewFileManager(client *Client) *FileManager {
	return &FileManager{client: client}
}

// escapeQuery quotes a value for use inside a single-quoted Drive query string
func escapeQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

// Find searches for a file by name in a specific folder
func (fm *FileManager) Find(filename, parentID string) (*drive.File, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escapeQuery(filename), escapeQuery(parentID))
	fileList, err := fm.client.Service().Files.List().
		Q(query).
		Fields("files(id, name, createdTime, modifiedTime)").
		Do()
	if err != nil {
		return nil, err
	}

	if len(fileList.Files) == 0 {
		return nil, nil
	}

	return fileList.Files[0], nil
}

// Create creates a new file with the given content
func (fm *FileManager) Create(name, parentID, mimeType string, content io.Reader) (*drive.File, error) {
	fileMetadata := &drive.File{
		Name:     name,
		Parents:  []string{parentID},
		MimeType: mimeType,
	}

	file, err := fm.client.Service().Files.Create(fileMetadata).
		Media(content).
		Fields("id, createdTime, modifiedTime").
		Do()
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Update updates an existing file's content
func (fm *FileManager) Update(fileID string, content io.Reader) error {
	_, err := fm.client.Service().Files.Update(fileID, &drive.File{}).
		Media(content).
		Do()
	return err
}

// Upsert replaces the content of name in parentID, creating the file if needed
func (fm *FileManager) Upsert(name, parentID, mimeType string, content io.Reader) error {
	existing, err := fm.Find(name, parentID)
	if err != nil {
		return err
	}

	if existing != nil {
		return fm.Update(existing.Id, content)
	}

	_, err = fm.Create(name, parentID, mimeType, content)
	return err
}

// ListInFolder returns all files in a specific folder
func (fm *FileManager) ListInFolder(parentID string, limit int) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", escapeQuery(parentID))

	pageSize := int64(limit)
	if pageSize == 0 {
		pageSize = 100
	}

	fileList, err := fm.client.Service().Files.List().
		Q(query).
		Fields(googleapi.Field("files(id, name, createdTime, modifiedTime)")).
		OrderBy("name").
		PageSize(pageSize).
		Do()
	if err != nil {
		return nil, err
	}

	return fileList.Files, nil
}
