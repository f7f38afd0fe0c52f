package drive

import (
	"fmt"

	"google.golang.org/api/drive/v3"
)

// RootFolderName is the Drive folder every backup is written to
const RootFolderName = "contact-book"

const folderMimeType = "application/vnd.google-apps.folder"

// FolderManager handles folder operations in Google Drive
type FolderManager struct {
	client *Client
}

// NewFolderManager creates a new folder manager
func NewFolderManager(client *Client) *FolderManager {
	return &FolderManager{client: client}
}

// GetOrCreate returns the ID of a folder, creating it if it doesn't exist
func (fm *FolderManager) GetOrCreate(name string, parentID string) (string, error) {
	// If no parent is specified, use "root" for the user's main Drive folder
	if parentID == "" {
		parentID = "root"
	}

	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false and '%s' in parents",
		escapeQuery(name), folderMimeType, escapeQuery(parentID))

	fileList, err := fm.client.Service().Files.List().
		Q(query).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", err
	}

	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	fileMetadata := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}

	file, err := fm.client.Service().Files.Create(fileMetadata).
		Fields("id").
		Do()
	if err != nil {
		return "", err
	}

	return file.Id, nil
}

// GetRootFolder returns the ID of the backup root folder, creating it if needed
func (fm *FolderManager) GetRootFolder() (string, error) {
	return fm.GetOrCreate(RootFolderName, "")
}
