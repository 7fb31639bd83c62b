// Package seed loads the workspace fixture into the repositories and, in
// development, reloads it when the file changes.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsRepo "docspace/internal/domain/repositories/workspace"

	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the YAML form of a workspace
type Fixture struct {
	Workspace   string                       `yaml:"workspace"`
	Root        models.FileItem              `yaml:"root"`
	Folders     map[string][]models.FileItem `yaml:"folders"`
	Members     map[string][]models.Member   `yaml:"members"`
	Permissions map[string]models.Permission `yaml:"permissions"`
}

// Default returns the embedded fixture
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// LoadFile reads a fixture from disk, falling back to the embedded one when
// path is empty
func LoadFile(path string) (*Fixture, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a fixture
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Workspace == "" {
		return nil, &domain.ValidationError{Message: "fixture has no workspace id"}
	}
	if f.Root.ID == "" {
		return nil, &domain.ValidationError{Message: "fixture has no root folder"}
	}
	if f.Root.Type == "" {
		f.Root.Type = models.FileTypeFolder
	}
	for folderID, items := range f.Folders {
		for _, item := range items {
			if item.ID == "" || item.Name == "" {
				return nil, &domain.ValidationError{Message: fmt.Sprintf("folder %s: item without id or name", folderID)}
			}
			if _, err := models.ParseFileType(string(item.Type)); err != nil {
				return nil, &domain.ValidationError{Message: fmt.Sprintf("item %s: %v", item.ID, err)}
			}
		}
	}
	return &f, nil
}

// Collection builds the folder collection described by the fixture
func (f *Fixture) Collection() (*models.Collection, error) {
	names := map[string]string{f.Root.ID: f.Root.Name}
	for _, items := range f.Folders {
		for _, item := range items {
			names[item.ID] = item.Name
		}
	}

	folders := make(map[string]*models.FolderData, len(f.Folders))
	for folderID, items := range f.Folders {
		name, ok := names[folderID]
		if !ok {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("folder %s is not an item of the workspace", folderID)}
		}
		files := make([]models.FileItem, len(items))
		copy(files, items)
		folders[folderID] = &models.FolderData{ID: folderID, Name: name, Files: files}
	}

	c, err := models.NewCollection(f.Workspace, f.Root, folders)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	for folderID := range folders {
		if _, ok := c.Ancestry(folderID); !ok {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("folder %s is not reachable from the root", folderID)}
		}
	}
	return c, nil
}

// Apply writes the fixture into the repositories. Members that already exist
// are left as they are.
func Apply(ctx context.Context, f *Fixture, collections wsRepo.CollectionRepository, members wsRepo.MemberRepository) (*models.Collection, error) {
	c, err := f.Collection()
	if err != nil {
		return nil, err
	}
	if err := collections.Replace(ctx, c); err != nil {
		return nil, fmt.Errorf("store collection: %w", err)
	}

	now := time.Now().UTC()
	for folderID, list := range f.Members {
		for _, m := range list {
			m.FolderID = folderID
			if m.JoinedAt.IsZero() {
				m.JoinedAt = now
			}
			if err := members.Create(ctx, &m); err != nil && !errors.Is(err, domain.ErrConflict) {
				return nil, fmt.Errorf("seed member %s: %w", m.UserID, err)
			}
		}
	}
	for folderID, p := range f.Permissions {
		if err := members.SetPermission(ctx, folderID, p); err != nil {
			return nil, fmt.Errorf("seed permission %s: %w", folderID, err)
		}
	}
	return c, nil
}
