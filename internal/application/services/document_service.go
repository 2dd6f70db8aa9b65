package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/template"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// DocumentService handles the document archive: the folder tree, document
// records with duplicate-name detection, and the stored HTML templates.
type DocumentService struct {
	documentRepo ports.DocumentRepository
	folderRepo   ports.FolderRepository
	settingsRepo ports.SettingsRepository
	dispatcher   ports.Dispatcher
	logger       *logger.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo ports.DocumentRepository,
	folderRepo ports.FolderRepository,
	settingsRepo ports.SettingsRepository,
	dispatcher ports.Dispatcher,
	logger *logger.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		folderRepo:   folderRepo,
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// ListFolders returns the whole folder tree
func (s *DocumentService) ListFolders(ctx context.Context) ([]entities.Folder, error) {
	return s.folderRepo.List(ctx)
}

// SaveFolder upserts a folder node. An empty ID creates a new folder.
func (s *DocumentService) SaveFolder(ctx context.Context, f entities.Folder) (*entities.Folder, error) {
	if !f.Type.IsValid() {
		return nil, fmt.Errorf("invalid folder type: %s", f.Type)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	if err := s.folderRepo.Save(ctx, &f); err != nil {
		return nil, fmt.Errorf("failed to save folder: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyFolders, &f)
	s.logger.Infow("Folder saved", "folder_id", f.ID, "name", f.Name)

	return &f, nil
}

// DeleteFolder removes a folder node. Documents keep their folderId; a
// dangling reference just hides them from the tree until reassigned.
func (s *DocumentService) DeleteFolder(ctx context.Context, id string) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyFolders, id)
	s.logger.Infow("Folder deleted", "folder_id", id)

	return nil
}

// ListDocuments returns every stored document
func (s *DocumentService) ListDocuments(ctx context.Context) ([]entities.Document, error) {
	return s.documentRepo.List(ctx)
}

// GetDocument retrieves a document by ID
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*entities.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

// CheckNameConflict returns the document already holding the name inside the
// folder, excluding the record being edited, or nil when the name is free.
func (s *DocumentService) CheckNameConflict(ctx context.Context, folderID, name, excludeID string) (*entities.Document, error) {
	docs, err := s.documentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].FolderID == folderID && docs[i].Name == name && docs[i].ID != excludeID {
			return &docs[i], nil
		}
	}
	return nil, nil
}

// SaveDocument upserts a document. A duplicate name inside the target folder
// fails with ErrDuplicateDocumentName unless the caller resolves it:
// OverwriteID replaces the conflicting record, AsCopy saves under a fresh ID
// with a "(Copy)" suffix.
func (s *DocumentService) SaveDocument(ctx context.Context, req ports.SaveDocumentRequest) (*entities.Document, error) {
	doc := req.Document
	if !doc.Type.IsValid() {
		return nil, fmt.Errorf("invalid document type: %s", doc.Type)
	}
	if !doc.Status.IsValid() {
		return nil, fmt.Errorf("invalid document status: %s", doc.Status)
	}

	switch {
	case req.OverwriteID != "":
		doc.ID = req.OverwriteID
	case req.AsCopy:
		doc.ID = uuid.NewString()
		doc.Name = doc.Name + " (Copy)"
	default:
		conflict, err := s.CheckNameConflict(ctx, doc.FolderID, doc.Name, doc.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, entities.ErrDuplicateDocumentName
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
	}

	if err := s.documentRepo.Save(ctx, &doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyDocuments, &doc)
	s.logger.Infow("Document saved", "document_id", doc.ID, "name", doc.Name)

	return &doc, nil
}

// DeleteDocument removes a document
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyDocuments, id)
	s.logger.Infow("Document deleted", "document_id", id)

	return nil
}

// Template returns the stored template by name, falling back to the built-in
// default when one exists for that name.
func (s *DocumentService) Template(ctx context.Context, name string) (string, error) {
	stored, ok, err := s.settingsRepo.Template(ctx, name)
	if err != nil {
		return "", err
	}
	if ok {
		return stored, nil
	}
	if fallback, ok := template.Default(name); ok {
		return fallback, nil
	}
	return "", nil
}

// SetTemplate stores template content under name
func (s *DocumentService) SetTemplate(ctx context.Context, name, content string) error {
	if err := s.settingsRepo.SetTemplate(ctx, name, content); err != nil {
		return err
	}
	s.logger.Infow("Template updated", "template", name)
	return nil
}
