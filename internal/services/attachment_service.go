package services

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"freelanceflow/internal/extraction"
	"freelanceflow/internal/metrics"
	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

// AttachmentService stores project files in MinIO and their metadata in
// the database. Zip uploads are unpacked and stored per contained file.
type AttachmentService struct {
	repo     *repository.AttachmentRepository
	projects *repository.ProjectRepository
	client   *minio.Client
	bucket   string
	log      *zap.Logger
}

func NewAttachmentService(repo *repository.AttachmentRepository, projects *repository.ProjectRepository, client *minio.Client, bucket string, log *zap.Logger) *AttachmentService {
	return &AttachmentService{repo: repo, projects: projects, client: client, bucket: bucket, log: log}
}

// ListByProject returns the attachments of a project, newest-first.
func (s *AttachmentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Attachment, error) {
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "checking project")
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Upload stores an uploaded file under the project. Archives are unpacked
// and every contained regular file becomes its own attachment.
func (s *AttachmentService) Upload(ctx context.Context, actor policy.Actor, projectID uuid.UUID, fileHeader *multipart.FileHeader) ([]models.Attachment, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "checking project")
	}
	if !ok {
		return nil, ErrNotFound
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == ".zip" || ext == ".tar" || ext == ".gz" {
		return s.uploadArchive(ctx, actor, projectID, fileHeader)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()

	att, err := s.store(ctx, actor, projectID, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		return nil, err
	}
	return []models.Attachment{*att}, nil
}

func (s *AttachmentService) uploadArchive(ctx context.Context, actor policy.Actor, projectID uuid.UUID, fileHeader *multipart.FileHeader) ([]models.Attachment, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded archive")
	}
	defer src.Close()

	tempArchive, err := os.CreateTemp(os.TempDir(), "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return nil, errors.Wrap(err, "could not create temporary file for archive")
	}
	tempArchivePath := tempArchive.Name()
	_, err = io.Copy(tempArchive, src)
	tempArchive.Close()
	if err != nil {
		os.Remove(tempArchivePath)
		return nil, errors.Wrap(err, "failed to write uploaded archive")
	}

	files, destDir, err := extraction.ExtractArchive(tempArchivePath)
	os.Remove(tempArchivePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract archive")
	}
	defer os.RemoveAll(destDir)

	var stored []models.Attachment
	for _, path := range files {
		name := filepath.Base(path)
		if extraction.ShouldIgnoreFile(name) {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return stored, errors.Wrap(err, "could not open extracted file")
		}
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return stored, errors.Wrap(err, "could not stat extracted file")
		}
		att, err := s.store(ctx, actor, projectID, name, f, stat.Size())
		f.Close()
		if err != nil {
			return stored, err
		}
		stored = append(stored, *att)
	}
	if len(stored) == 0 {
		return nil, singleFieldError("file", "Archive contains no storable files.")
	}
	return stored, nil
}

func (s *AttachmentService) store(ctx context.Context, actor policy.Actor, projectID uuid.UUID, filename string, r io.Reader, size int64) (*models.Attachment, error) {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachmentID := uuid.New()
	storageKey := "attachments/" + attachmentID.String() + filepath.Ext(filename)

	_, err := s.client.PutObject(ctx, s.bucket, storageKey, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload to MinIO")
	}

	att := &models.Attachment{
		ID:          attachmentID,
		ProjectID:   projectID,
		FileName:    filename,
		ContentType: contentType,
		Size:        size,
		StorageKey:  storageKey,
		UploadedBy:  &actor.ID,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		// Remove the blob so a failed metadata write leaves no orphan file.
		s.client.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
		return nil, errors.Wrap(err, "failed to save metadata to database")
	}
	metrics.RecordWrite("attachment", "create")
	return att, nil
}

// Download returns the attachment metadata and a reader over its blob.
// The caller must close the reader.
func (s *AttachmentService) Download(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	att, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, notFoundOr(err, "attachment")
	}
	obj, err := s.client.GetObject(ctx, s.bucket, att.StorageKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching attachment blob")
	}
	return att, obj, nil
}

// Delete removes an attachment's blob and metadata.
func (s *AttachmentService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !policy.CanWrite(actor) {
		return ErrForbidden
	}
	att, err := s.repo.Get(ctx, id)
	if err != nil {
		return notFoundOr(err, "attachment")
	}
	_ = s.client.RemoveObject(ctx, s.bucket, att.StorageKey, minio.RemoveObjectOptions{})
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting attachment")
	}
	if rows == 0 {
		return ErrNotFound
	}
	metrics.RecordWrite("attachment", "delete")
	s.log.Info("attachment deleted",
		zap.String("attachment_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}
