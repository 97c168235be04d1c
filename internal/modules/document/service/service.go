package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/document/dto"
	internshipRepo "infuct.com/seguimiento/internal/modules/internship/repository"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/storage"

	"github.com/google/uuid"
)

var (
	errInvalidKind     = apperror.Validation("Tipo de documento no válido")
	errMissingFile     = apperror.Validation("No se ha enviado ningún archivo")
	errInvalidFileType = apperror.Validation("Tipo de archivo no permitido")
	errNoDocument      = apperror.NotFound("Documento no encontrado")
)

const internshipNotFound = "Práctica no encontrada"

type DocumentService interface {
	Upload(ctx context.Context, kind string, internshipID uint, fileName string, content io.Reader) (*dto.UploadResult, error)
	Download(ctx context.Context, kind string, internshipID uint) (*dto.Download, error)
	Delete(ctx context.Context, kind string, internshipID uint) error
}

type documentService struct {
	internships internshipRepo.InternshipRepository
	files       storage.FileStorage
}

func NewDocumentService(internships internshipRepo.InternshipRepository, files storage.FileStorage) DocumentService {
	return &documentService{internships: internships, files: files}
}

func parseKind(kind string) (entity.DocumentKind, error) {
	k, ok := entity.ParseDocumentKind(kind)
	if !ok {
		return "", errInvalidKind
	}
	return k, nil
}

func (s *documentService) Upload(ctx context.Context, kind string, internshipID uint, fileName string, content io.Reader) (*dto.UploadResult, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" || content == nil {
		return nil, errMissingFile
	}
	// The extension is checked before anything is touched on disk.
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return nil, errInvalidFileType
	}

	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, apperror.FromDB(err, internshipNotFound)
	}

	storedName := storage.SecureFilename(fmt.Sprintf("practica_%d_%s", internshipID, fileName))
	newPath := path.Join(k.SubDir(), storedName)

	// Stage under a unique name; the referenced file is replaced only once the
	// record points at newPath.
	staged, err := s.files.Save(content, k.SubDir(), storedName+"."+uuid.NewString()+".part")
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.internships.SetDocumentPath(ctx, internshipID, k.Column(), &newPath); err != nil {
		s.discard(staged)
		return nil, apperror.FromDB(err, internshipNotFound)
	}

	previous := internship.DocumentPath(k)
	if err := s.files.Move(staged, newPath); err != nil {
		s.discard(staged)
		var restore *string
		if previous != "" && s.files.Exists(previous) {
			restore = &previous
		}
		if rbErr := s.internships.SetDocumentPath(ctx, internshipID, k.Column(), restore); rbErr != nil {
			logger.Error().Err(rbErr).Uint("internship_id", internshipID).Msg("failed to restore document path")
		}
		return nil, apperror.Internal(err)
	}

	if previous != "" && previous != newPath {
		if err := s.files.Delete(previous); err != nil {
			logger.Warn().Err(err).Str("path", previous).Msg("failed to remove replaced document")
		}
	}

	logger.Info().Uint("internship_id", internshipID).Str("kind", string(k)).Str("path", newPath).Msg("document uploaded")
	return &dto.UploadResult{Path: newPath, Kind: string(k), InternshipID: internshipID}, nil
}

func (s *documentService) discard(staged string) {
	if err := s.files.Delete(staged); err != nil {
		logger.Warn().Err(err).Str("path", staged).Msg("failed to remove staged upload")
	}
}

func (s *documentService) Download(ctx context.Context, kind string, internshipID uint) (*dto.Download, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}

	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, apperror.FromDB(err, internshipNotFound)
	}

	stored := internship.DocumentPath(k)
	if stored == "" {
		return nil, errNoDocument
	}

	content, size, err := s.files.Open(stored)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, errNoDocument
		}
		return nil, apperror.Internal(err)
	}

	return &dto.Download{Content: content, Size: size, FileName: path.Base(stored)}, nil
}

func (s *documentService) Delete(ctx context.Context, kind string, internshipID uint) error {
	k, err := parseKind(kind)
	if err != nil {
		return err
	}

	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		return apperror.FromDB(err, internshipNotFound)
	}

	stored := internship.DocumentPath(k)
	if stored == "" {
		return nil
	}

	if s.files.Exists(stored) {
		if err := s.files.Delete(stored); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := s.internships.SetDocumentPath(ctx, internshipID, k.Column(), nil); err != nil {
		return apperror.FromDB(err, internshipNotFound)
	}

	logger.Info().Uint("internship_id", internshipID).Str("kind", string(k)).Msg("document deleted")
	return nil
}
