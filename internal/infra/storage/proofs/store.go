package proofs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	ErrProofNotFound      = errors.New("proofs.storage: proof not found")
	ErrInvalidKey         = errors.New("proofs.storage: invalid proof key")
	ErrUnsupportedType    = errors.New("proofs.storage: unsupported content type")
	ErrWriteProof         = errors.New("proofs.storage: failed to write proof")
	ErrReadProof          = errors.New("proofs.storage: failed to read proof")
	ErrDeleteProof        = errors.New("proofs.storage: failed to delete proof")
	ErrCreateProofsFolder = errors.New("proofs.storage: failed to create proofs directory")
)

// ключ вида {userID}_{uuid}{ext}
var keyPattern = regexp.MustCompile(`^[0-9]+_[0-9a-f-]{36}\.(jpg|png|webp|pdf)$`)

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// FileStore хранит подтверждения оплаты на локальном диске
type FileStore struct {
	dir string
}

// NewFileStore создает каталог, если его нет
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateProofsFolder, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save сохраняет документ и возвращает его ключ
func (s *FileStore) Save(ctx context.Context, userID int64, contentType string, data []byte) (string, error) {
	ext, ok := domain.AllowedProofContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)

	// запись через временный файл + rename
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp: %v", ErrWriteProof, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write: %v", ErrWriteProof, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %v", ErrWriteProof, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return "", fmt.Errorf("%w: rename: %v", ErrWriteProof, err)
	}

	return key, nil
}

// Open возвращает содержимое документа и его MIME-тип
func (s *FileStore) Open(ctx context.Context, key string) ([]byte, string, error) {
	if !keyPattern.MatchString(key) {
		return nil, "", ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", ErrProofNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReadProof, err)
	}

	return data, contentTypeByExt[strings.ToLower(filepath.Ext(key))], nil
}

// Delete удаляет документ. Отсутствующий файл не считается ошибкой
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrDeleteProof, err)
	}
	return nil
}
