package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/repository/storage"
	"github.com/google/uuid"
)

const (
	MaxReceiptSize      = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth     = 50
	MinReceiptHeight    = 50
	ReceiptThumbWidth   = 200
	ReceiptDisplayWidth = 1000
	receiptJPEGQuality  = 85

	// PresignedURLExpiry bounds how long a receipt link stays valid
	PresignedURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge       = errors.New("file too large. Maximum size is 5MB")
	ErrReceiptInvalidFormat  = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall       = errors.New("image too small. Minimum 50x50 pixels")
	ErrReceiptInvalidData    = errors.New("invalid image data")
	ErrReceiptsNotConfigured = errors.New("receipt storage not configured")
)

var allowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// receiptVariants are the stored sizes per upload; width 0 keeps the original
var receiptVariants = []struct {
	name     string
	maxWidth int
}{
	{"thumb", ReceiptThumbWidth},
	{"display", ReceiptDisplayWidth},
	{"original", 0},
}

// ReceiptService attaches receipt images to expenses
type ReceiptService struct {
	storage     storage.ReceiptRepository
	expenseRepo domain.ExpenseRepository
}

// NewReceiptService creates a new ReceiptService. A nil storage disables
// uploads without disabling the rest of the API.
func NewReceiptService(storage storage.ReceiptRepository, expenseRepo domain.ExpenseRepository) *ReceiptService {
	return &ReceiptService{storage: storage, expenseRepo: expenseRepo}
}

// IsEnabled indicates whether receipt storage is configured
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedReceiptExtensions[ext]; !ok {
		return nil, ErrReceiptInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrReceiptInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}

	return img, nil
}

// Attach validates, resizes and stores a receipt image for an owned expense,
// then records the display variant's path on the expense row
func (s *ReceiptService) Attach(ctx context.Context, userID uuid.UUID, expenseID int32, data []byte, filename string) (*domain.Expense, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptsNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	// Replace any previous receipt, best effort
	if expense.ReceiptURL != nil {
		s.deleteVariants(ctx, *expense.ReceiptURL)
	}

	receiptID := uuid.New().String()
	uploaded := make([]string, 0, len(receiptVariants))
	var displayPath string

	for _, variant := range receiptVariants {
		processed := img
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: receiptJPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := fmt.Sprintf("%s/expenses/%d/%s_%s.jpg", userID, expenseID, receiptID, variant.name)
		path, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			for _, p := range uploaded {
				_ = s.storage.Delete(ctx, p)
			}
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, path)
		if variant.name == "display" {
			displayPath = path
		}
	}

	if err := s.expenseRepo.SetReceiptURL(userID, expenseID, &displayPath); err != nil {
		return nil, err
	}

	return s.expenseRepo.GetByID(userID, expenseID)
}

// Remove deletes all stored variants of an expense's receipt and clears the
// path on the expense row
func (s *ReceiptService) Remove(ctx context.Context, userID uuid.UUID, expenseID int32) error {
	if !s.IsEnabled() {
		return ErrReceiptsNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(userID, expenseID)
	if err != nil {
		return err
	}
	if expense.ReceiptURL == nil {
		return nil
	}

	s.deleteVariants(ctx, *expense.ReceiptURL)
	return s.expenseRepo.SetReceiptURL(userID, expenseID, nil)
}

// PresignedURL returns a temporary link to the stored receipt display variant
func (s *ReceiptService) PresignedURL(ctx context.Context, userID uuid.UUID, expenseID int32) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptsNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(userID, expenseID)
	if err != nil {
		return "", err
	}
	if expense.ReceiptURL == nil {
		return "", domain.ErrExpenseNotFound
	}

	return s.storage.GeneratePresignedURL(ctx, *expense.ReceiptURL, PresignedURLExpiry)
}

// deleteVariants removes every stored size for the receipt whose display
// path is given. Errors are ignored; storage cleanup is best effort.
func (s *ReceiptService) deleteVariants(ctx context.Context, displayPath string) {
	base, ok := strings.CutSuffix(displayPath, "_display.jpg")
	if !ok {
		_ = s.storage.Delete(ctx, displayPath)
		return
	}
	for _, variant := range receiptVariants {
		_ = s.storage.Delete(ctx, base+"_"+variant.name+".jpg")
	}
}
