package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/fieldsync/internal/models"
)

// PhonePattern определяет допустимый формат телефона
// Цифры, пробелы, дефисы, скобки и ведущий "+", от 5 до 20 символов
var PhonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{5,20}$`)

// BusinessKeyPattern ограничивает business key безопасными для URL символами
var BusinessKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{3,64}$`)

const (
	// MaxNameLen максимальная длина имени заявителя
	MaxNameLen = 200
	// MaxAddressLen максимальная длина адреса
	MaxAddressLen = 500
	// MaxDescriptionLen максимальная длина описания (в символах)
	MaxDescriptionLen = 5000
	// MaxMediaSize максимальный размер вложения
	MaxMediaSize = 25 << 20
)

// ValidateBusinessKey проверяет формат business key
func ValidateBusinessKey(key string) error {
	if key == "" {
		return fmt.Errorf("business key cannot be empty")
	}
	if !BusinessKeyPattern.MatchString(key) {
		return fmt.Errorf("business key can only contain letters, numbers, '-' and '_' (3-64 characters)")
	}
	return nil
}

// ValidateComplaint проверяет обязательные поля жалобы перед постановкой в очередь
func ValidateComplaint(c *models.Complaint) error {
	if c == nil {
		return fmt.Errorf("complaint cannot be nil")
	}

	if err := ValidateBusinessKey(c.BusinessKey); err != nil {
		return err
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(c.Name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	if c.Phone != "" && !PhonePattern.MatchString(c.Phone) {
		return fmt.Errorf("phone %q has invalid format", c.Phone)
	}

	if utf8.RuneCountInString(c.Address) > MaxAddressLen {
		return fmt.Errorf("address must not exceed %d characters", MaxAddressLen)
	}

	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if utf8.RuneCountInString(c.Description) > MaxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", MaxDescriptionLen)
	}

	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("coordinates out of range")
	}

	return nil
}

// ValidateMedia проверяет вложение
func ValidateMedia(m *models.MediaAttachment) error {
	if m == nil {
		return fmt.Errorf("media cannot be nil")
	}
	if err := ValidateBusinessKey(m.BusinessKey); err != nil {
		return err
	}
	if strings.TrimSpace(m.FileName) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if len(m.Data) == 0 {
		return fmt.Errorf("media data cannot be empty")
	}
	if len(m.Data) > MaxMediaSize {
		return fmt.Errorf("media must not exceed %d bytes", MaxMediaSize)
	}
	return nil
}
