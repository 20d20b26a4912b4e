package parsers

import (
	"encoding/json"
	"os"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/pkg/errors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// BankParser reads bank statement batches. Statement extraction emits JSON
// arrays in two field casings; decoding tolerates both, and amounts arriving
// as numbers, noisy strings, or null.
type BankParser struct {
	logger logger.Logger
}

// NewBankParser creates a BankParser.
func NewBankParser() *BankParser {
	return &BankParser{logger: logger.GetGlobalLogger().WithComponent("parser")}
}

// ParseBankData decodes a JSON bank statement batch.
func (bp *BankParser) ParseBankData(data []byte) ([]models.RawBankRecord, error) {
	var records []models.RawBankRecord
	if err := json.Unmarshal(data, &records); err != nil {
		bp.logger.WithError(err).Error("Failed to decode bank statement JSON")
		return nil, errors.ParseError(errors.CodeInvalidFormat, "bank data", 0, "", "", err).
			WithSuggestion("provide the bank statement batch as a JSON array of transactions")
	}

	bp.logger.WithField("records", len(records)).Debug("Decoded bank statement batch")
	return records, nil
}

// ParseBankFile decodes a JSON bank statement batch from disk.
func (bp *BankParser) ParseBankFile(filePath string) ([]models.RawBankRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		bp.logger.WithError(err).WithField("file_path", filePath).Error("Failed to read bank file")
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, filePath, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, filePath, err)
		}
		return nil, errors.FileError(errors.CodeFileError, filePath, err)
	}

	return bp.ParseBankData(data)
}
