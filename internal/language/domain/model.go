package domain

import "strconv"

// Language is immutable reference data. Rows are seeded at startup when
// the table is empty; the service surface is read-only.
type Language struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	LanguageName string `json:"language_name" gorm:"type:varchar(50);not null"`
	IsoCode      string `json:"iso_code" gorm:"type:varchar(4);not null;uniqueIndex"`
}

func (Language) TableName() string { return "languages" }

type LanguageResponse struct {
	ID           string `json:"id"`
	LanguageName string `json:"language_name"`
	IsoCode      string `json:"iso_code"`
}

func ToResponse(l *Language) LanguageResponse {
	return LanguageResponse{
		ID:           strconv.FormatInt(l.ID, 10),
		LanguageName: l.LanguageName,
		IsoCode:      l.IsoCode,
	}
}
