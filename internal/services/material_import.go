package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/types"
)

// Filename keyword classifiers used when bulk-importing documents from a
// local folder. Filenames mix Russian and English, so both spellings are
// matched. Order matters: the first matching group wins.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"catalogs", []string{"каталог", "catalog", "catalogue"}},
	{"specifications", []string{"технические", "spec", "характеристики", "technical"}},
	{"certificates", []string{"сертификат", "certificate", "iso", "сертификация"}},
	{"guides", []string{"руководство", "manual", "guide", "инструкция"}},
	{"brochures", []string{"брошюра", "brochure", "presentation"}},
	{"standards", []string{"стандарт", "standard", "норма", "norm"}},
}

// DetermineCategory classifies a document by its filename.
func DetermineCategory(fileName string) string {
	lower := strings.ToLower(fileName)
	for _, group := range categoryKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.category
			}
		}
	}
	return "other"
}

// GenerateTags derives tags from the filename, always starting with the
// category itself.
func GenerateTags(fileName, category string) jsoncol.List {
	tags := jsoncol.List{category}
	lower := strings.ToLower(fileName)
	for _, kw := range []struct{ word, tag string }{
		{"pdf", "PDF"},
		{"iso", "ISO"},
		{"pvd", "PVD"},
		{"нержавеющая", "нержавеющая сталь"},
		{"stainless", "нержавеющая сталь"},
		{"каталог", "каталог"},
		{"сертификат", "сертификат"},
	} {
		if strings.Contains(lower, kw.word) && !tags.Contains(kw.tag) {
			tags = append(tags, kw.tag)
		}
	}
	return tags
}

// GenerateDescription writes a canned Russian description for the known
// document families, falling back to a generic line with the filename.
func GenerateDescription(fileName string) string {
	lower := strings.ToLower(fileName)
	switch {
	case strings.Contains(lower, "каталог") || strings.Contains(lower, "декоративная"):
		return "Основной каталог декоративной нержавеющей стали с примерами отделок и применения"
	case strings.Contains(lower, "iso"):
		return "Сертификат качества ISO, подтверждающий соответствие международным стандартам"
	case strings.Contains(lower, "rohs"):
		return "Сертификат безопасности материалов RoHS, подтверждающий экологическую безопасность"
	case strings.Contains(lower, "leed"):
		return "Сертификат зеленого строительства LEED для экологичных проектов"
	case strings.Contains(lower, "salt spray"):
		return "Сертификат испытаний на коррозионную стойкость (солевой туман)"
	case strings.Contains(lower, "anti") && strings.Contains(lower, "microbial"):
		return "Результаты испытаний антимикробных свойств покрытий"
	case strings.Contains(lower, "elevator") || strings.Contains(lower, "лифт"):
		return "Каталог решений для лифтового оборудования и декорирования кабин"
	case strings.Contains(lower, "interior"):
		return "Каталог решений для интерьерного применения декоративной нержавейки"
	case strings.Contains(lower, "exterior"):
		return "Каталог решений для наружного применения и фасадных систем"
	case strings.Contains(lower, "handrail"):
		return "Каталог декоративных поручней для лифтов и лестниц"
	default:
		return fmt.Sprintf("Техническая документация: %s", fileName)
	}
}

// BuildImportedMaterial assembles the row for a scanned file. storedPath is
// the path the file was copied to, sizeBytes its on-disk size, and sortOrder
// its 1-based position in the scan.
func BuildImportedMaterial(fileName, storedPath string, sizeBytes int64, sortOrder int) *types.Material {
	category := DetermineCategory(fileName)
	lower := strings.ToLower(fileName)
	return &types.Material{
		Name:        fileName,
		Description: GenerateDescription(fileName),
		Category:    category,
		FileType:    importFileType(fileName),
		FileSize:    FormatFileSize(sizeBytes),
		FilePath:    storedPath,
		DownloadURL: storedPath,
		Tags:        GenerateTags(fileName, category),
		IsActive:    true,
		SortOrder:   sortOrder,
		IsFeatured:  strings.Contains(lower, "каталог") || strings.Contains(lower, "декоративная"),
	}
}

func importFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "PDF"
	case ".jpg", ".jpeg", ".png", ".gif":
		return "Image"
	case ".doc", ".docx":
		return "Word"
	case ".xls", ".xlsx":
		return "Excel"
	default:
		return "Document"
	}
}
