package services

import "testing"

func TestDetermineCategory(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		want     string
	}{
		{"russian catalog", "Каталог декоративной нержавейки.pdf", "catalogs"},
		{"english catalogue", "Product Catalogue 2024.pdf", "catalogs"},
		{"technical specs", "Технические характеристики AISI304.pdf", "specifications"},
		{"iso certificate", "ISO 9001 Certificate.pdf", "certificates"},
		{"manual", "Installation Manual.pdf", "guides"},
		{"brochure", "Company Brochure.pdf", "brochures"},
		{"standard", "ГОСТ стандарт отделок.pdf", "standards"},
		{"unmatched", "pricelist_2024.xlsx", "other"},
		{"catalog beats certificate", "Каталог сертифицированных покрытий.pdf", "catalogs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetermineCategory(tc.fileName); got != tc.want {
				t.Fatalf("DetermineCategory(%q) = %q, want %q", tc.fileName, got, tc.want)
			}
		})
	}
}

func TestGenerateTags(t *testing.T) {
	tags := GenerateTags("Каталог PVD покрытий stainless.pdf", "catalogs")
	if len(tags) == 0 || tags[0] != "catalogs" {
		t.Fatalf("expected category as first tag, got %v", tags)
	}
	for _, want := range []string{"PDF", "PVD", "нержавеющая сталь", "каталог"} {
		if !tags.Contains(want) {
			t.Fatalf("expected tag %q in %v", want, tags)
		}
	}
	seen := map[string]int{}
	for _, tag := range tags {
		seen[tag]++
		if seen[tag] > 1 {
			t.Fatalf("duplicate tag %q in %v", tag, tags)
		}
	}
}

func TestGenerateDescriptionFallback(t *testing.T) {
	got := GenerateDescription("unknown_document.docx")
	want := "Техническая документация: unknown_document.docx"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildImportedMaterial(t *testing.T) {
	m := BuildImportedMaterial("Каталог декоративной стали.pdf", "uploads/materials/Каталог декоративной стали.pdf", 2*1024*1024, 3)
	if m.Category != "catalogs" {
		t.Fatalf("category = %q", m.Category)
	}
	if m.FileType != "PDF" {
		t.Fatalf("file type = %q", m.FileType)
	}
	if m.FileSize != "2 MB" {
		t.Fatalf("file size = %q", m.FileSize)
	}
	if !m.IsFeatured {
		t.Fatal("catalog import should be featured")
	}
	if m.SortOrder != 3 {
		t.Fatalf("sort order = %d", m.SortOrder)
	}
	if m.DownloadURL != m.FilePath {
		t.Fatalf("download url %q should mirror file path %q", m.DownloadURL, m.FilePath)
	}
	if !m.IsActive {
		t.Fatal("imported material should be active")
	}
}
