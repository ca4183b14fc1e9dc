package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inoxmetalart/backend/internal/db"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
	"github.com/inoxmetalart/backend/internal/utils"
)

// Imports every document from a local folder into the materials table,
// copying the files under the upload root and classifying each one by its
// filename. With -replace, existing rows are cleared first.
func main() {
	sourceDir := flag.String("source", "../Catalog", "folder to scan for documents")
	replace := flag.Bool("replace", false, "delete existing materials before importing")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)

	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := databaseService.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	theDB := databaseService.DB()

	storageService := services.NewStorageService(log, uploadDir)
	if err := storageService.Init(); err != nil {
		log.Fatal("Could not create upload directories", "error", err)
	}
	materialRepo := repos.NewMaterialRepo(theDB, log)

	ctx := context.Background()

	if *replace {
		if err := theDB.WithContext(ctx).Where("1 = 1").Delete(&types.Material{}).Error; err != nil {
			log.Fatal("Could not clear materials", "error", err)
		}
		log.Info("Cleared existing materials")
	}

	targetDir := filepath.Join(uploadDir, services.DirMaterials)
	imported := 0
	err = filepath.Walk(*sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		target := filepath.Join(targetDir, info.Name())
		if err := copyFile(path, target); err != nil {
			log.Warn("Could not copy file", "file", info.Name(), "error", err)
			return nil
		}

		material := services.BuildImportedMaterial(
			info.Name(),
			filepath.ToSlash(target),
			info.Size(),
			imported+1,
		)
		if err := materialRepo.Create(ctx, nil, material); err != nil {
			log.Warn("Could not insert material", "file", info.Name(), "error", err)
			return nil
		}
		imported++
		log.Info("Imported material", "file", info.Name(), "category", material.Category)
		return nil
	})
	if err != nil {
		log.Fatal("Scan failed", "source", *sourceDir, "error", err)
	}
	log.Info("Import finished", "count", imported)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
