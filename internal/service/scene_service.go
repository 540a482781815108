package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/logger"

	"go.uber.org/zap"
)

const sceneAssetDir = "scenes"

type SceneService struct {
	Storage *StorageService
}

func NewSceneService(storage *StorageService) *SceneService {
	return &SceneService{Storage: storage}
}

func (s *SceneService) Catalog() []model.SceneInfo {
	scenes := make([]model.SceneInfo, 0, len(model.Scenes))
	for _, scene := range model.Scenes {
		scenes = append(scenes, model.SceneInfo{
			Name:    scene,
			URL:     s.Storage.GetURL(sceneAssetDir + "/" + scene.AssetName()),
			Default: scene == model.DefaultScene,
		})
	}
	return scenes
}

// PublishAssets uploads the background image of every scene found in dir.
// Missing files are skipped; files that are not images are rejected.
func (s *SceneService) PublishAssets(ctx context.Context, dir string) (int, error) {
	published := 0
	for _, scene := range model.Scenes {
		path := filepath.Join(dir, scene.AssetName())
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			logger.Log.Warn("scene asset missing", zap.String("scene", string(scene)), zap.String("path", path))
			continue
		}
		if err != nil {
			return published, err
		}
		mimeType, err := util.ValidateMimeType(f, []string{util.MimeImage})
		f.Close()
		if err != nil {
			return published, fmt.Errorf("scene %s: %w", scene, err)
		}

		url, err := s.Storage.UploadFile(ctx, sceneAssetDir+"/"+scene.AssetName(), path, mimeType)
		if err != nil {
			return published, fmt.Errorf("scene %s: %w", scene, err)
		}
		logger.Log.Info("scene asset published", zap.String("scene", string(scene)), zap.String("url", url))
		published++
	}
	return published, nil
}
