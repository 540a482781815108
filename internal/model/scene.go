package model

// Scene is the cosmetic background a user picks.
type Scene string

const (
	SceneClassroom  Scene = "classroom"
	SceneGarden     Scene = "garden"
	SceneLibrary    Scene = "library"
	ScenePlayground Scene = "playground"

	DefaultScene = SceneClassroom
)

var Scenes = []Scene{SceneClassroom, SceneGarden, SceneLibrary, ScenePlayground}

func ParseScene(s string) (Scene, bool) {
	for _, scene := range Scenes {
		if string(scene) == s {
			return scene, true
		}
	}
	return "", false
}

func (s Scene) AssetName() string {
	return "scene-" + string(s) + ".dim_1920x1080.png"
}

// SceneInfo describes a scene and where its background image is served.
// swagger:model SceneInfo
type SceneInfo struct {
	Name    Scene  `json:"name"`
	URL     string `json:"url"`
	Default bool   `json:"default"`
}
