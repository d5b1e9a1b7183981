package processor

import (
	"encoding/json"

	"reel/internal/models"
	"reel/internal/pkg/errors"
)

// ParseScript parses a video's stored script payload. The script is parsed
// once per run and treated as immutable afterwards. Scene content types are
// not validated here: an unknown type must fail in the scene renderer,
// before any process is spawned, so the run records UNSUPPORTED_SCENE rather
// than a generic validation failure.
func ParseScript(raw []byte) (*models.VideoScript, error) {
	if len(raw) == 0 {
		return nil, errors.Validation("video script not found")
	}

	var script models.VideoScript
	if err := json.Unmarshal(raw, &script); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeValidation, "script.parse", "invalid script payload")
	}

	if len(script.Scenes) == 0 {
		return nil, errors.Validation("script has no scenes")
	}

	for i, scene := range script.Scenes {
		if scene.Duration <= 0 {
			return nil, errors.Validationf("scene %d has non-positive duration", i).
				WithField("scene", i)
		}
	}

	return &script, nil
}
